package rounddomain

import (
	"github.com/shopspring/decimal"
)

// Validator checks and normalizes submissions into RoundRecords.
type Validator struct {
	GrossMin       int
	GrossMax       int
	MaxWeek        int
	Policy         HandicapPolicy
	KeepFeatsOnDNF bool
}

// Validate rejects a submission whose fields are out of range or whose player
// has no baseline row in records.
func (v Validator) Validate(sub Submission, records []RoundRecord) error {
	if sub.Week < 1 || (v.MaxWeek > 0 && sub.Week > v.MaxWeek) {
		return outOfRange("week", "week %d outside 1..%d", sub.Week, v.MaxWeek)
	}

	player := NormalizePlayer(sub.Player)
	if player == "" {
		return &ValidationError{Field: "player", Reason: "player is required", Err: ErrUnknownPlayer}
	}
	if _, ok := Baseline(records, player); !ok {
		return &ValidationError{Field: "player", Reason: "no baseline row for " + player, Err: ErrUnknownPlayer}
	}

	if !sub.DNF && (sub.Gross < v.GrossMin || sub.Gross > v.GrossMax) {
		return outOfRange("gross", "gross %d outside %d..%d", sub.Gross, v.GrossMin, v.GrossMax)
	}

	feats := []struct {
		field string
		n     int
	}{{"pars", sub.Pars}, {"birdies", sub.Birdies}, {"eagles", sub.Eagles}}
	for _, f := range feats {
		if f.n < 0 {
			return outOfRange(f.field, "%s must not be negative, got %d", f.field, f.n)
		}
	}

	if sub.Handicap != nil && v.Policy == PolicyClampNonNegative && sub.Handicap.IsNegative() {
		return outOfRange("handicap", "handicap %s is negative under %s", sub.Handicap.String(), v.Policy)
	}
	return nil
}

// ValidateBaseline checks a registration handicap against the policy.
func (v Validator) ValidateBaseline(player string, handicap decimal.Decimal) error {
	if NormalizePlayer(player) == "" {
		return outOfRange("player", "player is required")
	}
	if v.Policy == PolicyClampNonNegative && handicap.IsNegative() {
		return outOfRange("handicap", "handicap %s is negative under %s", handicap.String(), v.Policy)
	}
	return nil
}

// Normalize builds the RoundRecord for a validated submission with the
// handicap already resolved. DNF rounds carry zero gross and net, and zero
// feat counts unless KeepFeatsOnDNF is set.
func (v Validator) Normalize(sub Submission, handicap decimal.Decimal) RoundRecord {
	net, gross := ResolveNet(sub.Gross, handicap, sub.DNF)

	rec := RoundRecord{
		Week:     sub.Week,
		Player:   NormalizePlayer(sub.Player),
		Pars:     sub.Pars,
		Birdies:  sub.Birdies,
		Eagles:   sub.Eagles,
		Gross:    gross,
		Handicap: handicap,
		Net:      net,
		DNF:      sub.DNF,
		PIN:      sub.PIN,
	}
	if sub.DNF && !v.KeepFeatsOnDNF {
		rec.Pars, rec.Birdies, rec.Eagles = 0, 0, 0
	}
	return rec
}

// NewBaseline builds the week-0 registration row for player.
func NewBaseline(player string, handicap decimal.Decimal, pin string) RoundRecord {
	return RoundRecord{
		Week:     BaselineWeek,
		Player:   NormalizePlayer(player),
		Handicap: handicap,
		Net:      decimal.Zero,
		PIN:      pin,
	}
}

// Resolve validates sub against records and produces the normalized record.
// The handicap is the submission's override when present, otherwise the
// rolling handicap computed from the player's earlier rounds.
func (v Validator) Resolve(sub Submission, records []RoundRecord, cfg HandicapConfig) (RoundRecord, error) {
	if err := v.Validate(sub, records); err != nil {
		return RoundRecord{}, err
	}

	var handicap decimal.Decimal
	if sub.Handicap != nil {
		handicap = *sub.Handicap
	} else {
		handicap = ComputeHandicap(PlayerHistory(records, sub.Player), sub.Week, cfg)
	}
	return v.Normalize(sub, handicap), nil
}

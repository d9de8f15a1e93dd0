package roundevents

import "time"

// Round-related events
const (
	// RoundRecordedV1 is published after a round or baseline row is upserted.
	RoundRecordedV1 = "round.recorded.v1"
)

// RoundRecordedPayloadV1 describes a ledger write.
type RoundRecordedPayloadV1 struct {
	Week       int       `json:"week"`
	Player     string    `json:"player"`
	DNF        bool      `json:"dnf"`
	Net        string    `json:"net"`
	Handicap   string    `json:"handicap"`
	Replaced   bool      `json:"replaced"`
	RecordedAt time.Time `json:"recorded_at"`
}

package roundhandlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
)

// RegisterPlayerRequest is the body of POST /api/players.
type RegisterPlayerRequest struct {
	Player   string          `json:"player"`
	Handicap decimal.Decimal `json:"handicap"`
	PIN      string          `json:"pin"`
}

// SubmitRoundRequest is the body of POST /api/rounds. Gross is either a
// number or the string "DNF".
type SubmitRoundRequest struct {
	Week     int              `json:"week"`
	Player   string           `json:"player"`
	Gross    GrossScore       `json:"gross"`
	Pars     int              `json:"pars"`
	Birdies  int              `json:"birdies"`
	Eagles   int              `json:"eagles"`
	Handicap *decimal.Decimal `json:"handicap,omitempty"`
	PIN      string           `json:"pin"`
}

// GrossScore is a gross score input: a stroke count or DNF.
type GrossScore struct {
	Strokes int
	DNF     bool
}

func (g *GrossScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		strokes, dnf, err := rounddomain.ParseGross(s)
		if err != nil {
			return err
		}
		g.Strokes, g.DNF = strokes, dnf
		return nil
	}
	if err := json.Unmarshal(data, &g.Strokes); err != nil {
		return fmt.Errorf("gross must be an integer or %q", rounddomain.DNFSentinel)
	}
	return nil
}

func (g GrossScore) MarshalJSON() ([]byte, error) {
	if g.DNF {
		return json.Marshal(rounddomain.DNFSentinel)
	}
	return json.Marshal(g.Strokes)
}

// Submission converts the request into a domain submission.
func (req SubmitRoundRequest) Submission() rounddomain.Submission {
	return rounddomain.Submission{
		Week:     req.Week,
		Player:   req.Player,
		Gross:    req.Gross.Strokes,
		DNF:      req.Gross.DNF,
		Pars:     req.Pars,
		Birdies:  req.Birdies,
		Eagles:   req.Eagles,
		Handicap: req.Handicap,
		PIN:      req.PIN,
	}
}

// SubmitRoundResponse reports the stored record and whether it replaced one.
type SubmitRoundResponse struct {
	Record   rounddomain.RoundRecord  `json:"record"`
	Replaced bool                     `json:"replaced"`
	Previous *rounddomain.RoundRecord `json:"previous,omitempty"`
}

// HandicapResponse is the body of GET /api/players/{player}/handicap.
type HandicapResponse struct {
	Player   string          `json:"player"`
	Week     int             `json:"week"`
	Handicap decimal.Decimal `json:"handicap"`
}

package rounddomain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DNFSentinel is the gross-score input that marks a round as not finished.
const DNFSentinel = "DNF"

// Submission is the raw input for one weekly round.
type Submission struct {
	Week    int
	Player  string
	Gross   int
	DNF     bool
	Pars    int
	Birdies int
	Eagles  int
	// Handicap overrides the computed rolling handicap when set.
	Handicap *decimal.Decimal
	PIN      string
}

// ParseGross parses a gross-score input that is either an integer or the DNF sentinel.
func ParseGross(input string) (gross int, dnf bool, err error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, DNFSentinel) {
		return 0, true, nil
	}
	gross, err = strconv.Atoi(input)
	if err != nil {
		return 0, false, outOfRange("gross", "%q is neither a score nor %s", input, DNFSentinel)
	}
	return gross, false, nil
}

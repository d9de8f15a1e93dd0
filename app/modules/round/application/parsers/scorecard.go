package parsers

import rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"

// ParsedScorecard is a hole-by-hole card for one league night.
type ParsedScorecard struct {
	ParScores    []int
	PlayerScores []PlayerScoreRow
}

// PlayerScoreRow is one player's line on the card.
type PlayerScoreRow struct {
	PlayerName string
	HoleScores []int
	Total      int
	// DNF is set when the row says so or is missing holes.
	DNF bool
}

// Feats counts the holes played at par, one under and two or more under.
func (c *ParsedScorecard) Feats(row PlayerScoreRow) (pars, birdies, eagles int) {
	for i, score := range row.HoleScores {
		if i >= len(c.ParScores) || score <= 0 {
			continue
		}
		switch diff := c.ParScores[i] - score; {
		case diff == 0:
			pars++
		case diff == 1:
			birdies++
		case diff >= 2:
			eagles++
		}
	}
	return pars, birdies, eagles
}

// Submissions turns every row into a weekly submission.
func (c *ParsedScorecard) Submissions(week int) []rounddomain.Submission {
	subs := make([]rounddomain.Submission, 0, len(c.PlayerScores))
	for _, row := range c.PlayerScores {
		sub := rounddomain.Submission{
			Week:   week,
			Player: row.PlayerName,
			Gross:  row.Total,
			DNF:    row.DNF,
		}
		if !row.DNF {
			sub.Pars, sub.Birdies, sub.Eagles = c.Feats(row)
		}
		subs = append(subs, sub)
	}
	return subs
}

package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
)

// ErrNoParRow is returned when a card has no recognizable par row.
var ErrNoParRow = errors.New("no par row found")

// totalColumnNames are header cells that hold a row total rather than a hole.
var totalColumnNames = []string{"total", "score", "gross", "+/-", "plusminus", "relative"}

// parseRows extracts the par row and the player rows from a card laid out as
// an optional header, a par row and one row per player.
func parseRows(rows [][]string) (*ParsedScorecard, error) {
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return nil, errors.New("scorecard is empty")
	}

	parIdx := -1
	for i, row := range rows {
		if isPARRow(row[0]) {
			parIdx = i
			break
		}
	}
	if parIdx < 0 {
		return nil, ErrNoParRow
	}

	skip := map[int]bool{}
	if parIdx > 0 {
		for col, cell := range rows[parIdx-1] {
			if isTotalColumn(cell) {
				skip[col] = true
			}
		}
	}

	holeCols := make([]int, 0, 18)
	parScores := make([]int, 0, 18)
	for col := 1; col < len(rows[parIdx]); col++ {
		if skip[col] {
			continue
		}
		val := strings.TrimSpace(rows[parIdx][col])
		if val == "" || val == "-" {
			continue
		}
		par, err := strconv.Atoi(val)
		if err != nil || par <= 0 {
			return nil, fmt.Errorf("invalid par value %q in column %d", val, col+1)
		}
		holeCols = append(holeCols, col)
		parScores = append(parScores, par)
	}
	if len(parScores) == 0 {
		return nil, ErrNoParRow
	}

	card := &ParsedScorecard{ParScores: parScores}
	for i := parIdx + 1; i < len(rows); i++ {
		row, err := parsePlayerRow(rows[i], holeCols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if row.PlayerName == "" {
			continue
		}
		card.PlayerScores = append(card.PlayerScores, row)
	}
	if len(card.PlayerScores) == 0 {
		return nil, errors.New("no player score rows found")
	}
	return card, nil
}

func parsePlayerRow(row []string, holeCols []int) (PlayerScoreRow, error) {
	out := PlayerScoreRow{PlayerName: rounddomain.NormalizePlayer(row[0])}
	if out.PlayerName == "" {
		return out, nil
	}

	for _, cell := range row[1:] {
		if strings.EqualFold(strings.TrimSpace(cell), rounddomain.DNFSentinel) {
			out.DNF = true
		}
	}

	for _, col := range holeCols {
		val := ""
		if col < len(row) {
			val = strings.TrimSpace(row[col])
		}
		if val == "" || val == "-" || strings.EqualFold(val, rounddomain.DNFSentinel) {
			out.DNF = true
			out.HoleScores = append(out.HoleScores, 0)
			continue
		}
		score, err := strconv.Atoi(val)
		if err != nil {
			return out, fmt.Errorf("player %q: non-numeric score value %q", out.PlayerName, val)
		}
		if score <= 0 {
			return out, fmt.Errorf("player %q: score must be positive, got %d", out.PlayerName, score)
		}
		out.HoleScores = append(out.HoleScores, score)
		out.Total += score
	}
	if out.DNF {
		out.Total = 0
	}
	return out, nil
}

func isPARRow(cellValue string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(cellValue))
	return normalized == "PAR" || normalized == "PARS" || normalized == "P"
}

func isTotalColumn(cell string) bool {
	norm := strings.ToLower(strings.TrimSpace(cell))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	for _, name := range totalColumnNames {
		if norm == name {
			return true
		}
	}
	return false
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

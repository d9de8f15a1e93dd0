package leaderboardservice

import (
	"context"
	"fmt"
	"io"

	leaderboarddomain "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/domain"
	"github.com/xuri/excelize/v2"
)

// StandingsSheet is the first sheet of an exported workbook.
const StandingsSheet = "Standings"

var (
	standingsHeader = []interface{}{
		"Position", "Player", "Total_Points", "Avg_Net", "Rounds", "DNFs",
		"Weeks_Won", "Pars", "Birdies", "Eagles",
	}
	weekHeader = []interface{}{
		"Rank", "Player", "Gross_Score", "Handicap", "Net_Score", "DNF", "Points",
	}
)

// WeekSheetName names the sheet holding the results of week.
func WeekSheetName(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// ExportWorkbook writes the standings and every played week as an xlsx
// workbook to w.
func (s *LeaderboardService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	_, err := withTelemetry(s, ctx, "ExportWorkbook", func(ctx context.Context) (struct{}, error) {
		records, err := s.snapshot(ctx)
		if err != nil {
			return struct{}{}, err
		}

		byWeek, weeks := leaderboarddomain.GroupByWeek(records)
		results := make(map[int][]leaderboarddomain.WeeklyResult, len(weeks))
		for _, week := range weeks {
			results[week] = leaderboarddomain.RankWeek(byWeek[week], s.table, s.floor)
		}
		standings := leaderboarddomain.BuildStandings(records, s.table, s.floor)

		return struct{}{}, WriteWorkbook(w, standings, weeks, results)
	})
	return err
}

// WriteWorkbook renders standings and weekly results into a new workbook.
func WriteWorkbook(w io.Writer, standings []leaderboarddomain.SeasonStanding, weeks []int, results map[int][]leaderboarddomain.WeeklyResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StandingsSheet); err != nil {
		return fmt.Errorf("export rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export header style: %w", err)
	}

	rows := make([][]interface{}, len(standings))
	for i, st := range standings {
		rows[i] = []interface{}{
			st.Position,
			st.Player,
			st.TotalPoints.InexactFloat64(),
			st.AvgNet.InexactFloat64(),
			st.RoundsPlayed,
			st.DNFs,
			st.WeeksWon,
			st.Pars,
			st.Birdies,
			st.Eagles,
		}
	}
	if err := writeSheet(f, StandingsSheet, standingsHeader, rows, headerStyle); err != nil {
		return err
	}

	for _, week := range weeks {
		sheet := WeekSheetName(week)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("export new sheet %s: %w", sheet, err)
		}
		rows := make([][]interface{}, len(results[week]))
		for i, res := range results[week] {
			rank := interface{}(res.Rank)
			if res.DNF {
				rank = ""
			}
			rows[i] = []interface{}{
				rank,
				res.Player,
				res.Gross,
				res.Handicap.InexactFloat64(),
				res.Net.InexactFloat64(),
				res.DNF,
				res.Points.InexactFloat64(),
			}
		}
		if err := writeSheet(f, sheet, weekHeader, rows, headerStyle); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export write: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export %s header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("export %s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("export %s header style: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return fmt.Errorf("export %s column width: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export %s cell: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("export %s row %d: %w", sheet, i+2, err)
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

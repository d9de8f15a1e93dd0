package leaderboardservice

import (
	"bytes"
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used by rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Leader     drawing.Color
	Text       drawing.Color
}

// DefaultPalette is a dark green theme with a gold bar for the leader.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("0f1f17"),
	Bar:        drawing.ColorFromHex("2e7d4f"),
	Leader:     drawing.ColorFromHex("d4a72c"),
	Text:       drawing.ColorFromHex("e8efe9"),
}

// StandingsChart renders the current standings as a PNG bar chart.
func (s *LeaderboardService) StandingsChart(ctx context.Context) ([]byte, error) {
	return withTelemetry(s, ctx, "StandingsChart", func(ctx context.Context) ([]byte, error) {
		records, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return GenerateStandingsChart(leaderboarddomain.BuildStandings(records, s.table, s.floor), s.palette)
	})
}

// GenerateStandingsChart produces a PNG bar chart of total points per player
// in standings order.
func GenerateStandingsChart(standings []leaderboarddomain.SeasonStanding, palette ChartPalette) ([]byte, error) {
	if len(standings) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, len(standings))
	maxPoints := 0.0
	for i, st := range standings {
		points := st.TotalPoints.InexactFloat64()
		color := palette.Bar
		if st.Position == 1 {
			color = palette.Leader
		}
		bars[i] = chart.Value{
			Label: st.Player,
			Value: points,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		}
		maxPoints = max(maxPoints, points)
	}
	// go-chart rejects a zero-height range, which an all-zero week would produce.
	maxPoints = max(maxPoints, 10)

	width := max(400, 80*len(bars))
	graph := chart.BarChart{
		Title: "Season Standings",
		TitleStyle: chart.Style{
			FontColor: palette.Text,
		},
		Width:    width,
		Height:   400,
		BarWidth: 50,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
		},
		YAxis: chart.YAxis{
			Name: "Points",
			Style: chart.Style{
				FontColor: palette.Text,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: maxPoints * 1.1},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws a blank bar chart with a message. go-chart
// refuses to render a chart without data, so it carries one invisible bar.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No rounds recorded yet"
	)

	graph := chart.BarChart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Hidden(),
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: []chart.Value{{
			Value: 0,
			Style: chart.Style{FillColor: palette.Background, StrokeColor: palette.Background},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (width - tb.Width()) / 2
				y := (height + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Black-And-White-Club/frolf-league/app"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/Black-And-White-Club/frolf-league/app/observability"
	"github.com/Black-And-White-Club/frolf-league/config"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func newCLI(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:   "league",
		Usage:  "weekly golf league scoring",
		Writer: stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"LEAGUE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			registerCommand(),
			submitCommand(),
			handicapCommand(),
			standingsCommand(),
			weekCommand(),
			exportCommand(),
			importCommand(),
		},
	}
}

// withApp loads configuration, opens the ledger and hands the assembled
// application to fn. The application is closed when fn returns.
func withApp(c *cli.Context, fn func(a *app.App) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	obs := observability.New(cfg.Observability)
	if c.Command.Name != "serve" {
		// Keep stdout for command output.
		o := cfg.Observability
		obs.Logger = observability.NewLogger(os.Stderr, o.LogLevel, o.LogFormat, o.ServiceName, o.Environment)
	}

	a, err := app.New(c.Context, cfg, obs)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			obs.Logger.Error("Failed to close application", "error", cerr)
		}
	}()
	return fn(a)
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func weekArg(c *cli.Context) (int, error) {
	week, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("week argument must be an integer, got %q", c.Args().First())
	}
	return week, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and event router",
		Action: func(c *cli.Context) error {
			return withApp(c, func(a *app.App) error {
				return a.Run(c.Context)
			})
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "register a player with a starting handicap",
		ArgsUsage: "<player>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "handicap", Value: "0", Usage: "starting handicap"},
			&cli.StringFlag{Name: "pin", Usage: "player PIN"},
		},
		Action: func(c *cli.Context) error {
			handicap, err := decimal.NewFromString(c.String("handicap"))
			if err != nil {
				return fmt.Errorf("invalid handicap %q: %w", c.String("handicap"), err)
			}
			return withApp(c, func(a *app.App) error {
				rec, err := a.Round.RoundService.RegisterPlayer(c.Context, c.Args().First(), handicap, c.String("pin"))
				if err != nil {
					return err
				}
				return printJSON(c, rec)
			})
		},
	}
}

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "record a weekly round",
		ArgsUsage: "<week> <player> <gross|DNF>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "pars"},
			&cli.IntFlag{Name: "birdies"},
			&cli.IntFlag{Name: "eagles"},
			&cli.StringFlag{Name: "handicap", Usage: "override the computed handicap"},
			&cli.StringFlag{Name: "pin", Usage: "player PIN"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return fmt.Errorf("expected <week> <player> <gross|DNF>, got %d arguments", c.NArg())
			}
			week, err := weekArg(c)
			if err != nil {
				return err
			}
			gross, dnf, err := rounddomain.ParseGross(c.Args().Get(2))
			if err != nil {
				return err
			}
			sub := rounddomain.Submission{
				Week:    week,
				Player:  c.Args().Get(1),
				Gross:   gross,
				DNF:     dnf,
				Pars:    c.Int("pars"),
				Birdies: c.Int("birdies"),
				Eagles:  c.Int("eagles"),
				PIN:     c.String("pin"),
			}
			if v := c.String("handicap"); v != "" {
				h, err := decimal.NewFromString(v)
				if err != nil {
					return fmt.Errorf("invalid handicap %q: %w", v, err)
				}
				sub.Handicap = &h
			}

			return withApp(c, func(a *app.App) error {
				res, err := a.Round.RoundService.SubmitRound(c.Context, sub)
				if err != nil {
					return err
				}
				return printJSON(c, res)
			})
		},
	}
}

func handicapCommand() *cli.Command {
	return &cli.Command{
		Name:      "handicap",
		Usage:     "preview the handicap a player carries into a week",
		ArgsUsage: "<week> <player>",
		Action: func(c *cli.Context) error {
			week, err := weekArg(c)
			if err != nil {
				return err
			}
			return withApp(c, func(a *app.App) error {
				h, err := a.Round.RoundService.PreviewHandicap(c.Context, c.Args().Get(1), week)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, h.StringFixed(1))
				return err
			})
		},
	}
}

func standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "print the season standings",
		Action: func(c *cli.Context) error {
			return withApp(c, func(a *app.App) error {
				standings, err := a.Leaderboard.LeaderboardService.SeasonStandings(c.Context)
				if err != nil {
					return err
				}
				return printJSON(c, standings)
			})
		},
	}
}

func weekCommand() *cli.Command {
	return &cli.Command{
		Name:      "week",
		Usage:     "print the ranked results of one week",
		ArgsUsage: "<week>",
		Action: func(c *cli.Context) error {
			week, err := weekArg(c)
			if err != nil {
				return err
			}
			return withApp(c, func(a *app.App) error {
				results, err := a.Leaderboard.LeaderboardService.WeeklyResults(c.Context, week)
				if err != nil {
					return err
				}
				return printJSON(c, results)
			})
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the standings workbook or chart to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "standings.xlsx", Usage: "output file"},
			&cli.BoolFlag{Name: "chart", Usage: "write the standings chart as PNG instead"},
		},
		Action: func(c *cli.Context) error {
			return withApp(c, func(a *app.App) error {
				svc := a.Leaderboard.LeaderboardService
				out := c.String("out")
				if c.Bool("chart") {
					png, err := svc.StandingsChart(c.Context)
					if err != nil {
						return err
					}
					return os.WriteFile(out, png, 0o644)
				}

				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				if err := svc.ExportWorkbook(c.Context, f); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "submit every row of a scorecard file for a week",
		ArgsUsage: "<week> <file>",
		Action: func(c *cli.Context) error {
			week, err := weekArg(c)
			if err != nil {
				return err
			}
			path := c.Args().Get(1)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read scorecard: %w", err)
			}
			return withApp(c, func(a *app.App) error {
				res, err := a.Round.RoundService.ImportScorecard(c.Context, week, filepath.Base(path), data)
				if err != nil {
					return err
				}
				return printJSON(c, res)
			})
		},
	}
}

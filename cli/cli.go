package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "sweepgo"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Run an external experiment program over a Cartesian product of configuration values and archive its outputs",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "run",
		Usage:  "Execute the sweep described by a config file",
		Action: app.run,
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "on-failure",
				Usage: "Override the failure policy (continue or abort)",
			},
			&cli.IntFlag{
				Name:  "max-attempts",
				Usage: "Override the per-combination attempt limit",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print commands and archive destinations without executing anything",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "plan",
		Usage:  "Validate a config file and print the combination matrix",
		Action: app.plan,
		Flags: []cli.Flag{
			configFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List recorded sweeps",
		Action: app.list,
		Flags: []cli.Flag{
			archiveRootFlag(),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Filter by sweep name",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "view",
		Usage:     "View a recorded sweep",
		ArgsUsage: "[ID|INDEX]",
		Action:    app.view,
		Flags: []cli.Flag{
			archiveRootFlag(),
		},
		Description: `View a recorded sweep.

Arguments:
  0           View last sweep (default)
  -1          View 2nd last sweep
  -2          View 3rd last sweep
  <id>        View sweep matching the ID prefix`,
	})
	return app
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the sweep config file",
		Value:   "sweep.toml",
	}
}

func archiveRootFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "archive-root",
		Usage: "Archive root to read sweep history from",
		Value: "results",
	}
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

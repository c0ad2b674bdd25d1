package cli

// This file contains the plan command: validating a config and printing the
// combination matrix without executing anything.

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/urfave/cli/v2"

	"github.com/sweepgo/sweepgo/config"
	"github.com/sweepgo/sweepgo/sweep"
)

func (a *App) plan(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	return a.printPlan(cfg)
}

func (a *App) printPlan(cfg *config.Config) error {
	dims := cfg.SweepDimensions()
	combos := sweep.Product(dims)
	command := cfg.CommandSpec()

	fmt.Printf("Sweep %q: %d combination(s)\n\n", cfg.Sweep.Name, len(combos))

	for i, combo := range combos {
		args, err := command.Render(combo)
		if err != nil {
			return err
		}

		fmt.Printf("%3d. %s\n", i+1, combo.Label())
		fmt.Printf("     %s\n", quoteCommand(command.Program, args))
		for _, spec := range cfg.OutputSpecs() {
			dest, err := sweep.Expand(spec.Dest, combo)
			if err != nil {
				return err
			}
			fmt.Printf("     %s -> %s/%s\n", spec.Source, cfg.Sweep.ArchiveRoot, dest)
		}
	}

	return nil
}

// quoteCommand renders a command line with proper shell escaping.
func quoteCommand(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellescape.Quote(program))
	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}

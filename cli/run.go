package cli

// This file contains the run command: executing a configured sweep and
// recording its outcome.

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/sweepgo/sweepgo/config"
	"github.com/sweepgo/sweepgo/model"
	"github.com/sweepgo/sweepgo/sweep"
)

func (a *App) run(ctx *cli.Context) error {
	startTime := time.Now()

	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, ctx); err != nil {
		return err
	}

	dims := cfg.SweepDimensions()
	total := sweep.Count(dims)

	if ctx.Bool("dry-run") {
		return a.printPlan(cfg)
	}

	a.logger.Info().
		Str("sweep", cfg.Sweep.Name).
		Int("combinations", total).
		Str("archive_root", cfg.Sweep.ArchiveRoot).
		Msg("Starting sweep")

	record := &model.Sweep{
		ID:        uuid.New().String(),
		Name:      cfg.Sweep.Name,
		Timestamp: startTime,
		Args:      os.Args,
	}
	for _, d := range dims {
		record.Dimensions = append(record.Dimensions, d.Name)
	}

	// Capture working directory
	if cwd, err := os.Getwd(); err == nil {
		record.WorkDir = cwd
	}

	// Capture git info (non-fatal if it fails)
	if commit, branch, err := a.getGitInfo(); err == nil {
		record.Git = &model.Git{
			Commit: commit,
			Branch: branch,
		}
	}

	executor := sweep.NewLocalExecutor(a.logger)
	archiver := sweep.NewArchiver(a.logger, cfg.Sweep.ArchiveRoot)
	runner := sweep.NewRunner(a.logger, executor, archiver, cfg.SweepPolicy())
	runner.Progress = !ctx.Bool("no-progress")

	results, abortErr := runner.Run(ctx.Context, dims, cfg.CommandSpec(), cfg.OutputSpecs())

	record.Combinations = results
	record.Duration = time.Since(startTime)
	if abortErr != nil || record.Failed() > 0 {
		record.ExitCode = 1
	}

	// Record the sweep (non-fatal if it fails)
	if err := a.recordSweep(record, cfg.Sweep.ArchiveRoot); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record sweep history")
	}

	printSummary(record)

	if abortErr != nil {
		return abortErr
	}
	if failed := record.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d combinations failed", failed, len(results))
	}
	return nil
}

// applyOverrides lets run flags override the config file's policy section.
func applyOverrides(cfg *config.Config, ctx *cli.Context) error {
	if v := ctx.String("on-failure"); v != "" {
		cfg.Policy.OnFailure = v
	}
	if v := ctx.Int("max-attempts"); v > 0 {
		cfg.Policy.MaxAttempts = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func printSummary(record *model.Sweep) {
	fmt.Printf("\n=== Sweep %s ===\n", record.Name)
	fmt.Printf("Succeeded: %d  Failed: %d  Skipped: %d  [%s]\n",
		record.Succeeded(), record.Failed(), record.Skipped(),
		record.Duration.Round(time.Millisecond))

	for _, c := range record.Combinations {
		if c.Status != model.StatusFailed {
			continue
		}
		fmt.Printf("  ✗ %s (exit=%d attempts=%d): %s\n",
			combinationLabel(record.Dimensions, c.Values), c.ExitCode, c.Attempts, c.Error)
	}
}

func combinationLabel(dimensions, values []string) string {
	label := ""
	for i, name := range dimensions {
		if i > 0 {
			label += " "
		}
		v := ""
		if i < len(values) {
			v = values[i]
		}
		label += fmt.Sprintf("%s=%s", name, v)
	}
	return label
}

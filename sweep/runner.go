package sweep

// runner.go contains the sweep engine: serial enumeration of the Cartesian
// product, one external invocation per combination, and archiving of its
// outputs. Execution is strictly serial because consecutive runs share the
// same fixed output paths; running two combinations concurrently would race
// on those paths.

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/sweepgo/sweepgo/model"
)

// FailurePolicy selects what happens to the rest of the sweep when one
// combination's process fails.
type FailurePolicy string

const (
	// FailureContinue records the failure, skips archiving for that
	// combination, and proceeds to the next one.
	FailureContinue FailurePolicy = "continue"
	// FailureAbort stops the sweep; remaining combinations are marked skipped.
	FailureAbort FailurePolicy = "abort"
)

// CommandSpec is the template for the external invocation. Args may contain
// {dimension} placeholders.
type CommandSpec struct {
	Program string
	Args    []string
}

// Render expands the arg templates for one combination.
func (s CommandSpec) Render(c Combination) ([]string, error) {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		expanded, err := Expand(a, c)
		if err != nil {
			return nil, err
		}
		args[i] = expanded
	}
	return args, nil
}

// Policy controls failure handling, retries, and pacing.
type Policy struct {
	OnFailure   FailurePolicy
	MaxAttempts int           // >= 1; attempts beyond the first back off exponentially
	BackoffBase time.Duration // first retry delay, doubled per subsequent attempt
	PerMinute   int           // max invocations per minute; 0 = unlimited
}

// Runner drives one sweep.
type Runner struct {
	logger   zerolog.Logger
	executor Executor
	archiver *Archiver
	policy   Policy

	// Progress enables a progress bar over combinations.
	Progress bool
}

// NewRunner returns a Runner with the given executor and archiver.
func NewRunner(logger zerolog.Logger, executor Executor, archiver *Archiver, policy Policy) *Runner {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.BackoffBase <= 0 {
		policy.BackoffBase = time.Second
	}
	if policy.OnFailure == "" {
		policy.OnFailure = FailureContinue
	}
	return &Runner{
		logger:   logger,
		executor: executor,
		archiver: archiver,
		policy:   policy,
	}
}

// Run executes the sweep serially and returns one result per combination,
// in execution order. An empty product is a no-op. The returned error is
// non-nil only when the sweep aborted early; per-combination failures under
// the continue policy are reported in the results.
func (r *Runner) Run(ctx context.Context, dims []Dimension, command CommandSpec, outputs []OutputSpec) ([]model.CombinationResult, error) {
	combos := Product(dims)
	if len(combos) == 0 {
		r.logger.Info().Msg("Empty sweep, nothing to run")
		return nil, nil
	}

	r.logger.Info().
		Int("combinations", len(combos)).
		Int("dimensions", len(dims)).
		Msg("Starting sweep")

	var limiter *rate.Limiter
	if r.policy.PerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(r.policy.PerMinute)/60.0), 1)
	}

	var bar *progressbar.ProgressBar
	if r.Progress {
		bar = progressbar.Default(int64(len(combos)), "Running sweep")
	}

	results := make([]model.CombinationResult, 0, len(combos))
	var abortErr error

	for i, combo := range combos {
		if abortErr != nil {
			results = append(results, model.CombinationResult{
				Values: combo.Values(),
				Status: model.StatusSkipped,
			})
			continue
		}

		res, fatal := r.runOne(ctx, combo, command, outputs, limiter)
		results = append(results, res)
		if bar != nil {
			_ = bar.Add(1)
		}

		if fatal != nil {
			// Archiving failures (missing artifact, collision) always abort:
			// continuing would corrupt the experiment matrix.
			abortErr = fmt.Errorf("sweep aborted at combination %d (%s): %w",
				i+1, combo.Label(), fatal)
			continue
		}
		if res.Status == model.StatusFailed && r.policy.OnFailure == FailureAbort {
			abortErr = fmt.Errorf("sweep aborted at combination %d (%s): %s",
				i+1, combo.Label(), res.Error)
		}
	}

	return results, abortErr
}

func (r *Runner) runOne(ctx context.Context, combo Combination, command CommandSpec, outputs []OutputSpec, limiter *rate.Limiter) (model.CombinationResult, error) {
	start := time.Now()
	res := model.CombinationResult{Values: combo.Values()}

	args, err := command.Render(combo)
	if err != nil {
		res.Status = model.StatusFailed
		res.Error = err.Error()
		return res, err
	}

	r.logger.Info().
		Str("combination", combo.Label()).
		Msg("Running combination")

	exitCode, attempts, err := r.invoke(ctx, command.Program, args, limiter)
	res.ExitCode = exitCode
	res.Attempts = attempts
	res.Duration = time.Since(start)

	if err != nil {
		res.Status = model.StatusFailed
		res.Error = err.Error()
		return res, err
	}
	if exitCode != 0 {
		perr := &ProcessError{Combination: combo, ExitCode: exitCode, Attempts: attempts}
		r.logger.Error().
			Str("combination", combo.Label()).
			Int("exit_code", exitCode).
			Int("attempts", attempts).
			Msg("External process failed, skipping archive step")
		res.Status = model.StatusFailed
		res.Error = perr.Error()
		return res, nil
	}

	for _, spec := range outputs {
		dest, size, err := r.archiver.Archive(spec, combo)
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("combination", combo.Label()).
				Msg("Failed to archive artifact")
			res.Status = model.StatusFailed
			res.Error = err.Error()
			res.Duration = time.Since(start)
			return res, err
		}
		res.Artifacts = append(res.Artifacts, model.Artifact{
			Source: spec.Source,
			Dest:   dest,
			Size:   size,
		})
	}

	res.Status = model.StatusSucceeded
	res.Duration = time.Since(start)
	return res, nil
}

// invoke runs the external process, retrying failed attempts with
// exponential backoff up to the policy's attempt limit.
func (r *Runner) invoke(ctx context.Context, program string, args []string, limiter *rate.Limiter) (exitCode, attempts int, err error) {
	backoff := r.policy.BackoffBase

	for attempts = 1; ; attempts++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return -1, attempts, err
			}
		}

		exitCode, err = r.executor.Execute(ctx, program, args)
		if err != nil {
			return -1, attempts, fmt.Errorf("failed to execute %s: %w", program, err)
		}
		if exitCode == 0 || attempts >= r.policy.MaxAttempts {
			return exitCode, attempts, nil
		}

		r.logger.Warn().
			Int("exit_code", exitCode).
			Int("attempt", attempts).
			Dur("backoff", backoff).
			Msg("Process failed, retrying after backoff")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return exitCode, attempts, ctx.Err()
		}
		backoff *= 2
	}
}

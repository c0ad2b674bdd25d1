package sweep

// exec.go contains external process execution. The runner only sees the
// Executor interface so tests can substitute a fake.

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// Executor runs one external invocation and returns its exit code.
// A nil error with a non-zero code means the process ran but failed;
// a non-nil error means it could not be started or was interrupted.
type Executor interface {
	Execute(ctx context.Context, program string, args []string) (exitCode int, err error)
}

// LocalExecutor runs the program on the local machine, streaming its
// stdout/stderr to the console.
type LocalExecutor struct {
	logger zerolog.Logger
	// Stdout and Stderr default to the process streams; tests override them.
	Stdout io.Writer
	Stderr io.Writer
}

// NewLocalExecutor returns an Executor backed by os/exec.
func NewLocalExecutor(logger zerolog.Logger) *LocalExecutor {
	return &LocalExecutor{
		logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (e *LocalExecutor) Execute(ctx context.Context, program string, args []string) (int, error) {
	e.logger.Debug().
		Str("program", program).
		Strs("args", args).
		Msg("Starting external process")

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}

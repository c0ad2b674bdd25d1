package sweep

import "fmt"

// ProcessError reports a non-zero exit from the external program for one
// combination, after all attempts were exhausted.
type ProcessError struct {
	Combination Combination
	ExitCode    int
	Attempts    int
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process failed for %s: exit code %d after %d attempt(s)",
		e.Combination.Label(), e.ExitCode, e.Attempts)
}

// MissingArtifactError reports that the external program exited zero but a
// declared output file was not found at its source path.
type MissingArtifactError struct {
	Combination Combination
	Source      string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing artifact for %s: %s not found after process completed",
		e.Combination.Label(), e.Source)
}

// CollisionError reports that an archive destination already exists.
// Archiving never overwrites prior results.
type CollisionError struct {
	Destination string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("artifact collision: %s already exists", e.Destination)
}

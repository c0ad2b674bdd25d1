package model

import "time"

// CombinationStatus is the terminal state of a single combination.
type CombinationStatus string

const (
	// StatusSucceeded means the process exited zero and all artifacts were archived.
	StatusSucceeded CombinationStatus = "succeeded"
	// StatusFailed means the process failed on every attempt, or archiving failed.
	StatusFailed CombinationStatus = "failed"
	// StatusSkipped means the combination was never started because an earlier
	// failure aborted the sweep.
	StatusSkipped CombinationStatus = "skipped"
)

// Sweep records a single sweep execution and is persisted as sweep.json
// in the history directory.
type Sweep struct {
	// Unique ID for this sweep (UUID)
	ID string `json:"id"`
	// Sweep name from the config file
	Name string `json:"name"`
	// Timestamp when the sweep started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Working directory where the sweep was run
	WorkDir string `json:"workdir,omitempty"`
	// Exit code of the sweep as a whole (0 only if every combination succeeded)
	ExitCode int `json:"exit_code"`
	// Duration of the full sweep
	Duration time.Duration `json:"duration"`
	// Git information, if available
	Git *Git `json:"git,omitempty"`
	// Dimension names in declared order (first varies slowest)
	Dimensions []string `json:"dimensions"`
	// One entry per combination, in execution order
	Combinations []CombinationResult `json:"combinations"`
}

// Git contains git repository information captured at sweep start.
type Git struct {
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// CombinationResult records the outcome of one combination.
type CombinationResult struct {
	// Values assigned per dimension, in dimension order
	Values []string `json:"values"`
	// Terminal status of the combination
	Status CombinationStatus `json:"status"`
	// Exit code of the final attempt (meaningless when skipped)
	ExitCode int `json:"exit_code"`
	// Number of attempts made (1 unless retries were configured)
	Attempts int `json:"attempts"`
	// Duration across all attempts
	Duration time.Duration `json:"duration"`
	// Error string for failed combinations
	Error string `json:"error,omitempty"`
	// Archived artifacts produced by this combination
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// Artifact represents one output file moved into the archive.
type Artifact struct {
	// Source path the external program wrote to
	Source string `json:"source"`
	// Destination path relative to the archive root
	Dest string `json:"dest"`
	// File size in bytes
	Size uint64 `json:"size"`
}

// Succeeded returns the number of combinations with StatusSucceeded.
func (s *Sweep) Succeeded() int { return s.countStatus(StatusSucceeded) }

// Failed returns the number of combinations with StatusFailed.
func (s *Sweep) Failed() int { return s.countStatus(StatusFailed) }

// Skipped returns the number of combinations with StatusSkipped.
func (s *Sweep) Skipped() int { return s.countStatus(StatusSkipped) }

func (s *Sweep) countStatus(status CombinationStatus) int {
	n := 0
	for _, c := range s.Combinations {
		if c.Status == status {
			n++
		}
	}
	return n
}

package config

// Sweep configuration: dimensions, the external command template, expected
// output files, and the failure policy. Parsed from TOML.

import (
	"fmt"
	"time"

	"github.com/sweepgo/sweepgo/sweep"
)

// Config is the top-level sweep configuration.
type Config struct {
	Sweep      SweepConfig       `toml:"sweep"`
	Dimensions []DimensionConfig `toml:"dimension"`
	Command    CommandConfig     `toml:"command"`
	Outputs    []OutputConfig    `toml:"output"`
	Policy     PolicyConfig      `toml:"policy"`
}

// SweepConfig names the sweep and locates the archive.
type SweepConfig struct {
	Name        string `toml:"name"`
	ArchiveRoot string `toml:"archive_root"`
}

// DimensionConfig declares one sweep axis. Declaration order is execution
// order: the first dimension varies slowest.
type DimensionConfig struct {
	Name   string   `toml:"name"`
	Values []string `toml:"values"`
}

// CommandConfig is the external invocation template. Args may contain
// {dimension} placeholders.
type CommandConfig struct {
	Program string   `toml:"program"`
	Args    []string `toml:"args"`
}

// OutputConfig declares one expected output artifact: the fixed source path
// the external program writes, and the destination pattern relative to the
// archive root.
type OutputConfig struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
}

// PolicyConfig controls failure handling, retries, and pacing.
type PolicyConfig struct {
	OnFailure    string `toml:"on_failure"`
	MaxAttempts  int    `toml:"max_attempts"`
	BackoffBase  string `toml:"backoff_base"`
	MaxPerMinute int    `toml:"max_per_minute"`
}

// SweepDimensions converts the declared axes to sweep dimensions.
func (c *Config) SweepDimensions() []sweep.Dimension {
	dims := make([]sweep.Dimension, len(c.Dimensions))
	for i, d := range c.Dimensions {
		dims[i] = sweep.Dimension{Name: d.Name, Values: d.Values}
	}
	return dims
}

// CommandSpec converts the command template.
func (c *Config) CommandSpec() sweep.CommandSpec {
	return sweep.CommandSpec{Program: c.Command.Program, Args: c.Command.Args}
}

// OutputSpecs converts the declared outputs.
func (c *Config) OutputSpecs() []sweep.OutputSpec {
	specs := make([]sweep.OutputSpec, len(c.Outputs))
	for i, o := range c.Outputs {
		specs[i] = sweep.OutputSpec{Source: o.Source, Dest: o.Dest}
	}
	return specs
}

// SweepPolicy converts the policy section. BackoffBase has already been
// validated as a duration.
func (c *Config) SweepPolicy() sweep.Policy {
	backoff, _ := time.ParseDuration(c.Policy.BackoffBase)
	return sweep.Policy{
		OnFailure:   sweep.FailurePolicy(c.Policy.OnFailure),
		MaxAttempts: c.Policy.MaxAttempts,
		BackoffBase: backoff,
		PerMinute:   c.Policy.MaxPerMinute,
	}
}

// Validate checks the configuration before any process is spawned.
func (c *Config) Validate() error {
	if c.Sweep.Name == "" {
		return fmt.Errorf("sweep.name is required")
	}
	if c.Sweep.ArchiveRoot == "" {
		return fmt.Errorf("sweep.archive_root is required")
	}

	if len(c.Dimensions) == 0 {
		return fmt.Errorf("at least one dimension is required")
	}
	seen := map[string]bool{}
	for i, d := range c.Dimensions {
		if d.Name == "" {
			return fmt.Errorf("dimension %d: name is required", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("dimension %q declared twice", d.Name)
		}
		seen[d.Name] = true
	}

	if c.Command.Program == "" {
		return fmt.Errorf("command.program is required")
	}
	for _, arg := range c.Command.Args {
		if err := c.checkPlaceholders(arg); err != nil {
			return fmt.Errorf("command arg %q: %w", arg, err)
		}
	}

	if len(c.Outputs) == 0 {
		return fmt.Errorf("at least one output is required")
	}
	destSeen := map[string]bool{}
	for i, o := range c.Outputs {
		if o.Source == "" {
			return fmt.Errorf("output %d: source is required", i)
		}
		if o.Dest == "" {
			return fmt.Errorf("output %d: dest is required", i)
		}
		if destSeen[o.Dest] {
			return fmt.Errorf("output dest %q declared twice", o.Dest)
		}
		destSeen[o.Dest] = true
		if err := c.checkPlaceholders(o.Dest); err != nil {
			return fmt.Errorf("output dest %q: %w", o.Dest, err)
		}
		// Every dimension must appear in every dest pattern, otherwise two
		// combinations would archive to the same path.
		refs := map[string]bool{}
		for _, name := range sweep.Placeholders(o.Dest) {
			refs[name] = true
		}
		for _, d := range c.Dimensions {
			if !refs[d.Name] {
				return fmt.Errorf("output dest %q does not reference dimension %q: distinct combinations would collide", o.Dest, d.Name)
			}
		}
	}

	switch c.Policy.OnFailure {
	case string(sweep.FailureContinue), string(sweep.FailureAbort):
	default:
		return fmt.Errorf("policy.on_failure must be %q or %q, got %q",
			sweep.FailureContinue, sweep.FailureAbort, c.Policy.OnFailure)
	}
	if c.Policy.MaxAttempts < 1 {
		return fmt.Errorf("policy.max_attempts must be >= 1, got %d", c.Policy.MaxAttempts)
	}
	if _, err := time.ParseDuration(c.Policy.BackoffBase); err != nil {
		return fmt.Errorf("policy.backoff_base: %w", err)
	}
	if c.Policy.MaxPerMinute < 0 {
		return fmt.Errorf("policy.max_per_minute must be >= 0, got %d", c.Policy.MaxPerMinute)
	}

	return nil
}

func (c *Config) checkPlaceholders(pattern string) error {
	declared := map[string]bool{}
	for _, d := range c.Dimensions {
		declared[d.Name] = true
	}
	for _, name := range sweep.Placeholders(pattern) {
		if !declared[name] {
			return fmt.Errorf("unknown placeholder %q", name)
		}
	}
	return nil
}

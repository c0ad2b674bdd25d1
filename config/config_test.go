package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[sweep]
name         = "gap-edp"
archive_root = "results"

[[dimension]]
name   = "dataset"
values = ["flickr", "lastfm"]

[[dimension]]
name   = "epsilon"
values = ["1.0", "2.0", "3.0", "4.0", "5.0", "6.0", "7.0", "8.0"]

[command]
program = "python"
args    = ["train.py", "gap-edp", "--dataset", "{dataset}", "-e", "{epsilon}", "--hops", "4"]

[[output]]
source = "checkpoints/model.pt"
dest   = "{dataset}_eps_{epsilon}_edp.pt"

[[output]]
source = "checkpoints/encoder/model.pt"
dest   = "encoder/{dataset}_eps_{epsilon}_edp.pt"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "gap-edp", cfg.Sweep.Name)
	assert.Equal(t, "results", cfg.Sweep.ArchiveRoot)
	require.Len(t, cfg.Dimensions, 2)
	assert.Equal(t, "dataset", cfg.Dimensions[0].Name)
	assert.Len(t, cfg.Dimensions[1].Values, 8)
	assert.Equal(t, "python", cfg.Command.Program)
	assert.Len(t, cfg.Outputs, 2)

	// Defaults applied
	assert.Equal(t, "continue", cfg.Policy.OnFailure)
	assert.Equal(t, 1, cfg.Policy.MaxAttempts)
	assert.Equal(t, "1s", cfg.Policy.BackoffBase)

	policy := cfg.SweepPolicy()
	assert.Equal(t, 1, policy.MaxAttempts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[[sweep\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s string) string
		wantErr string
	}{
		{
			name:    "no dimensions",
			mutate:  func(s string) string { return strings.ReplaceAll(s, "[[dimension]]", "[[ignored]]") },
			wantErr: "at least one dimension",
		},
		{
			name:    "duplicate dimension",
			mutate:  func(s string) string { return strings.ReplaceAll(s, `name   = "epsilon"`, `name   = "dataset"`) },
			wantErr: `dimension "dataset" declared twice`,
		},
		{
			name:    "missing program",
			mutate:  func(s string) string { return strings.ReplaceAll(s, `program = "python"`, `program = ""`) },
			wantErr: "command.program is required",
		},
		{
			name: "unknown placeholder in args",
			mutate: func(s string) string {
				return strings.ReplaceAll(s, "{epsilon}", "{eps}")
			},
			wantErr: `unknown placeholder "eps"`,
		},
		{
			name: "dest missing a dimension",
			mutate: func(s string) string {
				return strings.ReplaceAll(s,
					`dest   = "{dataset}_eps_{epsilon}_edp.pt"`,
					`dest   = "{dataset}_edp.pt"`)
			},
			wantErr: `does not reference dimension "epsilon"`,
		},
		{
			name: "duplicate dest",
			mutate: func(s string) string {
				return strings.ReplaceAll(s,
					`dest   = "encoder/{dataset}_eps_{epsilon}_edp.pt"`,
					`dest   = "{dataset}_eps_{epsilon}_edp.pt"`)
			},
			wantErr: "declared twice",
		},
		{
			name: "bad failure policy",
			mutate: func(s string) string {
				return s + "\n[policy]\non_failure = \"retry\"\n"
			},
			wantErr: "policy.on_failure",
		},
		{
			name: "bad backoff duration",
			mutate: func(s string) string {
				return s + "\n[policy]\nbackoff_base = \"soon\"\n"
			},
			wantErr: "policy.backoff_base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mutate(validConfig)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEmptyDimensionValuesAllowed(t *testing.T) {
	cfg, err := Load(writeConfig(t, strings.ReplaceAll(validConfig,
		`values = ["flickr", "lastfm"]`, `values = []`)))
	require.NoError(t, err)
	assert.Empty(t, cfg.Dimensions[0].Values)
}

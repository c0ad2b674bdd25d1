package history

// This file contains shared history utilities for loading and parsing
// recorded sweeps.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sweepgo/sweepgo/model"
)

// SweepFilename is the per-sweep record file inside a history directory.
const SweepFilename = "sweep.json"

type Entry struct {
	Sweep    model.Sweep
	FullPath string
}

// Root returns the history directory under the archive root.
func Root(archiveRoot string) string {
	return filepath.Join(archiveRoot, ".sweepgo", "history")
}

// LoadEntries loads all recorded sweeps under the archive root.
func LoadEntries(logger zerolog.Logger, archiveRoot string) ([]Entry, error) {
	root := Root(archiveRoot)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			sweepPath := filepath.Join(path, SweepFilename)
			if _, err := os.Stat(sweepPath); err == nil {
				sw, err := parseSweepJSON(sweepPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", sweepPath).Msg("Failed to parse sweep.json")
					return nil
				}

				entries = append(entries, Entry{
					Sweep:    sw,
					FullPath: path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk history directory: %w", err)
	}

	return entries, nil
}

// parseSweepJSON parses a sweep.json file.
func parseSweepJSON(sweepPath string) (model.Sweep, error) {
	data, err := os.ReadFile(sweepPath)
	if err != nil {
		return model.Sweep{}, err
	}

	var sw model.Sweep
	if err := json.Unmarshal(data, &sw); err != nil {
		return model.Sweep{}, err
	}

	return sw, nil
}

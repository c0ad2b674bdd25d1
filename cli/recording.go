package cli

// This file contains sweep recording functionality for saving sweep
// metadata to the history directory.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sweepgo/sweepgo/history"
	"github.com/sweepgo/sweepgo/model"
)

// recordSweep writes the sweep record to
// <archiveRoot>/.sweepgo/history/<timestamp>-<id>/sweep.json.
func (a *App) recordSweep(record *model.Sweep, archiveRoot string) error {
	timestamp := record.Timestamp.Format("20060102-150405")
	shortID := record.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	runName := fmt.Sprintf("%s-%s", timestamp, shortID)
	runDir := filepath.Join(history.Root(archiveRoot), runName)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	metadataPath := filepath.Join(runDir, history.SweepFilename)
	metadataJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sweep record: %w", err)
	}

	if err := os.WriteFile(metadataPath, metadataJSON, 0644); err != nil {
		return fmt.Errorf("failed to write sweep record: %w", err)
	}

	a.logger.Debug().Str("dir", runDir).Str("id", record.ID).Msg("Recorded sweep")
	return nil
}

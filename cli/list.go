package cli

// This file contains the list command for displaying recorded sweeps.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sweepgo/sweepgo/history"
)

func (a *App) list(ctx *cli.Context) error {
	archiveRoot := ctx.String("archive-root")
	filterName := ctx.String("name")
	limit := ctx.Int("limit")

	// Load all history entries
	entries, err := history.LoadEntries(a.logger, archiveRoot)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	// Apply name filter if specified
	var filtered []history.Entry
	for _, entry := range entries {
		if filterName == "" || strings.Contains(entry.Sweep.Name, filterName) {
			filtered = append(filtered, entry)
		}
	}

	if len(filtered) == 0 {
		if filterName != "" {
			fmt.Printf("No sweeps found matching name: %s\n", filterName)
		} else {
			fmt.Println("No sweeps found")
			fmt.Printf("Sweeps are saved to %s/<timestamp>-<id>/\n", history.Root(archiveRoot))
		}
		return nil
	}

	// Sort by timestamp (newest first)
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Sweep.Timestamp.After(filtered[j].Sweep.Timestamp)
	})

	// Apply limit
	display := filtered
	if limit > 0 && limit < len(display) {
		display = display[:limit]
	}

	fmt.Printf("\n=== Sweeps (%d total) ===\n\n", len(filtered))

	for _, entry := range display {
		sw := entry.Sweep
		timestamp := sw.Timestamp.Format("2006-01-02 15:04:05")
		duration := sw.Duration.Round(time.Millisecond)

		// Determine status indicator
		status := "✓"
		if sw.ExitCode != 0 {
			status = "✗"
		}

		shortID := sw.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		fmt.Printf("%s  %s  [%s]  %s  id=%s\n", status, timestamp, duration, sw.Name, shortID)
		fmt.Printf("   Combinations: %d (succeeded=%d failed=%d skipped=%d)\n",
			len(sw.Combinations), sw.Succeeded(), sw.Failed(), sw.Skipped())
		if sw.Git != nil && sw.Git.Commit != "" {
			shortCommit := sw.Git.Commit
			if len(shortCommit) > 8 {
				shortCommit = shortCommit[:8]
			}
			fmt.Printf("   Commit: %s", shortCommit)
			if sw.Git.Branch != "" {
				fmt.Printf(" (%s)", sw.Git.Branch)
			}
			fmt.Println()
		}
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	fmt.Println("\nView a sweep: sweepgo view <ID>")

	return nil
}

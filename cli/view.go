package cli

// This file contains the view command for displaying a recorded sweep.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sweepgo/sweepgo/history"
	"github.com/sweepgo/sweepgo/model"
)

// resolveEntry picks one entry from the list by argument: "0" is the latest,
// "-1" the 2nd latest, anything else is matched as an ID prefix. Entries must
// already be sorted newest first.
func resolveEntry(entries []history.Entry, arg string) (history.Entry, error) {
	if arg == "" {
		arg = "0"
	}

	if idx, err := strconv.ParseInt(arg, 10, 64); err == nil {
		// 0 = latest, -1 = 2nd latest, and so on
		pos := int(-idx)
		if idx > 0 {
			pos = int(idx)
		}
		if pos >= len(entries) {
			return history.Entry{}, fmt.Errorf("index %s out of range: only %d sweep(s) recorded", arg, len(entries))
		}
		return entries[pos], nil
	}

	var matches []history.Entry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Sweep.ID, arg) {
			matches = append(matches, entry)
		}
	}
	switch len(matches) {
	case 0:
		return history.Entry{}, fmt.Errorf("no sweep found with ID prefix %q", arg)
	case 1:
		return matches[0], nil
	default:
		return history.Entry{}, fmt.Errorf("ID prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func (a *App) view(ctx *cli.Context) error {
	archiveRoot := ctx.String("archive-root")

	entries, err := history.LoadEntries(a.logger, archiveRoot)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no sweeps found")
	}

	// Sort by timestamp (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Sweep.Timestamp.After(entries[j].Sweep.Timestamp)
	})

	entry, err := resolveEntry(entries, ctx.Args().First())
	if err != nil {
		return err
	}

	sw := entry.Sweep
	fmt.Printf("Sweep %s  id=%s\n", sw.Name, sw.ID)
	fmt.Printf("Started:  %s\n", sw.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %s\n", sw.Duration.Round(time.Millisecond))
	if sw.Git != nil && sw.Git.Commit != "" {
		fmt.Printf("Commit:   %s", sw.Git.Commit)
		if sw.Git.Branch != "" {
			fmt.Printf(" (%s)", sw.Git.Branch)
		}
		fmt.Println()
	}
	fmt.Printf("Result:   succeeded=%d failed=%d skipped=%d\n\n",
		sw.Succeeded(), sw.Failed(), sw.Skipped())

	for _, c := range sw.Combinations {
		status := "✓"
		switch c.Status {
		case model.StatusFailed:
			status = "✗"
		case model.StatusSkipped:
			status = "-"
		}
		fmt.Printf("%s  %s  exit=%d attempts=%d [%s]\n",
			status, combinationLabel(sw.Dimensions, c.Values),
			c.ExitCode, c.Attempts, c.Duration.Round(time.Millisecond))
		if c.Error != "" {
			fmt.Printf("   Error: %s\n", c.Error)
		}
		for _, artifact := range c.Artifacts {
			fmt.Printf("   %s (%.1f KB)\n", artifact.Dest, float64(artifact.Size)/1024)
		}
	}

	fmt.Printf("\n%s\n", entry.FullPath)
	return nil
}

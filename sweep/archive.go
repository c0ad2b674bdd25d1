package sweep

// archive.go contains artifact relocation. The external program writes its
// outputs to fixed paths shared across runs, so each run's artifacts must be
// moved into the archive before the next run overwrites them.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// OutputSpec declares one expected output file: the fixed path the external
// program writes it to, and the destination pattern (relative to the archive
// root) parameterized by dimension placeholders.
type OutputSpec struct {
	Source string
	Dest   string
}

// Archiver moves declared output files into the archive root under
// combination-derived names.
type Archiver struct {
	logger zerolog.Logger
	root   string
}

// NewArchiver returns an Archiver rooted at root.
func NewArchiver(logger zerolog.Logger, root string) *Archiver {
	return &Archiver{logger: logger, root: root}
}

// Archive moves the file at spec.Source to the expanded destination.
// The destination directory is created as needed. An existing destination
// is a CollisionError: prior results are never overwritten. The source file
// must not remain afterward.
func (ar *Archiver) Archive(spec OutputSpec, c Combination) (dest string, size uint64, err error) {
	relDest, err := Expand(spec.Dest, c)
	if err != nil {
		return "", 0, err
	}
	dest = filepath.Join(ar.root, relDest)

	info, err := os.Stat(spec.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, &MissingArtifactError{Combination: c, Source: spec.Source}
		}
		return "", 0, fmt.Errorf("failed to stat artifact %s: %w", spec.Source, err)
	}
	size = uint64(info.Size())

	if _, err := os.Stat(dest); err == nil {
		return "", 0, &CollisionError{Destination: dest}
	} else if !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("failed to stat destination %s: %w", dest, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := moveFile(spec.Source, dest); err != nil {
		return "", 0, fmt.Errorf("failed to archive %s: %w", spec.Source, err)
	}

	ar.logger.Debug().
		Str("source", spec.Source).
		Str("dest", dest).
		Uint64("size", size).
		Msg("Archived artifact")

	return dest, size, nil
}

// moveFile renames src to dst, falling back to copy+remove when rename
// fails (e.g. across filesystems).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	// Copy file permissions
	sourceInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, sourceInfo.Mode())
}

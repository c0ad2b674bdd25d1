package sweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveMovesFile(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile("model.pt", []byte("checkpoint"), 0644))

	ar := NewArchiver(zerolog.Nop(), "results")
	combo := testCombination(t)

	dest, size, err := ar.Archive(OutputSpec{
		Source: "model.pt",
		Dest:   "{dataset}_eps_{epsilon}_edp.pt",
	}, combo)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("results", "flickr_eps_3.0_edp.pt"), dest)
	assert.Equal(t, uint64(len("checkpoint")), size)

	// Destination directory was created; source is gone.
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "checkpoint", string(data))
	assert.NoFileExists(t, "model.pt")
}

func TestArchiveCreatesNestedDirs(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile("model.pt", []byte("x"), 0644))

	ar := NewArchiver(zerolog.Nop(), "results")
	dest, _, err := ar.Archive(OutputSpec{
		Source: "model.pt",
		Dest:   "encoder/{dataset}_eps_{epsilon}_edp.pt",
	}, testCombination(t))
	require.NoError(t, err)
	assert.FileExists(t, dest)
}

func TestArchiveMissingSource(t *testing.T) {
	chdir(t, t.TempDir())

	ar := NewArchiver(zerolog.Nop(), "results")
	_, _, err := ar.Archive(OutputSpec{
		Source: "nope.pt",
		Dest:   "{dataset}_eps_{epsilon}_edp.pt",
	}, testCombination(t))

	var missing *MissingArtifactError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "nope.pt", missing.Source)
}

func TestArchiveCollision(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile("model.pt", []byte("new"), 0644))
	require.NoError(t, os.MkdirAll("results", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("results", "flickr_eps_3.0_edp.pt"), []byte("old"), 0644))

	ar := NewArchiver(zerolog.Nop(), "results")
	_, _, err := ar.Archive(OutputSpec{
		Source: "model.pt",
		Dest:   "{dataset}_eps_{epsilon}_edp.pt",
	}, testCombination(t))

	var collision *CollisionError
	require.ErrorAs(t, err, &collision)

	// Neither file was touched.
	data, readErr := os.ReadFile(filepath.Join("results", "flickr_eps_3.0_edp.pt"))
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(data))
	assert.FileExists(t, "model.pt")
}

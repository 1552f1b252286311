package geolife

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLabeledIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labeled_ids.txt")
	err := os.WriteFile(path, []byte("112\n010\n020\n"), 0o644)
	require.NoError(t, err)

	ids, err := ReadLabeledIDs(path)
	require.NoError(t, err, "read index")
	require.Equal(t, []string{"010", "020", "112"}, ids, "IDs are returned sorted")

	require.True(t, IsLabeled(ids, "020"))
	require.False(t, IsLabeled(ids, "011"))
}

func TestReadLabeledIDsMissingFile(t *testing.T) {
	_, err := ReadLabeledIDs(filepath.Join(t.TempDir(), "labeled_ids.txt"))
	require.Error(t, err, "missing index is a configuration error")
}

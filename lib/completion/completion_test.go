package completion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "europe", "IRL.geojson")
	tracker := Filesystem{}

	require.False(t, tracker.HasCompleted(path))

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	require.True(t, tracker.HasCompleted(path))
}

func TestMemory(t *testing.T) {
	tracker := NewMemory("a.jpg")
	require.True(t, tracker.HasCompleted("a.jpg"))
	require.False(t, tracker.HasCompleted("b.jpg"))

	tracker.MarkCompleted("b.jpg")
	require.True(t, tracker.HasCompleted("b.jpg"))

	var zero Memory
	zero.MarkCompleted("c.jpg")
	require.True(t, zero.HasCompleted("c.jpg"))
}

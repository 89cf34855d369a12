package osutil

import (
	"os"
	"path/filepath"
	"testing"
	"worldbookmap/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "europe", "9780141182803.jpg")

	require.NoError(t, WriteFile(path, []byte("cover"), 0644))
	require.Equal(t, "cover", testutil.ReadFile(t, path))
	testutil.RequireMissing(t, path+".part")

	require.NoError(t, WriteFile(path, []byte("replaced"), 0644))
	require.Equal(t, "replaced", testutil.ReadFile(t, path))
}

func TestWriteFileReplacesStalePart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "IRL.geojson")
	testutil.WriteFile(t, path+".part", `{"type":"Feat`)

	require.NoError(t, WriteFile(path, []byte(`{}`), 0644))
	require.Equal(t, `{}`, testutil.ReadFile(t, path))
	testutil.RequireMissing(t, path+".part")
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	// a directory cannot be replaced by a file
	path := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0755))

	require.Error(t, WriteFile(path, []byte("cover"), 0644))
	testutil.RequireMissing(t, path+".part")
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

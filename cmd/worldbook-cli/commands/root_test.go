package commands

import (
	"context"
	"path/filepath"
	"testing"
	"worldbookmap/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestCommandFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	gadmDir := filepath.Join(dir, "gadm")
	output := filepath.Join(dir, "gadm_world.geojson")
	configPath := filepath.Join(dir, "worldbook.json5")

	testutil.WriteFile(t, filepath.Join(gadmDir, "europe", "IRL.geojson"), `{"type": "Polygon"}`)
	testutil.WriteFile(t, configPath, `{
		gadm_dir: "`+filepath.ToSlash(gadmDir)+`",
		merged_output: "`+filepath.ToSlash(output)+`",
	}`)

	rootCmd.SetArgs([]string{"merge", "--config", configPath})
	err := ExecuteContext(context.Background())
	require.ErrorContains(t, err, "merge geometries")
	require.ErrorContains(t, err, "IRL.geojson")
	testutil.RequireMissing(t, output)
}

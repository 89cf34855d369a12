package merge

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"
	"worldbookmap/lib/geojson"
	"worldbookmap/lib/telemetry"
	"worldbookmap/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func feature(name string) string {
	return `{"type":"Feature","properties":{"NAME":"` + name + `"},"geometry":{"type":"Point","coordinates":[1,2]}}`
}

func collection(names ...string) string {
	features := make([]json.RawMessage, len(names))
	for i, name := range names {
		features[i] = json.RawMessage(feature(name))
	}
	out, _ := json.Marshal(geojson.FeatureCollection{Features: features})
	return string(out)
}

func names(t testing.TB, fc geojson.FeatureCollection) []string {
	props, err := fc.Properties()
	require.NoError(t, err)
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p["NAME"].(string)
	}
	sort.Strings(out)
	return out
}

func TestMergeFeatureAndCollection(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "europe", "IRL.geojson"), feature("Ireland"))
	testutil.WriteFile(t, filepath.Join(dir, "america", "USA.geojson"), collection("Texas", "Ohio", "Maine"))
	testutil.WriteFile(t, filepath.Join(dir, "america", "notes.json"), `not geojson`)

	fc, err := Merge(dir)
	require.NoError(t, err)
	require.Equal(t, 4, fc.Len())
	require.Equal(t, []string{"Ireland", "Maine", "Ohio", "Texas"}, names(t, fc))
}

func TestMergeIsOrderIndependent(t *testing.T) {
	first := t.TempDir()
	testutil.WriteFile(t, filepath.Join(first, "a", "A.geojson"), collection("x", "y"))
	testutil.WriteFile(t, filepath.Join(first, "b", "B.geojson"), feature("z"))

	second := t.TempDir()
	testutil.WriteFile(t, filepath.Join(second, "a", "A.geojson"), feature("z"))
	testutil.WriteFile(t, filepath.Join(second, "b", "B.geojson"), collection("x", "y"))

	fc1, err := Merge(first)
	require.NoError(t, err)
	fc2, err := Merge(second)
	require.NoError(t, err)

	if diff := cmp.Diff(names(t, fc1), names(t, fc2)); diff != "" {
		t.Fatal(diff)
	}
}

func TestMergeFailsFast(t *testing.T) {
	testCases := []string{
		`{"type": "Feature"`,
		`{"features": []}`,
		`{"type": "GeometryCollection", "geometries": []}`,
	}

	for _, contents := range testCases {
		dir := t.TempDir()
		testutil.WriteFile(t, filepath.Join(dir, "europe", "IRL.geojson"), feature("Ireland"))
		testutil.WriteFile(t, filepath.Join(dir, "europe", "BAD.geojson"), contents)

		_, err := Merge(dir)
		require.ErrorContains(t, err, "BAD.geojson", contents)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "gadm")
	output := filepath.Join(dir, "gadm_world.geojson")
	testutil.WriteFile(t, filepath.Join(input, "europe", "IRL.geojson"), feature("Ireland"))
	testutil.WriteFile(t, filepath.Join(input, "asia", "JPN.geojson"), collection("Tokyo", "Osaka"))
	testutil.WriteFile(t, output, `stale`)

	buff := &bytes.Buffer{}
	res, err := Run(context.Background(), Options{
		InputDir: input,
		Output:   output,
		Reporter: telemetry.NewReporter(buff),
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Features)
	require.Contains(t, buff.String(), "> Merged 3 features into "+output+"\n")
	require.Contains(t, buff.String(), "> Bounds ")

	fc, err := geojson.ParseFeatureCollection([]byte(testutil.ReadFile(t, output)))
	require.NoError(t, err)
	require.Equal(t, 3, fc.Len())
}

func TestRunSkipsOutputInsideInput(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "europe", "IRL.geojson"), feature("Ireland"))
	output := filepath.Join(dir, "world.geojson")

	opts := Options{InputDir: dir, Output: output, Reporter: telemetry.DiscardReporter()}
	for i := 0; i < 2; i++ {
		res, err := Run(context.Background(), opts)
		require.NoError(t, err)
		require.Equal(t, 1, res.Features)
	}
}

func TestRunWritesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "gadm")
	output := filepath.Join(dir, "gadm_world.geojson")
	testutil.WriteFile(t, filepath.Join(input, "europe", "BAD.geojson"), `{`)

	_, err := Run(context.Background(), Options{
		InputDir: input,
		Output:   output,
		Reporter: telemetry.DiscardReporter(),
	})
	require.Error(t, err)
	testutil.RequireMissing(t, output)
}

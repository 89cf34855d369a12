// Package merge combines every boundary file under a directory into a
// single FeatureCollection.
package merge

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"worldbookmap/lib/geojson"
	"worldbookmap/lib/osutil"
	"worldbookmap/lib/telemetry"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/merge")

const Extension = ".geojson"

// Merge reads every *.geojson file below inputDir. Features are appended
// as-is and feature collections are flattened. The first unreadable or
// malformed file aborts the merge. Paths in `exclude` are skipped.
func Merge(inputDir string, exclude ...string) (geojson.FeatureCollection, error) {
	skip := map[string]bool{}
	for _, path := range exclude {
		abs, err := filepath.Abs(path)
		if err != nil {
			return geojson.FeatureCollection{}, err
		}
		skip[abs] = true
	}

	fc := geojson.NewFeatureCollection()
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Extension) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if skip[abs] {
			return nil
		}

		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		err = fc.Add(contents)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		slog.Debug("merged boundary file", "path", path, "features", fc.Len())
		return nil
	})
	if err != nil {
		return geojson.FeatureCollection{}, err
	}
	return fc, nil
}

type Options struct {
	InputDir string
	Output   string
	Reporter telemetry.Reporter
}

type Result struct {
	Features int
	Bounds   string
}

// Run merges Options.InputDir and writes the collection to
// Options.Output, replacing it. Nothing is written if the merge fails.
func Run(ctx context.Context, opts Options) (Result, error) {
	_, span := tracer.Start(ctx, "merge:Run")
	defer span.End()

	fc, err := Merge(opts.InputDir, opts.Output)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	out, err := json.Marshal(fc)
	if err != nil {
		return Result{}, err
	}
	err = osutil.WriteFile(opts.Output, out, 0644)
	if err != nil {
		return Result{}, err
	}

	result := Result{Features: fc.Len()}
	opts.Reporter.Printf("Merged %d features into %s", result.Features, opts.Output)
	opts.Reporter.ReportCount("merge.features", int64(result.Features))

	rect, err := fc.Bounds()
	if err != nil {
		slog.Warn("failed to compute bounds", "err", err)
		return result, nil
	}
	result.Bounds = geojson.FormatBounds(rect)
	if !rect.IsEmpty() {
		opts.Reporter.Printf("Bounds %s", result.Bounds)
	}

	return result, nil
}

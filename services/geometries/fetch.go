// Package geometries downloads the GADM boundaries of every country
// referenced by the region book files.
package geometries

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"worldbookmap/lib/completion"
	"worldbookmap/lib/gadm"
	"worldbookmap/lib/osutil"
	"worldbookmap/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/geometries")

type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

type Downloader interface {
	URL(code string, level int) string
	Download(ctx context.Context, code string, level int) ([]byte, error)
}

type Fetcher struct {
	Client   Downloader
	Tracker  completion.Tracker
	Reporter telemetry.Reporter
}

func NewFetcher(client Downloader, reporter telemetry.Reporter) Fetcher {
	return Fetcher{
		Client:   client,
		Tracker:  completion.Filesystem{},
		Reporter: reporter,
	}
}

// FetchIfAbsent downloads a boundary to `dest` unless `dest` is already
// complete. Failed downloads never create `dest`, so they are attempted
// again on the next run.
func (f Fetcher) FetchIfAbsent(ctx context.Context, code string, level int, dest string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "geometries:FetchIfAbsent")
	defer span.End()
	span.SetAttributes(attribute.String("gadm.identifier", gadm.Identifier(code, level)))

	err := os.MkdirAll(filepath.Dir(dest), 0755)
	if err != nil {
		return OutcomeFailed, err
	}

	if f.Tracker.HasCompleted(dest) {
		f.Reporter.Printf("File already exists, skipping download: %s", dest)
		return OutcomeSkipped, nil
	}

	url := f.Client.URL(code, level)
	body, err := f.Client.Download(ctx, code, level)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "download failed")

		var statusErr *gadm.StatusError
		if errors.As(err, &statusErr) {
			f.Reporter.Printf("Failed to download from %s (status %d)", url, statusErr.Status)
		} else {
			f.Reporter.Printf("Request error for %s: %v", url, err)
		}
		return OutcomeFailed, err
	}

	err = osutil.WriteFile(dest, body, 0644)
	if err != nil {
		span.RecordError(err)
		f.Reporter.Printf("Failed to write %s: %v", dest, err)
		return OutcomeFailed, err
	}
	f.Reporter.Printf("Saved GeoJSON: %s", dest)
	return OutcomeSaved, nil
}

// Package covers downloads book cover thumbnails by isbn and keeps a
// log of the isbns it could not find a cover for.
package covers

import (
	"context"
	"errors"
	"log/slog"
	"worldbookmap/lib/completion"
	"worldbookmap/lib/googlebooks"
	"worldbookmap/lib/osutil"
	"worldbookmap/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/covers")

const (
	ReasonNoBook        = "no book found"
	ReasonNoThumbnail   = "no thumbnail"
	ReasonImageDownload = "image download failed"
)

type Outcome int

const (
	OutcomeDownloaded Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

type BooksAPI interface {
	LookupISBN(ctx context.Context, isbn string) (googlebooks.VolumesResponse, error)
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}

type FailureLog interface {
	Append(isbn, reason string) (bool, error)
}

type Fetcher struct {
	Client   BooksAPI
	Log      FailureLog
	Tracker  completion.Tracker
	Reporter telemetry.Reporter
}

func NewFetcher(client BooksAPI, log FailureLog, reporter telemetry.Reporter) Fetcher {
	return Fetcher{
		Client:   client,
		Log:      log,
		Tracker:  completion.Filesystem{},
		Reporter: reporter,
	}
}

// fail records a terminal failure for this isbn. The log is advisory,
// nothing reads it back to decide whether to retry.
func (f Fetcher) fail(ctx context.Context, isbn, reason string) {
	appended, err := f.Log.Append(isbn, reason)
	if err != nil {
		slog.ErrorContext(ctx, "failed to write failure log", "isbn", isbn, "reason", reason, "err", err)
		return
	}
	slog.DebugContext(ctx, "cover failure", "isbn", isbn, "reason", reason, "appended", appended)
}

// FetchCoverIfAbsent downloads the cover of `isbn` to `dest` unless it is
// already there. Every failure is logged and reported, never returned as
// an error, so that one isbn cannot stop a run.
func (f Fetcher) FetchCoverIfAbsent(ctx context.Context, isbn, dest string) Outcome {
	ctx, span := tracer.Start(ctx, "covers:FetchCoverIfAbsent")
	defer span.End()
	span.SetAttributes(attribute.String("isbn", isbn))

	if f.Tracker.HasCompleted(dest) {
		return OutcomeSkipped
	}

	reason, err := f.fetchCover(ctx, isbn, dest)
	if err == nil {
		f.Reporter.Printf("Downloaded cover for ISBN %s", isbn)
		return OutcomeDownloaded
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	f.fail(ctx, isbn, reason)

	switch reason {
	case ReasonNoBook:
		f.Reporter.Printf("No book found for ISBN %s", isbn)
	case ReasonNoThumbnail:
		f.Reporter.Printf("No thumbnail for ISBN %s", isbn)
	case ReasonImageDownload:
		f.Reporter.Printf("Failed to download image for ISBN %s", isbn)
	default:
		f.Reporter.Printf("Error for ISBN %s: %s", isbn, reason)
	}
	return OutcomeFailed
}

var (
	errNoBook      = errors.New(ReasonNoBook)
	errNoThumbnail = errors.New(ReasonNoThumbnail)
)

// returns the log reason along with the error
func (f Fetcher) fetchCover(ctx context.Context, isbn, dest string) (string, error) {
	volumes, err := f.Client.LookupISBN(ctx, isbn)
	if err != nil {
		return err.Error(), err
	}
	if len(volumes.Items) == 0 {
		return ReasonNoBook, errNoBook
	}

	thumbnail := googlebooks.ThumbnailURL(volumes.Items[0].VolumeInfo)
	if thumbnail == "" {
		return ReasonNoThumbnail, errNoThumbnail
	}

	image, err := f.Client.DownloadImage(ctx, thumbnail)
	if errors.Is(err, googlebooks.ErrImageDownload) {
		return ReasonImageDownload, err
	}
	if err != nil {
		return err.Error(), err
	}

	err = osutil.WriteFile(dest, image, 0644)
	if err != nil {
		return err.Error(), err
	}
	return "", nil
}

package covers

import (
	"context"
	"os"
	"path/filepath"
	"worldbookmap/lib/datasets"
	"worldbookmap/lib/tableutil"
)

const Extension = ".jpg"

type Options struct {
	BooksDir  string
	CoversDir string
}

// CoverPath is <coversDir>/<region>/<isbn>.jpg
func CoverPath(coversDir, region, isbn string) string {
	return filepath.Join(coversDir, region, isbn+Extension)
}

// Run fetches the cover of every book with an isbn, region by region and
// country by country, skipping covers that are already on disk.
func (f Fetcher) Run(ctx context.Context, opts Options) (*tableutil.Summary, error) {
	summary := &tableutil.Summary{}

	err := os.MkdirAll(opts.CoversDir, 0755)
	if err != nil {
		return summary, err
	}
	regions, err := datasets.ListRegions(opts.BooksDir)
	if err != nil {
		return summary, err
	}

	for _, region := range regions {
		summary.Touch(region.Name)

		err := os.MkdirAll(filepath.Join(opts.CoversDir, region.Name), 0755)
		if err != nil {
			return summary, err
		}
		books, err := datasets.LoadRegionBooks(region.Path)
		if err != nil {
			f.Reporter.Printf("Failed to read region %s: %v", region.Name, err)
			summary.AddFailed(region.Name)
			continue
		}

		for _, country := range books.Countries() {
			for _, book := range books[country] {
				if book.ISBN == "" {
					continue
				}
				if err := ctx.Err(); err != nil {
					return summary, err
				}

				dest := CoverPath(opts.CoversDir, region.Name, book.ISBN)
				switch f.FetchCoverIfAbsent(ctx, book.ISBN, dest) {
				case OutcomeDownloaded:
					summary.AddDone(region.Name)
				case OutcomeSkipped:
					summary.AddSkipped(region.Name)
				default:
					summary.AddFailed(region.Name)
				}
			}
		}
	}

	total := summary.Total()
	f.Reporter.ReportCount("covers.downloaded", int64(total.Done))
	f.Reporter.ReportCount("covers.failed", int64(total.Failed))
	return summary, nil
}

package geometries

import (
	"context"
	"fmt"
	"log/slog"
	"worldbookmap/lib/datasets"
	"worldbookmap/lib/tableutil"
)

type Options struct {
	BooksDir     string
	CountryCodes string
	GadmDir      string
	// keyed by region name
	Overrides map[string]Override
	// keyed by region name
	Enrichments map[string]Enrichment
}

// Run plans and fetches every region under Options.BooksDir one target at
// a time. Failures of a single target or region are reported and the run
// moves on, only unreadable shared inputs abort it.
func (f Fetcher) Run(ctx context.Context, opts Options) (*tableutil.Summary, error) {
	summary := &tableutil.Summary{}

	codes, err := datasets.LoadCountryCodes(opts.CountryCodes)
	if err != nil {
		return summary, fmt.Errorf("load country codes: %w", err)
	}
	regions, err := datasets.ListRegions(opts.BooksDir)
	if err != nil {
		return summary, err
	}

	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Touch(region.Name)

		books, err := datasets.LoadRegionBooks(region.Path)
		if err != nil {
			f.Reporter.Printf("Failed to read region %s: %v", region.Name, err)
			summary.AddFailed(region.Name)
			continue
		}
		targets, err := Plan(region.Name, books, codes, opts.Overrides)
		if err != nil {
			f.Reporter.Printf("Failed to plan region %s: %v", region.Name, err)
			summary.AddFailed(region.Name)
			continue
		}
		slog.Debug("planned region", "region", region.Name, "targets", len(targets))

		enrichment, hasEnrichment := opts.Enrichments[region.Name]

		for _, target := range targets {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			dest := target.Path(opts.GadmDir)
			outcome, _ := f.FetchIfAbsent(ctx, target.Code, target.Level, dest)
			switch outcome {
			case OutcomeSaved:
				summary.AddDone(region.Name)
			case OutcomeSkipped:
				summary.AddSkipped(region.Name)
			default:
				summary.AddFailed(region.Name)
			}

			if hasEnrichment && enrichment.Country == target.Country {
				f.enrich(dest, outcome, enrichment)
			}
		}
	}

	total := summary.Total()
	f.Reporter.ReportCount("geometries.saved", int64(total.Done))
	f.Reporter.ReportCount("geometries.failed", int64(total.Failed))
	return summary, nil
}

func (f Fetcher) enrich(dest string, outcome Outcome, e Enrichment) {
	if outcome == OutcomeFailed {
		f.Reporter.Printf("Skipping %s enrichment of %s, file is missing", e.TargetProperty, dest)
		return
	}
	mapping, err := datasets.LoadMapping(e.Mapping)
	if err != nil {
		f.Reporter.Printf("Failed to read mapping %s: %v", e.Mapping, err)
		return
	}
	err = Enrich(dest, e, mapping)
	if err != nil {
		f.Reporter.Printf("Failed to add %s to %s: %v", e.TargetProperty, dest, err)
		return
	}
	f.Reporter.Printf("Added %s from %s to %s", e.TargetProperty, e.Mapping, dest)
}

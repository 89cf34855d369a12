package geometries

import (
	"encoding/json"
	"os"
	"worldbookmap/lib/datasets"
	"worldbookmap/lib/geojson"
	"worldbookmap/lib/osutil"
)

// Enrichment joins a flat mapping onto the features of one country's
// boundary file.
type Enrichment struct {
	Country string `json:"country"`
	// path to a json object of source value -> joined value
	Mapping        string `json:"mapping"`
	SourceProperty string `json:"source_property"`
	TargetProperty string `json:"target_property"`
}

func DefaultEnrichments() map[string]Enrichment {
	return map[string]Enrichment{
		"america-north": {
			Country:        "United States",
			Mapping:        "data/us_regions.json",
			SourceProperty: "NAME_1",
			TargetProperty: "region",
		},
	}
}

// Enrich sets properties[TargetProperty] = mapping[properties[SourceProperty]]
// on every feature of the file at `path` and rewrites it in place.
// A value missing from the mapping is joined as null.
func Enrich(path string, e Enrichment, mapping datasets.Mapping) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	fc, err := geojson.ParseFeatureCollection(contents)
	if err != nil {
		return err
	}

	err = fc.UpdateProperties(func(props map[string]any) {
		source, _ := props[e.SourceProperty].(string)
		joined, ok := mapping[source]
		if !ok {
			props[e.TargetProperty] = nil
			return
		}
		props[e.TargetProperty] = joined
	})
	if err != nil {
		return err
	}

	out, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	return osutil.WriteFile(path, out, 0644)
}

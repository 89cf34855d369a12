package commands

import (
	"time"
	"worldbookmap/lib/gadm"
	"worldbookmap/lib/googlebooks"
	"worldbookmap/services/geometries"
)

type GadmConfig struct {
	BaseUrl        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type GoogleBooksConfig struct {
	BaseUrl        string `json:"base_url"`
	Key            string `json:"key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Config struct {
	BooksDir     string `json:"books_dir"`
	CountryCodes string `json:"country_codes"`
	GadmDir      string `json:"gadm_dir"`
	MergedOutput string `json:"merged_output"`
	CoversDir    string `json:"covers_dir"`
	MissingLog   string `json:"missing_log"`

	Gadm        GadmConfig        `json:"gadm"`
	GoogleBooks GoogleBooksConfig `json:"google_books"`

	Overrides   map[string]geometries.Override   `json:"overrides"`
	Enrichments map[string]geometries.Enrichment `json:"enrichments"`
}

func DefaultConfig() Config {
	return Config{
		BooksDir:     "data/books",
		CountryCodes: "data/country_codes.json",
		GadmDir:      "data/geometries/gadm",
		MergedOutput: "data/geometries/gadm_world.geojson",
		CoversDir:    "assets/book-covers",
		MissingLog:   "assets/book-covers-missing.csv",
		Gadm: GadmConfig{
			BaseUrl:        gadm.DefaultBaseUrl,
			TimeoutSeconds: int(gadm.DefaultTimeout / time.Second),
		},
		GoogleBooks: GoogleBooksConfig{
			BaseUrl:        googlebooks.DefaultBaseUrl,
			TimeoutSeconds: int(googlebooks.DefaultTimeout / time.Second),
		},
		Overrides:   geometries.DefaultOverrides(),
		Enrichments: geometries.DefaultEnrichments(),
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

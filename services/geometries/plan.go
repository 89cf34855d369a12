package geometries

import (
	"fmt"
	"path/filepath"
	"strings"
	"worldbookmap/lib/datasets"
	"worldbookmap/lib/gadm"
)

// Target is one boundary file to fetch.
type Target struct {
	Country   string
	Code      string
	Level     int
	Continent string
}

func (t Target) Identifier() string {
	return gadm.Identifier(t.Code, t.Level)
}

// Path is where the boundary is stored below the gadm directory,
// ex. <gadmDir>/europe/GBR.geojson.
func (t Target) Path(gadmDir string) string {
	return filepath.Join(gadmDir, t.Continent, t.Code+".geojson")
}

type CountryLevel struct {
	Country string `json:"country"`
	Level   int    `json:"level"`
}

// Override replaces the default plan of a region with an explicit list.
type Override struct {
	Continent string         `json:"continent"`
	Countries []CountryLevel `json:"countries"`
}

func DefaultOverrides() map[string]Override {
	return map[string]Override{
		"uk-ireland": {
			Continent: "europe",
			Countries: []CountryLevel{
				{Country: "United Kingdom", Level: 1},
				{Country: "Ireland", Level: 0},
			},
		},
		"america-north": {
			Continent: "america",
			Countries: []CountryLevel{
				{Country: "United States", Level: 1},
				{Country: "Canada", Level: 0},
			},
		},
	}
}

// Continent is the part of a region name before the first "-",
// ex. "europe-west" -> "europe".
func Continent(regionName string) string {
	continent, _, _ := strings.Cut(regionName, "-")
	return continent
}

// Plan lists the boundaries to fetch for a region. Without an override
// every country of the region is fetched at level 0, sorted by name.
func Plan(
	regionName string,
	region datasets.RegionBooks,
	codes datasets.CountryCodes,
	overrides map[string]Override,
) ([]Target, error) {
	continent := Continent(regionName)
	var countries []CountryLevel

	override, ok := overrides[regionName]
	if ok {
		if override.Continent != "" {
			continent = override.Continent
		}
		countries = override.Countries
	} else {
		for _, country := range region.Countries() {
			countries = append(countries, CountryLevel{Country: country, Level: 0})
		}
	}

	targets := make([]Target, len(countries))
	for i, c := range countries {
		code, err := codes.Lookup(c.Country)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", regionName, err)
		}
		targets[i] = Target{
			Country:   c.Country,
			Code:      code,
			Level:     c.Level,
			Continent: continent,
		}
	}
	return targets, nil
}

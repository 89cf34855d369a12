package datasets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrUnknownCountry = errors.New("unknown country")

// Book is one entry in a region file, only the isbn is interpreted.
type Book struct {
	ISBN string
}

func (b *Book) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}
	raw, ok := fields["isbn"]
	if !ok || string(raw) == "null" {
		b.ISBN = ""
		return nil
	}

	var isbn string
	if err := json.Unmarshal(raw, &isbn); err == nil {
		b.ISBN = isbn
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		b.ISBN = number.String()
		return nil
	}
	return fmt.Errorf("isbn is neither a string nor a number: %s", raw)
}

// RegionBooks maps a country name to its books.
type RegionBooks map[string][]Book

// Countries returns the country names sorted alphabetically.
func (r RegionBooks) Countries() []string {
	out := make([]string, 0, len(r))
	for country := range r {
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}

// Region is a region file on disk, its name is the file stem.
type Region struct {
	Name string
	Path string
}

// ListRegions returns the *.json files directly under `dir`, sorted by name.
func ListRegions(dir string) ([]Region, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	regions := make([]Region, len(matches))
	for i, path := range matches {
		regions[i] = Region{
			Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Path: path,
		}
	}
	return regions, nil
}

func readJSON(path string, out any) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	err = json.Unmarshal(contents, out)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func LoadRegionBooks(path string) (RegionBooks, error) {
	var out RegionBooks
	err := readJSON(path, &out)
	return out, err
}

// CountryCodes maps a country display name to its ISO 3166-1 alpha-3 code.
type CountryCodes map[string]string

func LoadCountryCodes(path string) (CountryCodes, error) {
	var out CountryCodes
	err := readJSON(path, &out)
	return out, err
}

func (c CountryCodes) Lookup(country string) (string, error) {
	code, ok := c[country]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return code, nil
}

// Mapping is a flat string to string table, ex. state name -> region name.
type Mapping map[string]string

func LoadMapping(path string) (Mapping, error) {
	var out Mapping
	err := readJSON(path, &out)
	return out, err
}

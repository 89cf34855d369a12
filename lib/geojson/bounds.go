package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/s2"
)

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometries  []geometry      `json:"geometries"`
}

// positions are [lng, lat(, alt)], nested to any depth
func addPositions(rect s2.Rect, node any) s2.Rect {
	list, ok := node.([]any)
	if !ok {
		return rect
	}
	if len(list) >= 2 {
		lng, lngOk := list[0].(float64)
		lat, latOk := list[1].(float64)
		if lngOk && latOk {
			return rect.AddPoint(s2.LatLngFromDegrees(lat, lng))
		}
	}
	for _, child := range list {
		rect = addPositions(rect, child)
	}
	return rect
}

func addGeometry(rect s2.Rect, g geometry) (s2.Rect, error) {
	for _, child := range g.Geometries {
		var err error
		rect, err = addGeometry(rect, child)
		if err != nil {
			return rect, err
		}
	}
	if len(g.Coordinates) == 0 {
		return rect, nil
	}
	var coords any
	err := json.Unmarshal(g.Coordinates, &coords)
	if err != nil {
		return rect, err
	}
	return addPositions(rect, coords), nil
}

// Bounds returns the lat/lng rectangle enclosing every geometry in the
// collection, it is empty when no feature has a geometry.
func (fc FeatureCollection) Bounds() (s2.Rect, error) {
	rect := s2.EmptyRect()
	for i, raw := range fc.Features {
		var feature struct {
			Geometry *geometry `json:"geometry"`
		}
		err := json.Unmarshal(raw, &feature)
		if err != nil {
			return rect, fmt.Errorf("feature %d: %w", i, err)
		}
		if feature.Geometry == nil {
			continue
		}
		rect, err = addGeometry(rect, *feature.Geometry)
		if err != nil {
			return rect, fmt.Errorf("feature %d geometry: %w", i, err)
		}
	}
	return rect, nil
}

// FormatBounds renders a rectangle as "lat,lng -> lat,lng" in degrees.
func FormatBounds(rect s2.Rect) string {
	if rect.IsEmpty() {
		return "empty"
	}
	lo, hi := rect.Lo(), rect.Hi()
	return fmt.Sprintf(
		"%.4f,%.4f -> %.4f,%.4f",
		lo.Lat.Degrees(), lo.Lng.Degrees(),
		hi.Lat.Degrees(), hi.Lng.Degrees(),
	)
}

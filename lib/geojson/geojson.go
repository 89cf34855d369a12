// Package geojson implements the small part of GeoJSON needed to merge
// and annotate boundary files. Features are carried as raw JSON so that
// geometries pass through untouched.
package geojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypeFeature           = "Feature"
	TypeFeatureCollection = "FeatureCollection"
)

var ErrMissingType = errors.New("missing type")

type UnsupportedTypeError struct {
	Type string
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported geojson type %q", e.Type)
}

type FeatureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

func NewFeatureCollection() FeatureCollection {
	return FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: []json.RawMessage{},
	}
}

// Add appends the features of a Feature or FeatureCollection document.
func (fc *FeatureCollection) Add(doc []byte) error {
	var header struct {
		Type     *string           `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	err := json.Unmarshal(doc, &header)
	if err != nil {
		return err
	}
	if header.Type == nil {
		return ErrMissingType
	}

	switch *header.Type {
	case TypeFeature:
		fc.Features = append(fc.Features, json.RawMessage(bytes.TrimSpace(doc)))
	case TypeFeatureCollection:
		fc.Features = append(fc.Features, header.Features...)
	default:
		return UnsupportedTypeError{Type: *header.Type}
	}
	return nil
}

func (fc FeatureCollection) Len() int {
	return len(fc.Features)
}

func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	features := fc.Features
	if features == nil {
		features = []json.RawMessage{}
	}
	return json.Marshal(struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}{
		Type:     TypeFeatureCollection,
		Features: features,
	})
}

// ParseFeatureCollection accepts either document type and always
// returns a collection.
func ParseFeatureCollection(doc []byte) (FeatureCollection, error) {
	fc := NewFeatureCollection()
	err := fc.Add(doc)
	return fc, err
}

func decodeProperties(raw json.RawMessage) (map[string]any, error) {
	props := map[string]any{}
	if len(raw) == 0 || string(raw) == "null" {
		return props, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	err := dec.Decode(&props)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = map[string]any{}
	}
	return props, nil
}

// UpdateProperties rewrites the properties of every feature with `update`,
// all other members of a feature are kept as-is.
func (fc *FeatureCollection) UpdateProperties(update func(props map[string]any)) error {
	for i, raw := range fc.Features {
		var members map[string]json.RawMessage
		err := json.Unmarshal(raw, &members)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}

		props, err := decodeProperties(members["properties"])
		if err != nil {
			return fmt.Errorf("feature %d properties: %w", i, err)
		}
		update(props)

		members["properties"], err = json.Marshal(props)
		if err != nil {
			return err
		}
		fc.Features[i], err = json.Marshal(members)
		if err != nil {
			return err
		}
	}
	return nil
}

// Properties decodes the properties of every feature, in order.
func (fc FeatureCollection) Properties() ([]map[string]any, error) {
	out := make([]map[string]any, len(fc.Features))
	for i, raw := range fc.Features {
		var members struct {
			Properties json.RawMessage `json:"properties"`
		}
		err := json.Unmarshal(raw, &members)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		out[i], err = decodeProperties(members.Properties)
		if err != nil {
			return nil, fmt.Errorf("feature %d properties: %w", i, err)
		}
	}
	return out, nil
}

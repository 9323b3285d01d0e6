package spec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// ErrUnsupportedEncoding is returned for boundary values that are none of
// the accepted shapes.
var ErrUnsupportedEncoding = errors.New("unsupported boundary encoding")

// Boundary is a geographic ring that decodes from any of the accepted
// encodings:
//
//   - a list of {latitude, longitude} or {lat, lng} objects
//   - a list of [lng, lat] pairs
//   - a GeoJSON Polygon geometry (outer ring used)
//
// It always encodes as a list of {latitude, longitude} objects.
type Boundary struct {
	Ring geo.Ring
}

// NewBoundary wraps a ring.
func NewBoundary(r geo.Ring) Boundary {
	return Boundary{Ring: r}
}

func (b Boundary) MarshalJSON() ([]byte, error) {
	if b.Ring == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]geo.LatLng(b.Ring))
}

func (b *Boundary) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding boundary: %w", err)
	}
	r, err := decodeBoundary(raw)
	if err != nil {
		return err
	}
	b.Ring = r
	return nil
}

func (b Boundary) MarshalYAML() (any, error) {
	return []geo.LatLng(b.Ring), nil
}

func (b *Boundary) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decoding boundary: %w", err)
	}
	r, err := decodeBoundary(raw)
	if err != nil {
		return err
	}
	b.Ring = r
	return nil
}

func decodeBoundary(raw any) (geo.Ring, error) {
	switch v := raw.(type) {
	case []any:
		return decodePoints(v)
	case map[string]any:
		return decodeGeoJSON(v)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedEncoding, raw)
}

func decodePoints(items []any) (geo.Ring, error) {
	ring := make(geo.Ring, 0, len(items))
	for i, item := range items {
		ll, err := decodePoint(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		ring = append(ring, ll)
	}
	return ring, nil
}

func decodePoint(item any) (geo.LatLng, error) {
	switch v := item.(type) {
	case map[string]any:
		if lat, ok := number(v["latitude"]); ok {
			if lng, ok := number(v["longitude"]); ok {
				return geo.LatLng{Latitude: lat, Longitude: lng}, nil
			}
		}
		if lat, ok := number(v["lat"]); ok {
			if lng, ok := number(v["lng"]); ok {
				return geo.LatLng{Latitude: lat, Longitude: lng}, nil
			}
		}
	case []any:
		if len(v) == 2 {
			lng, ok1 := number(v[0])
			lat, ok2 := number(v[1])
			if ok1 && ok2 {
				return geo.LatLng{Latitude: lat, Longitude: lng}, nil
			}
		}
	}
	return geo.LatLng{}, ErrUnsupportedEncoding
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// decodeGeoJSON accepts a GeoJSON Polygon geometry.
func decodeGeoJSON(m map[string]any) (geo.Ring, error) {
	if t, _ := m["type"].(string); t != "Polygon" {
		return nil, fmt.Errorf("%w: geometry type %q", ErrUnsupportedEncoding, t)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}
	poly, ok := g.Geometry().(orb.Polygon)
	if !ok || len(poly) == 0 {
		return nil, fmt.Errorf("%w: empty polygon", ErrUnsupportedEncoding)
	}
	ring := make(geo.Ring, len(poly[0]))
	for i, p := range poly[0] {
		ring[i] = geo.LatLng{Latitude: p.Lat(), Longitude: p.Lon()}
	}
	return ring, nil
}

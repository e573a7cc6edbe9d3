// Package geomio decodes input polygon geometries (WKB or GeoJSON)
// into the form the zonal engine and coverage providers consume.
package geomio

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/overlap-data/zonal.report/internal/rastergrid"
)

// ErrGeometry covers malformed or unsupported input geometry encodings.
// Specific failures wrap it.
var ErrGeometry = errors.New("invalid geometry")

// Polygon is a decoded polygon or multipolygon with its bounding box.
// It satisfies both the engine's Geometry interface and the point
// containment query the built-in coverage provider needs.
type Polygon struct {
	geom orb.Geometry
}

// FromOrb wraps an orb polygon or multipolygon. Other geometry types
// are rejected: zonal statistics are defined over areal geometries only.
func FromOrb(g orb.Geometry) (*Polygon, error) {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return &Polygon{geom: g}, nil
	default:
		return nil, fmt.Errorf("%w: expected polygon or multipolygon, got %s", ErrGeometry, g.GeoJSONType())
	}
}

// DecodeWKB parses a WKB-encoded polygon or multipolygon.
func DecodeWKB(data []byte) (*Polygon, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeometry, err)
	}
	return FromOrb(g)
}

// DecodeWKBHex parses a hex-encoded WKB geometry, tolerating
// surrounding whitespace.
func DecodeWKBHex(s string) (*Polygon, error) {
	data, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: bad hex encoding: %v", ErrGeometry, err)
	}
	return DecodeWKB(data)
}

// DecodeGeoJSON parses a GeoJSON geometry, feature, or feature
// collection. A feature collection must contain exactly one feature.
func DecodeGeoJSON(data []byte) (*Polygon, error) {
	if g, err := geojson.UnmarshalGeometry(data); err == nil {
		return FromOrb(g.Geometry())
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return FromOrb(f.Geometry)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeometry, err)
	}
	if len(fc.Features) != 1 {
		return nil, fmt.Errorf("%w: expected a single feature, got %d", ErrGeometry, len(fc.Features))
	}
	return FromOrb(fc.Features[0].Geometry)
}

// Bounds returns the geometry's bounding box.
func (p *Polygon) Bounds() rastergrid.Box {
	b := p.geom.Bound()
	return rastergrid.Box{XMin: b.Min[0], YMin: b.Min[1], XMax: b.Max[0], YMax: b.Max[1]}
}

// Contains reports whether the point (x, y) lies inside the polygon.
func (p *Polygon) Contains(x, y float64) bool {
	pt := orb.Point{x, y}
	switch g := p.geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	}
	return false
}

// Area returns the planar area of the polygon.
func (p *Polygon) Area() float64 {
	switch g := p.geom.(type) {
	case orb.Polygon:
		return planar.Area(g)
	case orb.MultiPolygon:
		return planar.Area(g)
	}
	return 0
}

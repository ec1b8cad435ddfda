// Package geojson decodes the optional locations.geojson file GTFS-Flex
// feeds use to describe zone-based pickup/drop-off areas, built on
// github.com/paulmach/go.geojson (already used by the GTFS tooling the rest
// of the pack reaches for when it needs to read or write feature
// collections, e.g. patrickbr/gtfstidy's shape/stop export path).
package geojson

import (
	"math"

	geo "github.com/paulmach/go.geojson"

	"github.com/transitdata/gtfsvalidate/notice"
)

// BoundingBox is the axis-aligned envelope of a feature's coordinates.
type BoundingBox struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// Contains reports whether (lat, lon) falls within the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Overlaps reports whether two bounding boxes intersect.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	return b.MinLat <= other.MaxLat && b.MaxLat >= other.MinLat &&
		b.MinLon <= other.MaxLon && b.MaxLon >= other.MinLon
}

// Location is one feature keyed by its GTFS location_id.
type Location struct {
	ID           string
	FeatureIndex int
	BoundingBox  BoundingBox
}

// Locations is the decoded locations.geojson, or a sentinel value carrying a
// notice when the JSON itself could not be parsed (spec.md §4.5).
type Locations struct {
	byID         map[string]*Location
	parseNotice  notice.Notice
}

// HasFatalErrors reports whether the GeoJSON failed to parse; other rules
// depending on Locations must skip geometry checks when this is true.
func (l *Locations) HasFatalErrors() bool {
	return l.parseNotice != nil
}

// ParseNotice returns the malformed_json notice, or nil if parsing succeeded.
func (l *Locations) ParseNotice() notice.Notice {
	return l.parseNotice
}

// ByID returns the feature for id, if present.
func (l *Locations) ByID(id string) (*Location, bool) {
	if l == nil {
		return nil, false
	}
	loc, ok := l.byID[id]
	return loc, ok
}

// Len returns the number of features.
func (l *Locations) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byID)
}

// All returns every decoded location, in no particular order.
func (l *Locations) All() []*Location {
	if l == nil {
		return nil
	}
	out := make([]*Location, 0, len(l.byID))
	for _, loc := range l.byID {
		out = append(out, loc)
	}
	return out
}

// Parse decodes a locations.geojson FeatureCollection. On malformed JSON it
// returns a sentinel Locations whose HasFatalErrors() is true, never an
// error - the engine decides how to surface the notice.
func Parse(data []byte) *Locations {
	fc, err := geo.UnmarshalFeatureCollection(data)
	if err != nil {
		return &Locations{parseNotice: notice.NewMalformedJSONNotice("locations.geojson", err.Error())}
	}

	result := &Locations{byID: make(map[string]*Location, len(fc.Features))}
	for i, feature := range fc.Features {
		id := featureID(feature)
		if id == "" {
			continue
		}
		bbox := boundingBox(feature.Geometry)
		result.byID[id] = &Location{ID: id, FeatureIndex: i, BoundingBox: bbox}
	}
	return result
}

func featureID(f *geo.Feature) string {
	if f.ID != nil {
		switch v := f.ID.(type) {
		case string:
			return v
		}
	}
	if v, ok := f.Properties["id"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func boundingBox(g *geo.Geometry) BoundingBox {
	bbox := BoundingBox{MinLat: math.Inf(1), MinLon: math.Inf(1), MaxLat: math.Inf(-1), MaxLon: math.Inf(-1)}
	if g == nil {
		return BoundingBox{}
	}

	expand := func(lon, lat float64) {
		if lat < bbox.MinLat {
			bbox.MinLat = lat
		}
		if lat > bbox.MaxLat {
			bbox.MaxLat = lat
		}
		if lon < bbox.MinLon {
			bbox.MinLon = lon
		}
		if lon > bbox.MaxLon {
			bbox.MaxLon = lon
		}
	}

	switch {
	case g.IsPolygon():
		for _, ring := range g.Polygon {
			for _, pt := range ring {
				expand(pt[0], pt[1])
			}
		}
	case g.IsMultiPolygon():
		for _, polygon := range g.MultiPolygon {
			for _, ring := range polygon {
				for _, pt := range ring {
					expand(pt[0], pt[1])
				}
			}
		}
	case g.IsPoint():
		expand(g.Point[0], g.Point[1])
	}

	if math.IsInf(bbox.MinLat, 1) {
		return BoundingBox{}
	}
	return bbox
}

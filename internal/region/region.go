// Package region answers "which administrative district contains this
// point" over district boundary shapefiles. Layers are expected in
// geographic WGS-84 coordinates (lat/lon degrees).
package region

import (
	"fmt"
	"math"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"go.uber.org/zap"
)

// Feature represents a polygon (possibly multi-part) from a boundary
// shapefile together with its associated attribute table values.
type Feature struct {
	Parts  [][][2]float64    // each part is a closed ring of [lat, lon] points
	Attrs  map[string]string // DBF attribute values keyed by field name
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Attribute fields tried, in order, when naming a district.
var nameFields = []string{"DISTRICT", "DIST_NAME", "NAME_2", "NAME"}

// Index holds all loaded boundary polygons.
type Index struct {
	features []Feature
}

// Load reads the given shapefile layers into one index. A layer that fails
// to load is skipped with a warning; district lookups then simply miss the
// areas it covered.
func Load(paths []string, log *zap.SugaredLogger) *Index {
	ix := &Index{}
	for _, path := range paths {
		feats, err := loadShapefile(path)
		if err != nil {
			log.Warnw("boundary layer unavailable", "path", path, "error", err)
			continue
		}
		ix.features = append(ix.features, feats...)
	}
	return ix
}

// NewIndex builds an index directly from features. Used in tests.
func NewIndex(features []Feature) *Index {
	return &Index{features: features}
}

// loadShapefile reads the shapefile at the given path and converts it to an
// in-memory slice of Feature structs.
func loadShapefile(path string) ([]Feature, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", path, err)
	}
	defer r.Close()

	fields := r.Fields()

	var features []Feature
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			// Skip non-polygon geometries (shouldn't exist in a boundary layer)
			continue
		}

		numParts := len(poly.Parts)
		parts := make([][][2]float64, numParts)

		// Track bounding box while iterating.
		minLat, minLon := math.MaxFloat64, math.MaxFloat64
		maxLat, maxLon := -math.MaxFloat64, -math.MaxFloat64

		for partIdx := 0; partIdx < numParts; partIdx++ {
			start := poly.Parts[partIdx]
			end := int32(len(poly.Points))
			if partIdx+1 < numParts {
				end = poly.Parts[partIdx+1]
			}
			ring := make([][2]float64, int(end-start))
			j := 0
			for i := start; i < end; i++ {
				pt := poly.Points[i]
				ring[j] = [2]float64{pt.Y, pt.X} // lat, lon
				if pt.Y < minLat {
					minLat = pt.Y
				}
				if pt.Y > maxLat {
					maxLat = pt.Y
				}
				if pt.X < minLon {
					minLon = pt.X
				}
				if pt.X > maxLon {
					maxLon = pt.X
				}
				j++
			}
			parts[partIdx] = ring
		}

		attrs := make(map[string]string)
		for i, f := range fields {
			attrs[f.String()] = r.ReadAttribute(idx, i)
		}

		features = append(features, Feature{
			Parts:  parts,
			Attrs:  attrs,
			MinLat: minLat,
			MinLon: minLon,
			MaxLat: maxLat,
			MaxLon: maxLon,
		})
	}
	return features, nil
}

// DistrictAt returns the name of the district containing the given point,
// or "" when no polygon matches or the matching polygon carries no
// recognizable name field.
func (ix *Index) DistrictAt(lat, lon float64) string {
	attrs, found := ix.attributesAt(lat, lon)
	if !found {
		return ""
	}
	for _, field := range nameFields {
		if v, ok := attrs[field]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// attributesAt returns the attribute map for the first polygon that
// contains the given lat/lon.
func (ix *Index) attributesAt(lat, lon float64) (map[string]string, bool) {
	for _, f := range ix.features {
		if lat < f.MinLat || lat > f.MaxLat || lon < f.MinLon || lon > f.MaxLon {
			continue // quick bbox reject
		}
		for _, ring := range f.Parts {
			if pointInPolygon(lat, lon, ring) {
				return f.Attrs, true
			}
		}
	}
	return nil, false
}

// Size returns the number of loaded polygons.
func (ix *Index) Size() int {
	return len(ix.features)
}

// pointInPolygon implements the ray-casting algorithm for testing whether a
// point is inside a polygon ring. Shapefile rings are closed, so no special
// handling of the first/last vertex is needed.
func pointInPolygon(lat, lon float64, ring [][2]float64) bool {
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		yi, xi := ring[i][0], ring[i][1]
		yj, xj := ring[j][0], ring[j][1]
		intersect := ((yi > lat) != (yj > lat)) && (lon < (xj-xi)*(lat-yi)/(yj-yi)+xi)
		if intersect {
			inside = !inside
		}
		j = i
	}
	return inside
}

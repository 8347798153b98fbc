package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// square returns a closed ring around [minLat,maxLat]x[minLon,maxLon].
func square(minLat, minLon, maxLat, maxLon float64) [][2]float64 {
	return [][2]float64{
		{minLat, minLon},
		{minLat, maxLon},
		{maxLat, maxLon},
		{maxLat, minLon},
		{minLat, minLon},
	}
}

func squareFeature(name string, minLat, minLon, maxLat, maxLon float64) Feature {
	return Feature{
		Parts:  [][][2]float64{square(minLat, minLon, maxLat, maxLon)},
		Attrs:  map[string]string{"DISTRICT": name},
		MinLat: minLat,
		MinLon: minLon,
		MaxLat: maxLat,
		MaxLon: maxLon,
	}
}

func TestDistrictAt(t *testing.T) {
	ix := NewIndex([]Feature{
		squareFeature("Nagpur", 20, 78, 22, 80),
		squareFeature("Pune", 18, 73, 19, 75),
	})

	assert.Equal(t, "Nagpur", ix.DistrictAt(21, 79))
	assert.Equal(t, "Pune", ix.DistrictAt(18.5, 74))
	assert.Equal(t, "", ix.DistrictAt(10, 10), "outside every polygon")
	assert.Equal(t, "", ix.DistrictAt(21, 74), "inside bbox of nothing")
}

func TestDistrictAtNameFieldFallback(t *testing.T) {
	f := squareFeature("", 0, 0, 1, 1)
	f.Attrs = map[string]string{"NAME_2": "Ratnagiri"}
	ix := NewIndex([]Feature{f})
	assert.Equal(t, "Ratnagiri", ix.DistrictAt(0.5, 0.5))

	f.Attrs = map[string]string{"IRRELEVANT": "x"}
	ix = NewIndex([]Feature{f})
	assert.Equal(t, "", ix.DistrictAt(0.5, 0.5))
}

func TestPointInPolygonConcave(t *testing.T) {
	// L-shaped ring: the notch at the top-right is outside.
	ring := [][2]float64{
		{0, 0}, {0, 4}, {2, 4}, {2, 2}, {4, 2}, {4, 0}, {0, 0},
	}
	assert.True(t, pointInPolygon(1, 1, ring))
	assert.True(t, pointInPolygon(1, 3, ring))
	assert.True(t, pointInPolygon(3, 1, ring))
	assert.False(t, pointInPolygon(3, 3, ring), "point in the notch")
	assert.False(t, pointInPolygon(5, 5, ring))
}

func TestMultiPartFeature(t *testing.T) {
	f := Feature{
		Parts: [][][2]float64{
			square(0, 0, 1, 1),
			square(2, 2, 3, 3),
		},
		Attrs:  map[string]string{"DISTRICT": "Split"},
		MinLat: 0, MinLon: 0, MaxLat: 3, MaxLon: 3,
	}
	ix := NewIndex([]Feature{f})
	assert.Equal(t, "Split", ix.DistrictAt(0.5, 0.5))
	assert.Equal(t, "Split", ix.DistrictAt(2.5, 2.5))
	assert.Equal(t, "", ix.DistrictAt(1.5, 1.5), "between the parts")
}

func TestLoadMissingLayerIsNonFatal(t *testing.T) {
	ix := Load([]string{"does/not/exist.shp"}, zap.NewNop().Sugar())
	assert.Zero(t, ix.Size())
	assert.Equal(t, "", ix.DistrictAt(0, 0))
}

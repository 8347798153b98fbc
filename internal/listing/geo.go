package listing

import "math"

// DistanceMiles returns the great-circle distance between two coordinate
// pairs using the haversine formula.
func DistanceMiles(a, b LatLng) float64 {
	const earthRadiusMiles = 3958.8
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}

// Nearby returns the listings within maxMiles of the reference point,
// excluding the listing with the given ID.
func Nearby(all []Listing, ref LatLng, maxMiles float64, excludeID string) []Listing {
	var out []Listing
	for _, l := range all {
		if l.ID == excludeID {
			continue
		}
		if DistanceMiles(ref, l.Location) <= maxMiles {
			out = append(out, l)
		}
	}
	return out
}

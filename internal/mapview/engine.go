// Package mapview drives an external map rendering engine through a narrow
// capability interface. The engine is heavyweight to construct and cheap to
// resize; a live map is a disposable projection of application state, never
// a source of truth.
package mapview

import "landmarket/internal/listing"

// Zoom levels for the two framings the UI uses.
const (
	// OverviewZoom is the initial country-level framing.
	OverviewZoom = 5
	// FocusZoom is the neighborhood-level framing applied when a single
	// listing is focused.
	FocusZoom = 12
)

// Engine creates map resources. Real implementation: the terminal renderer
// in internal/termmap. Tests substitute a recording fake.
type Engine interface {
	// CreateMap builds a map anchored to the given view with the
	// background tile layer attached. container names the hosting view.
	CreateMap(container string, center listing.LatLng, zoom int) (Map, error)
}

// Map is one live, disposable map resource.
type Map interface {
	// SetView recenters the map at the given zoom.
	SetView(center listing.LatLng, zoom int)
	// Zoom returns the current zoom level.
	Zoom() int
	// InvalidateSize re-measures the rendered area after a layout change.
	InvalidateSize()
	// AddMarker places a marker with an attached popup label.
	AddMarker(pos listing.LatLng, popup string) Marker
	// RemoveMarker removes a previously added marker.
	RemoveMarker(m Marker)
	// OnClick registers the map click listener.
	OnClick(fn func(lat, lng float64))
	// Destroy disposes the resource fully. The handle must not be used
	// afterwards.
	Destroy()
}

// Marker is a single point rendered on a Map.
type Marker interface {
	// SetPosition moves the marker without re-creating it.
	SetPosition(pos listing.LatLng)
	// OnClick registers the marker click listener.
	OnClick(fn func())
}

package mapview

import (
	"fmt"

	"landmarket/internal/listing"
)

// BrowseSync keeps the browse map's rendered marker set equal to the
// listing collection: exactly one marker per listing, in insertion order.
// Full replace rather than diff; listing counts are small and replace is
// trivially correct.
type BrowseSync struct {
	district func(listing.LatLng) string // optional district tag for popups
	markers  []Marker
}

// NewBrowseSync returns a synchronizer. district may be nil.
func NewBrowseSync(district func(listing.LatLng) string) *BrowseSync {
	return &BrowseSync{district: district}
}

// Sync removes every existing marker and adds one per listing. Each marker
// carries a popup built from title, price and area plus the external lookup
// URL; clicking it recenters the map on the listing at neighborhood zoom.
// No-op while the map is absent.
func (s *BrowseSync) Sync(m Map, listings []listing.Listing) {
	if m == nil {
		return
	}
	for _, mk := range s.markers {
		m.RemoveMarker(mk)
	}
	s.markers = s.markers[:0]

	for _, l := range listings {
		l := l
		mk := m.AddMarker(l.Location, s.popup(l))
		mk.OnClick(func() {
			m.SetView(l.Location, FocusZoom)
		})
		s.markers = append(s.markers, mk)
	}
}

func (s *BrowseSync) popup(l listing.Listing) string {
	label := fmt.Sprintf("%s | ₹%.0f | %.2f acres", l.Title, l.Price, l.Area)
	if s.district != nil {
		if d := s.district(l.Location); d != "" {
			label += " | " + d
		}
	}
	return label + "\n" + listing.LookupURL(l.Location)
}

// Count returns the number of markers currently rendered.
func (s *BrowseSync) Count() int {
	return len(s.markers)
}

// Drop forgets the marker handles without touching the map. Call when the
// backing map has been destroyed; the handles died with it.
func (s *BrowseSync) Drop() {
	s.markers = s.markers[:0]
}

// DraftSync keeps exactly one marker on the create map at the draft
// location. On every location change the existing marker is moved, not
// re-created, and the view recenters on the new position preserving the
// current zoom.
type DraftSync struct {
	marker Marker
}

// Sync reconciles the draft marker with pos. No-op while the map is absent.
func (s *DraftSync) Sync(m Map, pos listing.LatLng) {
	if m == nil {
		return
	}
	if s.marker == nil {
		s.marker = m.AddMarker(pos, "proposed location")
	} else {
		s.marker.SetPosition(pos)
	}
	m.SetView(pos, m.Zoom())
}

// Drop forgets the marker handle. Call when the backing map has been
// destroyed so the next Sync creates a fresh marker on the new map.
func (s *DraftSync) Drop() {
	s.marker = nil
}

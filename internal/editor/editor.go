// Package editor owns the draft listing's in-progress location. Three input
// channels write it (map click, latitude field, longitude field); all
// converge on one authoritative pair so the UI never reads three separate
// sources of truth.
package editor

import (
	"strconv"
	"strings"

	"landmarket/internal/listing"
)

// Editor holds the single mutable draft location. Every mutation notifies
// the registered observer immediately, before the next render, so a stale
// draft marker can never be shown after a field edit.
type Editor struct {
	loc      listing.LatLng
	onChange func(listing.LatLng)
}

// New returns an editor initialized to the fixed default location.
func New() *Editor {
	return &Editor{loc: listing.DefaultLocation}
}

// OnChange registers the single observer notified after every mutation.
func (e *Editor) OnChange(fn func(listing.LatLng)) {
	e.onChange = fn
}

func (e *Editor) notify() {
	if e.onChange != nil {
		e.onChange(e.loc)
	}
}

// SetFromMapClick overwrites the full pair from a click on the map.
func (e *Editor) SetFromMapClick(lat, lng float64) {
	e.loc = listing.LatLng{Lat: lat, Lng: lng}
	e.notify()
}

// SetLatitude overwrites the latitude only, preserving the longitude. The
// field is live-typed character by character, so non-numeric text is coerced
// to 0 rather than rejected; no range clamping is applied.
func (e *Editor) SetLatitude(text string) {
	e.loc.Lat = coerce(text)
	e.notify()
}

// SetLongitude overwrites the longitude only, preserving the latitude. Same
// coercion policy as SetLatitude.
func (e *Editor) SetLongitude(text string) {
	e.loc.Lng = coerce(text)
	e.notify()
}

func coerce(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return v
}

// Current returns the authoritative pair.
func (e *Editor) Current() listing.LatLng {
	return e.loc
}

// Reset restores the fixed default location and returns it.
func (e *Editor) Reset() listing.LatLng {
	e.loc = listing.DefaultLocation
	e.notify()
	return e.loc
}

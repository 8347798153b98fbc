// Package mapviewtest provides a recording in-memory map engine so the
// listing manager can be exercised without a real rendering backend.
package mapviewtest

import (
	"errors"

	"landmarket/internal/listing"
	"landmarket/internal/mapview"
)

// Engine records every map it creates and can be told to fail construction.
type Engine struct {
	FailNext bool
	Created  []*Map
}

// Live returns the maps created by this engine that are not yet destroyed.
func (e *Engine) Live() []*Map {
	var out []*Map
	for _, m := range e.Created {
		if !m.Destroyed {
			out = append(out, m)
		}
	}
	return out
}

func (e *Engine) CreateMap(container string, center listing.LatLng, zoom int) (mapview.Map, error) {
	if e.FailNext {
		e.FailNext = false
		return nil, errors.New("container missing")
	}
	m := &Map{Container: container, Center: center, CurrentZoom: zoom}
	e.Created = append(e.Created, m)
	return m, nil
}

// Map records every operation performed on it.
type Map struct {
	Container   string
	Center      listing.LatLng
	CurrentZoom int
	Destroyed   bool
	Invalidated int
	Markers     []*Marker
	clickFn     func(lat, lng float64)
}

func (m *Map) SetView(center listing.LatLng, zoom int) {
	m.Center = center
	m.CurrentZoom = zoom
}

func (m *Map) Zoom() int { return m.CurrentZoom }

func (m *Map) InvalidateSize() { m.Invalidated++ }

func (m *Map) AddMarker(pos listing.LatLng, popup string) mapview.Marker {
	mk := &Marker{Pos: pos, Popup: popup}
	m.Markers = append(m.Markers, mk)
	return mk
}

func (m *Map) RemoveMarker(target mapview.Marker) {
	for i, mk := range m.Markers {
		if mapview.Marker(mk) == target {
			m.Markers = append(m.Markers[:i], m.Markers[i+1:]...)
			return
		}
	}
}

func (m *Map) OnClick(fn func(lat, lng float64)) { m.clickFn = fn }

// Click simulates a user click on the map surface.
func (m *Map) Click(lat, lng float64) {
	if m.clickFn != nil {
		m.clickFn(lat, lng)
	}
}

func (m *Map) Destroy() { m.Destroyed = true }

// Marker records its position, popup and move count.
type Marker struct {
	Pos     listing.LatLng
	Popup   string
	Moves   int
	clickFn func()
}

func (mk *Marker) SetPosition(pos listing.LatLng) {
	mk.Pos = pos
	mk.Moves++
}

func (mk *Marker) OnClick(fn func()) { mk.clickFn = fn }

// Click simulates a user click on the marker.
func (mk *Marker) Click() {
	if mk.clickFn != nil {
		mk.clickFn()
	}
}

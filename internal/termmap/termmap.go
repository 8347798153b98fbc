// Package termmap renders maps as character grids on a terminal and
// implements the mapview capability interface. It projects a lat/lon
// viewport onto cells with an equirectangular projection; zoom follows the
// slippy-map convention where each level doubles the resolution of the
// previous one.
package termmap

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"landmarket/internal/listing"
	"landmarket/internal/mapview"
)

const (
	minCols = 20
	minRows = 8
	maxCols = 72
	maxRows = 20
)

// Engine builds terminal maps. One engine serves both views; each CreateMap
// call yields an independent resource.
type Engine struct {
	out  io.Writer
	size func() (cols, rows int, err error)
}

// NewEngine returns an engine that renders to out and measures the
// controlling terminal for its dimensions.
func NewEngine(out io.Writer) *Engine {
	return &Engine{
		out: out,
		size: func() (int, int, error) {
			return term.GetSize(int(os.Stdout.Fd()))
		},
	}
}

// NewFixedEngine returns an engine with a fixed grid size, independent of
// any terminal. Used in tests.
func NewFixedEngine(out io.Writer, cols, rows int) *Engine {
	return &Engine{
		out:  out,
		size: func() (int, int, error) { return cols, rows, nil },
	}
}

func (e *Engine) grid() (cols, rows int, err error) {
	c, r, err := e.size()
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size unavailable: %w", err)
	}
	cols = c - 2 // leave room for the border
	rows = r - 8 // leave room for tabs, form and help lines
	if cols > maxCols {
		cols = maxCols
	}
	if rows > maxRows {
		rows = maxRows
	}
	if cols < minCols || rows < minRows {
		return 0, 0, fmt.Errorf("terminal too small for map rendering (%dx%d)", c, r)
	}
	return cols, rows, nil
}

// CreateMap builds a live map anchored at center/zoom. Fails when no usable
// terminal area is available; callers treat that as the map being absent.
func (e *Engine) CreateMap(container string, center listing.LatLng, zoom int) (mapview.Map, error) {
	cols, rows, err := e.grid()
	if err != nil {
		return nil, fmt.Errorf("create %s map: %w", container, err)
	}
	return &Map{
		engine:    e,
		container: container,
		cols:      cols,
		rows:      rows,
		center:    center,
		zoom:      zoom,
		cursor:    center,
	}, nil
}

// Map is one live terminal map resource.
type Map struct {
	engine    *Engine
	container string
	cols      int
	rows      int
	center    listing.LatLng
	zoom      int
	cursor    listing.LatLng
	markers   []*marker
	onClick   func(lat, lng float64)
	dead      bool
}

// Degrees covered by one cell horizontally at the given zoom. Zoom 0 fits
// the whole world into 16 cells; every level halves the span. Cells are
// roughly twice as tall as wide, so the vertical span doubles it.
func lngPerCell(zoom int) float64 {
	return 360 / (16 * math.Pow(2, float64(zoom)))
}

func latPerCell(zoom int) float64 {
	return 2 * lngPerCell(zoom)
}

// cellOf maps a coordinate to a grid cell. ok is false when the point falls
// outside the current viewport.
func (m *Map) cellOf(pos listing.LatLng) (col, row int, ok bool) {
	col = m.cols/2 + int(math.Round((pos.Lng-m.center.Lng)/lngPerCell(m.zoom)))
	row = m.rows/2 - int(math.Round((pos.Lat-m.center.Lat)/latPerCell(m.zoom)))
	return col, row, col >= 0 && col < m.cols && row >= 0 && row < m.rows
}

// latLngAt is the inverse of cellOf for the cell's center point.
func (m *Map) latLngAt(col, row int) listing.LatLng {
	return listing.LatLng{
		Lat: m.center.Lat + float64(m.rows/2-row)*latPerCell(m.zoom),
		Lng: m.center.Lng + float64(col-m.cols/2)*lngPerCell(m.zoom),
	}
}

// SetView recenters the viewport and snaps the cursor to the new center.
func (m *Map) SetView(center listing.LatLng, zoom int) {
	m.center = center
	m.zoom = zoom
	m.cursor = center
}

// Zoom returns the current zoom level.
func (m *Map) Zoom() int { return m.zoom }

// InvalidateSize re-measures the terminal and re-projects. Cheap; called on
// every layout change.
func (m *Map) InvalidateSize() {
	cols, rows, err := m.engine.grid()
	if err != nil {
		return // keep the previous projection
	}
	m.cols = cols
	m.rows = rows
}

// AddMarker places a marker with a popup label.
func (m *Map) AddMarker(pos listing.LatLng, popup string) mapview.Marker {
	mk := &marker{pos: pos, popup: popup}
	m.markers = append(m.markers, mk)
	return mk
}

// RemoveMarker removes a previously added marker.
func (m *Map) RemoveMarker(target mapview.Marker) {
	for i, mk := range m.markers {
		if mapview.Marker(mk) == target {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			return
		}
	}
}

// OnClick registers the map click listener.
func (m *Map) OnClick(fn func(lat, lng float64)) { m.onClick = fn }

// Destroy disposes the resource. Further rendering calls are no-ops.
func (m *Map) Destroy() {
	m.dead = true
	m.markers = nil
	m.onClick = nil
}

// Dead reports whether Destroy has been called.
func (m *Map) Dead() bool { return m.dead }

// MoveCursor moves the pick cursor by whole cells, clamped to the viewport.
func (m *Map) MoveCursor(dCol, dRow int) {
	col, row, _ := m.cellOf(m.cursor)
	col += dCol
	row += dRow
	if col < 0 {
		col = 0
	}
	if col >= m.cols {
		col = m.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= m.rows {
		row = m.rows - 1
	}
	m.cursor = m.latLngAt(col, row)
}

// Cursor returns the pick cursor's coordinates.
func (m *Map) Cursor() listing.LatLng { return m.cursor }

// Click fires a click at the cursor. A marker occupying the cursor's cell
// takes precedence over the map surface, mirroring marker-vs-map click
// dispatch in graphical engines.
func (m *Map) Click() {
	if m.dead {
		return
	}
	cursorCol, cursorRow, _ := m.cellOf(m.cursor)
	for _, mk := range m.markers {
		col, row, ok := m.cellOf(mk.pos)
		if ok && col == cursorCol && row == cursorRow && mk.onClick != nil {
			mk.onClick()
			return
		}
	}
	if m.onClick != nil {
		m.onClick(m.cursor.Lat, m.cursor.Lng)
	}
}

// PopupUnderCursor returns the popup of the marker at the cursor cell, or
// "" when the cursor is over open map.
func (m *Map) PopupUnderCursor() string {
	cursorCol, cursorRow, _ := m.cellOf(m.cursor)
	for _, mk := range m.markers {
		col, row, ok := m.cellOf(mk.pos)
		if ok && col == cursorCol && row == cursorRow {
			return mk.popup
		}
	}
	return ""
}

// Render draws the bordered grid with markers and cursor, plus a status
// line, and returns it as a string.
func (m *Map) Render() string {
	if m.dead {
		return ""
	}

	grid := make([][]rune, m.rows)
	for r := range grid {
		grid[r] = make([]rune, m.cols)
		for c := range grid[r] {
			grid[r][c] = '·'
		}
	}

	for i, mk := range m.markers {
		if col, row, ok := m.cellOf(mk.pos); ok {
			grid[row][col] = markerGlyph(i)
		}
	}
	if col, row, ok := m.cellOf(m.cursor); ok {
		if grid[row][col] == '·' {
			grid[row][col] = '+'
		}
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", m.cols) + "┐\n")
	for _, row := range grid {
		b.WriteString("│")
		b.WriteString(string(row))
		b.WriteString("│\n")
	}
	b.WriteString("└" + strings.Repeat("─", m.cols) + "┘\n")
	fmt.Fprintf(&b, "center %.4f,%.4f  zoom %d  cursor %.4f,%.4f\n",
		m.center.Lat, m.center.Lng, m.zoom, m.cursor.Lat, m.cursor.Lng)
	return b.String()
}

// Draw renders the map to the engine's output.
func (m *Map) Draw() {
	if m.dead {
		return
	}
	fmt.Fprint(m.engine.out, m.Render())
}

// markerGlyph assigns markers the glyphs 1-9 then a-z, wrapping after that.
func markerGlyph(i int) rune {
	if i < 9 {
		return rune('1' + i)
	}
	return rune('a' + (i-9)%26)
}

type marker struct {
	pos     listing.LatLng
	popup   string
	onClick func()
}

func (mk *marker) SetPosition(pos listing.LatLng) { mk.pos = pos }

func (mk *marker) OnClick(fn func()) { mk.onClick = fn }

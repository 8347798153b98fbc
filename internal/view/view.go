// Package view hosts the top-level state machine selecting between the
// browse and create views. Its transitions are the sole trigger for map
// lifecycle actions; rendering code never decides lifecycle implicitly.
package view

import (
	"go.uber.org/zap"

	"landmarket/internal/editor"
	"landmarket/internal/listing"
	"landmarket/internal/mapview"
	"landmarket/internal/store"
)

// Tab identifies the two mutually exclusive views.
type Tab int

const (
	Browse Tab = iota
	Create
)

func (t Tab) String() string {
	if t == Create {
		return "create"
	}
	return "browse"
}

// Controller wires the listing store, the coordinate editor, the per-view
// map lifecycles and the marker synchronizers together. Initial state is
// Browse. The draft survives tab switches; it resets only on explicit reset
// or after a successful submit.
type Controller struct {
	store  *store.ListingStore
	editor *editor.Editor
	draft  listing.Draft

	browseLC   *mapview.Lifecycle
	createLC   *mapview.Lifecycle
	browseSync *mapview.BrowseSync
	draftSync  *mapview.DraftSync

	active Tab
}

// NewController builds the controller and shows the browse view. district
// may be nil when no boundary data is available.
func NewController(engine mapview.Engine, st *store.ListingStore, ed *editor.Editor, district func(listing.LatLng) string, log *zap.SugaredLogger) *Controller {
	c := &Controller{
		store:      st,
		editor:     ed,
		browseSync: mapview.NewBrowseSync(district),
		draftSync:  &mapview.DraftSync{},
		active:     Browse,
	}

	syncBrowse := func(m mapview.Map) { c.browseSync.Sync(m, st.All()) }
	c.browseLC = mapview.NewLifecycle(engine, "browse", syncBrowse, syncBrowse, log)

	c.createLC = mapview.NewLifecycle(engine, "create",
		func(m mapview.Map) {
			// Create-view instance only: map clicks feed the editor.
			m.OnClick(ed.SetFromMapClick)
			c.draftSync.Sync(m, ed.Current())
		},
		func(m mapview.Map) { c.draftSync.Sync(m, ed.Current()) },
		log)

	// Fan-out: every editor mutation reconciles the draft marker before the
	// next render; every store change re-syncs the browse markers.
	ed.OnChange(func(pos listing.LatLng) { c.draftSync.Sync(c.createLC.Map(), pos) })
	st.OnChange(func() { c.browseSync.Sync(c.browseLC.Map(), st.All()) })

	c.browseLC.Show()
	return c
}

// Active returns the currently selected tab.
func (c *Controller) Active() Tab {
	return c.active
}

// Draft exposes the in-progress draft for form edits. Its location is taken
// from the coordinate editor at submit time.
func (c *Controller) Draft() *listing.Draft {
	return &c.draft
}

// SelectTab switches the active view. The hidden view's map resource is
// disposed and the newly visible one is built fresh. Re-selecting the
// already-active tab refreshes it instead (the hidden-then-shown,
// no-remount path). The draft is untouched either way.
func (c *Controller) SelectTab(t Tab) {
	if t == c.active {
		c.activeLifecycle().Refresh()
		return
	}
	switch c.active {
	case Browse:
		c.browseLC.Hide()
		c.browseSync.Drop()
	case Create:
		c.createLC.Hide()
		c.draftSync.Drop()
	}
	c.active = t
	c.activeLifecycle().Show()
}

func (c *Controller) activeLifecycle() *mapview.Lifecycle {
	if c.active == Create {
		return c.createLC
	}
	return c.browseLC
}

// Refresh re-measures the visible view after a layout change such as a
// terminal resize.
func (c *Controller) Refresh() {
	c.activeLifecycle().Refresh()
}

// Submit promotes the draft. On success the store has appended and
// persisted, the draft and editor are back at defaults, and the controller
// is on the browse view. On validation failure nothing changes and the
// error is returned for the UI to surface.
func (c *Controller) Submit() (listing.Listing, error) {
	c.draft.Location = c.editor.Current()
	l, err := c.store.Append(c.draft)
	if err != nil {
		return listing.Listing{}, err
	}
	c.ResetDraft()
	c.SelectTab(Browse)
	return l, nil
}

// ResetDraft clears the draft and restores the coordinate editor's default
// location.
func (c *Controller) ResetDraft() {
	c.draft = listing.Draft{}
	c.editor.Reset()
}

// FocusListing recenters the browse map on the given listing at
// neighborhood zoom, mirroring a marker click. No-op while the browse map
// is absent.
func (c *Controller) FocusListing(l listing.Listing) {
	if m := c.browseLC.Map(); m != nil {
		m.SetView(l.Location, mapview.FocusZoom)
	}
}

// BrowseMap returns the browse view's live map resource, or nil.
func (c *Controller) BrowseMap() mapview.Map {
	return c.browseLC.Map()
}

// CreateMap returns the create view's live map resource, or nil.
func (c *Controller) CreateMap() mapview.Map {
	return c.createLC.Map()
}

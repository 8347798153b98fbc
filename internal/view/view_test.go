package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"landmarket/internal/editor"
	"landmarket/internal/listing"
	"landmarket/internal/mapview/mapviewtest"
	"landmarket/internal/store"
	"landmarket/internal/view"
)

func newController(t *testing.T) (*view.Controller, *mapviewtest.Engine, *store.ListingStore, *editor.Editor) {
	t.Helper()
	engine := &mapviewtest.Engine{}
	log := zap.NewNop().Sugar()
	st := store.NewListingStore(store.NewFileStorage(t.TempDir()), log)
	ed := editor.New()
	c := view.NewController(engine, st, ed, nil, log)
	return c, engine, st, ed
}

func TestInitialStateIsBrowsing(t *testing.T) {
	c, engine, _, _ := newController(t)

	assert.Equal(t, view.Browse, c.Active())
	require.Len(t, engine.Live(), 1)
	assert.Equal(t, "browse", engine.Live()[0].Container)
}

func TestTabSwitchSwapsMapResources(t *testing.T) {
	c, engine, _, _ := newController(t)

	c.SelectTab(view.Create)
	assert.Equal(t, view.Create, c.Active())
	require.Len(t, engine.Live(), 1, "exactly one map resource per visible view")
	assert.Equal(t, "create", engine.Live()[0].Container)
	assert.True(t, engine.Created[0].Destroyed, "hidden view's resource must be disposed")

	c.SelectTab(view.Browse)
	require.Len(t, engine.Live(), 1)
	assert.Equal(t, "browse", engine.Live()[0].Container)
}

func TestReselectingActiveTabRefreshes(t *testing.T) {
	c, engine, _, _ := newController(t)

	c.SelectTab(view.Browse)
	require.Len(t, engine.Created, 1, "no rebuild on re-selection")
	assert.Equal(t, 1, engine.Created[0].Invalidated)
}

func TestDraftSurvivesTabSwitch(t *testing.T) {
	c, _, _, ed := newController(t)

	c.SelectTab(view.Create)
	c.Draft().Title = "Half-typed"
	ed.SetFromMapClick(11, 71)

	c.SelectTab(view.Browse)
	c.SelectTab(view.Create)

	assert.Equal(t, "Half-typed", c.Draft().Title)
	assert.Equal(t, listing.LatLng{Lat: 11, Lng: 71}, ed.Current())

	// The fresh create map carries the draft marker at the editor's value.
	created := lastLive(t, c)
	require.Len(t, created.Markers, 1)
	assert.Equal(t, listing.LatLng{Lat: 11, Lng: 71}, created.Markers[0].Pos)
}

func lastLive(t *testing.T, c *view.Controller) *mapviewtest.Map {
	t.Helper()
	m, ok := c.CreateMap().(*mapviewtest.Map)
	if !ok {
		m, ok = c.BrowseMap().(*mapviewtest.Map)
	}
	require.True(t, ok)
	return m
}

func TestMapClickFeedsEditor(t *testing.T) {
	c, engine, _, ed := newController(t)

	c.SelectTab(view.Create)
	createMap := engine.Live()[0]
	createMap.Click(15.5, 75.5)

	assert.Equal(t, listing.LatLng{Lat: 15.5, Lng: 75.5}, ed.Current())
	// The draft marker followed the click before any further event.
	require.Len(t, createMap.Markers, 1)
	assert.Equal(t, listing.LatLng{Lat: 15.5, Lng: 75.5}, createMap.Markers[0].Pos)
}

func TestSubmitAppendsResetsAndReturnsToBrowse(t *testing.T) {
	c, engine, st, ed := newController(t)

	c.SelectTab(view.Create)
	c.Draft().Title = "Farm A"
	c.Draft().Price = 100000
	c.Draft().Area = 2
	ed.SetFromMapClick(20.0, 78.0)

	l, err := c.Submit()
	require.NoError(t, err)

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, view.Browse, c.Active())
	require.Len(t, st.All(), 1)
	assert.Equal(t, listing.LatLng{Lat: 20.0, Lng: 78.0}, st.All()[0].Location)

	// Draft and editor are back at defaults.
	assert.Empty(t, c.Draft().Title)
	assert.Equal(t, listing.DefaultLocation, ed.Current())

	// Browse map shows one marker per listing.
	browse := engine.Live()[0]
	assert.Equal(t, "browse", browse.Container)
	assert.Len(t, browse.Markers, 1)
}

func TestSubmitValidationFailureChangesNothing(t *testing.T) {
	c, _, st, _ := newController(t)

	c.SelectTab(view.Create)
	c.Draft().Title = "No price"

	_, err := c.Submit()
	var verr *listing.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, view.Create, c.Active(), "no state transition on validation failure")
	assert.Empty(t, st.All())
	assert.Equal(t, "No price", c.Draft().Title, "draft preserved for correction")
}

func TestBrowseMarkersTrackStoreWhileVisible(t *testing.T) {
	c, engine, st, _ := newController(t)

	browse := engine.Live()[0]
	for i := 0; i < 3; i++ {
		_, err := st.Append(listing.Draft{
			Title:    "Plot",
			Price:    1000,
			Area:     1,
			Location: listing.LatLng{Lat: 20, Lng: 78},
		})
		require.NoError(t, err)
		assert.Len(t, browse.Markers, i+1)
	}
	_ = c
}

func TestConstructionFailureLeavesUIUsable(t *testing.T) {
	engine := &mapviewtest.Engine{FailNext: true}
	log := zap.NewNop().Sugar()
	st := store.NewListingStore(store.NewFileStorage(t.TempDir()), log)
	ed := editor.New()

	c := view.NewController(engine, st, ed, nil, log)
	assert.Nil(t, c.BrowseMap())

	// Everything else keeps working without a live map.
	c.Draft().Title = "Farm A"
	c.Draft().Price = 1
	c.Draft().Area = 1
	_, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, view.Browse, c.Active())
}

func TestFocusListing(t *testing.T) {
	c, engine, st, _ := newController(t)

	l, err := st.Append(listing.Draft{
		Title:    "Farm A",
		Price:    1000,
		Area:     1,
		Location: listing.LatLng{Lat: 23, Lng: 80},
	})
	require.NoError(t, err)

	c.FocusListing(l)
	browse := engine.Live()[0]
	assert.Equal(t, l.Location, browse.Center)
	assert.Equal(t, 12, browse.CurrentZoom)
}

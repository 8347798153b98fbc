package mapview

import (
	"go.uber.org/zap"

	"landmarket/internal/listing"
)

// Lifecycle owns one view's map resource. Two states: absent (no resource)
// and live. The resource is built when the view becomes visible and fully
// disposed when it hides; it is never kept alive in the background, and a
// re-visit always performs a fresh build.
type Lifecycle struct {
	engine    Engine
	container string
	onLive    func(Map) // attach listeners and push initial markers
	onRefresh func(Map) // re-push markers after a layout change
	log       *zap.SugaredLogger

	m Map // nil while absent
}

// NewLifecycle returns a controller in the absent state. onLive runs once
// per construction, onRefresh on every size invalidation.
func NewLifecycle(engine Engine, container string, onLive, onRefresh func(Map), log *zap.SugaredLogger) *Lifecycle {
	return &Lifecycle{
		engine:    engine,
		container: container,
		onLive:    onLive,
		onRefresh: onRefresh,
		log:       log,
	}
}

// Show materializes the resource if absent, anchored to the base view.
// Construction failure is non-fatal: the state stays absent, a warning is
// logged, and the surrounding UI remains usable without a map. A later Show
// retries from scratch.
func (lc *Lifecycle) Show() {
	if lc.m != nil {
		return
	}
	m, err := lc.engine.CreateMap(lc.container, listing.DefaultLocation, OverviewZoom)
	if err != nil {
		lc.log.Warnw("map unavailable", "view", lc.container, "error", err)
		return
	}
	lc.m = m
	if lc.onLive != nil {
		lc.onLive(m)
	}
}

// Hide disposes the resource fully. No references are retained; the next
// Show builds a new resource rather than reusing this one.
func (lc *Lifecycle) Hide() {
	if lc.m == nil {
		return
	}
	lc.m.Destroy()
	lc.m = nil
}

// Refresh handles a view that was hidden and shown again without a remount:
// the surrounding layout may have changed, so the rendered size is
// invalidated and the markers are pushed again. The resource is not
// recreated. No-op while absent.
func (lc *Lifecycle) Refresh() {
	if lc.m == nil {
		return
	}
	lc.m.InvalidateSize()
	if lc.onRefresh != nil {
		lc.onRefresh(lc.m)
	}
}

// Live reports whether a resource currently exists.
func (lc *Lifecycle) Live() bool {
	return lc.m != nil
}

// Map returns the live resource, or nil while absent.
func (lc *Lifecycle) Map() Map {
	return lc.m
}

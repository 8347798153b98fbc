// Package listing defines the land listing data model: the validated,
// immutable Listing, the mutable pre-listing Draft, and the coordinate
// helpers shared by the map and storage layers.
package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LatLng is a WGS-84 coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DefaultLocation is the initial map framing and the draft location before
// the user has picked one.
var DefaultLocation = LatLng{Lat: 20.5937, Lng: 78.9629}

// Listing is a validated, geo-tagged land offer. Immutable after creation.
type Listing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Area        float64 `json:"area"` // acres
	Location    LatLng  `json:"location"`
}

// Draft is the in-progress working copy of a Listing during authoring. It
// may be transiently invalid; it is never persisted or rendered with full
// listing semantics until promoted.
type Draft struct {
	Title       string
	Description string
	Price       float64
	Area        float64
	Location    LatLng
}

// ValidationError reports the first constraint a Draft violates.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the constraints a Draft must satisfy before promotion.
// Coordinates must be finite numbers; range clamping is deliberately not
// applied (see Editor semantics).
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if d.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if d.Area <= 0 {
		return &ValidationError{Field: "area", Reason: "must be greater than zero"}
	}
	if !finite(d.Location.Lat) || !finite(d.Location.Lng) {
		return &ValidationError{Field: "location", Reason: "coordinates must be finite"}
	}
	return nil
}

// Validate reports whether a stored Listing still satisfies the constraints
// enforced at creation time. Used when re-reading persisted snapshots.
func (l Listing) Validate() error {
	if l.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	return Draft{
		Title:    l.Title,
		Price:    l.Price,
		Area:     l.Area,
		Location: l.Location,
	}.Validate()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NewID returns a creation-ordered unique identifier: unix milliseconds
// followed by a UUID prefix. Sorting IDs lexicographically within a session
// matches insertion order; the random suffix makes collisions practically
// impossible.
func NewID() string {
	return fmt.Sprintf("%013d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Promote assigns a fresh ID to a draft, producing the final Listing. The
// draft must already be validated.
func Promote(d Draft) Listing {
	return Listing{
		ID:          NewID(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Area:        d.Area,
		Location:    d.Location,
	}
}

// LookupURL builds the external map lookup URL for a coordinate pair. Pure
// string construction, no network call.
func LookupURL(loc LatLng) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(loc.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(loc.Lng, 'f', -1, 64)
}

package store

import (
	"encoding/json"

	"go.uber.org/zap"

	"landmarket/internal/listing"
)

// listingsKey is the single logical key under which the full listing
// snapshot is persisted.
const listingsKey = "land_listings"

// ListingStore holds the in-memory listing sequence (insertion order) backed
// by a persisted snapshot. Listings are append-only: no update or delete.
// All access happens on the single UI event path; there is no locking.
type ListingStore struct {
	storage   Storage
	log       *zap.SugaredLogger
	listings  []listing.Listing
	observers []func()
}

// NewListingStore loads the persisted snapshot once and returns the store.
// A missing or unreadable snapshot yields an empty collection, never an
// error.
func NewListingStore(storage Storage, log *zap.SugaredLogger) *ListingStore {
	s := &ListingStore{storage: storage, log: log}
	s.listings = s.load()
	return s
}

// OnChange registers an observer notified after every successful append.
func (s *ListingStore) OnChange(fn func()) {
	s.observers = append(s.observers, fn)
}

// load reads and decodes the persisted snapshot. Corrupt entries are
// dropped one by one rather than failing the whole load: a single malformed
// record must not block access to the rest.
func (s *ListingStore) load() []listing.Listing {
	raw, ok, err := s.storage.Get(listingsKey)
	if err != nil {
		s.log.Warnw("listing snapshot unreadable, starting empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warnw("listing snapshot is not a sequence, starting empty", "error", err)
		return nil
	}

	var out []listing.Listing
	for _, entry := range entries {
		var l listing.Listing
		if err := json.Unmarshal(entry, &l); err != nil {
			continue
		}
		if l.Validate() != nil {
			continue
		}
		out = append(out, l)
	}
	if dropped := len(entries) - len(out); dropped > 0 {
		s.log.Warnw("dropped corrupt listing entries", "dropped", dropped, "kept", len(out))
	}
	return out
}

// Append validates the draft, promotes it with a fresh ID, appends it to the
// in-memory sequence, and persists the full snapshot. On validation failure
// the sequence is unchanged and nothing is written. A persistence failure
// does not roll back the in-memory state: losing user input over a storage
// hiccup is worse than a stale snapshot.
func (s *ListingStore) Append(d listing.Draft) (listing.Listing, error) {
	if err := d.Validate(); err != nil {
		return listing.Listing{}, err
	}

	l := listing.Promote(d)
	s.listings = append(s.listings, l)

	if err := s.persist(); err != nil {
		s.log.Warnw("failed to persist listings, keeping in-memory state", "error", err)
	}
	for _, fn := range s.observers {
		fn()
	}
	return l, nil
}

// persist writes the full snapshot. Not an incremental log: listing volumes
// are small and a single write keeps the stored form trivially consistent.
func (s *ListingStore) persist() error {
	b, err := json.Marshal(s.listings)
	if err != nil {
		return err
	}
	return s.storage.Set(listingsKey, string(b))
}

// All returns the current in-memory sequence in insertion order.
func (s *ListingStore) All() []listing.Listing {
	return s.listings
}

package listing

import (
	"sort"
	"sync"
)

// Store holds the authoritative listing set for a session and a derived,
// filtered view. Load and SetFilter recompute the view synchronously;
// the store is safe for concurrent readers.
type Store struct {
	mu       sync.RWMutex
	all      []*Listing
	criteria Criteria
	visible  []*Listing
}

// NewStore creates an empty store with no active filter.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the full listing set. The active filter criteria are
// kept and reapplied to the new set.
func (s *Store) Load(listings []*Listing) {
	normalized := make([]*Listing, len(listings))
	copy(normalized, listings)
	SortDefault(normalized)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = normalized
	s.visible = Apply(s.all, s.criteria)
}

// SetFilter replaces the active criteria and recomputes the visible set.
func (s *Store) SetFilter(c Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.visible = Apply(s.all, s.criteria)
}

// Visible returns the listings matching the active criteria, in load
// order (featured first, then name). The returned slice must not be
// modified by the caller.
func (s *Store) Visible() []*Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

// VisibleWith returns the listings matching c without changing the
// store's active criteria. Used by request handlers that carry their
// own per-request filters.
func (s *Store) VisibleWith(c Criteria) []*Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Apply(s.all, c)
}

// All returns the full listing set in load order.
func (s *Store) All() []*Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all
}

// BySlug returns the first listing whose slug matches, or nil.
func (s *Store) BySlug(slug string) *Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.all {
		if l.Slug == slug {
			return l
		}
	}
	return nil
}

// ByIDs resolves ids against the current set, preserving the order of
// ids. Unknown ids are dropped.
func (s *Store) ByIDs(ids []string) []*Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[string]*Listing, len(s.all))
	for _, l := range s.all {
		byID[l.ID] = l
	}
	var out []*Listing
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Cities returns the sorted distinct city names in the current set.
func (s *Store) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var cities []string
	for _, l := range s.all {
		if l.City != "" && !seen[l.City] {
			seen[l.City] = true
			cities = append(cities, l.City)
		}
	}
	sort.Strings(cities)
	return cities
}

// Len returns the size of the full set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.all)
}

// Package compare maintains the bounded selection of listings chosen for
// side-by-side comparison, and persists it between sessions.
package compare

// DefaultCapacity is the number of listings a comparison view holds.
const DefaultCapacity = 3

// Set is an ordered, deduplicated collection of listing ids with a fixed
// capacity. All operations are total: adding past capacity, adding a
// duplicate, or removing an absent id are no-ops, never errors.
type Set struct {
	capacity int
	ids      []string
}

// NewSet creates an empty set. A non-positive capacity falls back to
// DefaultCapacity.
func NewSet(capacity int) *Set {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Set{capacity: capacity}
}

// Add appends id unless the set is full or already contains it. It
// reports whether the set changed.
func (s *Set) Add(id string) bool {
	if !s.CanAdd() || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id if present and reports whether the set changed.
func (s *Set) Remove(id string) bool {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// CanAdd reports whether there is room for another listing.
func (s *Set) CanAdd() bool {
	return len(s.ids) < s.capacity
}

// Clear empties the set.
func (s *Set) Clear() {
	s.ids = nil
}

// Len returns the number of selected listings.
func (s *Set) Len() int {
	return len(s.ids)
}

// Capacity returns the maximum number of selected listings.
func (s *Set) Capacity() int {
	return s.capacity
}

// IDs returns the selected ids in insertion order. The comparison view
// renders them left to right in this order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

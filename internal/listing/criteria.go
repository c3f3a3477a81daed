package listing

import (
	"sort"
	"strconv"
	"strings"
)

// Criteria is the active combination of filter constraints. Zero-value or
// absent fields impose no constraint; a nil bound means that side of the
// range is open.
type Criteria struct {
	Query        string   `json:"query,omitempty"`
	City         string   `json:"city,omitempty"`
	District     string   `json:"district,omitempty"`
	Status       []string `json:"status,omitempty"`
	PropertyType []string `json:"property_type,omitempty"`
	MinArea      *float64 `json:"min_area,omitempty"`
	MaxArea      *float64 `json:"max_area,omitempty"`
	MinRent      *float64 `json:"min_rent,omitempty"`
	MaxRent      *float64 `json:"max_rent,omitempty"`
}

// IsEmpty returns true if no constraint is active.
func (c Criteria) IsEmpty() bool {
	return c.Query == "" && c.City == "" && c.District == "" &&
		len(c.Status) == 0 && len(c.PropertyType) == 0 &&
		c.MinArea == nil && c.MaxArea == nil &&
		c.MinRent == nil && c.MaxRent == nil
}

// Matches reports whether l satisfies every active constraint.
func (c Criteria) Matches(l *Listing) bool {
	if c.Query != "" && !matchesQuery(l, c.Query) {
		return false
	}
	if c.City != "" && !strings.EqualFold(c.City, l.City) {
		return false
	}
	if c.District != "" && !strings.EqualFold(c.District, l.District) {
		return false
	}
	if len(c.Status) > 0 && !containsString(c.Status, string(l.Status)) {
		return false
	}
	if len(c.PropertyType) > 0 && !containsString(c.PropertyType, string(l.PropertyType)) {
		return false
	}
	if c.MinArea != nil && l.TotalArea < *c.MinArea {
		return false
	}
	if c.MaxArea != nil && l.TotalArea > *c.MaxArea {
		return false
	}
	if c.MinRent != nil || c.MaxRent != nil {
		// Unpriced projects never satisfy an active rent bound: filtering
		// on price must not surface listings whose price is unknown.
		if l.RentPricePerSqm == nil {
			return false
		}
		if c.MinRent != nil && *l.RentPricePerSqm < *c.MinRent {
			return false
		}
		if c.MaxRent != nil && *l.RentPricePerSqm > *c.MaxRent {
			return false
		}
	}
	return true
}

// matchesQuery does a case-insensitive substring match across the
// searchable text fields of a listing.
func matchesQuery(l *Listing, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{l.Name, l.Developer, l.Address, l.District, l.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Apply returns the listings matching c, preserving input order.
func Apply(listings []*Listing, c Criteria) []*Listing {
	matched := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if c.Matches(l) {
			matched = append(matched, l)
		}
	}
	return matched
}

// SortDefault orders listings featured-first, then by name ascending.
// This matches the CMS default sort and is applied on every load so the
// filtered view inherits it.
func SortDefault(listings []*Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].Featured != listings[j].Featured {
			return listings[i].Featured
		}
		return listings[i].Name < listings[j].Name
	})
}

// ParseBound parses a numeric bound from external text input. Malformed
// or empty input means "no bound", never an error.
func ParseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

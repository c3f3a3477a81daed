// Package listing provides the office-project domain model, the filter
// criteria predicate, and the in-memory listing store.
package listing

import (
	"strings"
	"time"
)

// Status represents the commercial availability of a project.
type Status string

const (
	StatusAvailable         Status = "Available"
	StatusUnderConstruction Status = "Under Construction"
	StatusSoldOut           Status = "Sold Out"
	StatusComingSoon        Status = "Coming Soon"
)

// ValidStatus returns true if s is a known project status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusAvailable, StatusUnderConstruction, StatusSoldOut, StatusComingSoon:
		return true
	}
	return false
}

// PropertyType classifies the kind of office product a project offers.
type PropertyType string

const (
	TypeGradeAOffice PropertyType = "Grade A Office"
	TypeGradeBOffice PropertyType = "Grade B Office"
	TypeCoWorking    PropertyType = "Co-working"
	TypeMixedUse     PropertyType = "Mixed Use"
)

// ValidPropertyType returns true if t is a known property type.
func ValidPropertyType(t string) bool {
	switch PropertyType(t) {
	case TypeGradeAOffice, TypeGradeBOffice, TypeCoWorking, TypeMixedUse:
		return true
	}
	return false
}

// Image is a single project photo or plan attachment.
type Image struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Type     string `json:"type"` // hero, gallery, or floorplan
}

// Listing is an immutable snapshot of one office project as fetched from
// the CMS. The aggregator never mutates listings after load.
type Listing struct {
	ID            string       `json:"id"`
	Slug          string       `json:"slug"`
	Name          string       `json:"name"`
	Developer     string       `json:"developer"`
	DeveloperLogo string       `json:"developer_logo,omitempty"`
	Status        Status       `json:"status"`
	PropertyType  PropertyType `json:"property_type"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	District      string       `json:"district"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`

	// Areas are in square meters.
	TotalArea   float64 `json:"total_area"`
	MinUnitSize float64 `json:"min_unit_size"`
	MaxUnitSize float64 `json:"max_unit_size"`

	// Prices are per square meter; nil means the project is unpriced.
	SalePricePerSqm *float64 `json:"sale_price_per_sqm,omitempty"`
	RentPricePerSqm *float64 `json:"rent_price_per_sqm,omitempty"`

	Floors         int       `json:"floors"`
	CompletionDate string    `json:"completion_date,omitempty"`
	Description    string    `json:"description"`
	Amenities      []string  `json:"amenities"`
	Certifications []string  `json:"certifications"`
	Featured       bool      `json:"featured"`
	Images         []Image   `json:"images"`
	FloorPlanURL   string    `json:"floor_plan_url,omitempty"`
	BrochureURL    string    `json:"brochure_url,omitempty"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	ContactPhone   string    `json:"contact_phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Slugify derives a URL-safe slug from a project name. Slugs are lookup
// keys but are not guaranteed unique across projects.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

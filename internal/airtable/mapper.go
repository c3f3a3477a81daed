package airtable

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/didzisbondars-dot/officebase/internal/listing"
)

// transformRecord maps one raw CMS row to the canonical listing shape.
// Column names have drifted across spreadsheet revisions ("Project Name"
// vs "Project name", "GLA"/"GBA" area abbreviations), so every lookup
// tries the known aliases in order. Nothing outside this package sees a
// source field name.
func transformRecord(rec record) *listing.Listing {
	f := rec.Fields

	name := fieldString(f, "Project Name", "Project name", "Name")
	slug := fieldString(f, "Slug")
	if slug == "" {
		slug = listing.Slugify(name)
	}
	if slug == "" {
		slug = rec.ID
	}

	status := fieldString(f, "Status")
	if !listing.ValidStatus(status) {
		status = string(listing.StatusAvailable)
	}
	propertyType := fieldString(f, "Property Type", "Property type", "Type")
	if !listing.ValidPropertyType(propertyType) {
		propertyType = string(listing.TypeGradeAOffice)
	}

	l := &listing.Listing{
		ID:            rec.ID,
		Slug:          slug,
		Name:          name,
		Developer:     fieldString(f, "Developer"),
		DeveloperLogo: firstAttachmentURL(f, "Developer Logo"),
		Status:        listing.Status(status),
		PropertyType:  listing.PropertyType(propertyType),
		Address:       fieldString(f, "Address"),
		City:          fieldString(f, "City"),
		District:      fieldString(f, "District"),
		Latitude:      fieldFloat(f, "Latitude"),
		Longitude:     fieldFloat(f, "Longitude"),
		TotalArea:     fieldFloat(f, "Total Area (sqm)", "Total area (sqm)", "GLA (sqm)", "GLA", "GBA"),
		MinUnitSize:   fieldFloat(f, "Min Unit Size (sqm)", "Min unit size (sqm)"),
		MaxUnitSize:   fieldFloat(f, "Max Unit Size (sqm)", "Max unit size (sqm)"),
		Floors:        int(fieldFloat(f, "Floors")),
		CompletionDate: fieldString(f, "Completion Date", "Completion date"),
		Description:    fieldString(f, "Description"),
		Amenities:      fieldStrings(f, "Amenities"),
		Certifications: fieldStrings(f, "Certifications"),
		Featured:       fieldBool(f, "Featured"),
		Images:         fieldAttachments(f, "Images"),
		FloorPlanURL:   firstAttachmentURL(f, "Floor Plan", "Floor plan"),
		BrochureURL:    firstAttachmentURL(f, "Brochure"),
		ContactEmail:   fieldString(f, "Contact Email", "Contact email"),
		ContactPhone:   fieldString(f, "Contact Phone", "Contact phone"),
		CreatedAt:      rec.CreatedTime,
		UpdatedAt:      rec.CreatedTime,
	}

	l.SalePricePerSqm = fieldFloatPtr(f, "Sale Price per sqm", "Sale price per sqm")
	l.RentPricePerSqm = fieldFloatPtr(f, "Rent Price per sqm", "Rent price per sqm", "Rent (EUR/sqm)")

	return l
}

// attachment is the CMS representation of an uploaded file.
type attachment struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// fieldString tries keys in order and returns the first non-empty string.
func fieldString(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err == nil && v != "" {
			return v
		}
	}
	return ""
}

// fieldFloat tries keys in order and returns the first numeric value.
// The spreadsheet sometimes stores numbers as text, so numeric strings
// parse too; anything else counts as zero.
func fieldFloat(fields map[string]json.RawMessage, keys ...string) float64 {
	if v := fieldFloatPtr(fields, keys...); v != nil {
		return *v
	}
	return 0
}

func fieldFloatPtr(fields map[string]json.RawMessage, keys ...string) *float64 {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return &n
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

// fieldBool reads a checkbox column. Airtable omits unchecked boxes, so
// a missing key is false.
func fieldBool(fields map[string]json.RawMessage, keys ...string) bool {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return n != 0
		}
	}
	return false
}

// fieldStrings reads a multi-select column.
func fieldStrings(fields map[string]json.RawMessage, keys ...string) []string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v []string
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	return nil
}

// fieldAttachments reads an attachment column into gallery images.
func fieldAttachments(fields map[string]json.RawMessage, keys ...string) []listing.Image {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var atts []attachment
		if err := json.Unmarshal(raw, &atts); err != nil {
			continue
		}
		images := make([]listing.Image, 0, len(atts))
		for _, a := range atts {
			images = append(images, listing.Image{
				ID:       a.ID,
				URL:      a.URL,
				Filename: a.Filename,
				Type:     "gallery",
			})
		}
		return images
	}
	return nil
}

// firstAttachmentURL returns the URL of the first attachment in a column.
func firstAttachmentURL(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var atts []attachment
		if err := json.Unmarshal(raw, &atts); err == nil && len(atts) > 0 {
			return atts[0].URL
		}
	}
	return ""
}

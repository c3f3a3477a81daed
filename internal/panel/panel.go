// Package panel accumulates independently-edited filter fields and emits
// a consistent criteria snapshot after every committing edit. The panel
// knows nothing about who consumes the criteria; it only calls back.
package panel

import (
	"github.com/didzisbondars-dot/officebase/internal/listing"
	"github.com/didzisbondars-dot/officebase/internal/slider"
)

// Panel is the filter editing state for one session.
//
// Query, city, district and the status/type toggles commit immediately.
// The area text fields are lazily committed: typed digits only update
// local state until CommitArea (the blur/apply moment), so the listing
// set is not re-filtered on every keystroke. The rent slider is the
// opposite: every drag movement commits, for live feedback.
type Panel struct {
	query    string
	city     string
	district string
	status   []string
	types    []string

	minAreaText string
	maxAreaText string

	rent     *slider.Slider
	onChange func(listing.Criteria)
}

// New creates a panel. rent may be nil when the hosting view has no rent
// control. onChange receives the assembled criteria after every commit.
func New(rent *slider.Slider, onChange func(listing.Criteria)) *Panel {
	p := &Panel{rent: rent, onChange: onChange}
	if rent != nil {
		rent.OnChange(func(low, high float64) { p.commit() })
	}
	return p
}

// SetQuery updates the free-text query and commits.
func (p *Panel) SetQuery(q string) {
	p.query = q
	p.commit()
}

// SetCity updates the city selection and commits. Empty clears it.
func (p *Panel) SetCity(city string) {
	p.city = city
	p.commit()
}

// SetDistrict updates the district selection and commits. Empty clears it.
func (p *Panel) SetDistrict(district string) {
	p.district = district
	p.commit()
}

// ToggleStatus adds s to the status selection, or removes it when
// already selected, and commits.
func (p *Panel) ToggleStatus(s string) {
	p.status = toggle(p.status, s)
	p.commit()
}

// ToggleType adds t to the property-type selection, or removes it when
// already selected, and commits.
func (p *Panel) ToggleType(t string) {
	p.types = toggle(p.types, t)
	p.commit()
}

// SetMinAreaText updates the minimum-area display text without committing.
func (p *Panel) SetMinAreaText(s string) {
	p.minAreaText = s
}

// SetMaxAreaText updates the maximum-area display text without committing.
func (p *Panel) SetMaxAreaText(s string) {
	p.maxAreaText = s
}

// CommitArea commits the pending area text fields.
func (p *Panel) CommitArea() {
	p.commit()
}

// RentSlider returns the panel's rent range control, or nil. Drags on it
// commit through the panel on every movement.
func (p *Panel) RentSlider() *slider.Slider {
	return p.rent
}

// ClearAll resets every field to its default and emits empty criteria,
// which a listing store reads as "all listings visible".
func (p *Panel) ClearAll() {
	p.query = ""
	p.city = ""
	p.district = ""
	p.status = nil
	p.types = nil
	p.minAreaText = ""
	p.maxAreaText = ""
	if p.rent != nil {
		p.rent.Reset()
	}
	p.commit()
}

// Criteria assembles the current snapshot. Empty toggle sets are omitted
// entirely so the consumer treats them as unconstrained, and malformed
// area text parses to an open bound. The rent bounds are only set when
// the slider has been narrowed from the domain edges.
func (p *Panel) Criteria() listing.Criteria {
	c := listing.Criteria{
		Query:    p.query,
		City:     p.city,
		District: p.district,
		MinArea:  listing.ParseBound(p.minAreaText),
		MaxArea:  listing.ParseBound(p.maxAreaText),
	}
	if len(p.status) > 0 {
		c.Status = append([]string(nil), p.status...)
	}
	if len(p.types) > 0 {
		c.PropertyType = append([]string(nil), p.types...)
	}
	if p.rent != nil {
		low, high := p.rent.Values()
		defLow, defHigh := p.rent.DefaultValues()
		if low != defLow {
			c.MinRent = &low
		}
		if high != defHigh {
			c.MaxRent = &high
		}
	}
	return c
}

func (p *Panel) commit() {
	if p.onChange != nil {
		p.onChange(p.Criteria())
	}
}

func toggle(set []string, v string) []string {
	for i, existing := range set {
		if existing == v {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, v)
}

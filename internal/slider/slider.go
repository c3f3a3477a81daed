// Package slider implements a two-handle numeric range input over a fixed
// domain, optionally snapped to a discrete tick set. It is a pure state
// machine driven by pointer events: idle -> dragging(handle) -> idle.
package slider

import (
	"fmt"
	"math"
	"sort"
)

// Handle identifies one of the two draggable endpoints.
type Handle int

const (
	HandleNone Handle = iota
	HandleLow
	HandleHigh
)

// Slider picks a sub-range [low, high] of [min, max]. In tick mode both
// values are always members of the tick set; otherwise values are whole
// numbers. low <= high holds after every operation.
type Slider struct {
	min, max float64
	ticks    []float64 // sorted, deduplicated; nil in continuous mode

	low, high float64
	dragging  Handle
	onChange  func(low, high float64)
}

// New creates a continuous slider spanning [min, max] with both handles
// at the domain edges.
func New(min, max float64) (*Slider, error) {
	if max < min {
		return nil, fmt.Errorf("invalid domain [%g, %g]", min, max)
	}
	return &Slider{min: min, max: max, low: min, high: max}, nil
}

// NewTicked creates a slider whose handles snap to ticks. Ticks are
// sorted and deduplicated here so nearest-tick lookups stay monotonic;
// ticks outside [min, max] are rejected. The handles start on the first
// and last tick.
func NewTicked(min, max float64, ticks []float64) (*Slider, error) {
	if max < min {
		return nil, fmt.Errorf("invalid domain [%g, %g]", min, max)
	}
	if len(ticks) == 0 {
		return nil, fmt.Errorf("tick mode requires at least one tick")
	}

	cleaned := make([]float64, len(ticks))
	copy(cleaned, ticks)
	sort.Float64s(cleaned)
	deduped := cleaned[:1]
	for _, t := range cleaned[1:] {
		if t != deduped[len(deduped)-1] {
			deduped = append(deduped, t)
		}
	}
	for _, t := range deduped {
		if t < min || t > max {
			return nil, fmt.Errorf("tick %g outside domain [%g, %g]", t, min, max)
		}
	}

	return &Slider{
		min:   min,
		max:   max,
		ticks: deduped,
		low:   deduped[0],
		high:  deduped[len(deduped)-1],
	}, nil
}

// OnChange registers a callback invoked with the committed pair on every
// drag movement and programmatic set. No throttling.
func (s *Slider) OnChange(fn func(low, high float64)) {
	s.onChange = fn
}

// Values returns the current committed pair.
func (s *Slider) Values() (low, high float64) {
	return s.low, s.high
}

// DefaultValues returns the resting positions of the handles: the domain
// edges, or the outermost ticks in tick mode.
func (s *Slider) DefaultValues() (low, high float64) {
	if len(s.ticks) > 0 {
		return s.ticks[0], s.ticks[len(s.ticks)-1]
	}
	return s.min, s.max
}

// Dragging returns the handle currently being dragged, or HandleNone.
func (s *Slider) Dragging() Handle {
	return s.dragging
}

// BeginDrag enters the dragging state for h. It reports false if a drag
// is already in progress or h is not a real handle.
func (s *Slider) BeginDrag(h Handle) bool {
	if s.dragging != HandleNone || (h != HandleLow && h != HandleHigh) {
		return false
	}
	s.dragging = h
	return true
}

// Drag moves the active handle to the fractional track position frac,
// clamped to [0, 1]. The raw value is snapped, then clamped against the
// other handle so low <= high, then committed. No-op while idle.
func (s *Slider) Drag(frac float64) {
	if s.dragging == HandleNone {
		return
	}
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	// Degenerate domain: both handles are pinned.
	if s.max == s.min {
		s.low, s.high = s.min, s.min
		s.commit()
		return
	}

	val := s.snap(s.min + frac*(s.max-s.min))
	switch s.dragging {
	case HandleLow:
		s.low = s.clampLow(val)
	case HandleHigh:
		s.high = s.clampHigh(val)
	}
	s.commit()
}

// EndDrag returns the slider to idle. Safe to call when already idle.
func (s *Slider) EndDrag() {
	s.dragging = HandleNone
}

// Set commits a pair programmatically, snapping and ordering it. Used to
// restore a saved range or reset to defaults.
func (s *Slider) Set(low, high float64) {
	if high < low {
		low, high = high, low
	}
	s.low = s.snap(clampf(low, s.min, s.max))
	s.high = s.snap(clampf(high, s.min, s.max))
	if s.low > s.high {
		s.low = s.high
	}
	s.commit()
}

// Reset moves both handles back to the domain edges (or the outermost
// ticks) without firing the change callback.
func (s *Slider) Reset() {
	if len(s.ticks) > 0 {
		s.low, s.high = s.ticks[0], s.ticks[len(s.ticks)-1]
		return
	}
	s.low, s.high = s.min, s.max
}

// snap maps a raw in-domain value onto the nearest tick, or rounds it in
// continuous mode. Ties go to the lower tick.
func (s *Slider) snap(raw float64) float64 {
	if len(s.ticks) == 0 {
		return math.Round(raw)
	}
	best := s.ticks[0]
	for _, t := range s.ticks[1:] {
		if math.Abs(t-raw) < math.Abs(best-raw) {
			best = t
		}
	}
	return best
}

// clampLow keeps the low handle below the high one: in tick mode it may
// not reach high (next lower tick wins), in continuous mode it stops one
// step short.
func (s *Slider) clampLow(val float64) float64 {
	if len(s.ticks) > 0 {
		if val < s.high {
			return val
		}
		for i := len(s.ticks) - 1; i >= 0; i-- {
			if s.ticks[i] < s.high {
				return s.ticks[i]
			}
		}
		return s.low
	}
	if val > s.high-1 {
		val = s.high - 1
	}
	return clampf(val, s.min, s.max)
}

func (s *Slider) clampHigh(val float64) float64 {
	if len(s.ticks) > 0 {
		if val > s.low {
			return val
		}
		for _, t := range s.ticks {
			if t > s.low {
				return t
			}
		}
		return s.high
	}
	if val < s.low+1 {
		val = s.low + 1
	}
	return clampf(val, s.min, s.max)
}

func (s *Slider) commit() {
	if s.onChange != nil {
		s.onChange(s.low, s.high)
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

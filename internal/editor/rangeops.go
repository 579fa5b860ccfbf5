package editor

import "github.com/roach88/asptool/internal/scenario"

// Range is a half-open interval [Start, End) over creation order.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of triggers the range covers.
func (r Range) Len() int {
	return r.End - r.Start
}

// NormalizeRange clamps a user supplied deletion range against count
// triggers.
//
// Rules, applied in order:
//   - start < 0 becomes 0; start >= count becomes count-1
//   - end == -1 or end > count becomes count (delete to the end)
//   - end == 0 becomes 1, so a zero end still deletes the first trigger
//   - if start > end the two are swapped
//
// The result is finally clamped into [0, count], which only matters for
// count == 0 or an end below -1.
func NormalizeRange(start, end, count int) (int, int) {
	if start < 0 {
		start = 0
	} else if start >= count {
		start = count - 1
	}

	if end == -1 || end > count {
		end = count
	} else if end == 0 {
		end = 1
	}

	if start > end {
		start, end = end, start
	}

	start = clamp(start, 0, count)
	end = clamp(end, start, count)
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DeleteRange removes the normalized range [start, end) from sc's triggers
// and returns the range used and the number of triggers left.
//
// Survivors keep their relative order. Replacing the sequence renumbers them
// and repairs the display order (see scenario.Scenario.SetTriggers).
func DeleteRange(sc *scenario.Scenario, start, end int) (Range, int) {
	count := len(sc.Triggers)
	s, e := NormalizeRange(start, end, count)
	r := Range{Start: s, End: e}

	if s == 0 && e == count {
		sc.SetTriggers(nil)
		return r, 0
	}

	kept := make([]*scenario.Trigger, 0, count-r.Len())
	kept = append(kept, sc.Triggers[:s]...)
	kept = append(kept, sc.Triggers[e:]...)
	sc.SetTriggers(kept)
	return r, len(kept)
}

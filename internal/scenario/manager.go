package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScenario is returned when a scenario breaks the ID or
	// display order invariants.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrInvalidOrder is returned when a reorder sequence is not a
	// permutation of the trigger IDs.
	ErrInvalidOrder = errors.New("invalid trigger order")
)

// IdentityOrder returns [0, 1, ..., n-1].
func IdentityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// IsPermutation reports whether order holds every integer in [0, n) exactly once.
func IsPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, id := range order {
		if id < 0 || id >= n || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// Validate checks the dense-ID and display order invariants.
func (s *Scenario) Validate() error {
	for i, t := range s.Triggers {
		if t == nil {
			return fmt.Errorf("%w: trigger %d is nil", ErrInvalidScenario, i)
		}
		if t.ID != i {
			return fmt.Errorf("%w: trigger %q at position %d has id %d", ErrInvalidScenario, t.Name, i, t.ID)
		}
	}
	if !IsPermutation(s.DisplayOrder, len(s.Triggers)) {
		return fmt.Errorf("%w: display order %v is not a permutation of %d trigger ids",
			ErrInvalidScenario, s.DisplayOrder, len(s.Triggers))
	}
	return nil
}

// AddTrigger appends a new trigger and shows it last in the display order.
func (s *Scenario) AddTrigger(name string, enabled bool) *Trigger {
	t := &Trigger{
		ID:      len(s.Triggers),
		Name:    name,
		Enabled: enabled,
	}
	s.Triggers = append(s.Triggers, t)
	s.DisplayOrder = append(s.DisplayOrder, t.ID)
	return t
}

// TriggersNamed returns every trigger called name, in creation order.
func (s *Scenario) TriggersNamed(name string) []*Trigger {
	var out []*Trigger
	for _, t := range s.Triggers {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// SetTriggers replaces the trigger sequence with ts, which must be drawn
// from s.Triggers (a subset in any order).
//
// Survivors are renumbered to their new positions. The display order keeps
// the survivors' previous relative order; IDs missing from ts are dropped
// from it. Effect references to dropped triggers become NoTrigger.
func (s *Scenario) SetTriggers(ts []*Trigger) {
	oldToNew := make(map[int]int, len(ts))
	for i, t := range ts {
		oldToNew[t.ID] = i
	}

	display := make([]int, 0, len(ts))
	placed := make([]bool, len(ts))
	for _, old := range s.DisplayOrder {
		if id, ok := oldToNew[old]; ok && !placed[id] {
			display = append(display, id)
			placed[id] = true
		}
	}
	for id, ok := range placed {
		if !ok {
			display = append(display, id)
		}
	}

	remap := func(old int) int {
		if id, ok := oldToNew[old]; ok {
			return id
		}
		return NoTrigger
	}
	for i, t := range ts {
		t.ID = i
		t.remapRefs(remap)
	}

	if ts == nil {
		ts = []*Trigger{}
	}
	s.Triggers = ts
	s.DisplayOrder = display
}

// ImportTriggers inserts deep copies of ts at creation index index and
// returns the copies. A negative or out-of-range index appends.
//
// Existing triggers at or after index shift up by len(ts). The copies enter
// the display order at display position index (or last when appending).
// References between copied triggers follow the copies; references to
// triggers outside ts become NoTrigger.
func (s *Scenario) ImportTriggers(ts []*Trigger, index int) []*Trigger {
	n := len(s.Triggers)
	k := len(ts)
	if index < 0 || index > n {
		index = n
	}
	if k == 0 {
		return nil
	}

	local := make(map[int]int, k)
	for i, t := range ts {
		if _, dup := local[t.ID]; !dup {
			local[t.ID] = index + i
		}
	}
	copies := make([]*Trigger, k)
	for i, t := range ts {
		c := t.Clone()
		c.ID = index + i
		c.remapRefs(func(old int) int {
			if id, ok := local[old]; ok {
				return id
			}
			return NoTrigger
		})
		copies[i] = c
	}

	shift := func(old int) int {
		if old >= index {
			return old + k
		}
		return old
	}
	for _, t := range s.Triggers[index:] {
		t.ID += k
	}
	for _, t := range s.Triggers {
		t.remapRefs(shift)
	}

	triggers := make([]*Trigger, 0, n+k)
	triggers = append(triggers, s.Triggers[:index]...)
	triggers = append(triggers, copies...)
	triggers = append(triggers, s.Triggers[index:]...)
	s.Triggers = triggers

	display := make([]int, 0, n+k)
	pos := index
	if pos > len(s.DisplayOrder) {
		pos = len(s.DisplayOrder)
	}
	for _, old := range s.DisplayOrder[:pos] {
		display = append(display, shift(old))
	}
	for _, c := range copies {
		display = append(display, c.ID)
	}
	for _, old := range s.DisplayOrder[pos:] {
		display = append(display, shift(old))
	}
	s.DisplayOrder = display

	return copies
}

// ReorderTriggers rearranges the trigger sequence so that position i holds
// the trigger whose ID was order[i]. IDs are renumbered to match, effect
// references follow their targets, and the display order becomes the
// identity: creation order and display order both equal order afterwards.
func (s *Scenario) ReorderTriggers(order []int) error {
	n := len(s.Triggers)
	if !IsPermutation(order, n) {
		return fmt.Errorf("%w: %v is not a permutation of %d trigger ids", ErrInvalidOrder, order, n)
	}

	oldToNew := make([]int, n)
	triggers := make([]*Trigger, n)
	for i, old := range order {
		triggers[i] = s.Triggers[old]
		oldToNew[old] = i
	}
	remap := func(old int) int {
		if old < 0 || old >= n {
			return NoTrigger
		}
		return oldToNew[old]
	}
	for i, t := range triggers {
		t.ID = i
		t.remapRefs(remap)
	}

	s.Triggers = triggers
	s.DisplayOrder = IdentityOrder(n)
	return nil
}

package editor

import (
	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/asptool/internal/scenario"
)

// maxSuggestDistance bounds the edit distance of "did you mean" hints.
const maxSuggestDistance = 2

// NameSet is a set of trigger names compared in Unicode NFC form, so names
// typed on different systems still match.
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from names.
func NewNameSet(names []string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set[norm.NFC.String(name)] = struct{}{}
	}
	return set
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s[norm.NFC.String(name)]
	return ok
}

// SelectTriggers returns the triggers of sc whose names are in names, in
// creation order.
func SelectTriggers(sc *scenario.Scenario, names []string) []*scenario.Trigger {
	set := NewNameSet(names)
	var selected []*scenario.Trigger
	for _, t := range sc.Triggers {
		if set.Contains(t.Name) {
			selected = append(selected, t)
		}
	}
	return selected
}

// Migration reports what Migrate did.
type Migration struct {
	// SourceIDs are the creation ids of the selected source triggers.
	SourceIDs []int `json:"source_ids"`
	// DestIDs are the ids the copies ended up with in the destination.
	DestIDs []int `json:"dest_ids"`
	// Missing lists requested names that matched no source trigger.
	Missing []string `json:"missing,omitempty"`
	// Suggestions maps a missing name to the closest source trigger name.
	Suggestions map[string]string `json:"suggestions,omitempty"`
	// DestCount is the destination trigger count after migration.
	DestCount int `json:"dest_count"`
}

// Migrate copies the triggers of src named in names into dest at
// insertPos. A negative or out-of-range insertPos appends. Afterwards the
// destination is reordered by its own display order so ids and display
// order agree again. src is never modified.
func Migrate(src, dest *scenario.Scenario, names []string, insertPos int) (Migration, error) {
	selected := SelectTriggers(src, names)

	m := Migration{SourceIDs: make([]int, len(selected))}
	for i, t := range selected {
		m.SourceIDs[i] = t.ID
	}
	m.Missing, m.Suggestions = missingNames(src, names)

	copies := dest.ImportTriggers(selected, insertPos)
	if err := dest.ReorderTriggers(dest.DisplayOrder); err != nil {
		return m, err
	}

	m.DestIDs = make([]int, len(copies))
	for i, c := range copies {
		m.DestIDs[i] = c.ID
	}
	m.DestCount = len(dest.Triggers)
	return m, nil
}

// missingNames returns the requested names that match nothing in sc, with
// the closest existing name for each where one is near enough.
func missingNames(sc *scenario.Scenario, names []string) ([]string, map[string]string) {
	present := NewNameSet(sc.Names())
	var (
		missing     []string
		suggestions map[string]string
	)
	seen := make(map[string]bool)
	for _, name := range names {
		if present.Contains(name) || seen[name] {
			continue
		}
		seen[name] = true
		missing = append(missing, name)

		if best, ok := closestName(sc, name); ok {
			if suggestions == nil {
				suggestions = make(map[string]string)
			}
			suggestions[name] = best
		}
	}
	return missing, suggestions
}

func closestName(sc *scenario.Scenario, name string) (string, bool) {
	target := norm.NFC.String(name)
	best, bestDist := "", maxSuggestDistance+1
	for _, t := range sc.Triggers {
		d := levenshtein.ComputeDistance(target, norm.NFC.String(t.Name))
		if d < bestDist {
			best, bestDist = t.Name, d
		}
	}
	return best, bestDist <= maxSuggestDistance
}

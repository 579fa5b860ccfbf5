package tool

import (
	"fmt"
	"strings"

	"github.com/roach88/asptool/internal/editor"
)

// ReorderResult summarizes a reorder run.
type ReorderResult struct {
	Output   string            `json:"output,omitempty"`
	Triggers int               `json:"triggers"`
	Shuffled bool              `json:"shuffled"`
	Written  bool              `json:"written"`
	Skipped  string            `json:"skipped,omitempty"`
	Order    []editor.OrderRow `json:"order,omitempty"`
}

func (r ReorderResult) String() string {
	if !r.Written {
		return fmt.Sprintf("reorder skipped (%s): %d trigger(s)", r.Skipped, r.Triggers)
	}
	verb := "reordered"
	if r.Shuffled {
		verb = "shuffled"
	}
	return fmt.Sprintf("%s %d trigger(s) -> %s", verb, r.Triggers, r.Output)
}

// DeleteResult summarizes a del run.
type DeleteResult struct {
	Output    string       `json:"output"`
	Range     editor.Range `json:"range"`
	Before    int          `json:"before"`
	Remaining int          `json:"remaining"`
}

func (r DeleteResult) String() string {
	return fmt.Sprintf("deleted triggers [%d, %d): %d -> %d trigger(s) -> %s",
		r.Range.Start, r.Range.End, r.Before, r.Remaining, r.Output)
}

// MigrateResult summarizes a mig run.
type MigrateResult struct {
	editor.Migration

	Output      string `json:"output"`
	SourceCount int    `json:"source_count"`
}

func (r MigrateResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "migrated %d trigger(s) %v -> %v, destination has %d trigger(s) -> %s",
		len(r.SourceIDs), r.SourceIDs, r.DestIDs, r.DestCount, r.Output)
	for _, name := range r.Missing {
		fmt.Fprintf(&b, "\nnot found: %q", name)
		if s, ok := r.Suggestions[name]; ok {
			fmt.Fprintf(&b, " (did you mean %q?)", s)
		}
	}
	return b.String()
}

// ImportResult summarizes an importxs run. Imported is false when there was
// nothing to import; nothing is written then.
type ImportResult struct {
	Imported     bool     `json:"imported"`
	Output       string   `json:"output,omitempty"`
	TitleTrigger string   `json:"title_trigger,omitempty"`
	ScriptTitle  string   `json:"script_title,omitempty"`
	Conditions   int      `json:"conditions"`
	UserTargets  int      `json:"user_targets"`
	Ignored      []string `json:"ignored,omitempty"`
}

func (r ImportResult) String() string {
	if !r.Imported {
		return "nothing imported"
	}
	return fmt.Sprintf("imported %d script condition(s) into %q -> %s", r.Conditions, r.ScriptTitle, r.Output)
}

package editor

import (
	"slices"

	"github.com/roach88/asptool/internal/scenario"
)

// Shuffler permutes n elements through swap. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// SkipReason explains why a reorder plan writes nothing.
type SkipReason string

const (
	SkipNone    SkipReason = ""
	SkipEmpty   SkipReason = "no triggers"
	SkipSingle  SkipReason = "single trigger"
	SkipInOrder SkipReason = "already in display order"
)

// ReorderPlan is the order a reorder operation applies.
type ReorderPlan struct {
	// Display is the target position sequence [0, n).
	Display []int
	// Before is the scenario's display order when the plan was made.
	Before []int
	// Create holds the creation ids to place at each display position.
	Create []int
	// Shuffled is set when Create was randomly permuted.
	Shuffled bool
	// Skip is non-empty when applying the plan would change nothing.
	Skip SkipReason
}

// PlanReorder computes the reorder for sc. With shuffle set, the current
// display order is permuted by rng; rng may be nil when shuffle is false.
func PlanReorder(sc *scenario.Scenario, shuffle bool, rng Shuffler) ReorderPlan {
	n := len(sc.Triggers)
	switch n {
	case 0:
		return ReorderPlan{Skip: SkipEmpty}
	case 1:
		return ReorderPlan{Skip: SkipSingle}
	}

	plan := ReorderPlan{
		Display: scenario.IdentityOrder(len(sc.DisplayOrder)),
		Before:  slices.Clone(sc.DisplayOrder),
		Create:  slices.Clone(sc.DisplayOrder),
	}

	if shuffle {
		rng.Shuffle(len(plan.Create), func(i, j int) {
			plan.Create[i], plan.Create[j] = plan.Create[j], plan.Create[i]
		})
		plan.Shuffled = true
	}

	if !shuffle && slices.Equal(plan.Display, plan.Create) {
		plan.Skip = SkipInOrder
	}
	return plan
}

// Apply rearranges sc's triggers so creation order follows plan.Create.
func (p ReorderPlan) Apply(sc *scenario.Scenario) error {
	return sc.ReorderTriggers(p.Create)
}

// OrderRow pairs a display position with the trigger shown there.
type OrderRow struct {
	Display int    `json:"display"`
	ID      int    `json:"id"`
	Name    string `json:"name"`
}

// OrderRows lists the triggers of sc in the given display order.
func OrderRows(sc *scenario.Scenario, order []int) []OrderRow {
	rows := make([]OrderRow, 0, len(order))
	for pos, id := range order {
		name := ""
		if id >= 0 && id < len(sc.Triggers) {
			name = sc.Triggers[id].Name
		}
		rows = append(rows, OrderRow{Display: pos, ID: id, Name: name})
	}
	return rows
}

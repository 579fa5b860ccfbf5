// Package scenario provides the trigger model shared by every asptool package.
//
// A Scenario owns two sequences:
//   - Triggers: trigger records in creation order. A trigger's ID is its index
//     in this sequence.
//   - DisplayOrder: a permutation of trigger IDs giving the order the scenario
//     editor shows triggers in.
//
// Every mutating method keeps both invariants intact:
//   - IDs are dense: Triggers[i].ID == i
//   - DisplayOrder is a permutation of 0..len(Triggers)-1
//
// Effects that reference other triggers (activate/deactivate) are remapped
// whenever IDs change. References to triggers that no longer exist become
// NoTrigger.
//
// This package imports nothing internal; store adapters and the editor build
// on top of it.
package scenario

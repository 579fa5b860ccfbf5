// Package editor is the trigger set editor: the pure edits asptool applies
// to a loaded scenario.
//
// Every function here works on an in-memory *scenario.Scenario and never
// touches the filesystem. Loading, saving and logging belong to
// internal/tool.
//
// Operations:
//   - NormalizeRange / DeleteRange: clamp a [start, end) range and splice it out
//   - PlanReorder: compute the order to apply, optionally shuffled
//   - SelectTriggers / Migrate: copy named triggers between scenarios
//   - ImportScript: add XS script-call conditions
package editor

// Package store loads and saves scenarios.
//
// Store is the capability the rest of asptool depends on. Adapters are picked
// by file extension through ForPath:
//   - .json: indented JSON document
//   - .yaml, .yml: YAML document (unknown keys rejected)
//   - .db, .sqlite, .sqlite3: single-file SQLite database
//
// All adapters share the scenario.Scenario model and validate it on load and
// before save, so a saved file always satisfies the dense-ID and display
// order invariants.
//
// The proprietary .aoe2scenario binary format is not handled here; ForPath
// reports ErrUnsupportedFormat for it.
package store

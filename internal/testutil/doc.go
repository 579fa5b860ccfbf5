// Package testutil holds deterministic helpers shared by the package tests:
// scenario builders, a stepping clock, a fixed run id, predictable
// shufflers and the golden file setup.
package testutil

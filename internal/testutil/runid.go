package testutil

// FixedRunID hands out the same run id every time.
//
// Log records and JSON responses carry the run id, so pinning it keeps test
// output byte-stable.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a FixedRunID. An empty id means "test-run".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run id.
func (g *FixedRunID) Generate() string {
	return g.id
}

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/asptool/internal/scenario"
)

// ErrUnsupportedFormat is returned for paths whose extension has no adapter.
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// Store loads and saves scenarios at filesystem paths.
type Store interface {
	Load(ctx context.Context, path string) (*scenario.Scenario, error)
	Save(ctx context.Context, sc *scenario.Scenario, path string) error
}

// Format names a scenario document encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// extensions maps lower-case file extensions to formats.
var extensions = map[string]Format{
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// FormatOf returns the format for path based on its extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return f, nil
}

// ForPath returns the adapter that handles path.
func ForPath(path string) (Store, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON:
		return JSON{}, nil
	case FormatYAML:
		return YAML{}, nil
	default:
		return SQLite{}, nil
	}
}

// Files dispatches every call to the adapter for the path's extension, so
// an operation can read one format and write another.
type Files struct{}

// Load implements Store.
func (Files) Load(ctx context.Context, path string) (*scenario.Scenario, error) {
	s, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, path)
}

// Save implements Store.
func (Files) Save(ctx context.Context, sc *scenario.Scenario, path string) error {
	s, err := ForPath(path)
	if err != nil {
		return err
	}
	return s.Save(ctx, sc, path)
}

// normalize replaces nil sequences with empty ones and validates the
// invariants shared by every adapter.
func normalize(sc *scenario.Scenario) error {
	if sc == nil {
		return fmt.Errorf("%w: nil scenario", scenario.ErrInvalidScenario)
	}
	if sc.Triggers == nil {
		sc.Triggers = []*scenario.Trigger{}
	}
	if sc.DisplayOrder == nil {
		sc.DisplayOrder = []int{}
	}
	return sc.Validate()
}

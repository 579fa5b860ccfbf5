package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/roach88/asptool/internal/scenario"
)

// JSON stores a scenario as an indented JSON document.
type JSON struct{}

// Load reads and validates a JSON scenario. Unknown fields are rejected.
func (JSON) Load(_ context.Context, path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc scenario.Scenario
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := normalize(&sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Save writes sc to path with two-space indentation and a trailing newline.
func (JSON) Save(_ context.Context, sc *scenario.Scenario, path string) error {
	if err := normalize(sc); err != nil {
		return fmt.Errorf("save scenario %s: %w", path, err)
	}

	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

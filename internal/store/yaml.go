package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/asptool/internal/scenario"
)

// YAML stores a scenario as a YAML document.
type YAML struct{}

// Load reads and validates a YAML scenario. Unknown keys are rejected so
// typos such as "display_ordr" fail loudly.
func (YAML) Load(_ context.Context, path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc scenario.Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse scenario %s: empty document", path)
		}
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := normalize(&sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Save writes sc to path as YAML.
func (YAML) Save(_ context.Context, sc *scenario.Scenario, path string) error {
	if err := normalize(sc); err != nil {
		return fmt.Errorf("save scenario %s: %w", path, err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(sc); err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

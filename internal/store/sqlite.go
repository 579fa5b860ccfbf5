package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/asptool/internal/scenario"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - No scenario layout (new or foreign database)
// 1 - scenario_meta, triggers, conditions and effects tables
const currentSchemaVersion = 1

// scenarioTables must all exist for a database to hold a scenario.
var scenarioTables = []string{"scenario_meta", "triggers", "conditions", "effects"}

// SQLite stores a scenario in a single-file SQLite database.
type SQLite struct{}

// Load opens an existing database at path read-only and reads its scenario.
// A missing file is an error; Load never creates or modifies databases.
func (SQLite) Load(ctx context.Context, path string) (*scenario.Scenario, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	db, err := OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.checkLayout(ctx); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	sc, err := db.ReadScenario(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return sc, nil
}

// Save writes sc into the database at path, creating it if needed.
// Existing rows are replaced in a single transaction.
func (SQLite) Save(ctx context.Context, sc *scenario.Scenario, path string) error {
	if err := normalize(sc); err != nil {
		return fmt.Errorf("save scenario %s: %w", path, err)
	}

	db, err := Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.WriteScenario(ctx, sc); err != nil {
		return fmt.Errorf("save scenario %s: %w", path, err)
	}
	return nil
}

// DB is an open scenario database.
type DB struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - DELETE journal mode so the scenario stays a single file
//   - FULL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*DB, error) {
	dsn, err := fileDSN(path, false)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{db: db}, nil
}

// OpenReadOnly opens an existing database without applying pragmas,
// schema or migrations. Writes through the returned DB fail.
func OpenReadOnly(path string) (*DB, error) {
	dsn, err := fileDSN(path, true)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &DB{db: db}, nil
}

// fileDSN builds a file: URI so paths containing '?' or '#' reach SQLite intact.
func fileDSN(path string, readOnly bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	query := url.Values{"_busy_timeout": {"5000"}}
	if readOnly {
		query.Set("mode", "ro")
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: query.Encode(),
	}
	return u.String(), nil
}

// checkLayout rejects databases that were not written by Save or that
// come from a newer schema version.
func (d *DB) checkLayout(ctx context.Context) error {
	version, err := schemaVersion(d.db)
	if err != nil {
		return err
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("%w: schema version %d is newer than supported version %d",
			scenario.ErrInvalidScenario, version, currentSchemaVersion)
	}

	for _, table := range scenarioTables {
		var name string
		err := d.db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: not a scenario database (no %s table)", scenario.ErrInvalidScenario, table)
		}
		if err != nil {
			return fmt.Errorf("inspect schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// ReadScenario reads the stored scenario and validates it.
func (d *DB) ReadScenario(ctx context.Context) (*scenario.Scenario, error) {
	sc := scenario.New("")

	err := d.db.QueryRowContext(ctx, `SELECT value FROM scenario_meta WHERE key = 'title'`).Scan(&sc.Title)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("query title: %w", err)
	}

	positions, err := d.readTriggers(ctx, sc)
	if err != nil {
		return nil, err
	}
	if err := d.readConditions(ctx, sc); err != nil {
		return nil, err
	}
	if err := d.readEffects(ctx, sc); err != nil {
		return nil, err
	}

	n := len(sc.Triggers)
	display := make([]int, n)
	filled := make([]bool, n)
	for id, pos := range positions {
		if pos < 0 || pos >= n || filled[pos] {
			return nil, fmt.Errorf("%w: trigger %d has display position %d", scenario.ErrInvalidScenario, id, pos)
		}
		display[pos] = id
		filled[pos] = true
	}
	sc.DisplayOrder = display

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// readTriggers appends triggers in id order and returns their display positions.
func (d *DB) readTriggers(ctx context.Context, sc *scenario.Scenario) ([]int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, description, enabled, looping, display_pos
		FROM triggers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query triggers: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var (
			t   scenario.Trigger
			pos int
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Enabled, &t.Looping, &pos); err != nil {
			return nil, fmt.Errorf("scan trigger: %w", err)
		}
		sc.Triggers = append(sc.Triggers, &t)
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate triggers: %w", err)
	}
	return positions, nil
}

func (d *DB) readConditions(ctx context.Context, sc *scenario.Scenario) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT trigger_id, type, xs_function, attributes
		FROM conditions
		ORDER BY trigger_id ASC, seq ASC
	`)
	if err != nil {
		return fmt.Errorf("query conditions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			triggerID int
			c         scenario.Condition
			attrs     sql.NullString
		)
		if err := rows.Scan(&triggerID, &c.Type, &c.XSFunction, &attrs); err != nil {
			return fmt.Errorf("scan condition: %w", err)
		}
		if c.Attributes, err = unmarshalAttributes(attrs); err != nil {
			return fmt.Errorf("condition of trigger %d: %w", triggerID, err)
		}
		t, err := triggerAt(sc, triggerID)
		if err != nil {
			return err
		}
		t.Conditions = append(t.Conditions, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate conditions: %w", err)
	}
	return nil
}

func (d *DB) readEffects(ctx context.Context, sc *scenario.Scenario) error {
	rows, err := d.db.QueryContext(ctx, `
		SELECT trigger_id, type, target_trigger_id, attributes
		FROM effects
		ORDER BY trigger_id ASC, seq ASC
	`)
	if err != nil {
		return fmt.Errorf("query effects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			triggerID int
			e         scenario.Effect
			target    sql.NullInt64
			attrs     sql.NullString
		)
		if err := rows.Scan(&triggerID, &e.Type, &target, &attrs); err != nil {
			return fmt.Errorf("scan effect: %w", err)
		}
		if target.Valid {
			ref := int(target.Int64)
			e.TriggerID = &ref
		}
		if e.Attributes, err = unmarshalAttributes(attrs); err != nil {
			return fmt.Errorf("effect of trigger %d: %w", triggerID, err)
		}
		t, err := triggerAt(sc, triggerID)
		if err != nil {
			return err
		}
		t.Effects = append(t.Effects, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate effects: %w", err)
	}
	return nil
}

// WriteScenario replaces the stored scenario with sc in one transaction.
func (d *DB) WriteScenario(ctx context.Context, sc *scenario.Scenario) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"effects", "conditions", "triggers", "scenario_meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO scenario_meta (key, value) VALUES ('title', ?)`, sc.Title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	positions := make([]int, len(sc.Triggers))
	for pos, id := range sc.DisplayOrder {
		positions[id] = pos
	}

	for _, t := range sc.Triggers {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO triggers (id, name, description, enabled, looping, display_pos)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.ID, t.Name, t.Description, t.Enabled, t.Looping, positions[t.ID]); err != nil {
			return fmt.Errorf("write trigger %d: %w", t.ID, err)
		}

		for seq, c := range t.Conditions {
			var attrs sql.NullString
			if attrs, err = marshalAttributes(c.Attributes); err != nil {
				return fmt.Errorf("condition %d of trigger %d: %w", seq, t.ID, err)
			}
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO conditions (trigger_id, seq, type, xs_function, attributes)
				VALUES (?, ?, ?, ?, ?)
			`, t.ID, seq, c.Type, c.XSFunction, attrs); err != nil {
				return fmt.Errorf("write condition %d of trigger %d: %w", seq, t.ID, err)
			}
		}

		for seq, e := range t.Effects {
			var attrs sql.NullString
			if attrs, err = marshalAttributes(e.Attributes); err != nil {
				return fmt.Errorf("effect %d of trigger %d: %w", seq, t.ID, err)
			}
			var target sql.NullInt64
			if e.TriggerID != nil {
				target = sql.NullInt64{Int64: int64(*e.TriggerID), Valid: true}
			}
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO effects (trigger_id, seq, type, target_trigger_id, attributes)
				VALUES (?, ?, ?, ?, ?)
			`, t.ID, seq, e.Type, target, attrs); err != nil {
				return fmt.Errorf("write effect %d of trigger %d: %w", seq, t.ID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func triggerAt(sc *scenario.Scenario, id int) (*scenario.Trigger, error) {
	if id < 0 || id >= len(sc.Triggers) || sc.Triggers[id].ID != id {
		return nil, fmt.Errorf("%w: row references unknown trigger %d", scenario.ErrInvalidScenario, id)
	}
	return sc.Triggers[id], nil
}

func marshalAttributes(attrs map[string]any) (sql.NullString, error) {
	if len(attrs) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal attributes: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalAttributes(s sql.NullString) (map[string]any, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var attrs map[string]any
	if err := json.Unmarshal([]byte(s.String), &attrs); err != nil {
		return nil, fmt.Errorf("unmarshal attributes: %w", err)
	}
	return attrs, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = DELETE",
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// Databases from a newer schema version are refused before any write.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return err
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("%w: schema version %d is newer than supported version %d",
			scenario.ErrInvalidScenario, version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db, version); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations upgrades a database at version to currentSchemaVersion.
// Version 1 is the first scenario layout, so only the stamp is written.
func runMigrations(db *sql.DB, version int) error {
	if version == currentSchemaVersion {
		return nil
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (d *DB) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := d.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

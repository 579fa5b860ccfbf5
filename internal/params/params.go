// Package params loads the per-mode parameter blocks of an asptool
// parameter file.
//
// A parameter file is a JSON object keyed by mode name. Only the block for
// the selected mode is read; it is checked against an embedded CUE schema
// (types, required keys, no unknown keys) and decoded with the schema's
// defaults applied.
package params

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

// Mode selects the operation a parameter block configures.
type Mode string

const (
	ModeReorder  Mode = "reorder"
	ModeDelete   Mode = "del"
	ModeMigrate  Mode = "mig"
	ModeImportXS Mode = "importxs"
)

// Modes lists every supported mode in help order.
var Modes = []Mode{ModeReorder, ModeDelete, ModeMigrate, ModeImportXS}

var definitions = map[Mode]string{
	ModeReorder:  "#Reorder",
	ModeDelete:   "#Delete",
	ModeMigrate:  "#Migrate",
	ModeImportXS: "#ImportXS",
}

// ParseMode validates a mode name given on the command line.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := definitions[m]; !ok {
		names := make([]string, len(Modes))
		for i, mode := range Modes {
			names[i] = string(mode)
		}
		return "", fmt.Errorf("unknown mode %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return m, nil
}

var (
	// ErrMissingBlock is returned when the file has no block for the mode,
	// or the block is null.
	ErrMissingBlock = errors.New("missing parameter block")

	// ErrInvalidBlock is returned when a block does not match its schema.
	ErrInvalidBlock = errors.New("invalid parameter block")
)

// Error describes a parameter file problem.
type Error struct {
	Path string
	Mode Mode
	Err  error
}

func (e *Error) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("params %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("params %s: mode %q: %v", e.Path, e.Mode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reorder configures the reorder mode.
type Reorder struct {
	ScxPath      string `json:"scx_path"`
	OutputPath   string `json:"output_path"`
	ShuffleOrder bool   `json:"shuffle_order"`
	ShowOrder    bool   `json:"show_order"`
}

// Delete configures the del mode. DelRange holds exactly [start, end].
type Delete struct {
	SrcPath  string `json:"src_path"`
	DesPath  string `json:"des_path"`
	DelRange []int  `json:"del_range"`
}

// Range returns the start and end of DelRange.
func (d Delete) Range() (start, end int) {
	return d.DelRange[0], d.DelRange[1]
}

// Migrate configures the mig mode.
type Migrate struct {
	Scn1Path        string   `json:"scn1_path"`
	Scn2Path        string   `json:"scn2_path"`
	MigrateTriggers []string `json:"migrate_triggers"`
	InsertPos       int      `json:"insert_pos"`
	OutputPath      string   `json:"output_path"`
}

// ImportXS configures the importxs mode. XSFiles holds the constants file,
// the base functions file and the user functions file, in that order.
type ImportXS struct {
	SrcPath     string   `json:"src_path"`
	DesPath     string   `json:"des_path"`
	ScxTitle    string   `json:"scx_title"`
	ScriptTitle string   `json:"script_title"`
	XSFiles     []string `json:"xs_files"`
}

// Load reads the parameter file at path and decodes the block for mode
// into out, which must point to the struct matching mode.
func Load(path string, mode Mode, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	return Parse(path, data, mode, out)
}

// Parse is Load over an in-memory document; name is used in errors.
func Parse(name string, data []byte, mode Mode, out any) error {
	def, ok := definitions[mode]
	if !ok {
		return &Error{Path: name, Mode: mode, Err: fmt.Errorf("unknown mode")}
	}

	var blocks map[string]json.RawMessage
	if err := json.Unmarshal(data, &blocks); err != nil {
		return &Error{Path: name, Err: fmt.Errorf("decode JSON: %w", err)}
	}
	raw, ok := blocks[string(mode)]
	if !ok || isEmptyBlock(raw) {
		return &Error{Path: name, Mode: mode, Err: fmt.Errorf("%w (have %s)", ErrMissingBlock, blockNames(blocks))}
	}

	raw, err := dropNullFields(raw)
	if err != nil {
		return &Error{Path: name, Mode: mode, Err: fmt.Errorf("%w: %v", ErrInvalidBlock, err)}
	}
	if err := decodeBlock(name, raw, def, out); err != nil {
		return &Error{Path: name, Mode: mode, Err: fmt.Errorf("%w: %v", ErrInvalidBlock, err)}
	}
	return nil
}

func decodeBlock(name string, raw json.RawMessage, def string, out any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	expr, err := cuejson.Extract(name, raw)
	if err != nil {
		return err
	}
	block := ctx.BuildExpr(expr)
	if err := block.Err(); err != nil {
		return err
	}

	v := schema.LookupPath(cue.ParsePath(def)).Unify(block)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return v.Decode(out)
}

// formatCUEError flattens a CUE error list into "path: message" lines
// without the schema's definition name.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		path := e.Path()
		if len(path) > 0 && strings.HasPrefix(path[0], "#") {
			path = path[1:]
		}
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if len(path) > 0 {
			msg = strings.Join(path, ".") + ": " + msg
		}
		if !slices.Contains(lines, msg) {
			lines = append(lines, msg)
		}
	}
	return errors.New(strings.Join(lines, "; "))
}

// isEmptyBlock reports whether raw is null or an object with no keys.
func isEmptyBlock(raw json.RawMessage) bool {
	if strings.TrimSpace(string(raw)) == "null" {
		return true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	return len(fields) == 0
}

// dropNullFields removes keys whose value is null so they take their
// schema default, or fail as missing when the key is required.
// Blocks that are not objects are returned unchanged for the schema to reject.
func dropNullFields(raw json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return raw, nil
	}
	dropped := false
	for k, v := range fields {
		if isNull(v) {
			delete(fields, k)
			dropped = true
		}
	}
	if !dropped {
		return raw, nil
	}
	return json.Marshal(fields)
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func blockNames(blocks map[string]json.RawMessage) string {
	if len(blocks) == 0 {
		return "no blocks"
	}
	names := make([]string, 0, len(blocks))
	for k := range blocks {
		names = append(names, fmt.Sprintf("%q", k))
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

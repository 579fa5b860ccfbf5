// Package tool runs the asptool operations: each loads its scenario(s)
// through a store, applies one edit from package editor, logs what it did
// and saves the result. Failures come back as *OpError; nothing here exits
// the process.
package tool

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/roach88/asptool/internal/editor"
	"github.com/roach88/asptool/internal/params"
	"github.com/roach88/asptool/internal/scenario"
	"github.com/roach88/asptool/internal/store"
	"github.com/roach88/asptool/internal/xs"
)

// Runner executes operations against a scenario store.
type Runner struct {
	Store  store.Store
	Logger *slog.Logger

	// Rand shuffles trigger order. Nil means a randomly seeded source.
	Rand editor.Shuffler
}

// NewRunner returns a Runner using st and logger.
func NewRunner(st store.Store, logger *slog.Logger) *Runner {
	return &Runner{Store: st, Logger: logger}
}

func (r *Runner) rng() editor.Shuffler {
	if r.Rand == nil {
		r.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return r.Rand
}

// Reorder rearranges triggers so creation order matches display order,
// optionally shuffling first. Scenarios with fewer than two triggers, or
// already in order without a shuffle, are not written.
func (r *Runner) Reorder(ctx context.Context, p params.Reorder) (ReorderResult, error) {
	const op = "reorder"
	if err := requirePaths(op, "scx_path", p.ScxPath, "output_path", p.OutputPath); err != nil {
		return ReorderResult{}, err
	}

	sc, err := r.load(ctx, op, p.ScxPath)
	if err != nil {
		return ReorderResult{}, err
	}

	plan := editor.PlanReorder(sc, p.ShuffleOrder, r.rng())
	res := ReorderResult{Triggers: len(sc.Triggers), Shuffled: plan.Shuffled, Skipped: string(plan.Skip)}

	switch plan.Skip {
	case editor.SkipEmpty, editor.SkipSingle:
		r.Logger.Info("nothing to reorder", "triggers", res.Triggers, "reason", plan.Skip)
		return res, nil
	}

	if p.ShowOrder {
		r.logOrder("current order", sc, plan.Before)
	}
	if plan.Shuffled {
		r.Logger.Info("trigger order shuffled")
		if p.ShowOrder {
			r.logOrder("shuffled order", sc, plan.Create)
		}
	}
	res.Order = editor.OrderRows(sc, plan.Create)

	if plan.Skip != editor.SkipNone {
		r.Logger.Info("triggers already in order, nothing written", "triggers", res.Triggers)
		return res, nil
	}

	r.Logger.Info("reordering triggers", "triggers", res.Triggers)
	if err := plan.Apply(sc); err != nil {
		return res, &OpError{Kind: KindInvalid, Op: op, Path: p.ScxPath, Err: err}
	}
	if err := r.save(ctx, op, sc, p.OutputPath); err != nil {
		return res, err
	}

	res.Written = true
	res.Output = p.OutputPath
	r.Logger.Info("triggers reordered", "output", p.OutputPath)
	return res, nil
}

func (r *Runner) logOrder(title string, sc *scenario.Scenario, order []int) {
	r.Logger.Info(title, "triggers", len(order))
	for _, row := range editor.OrderRows(sc, order) {
		r.Logger.Info("order", "display", row.Display, "id", row.ID, "name", row.Name)
	}
}

// Delete removes the half-open trigger range [start, end) after
// normalizing it against the trigger count.
func (r *Runner) Delete(ctx context.Context, p params.Delete) (DeleteResult, error) {
	const op = "del"
	if err := requirePaths(op, "src_path", p.SrcPath, "des_path", p.DesPath); err != nil {
		return DeleteResult{}, err
	}

	sc, err := r.load(ctx, op, p.SrcPath)
	if err != nil {
		return DeleteResult{}, err
	}

	res := DeleteResult{Output: p.DesPath, Before: len(sc.Triggers)}
	r.Logger.Info("triggers in scenario", "count", res.Before)

	start, end := p.Range()
	res.Range, res.Remaining = editor.DeleteRange(sc, start, end)
	if res.Range.Start == 0 && res.Range.End == res.Before {
		r.Logger.Info("deleted all triggers", "requested_start", start, "requested_end", end)
	} else {
		r.Logger.Info("deleted trigger range",
			"start", res.Range.Start, "end", res.Range.End,
			"requested_start", start, "requested_end", end)
	}

	if err := r.save(ctx, op, sc, p.DesPath); err != nil {
		return res, err
	}

	r.Logger.Info("triggers in scenario after delete", "count", res.Remaining)
	if res.Remaining == 0 {
		r.Logger.Info("no triggers left")
	}
	return res, nil
}

// Migrate copies the named triggers of the first scenario into the second
// and writes the second to the output path. The first is never written.
func (r *Runner) Migrate(ctx context.Context, p params.Migrate) (MigrateResult, error) {
	const op = "mig"
	if err := requirePaths(op,
		"scn1_path", p.Scn1Path,
		"scn2_path", p.Scn2Path,
		"output_path", p.OutputPath,
	); err != nil {
		return MigrateResult{}, err
	}

	src, err := r.load(ctx, op, p.Scn1Path)
	if err != nil {
		return MigrateResult{}, err
	}
	dest, err := r.load(ctx, op, p.Scn2Path)
	if err != nil {
		return MigrateResult{}, err
	}
	r.Logger.Info("scenarios loaded", "source_triggers", len(src.Triggers), "dest_triggers", len(dest.Triggers))

	m, err := editor.Migrate(src, dest, p.MigrateTriggers, p.InsertPos)
	res := MigrateResult{Migration: m, Output: p.OutputPath, SourceCount: len(src.Triggers)}
	if err != nil {
		return res, &OpError{Kind: KindInvalid, Op: op, Path: p.Scn2Path, Err: err}
	}

	r.Logger.Info("triggers to migrate", "ids", m.SourceIDs, "insert_pos", p.InsertPos)
	for _, name := range m.Missing {
		if s, ok := m.Suggestions[name]; ok {
			r.Logger.Warn("trigger not found", "name", name, "did_you_mean", s)
			continue
		}
		r.Logger.Warn("trigger not found", "name", name)
	}

	if err := r.save(ctx, op, dest, p.OutputPath); err != nil {
		return res, err
	}

	r.Logger.Info("triggers migrated", "dest_ids", m.DestIDs, "dest_triggers", m.DestCount, "output", p.OutputPath)
	return res, nil
}

// ImportXS adds XS script files to a scenario as script-call conditions.
// xs_files holds, in order, the constants file, the base functions file and
// the user functions file; later entries are ignored. A blank src_path or
// an empty file list imports nothing and is not an error.
func (r *Runner) ImportXS(ctx context.Context, p params.ImportXS) (ImportResult, error) {
	const op = "importxs"
	if blank(p.SrcPath) {
		r.Logger.Warn("no source scenario given, nothing imported")
		return ImportResult{}, nil
	}
	if len(p.XSFiles) == 0 {
		r.Logger.Warn("no XS files given, nothing imported")
		return ImportResult{}, nil
	}
	if err := requirePaths(op, "des_path", p.DesPath); err != nil {
		return ImportResult{}, err
	}

	sc, err := r.load(ctx, op, p.SrcPath)
	if err != nil {
		return ImportResult{}, err
	}

	imp := editor.ScriptImport{ScenarioTitle: p.ScxTitle, ScriptTitle: p.ScriptTitle}
	files := p.XSFiles

	imp.Constants, err = xs.LoadConstants(files[0])
	if err != nil {
		return ImportResult{}, &OpError{Kind: KindLoad, Op: op, Path: files[0], Err: err}
	}
	r.Logger.Info("XS constants loaded", "path", files[0])

	if len(files) > 1 {
		imp.Functions, err = xs.LoadFunctions(files[1], xs.DefaultSeparator)
		if err != nil {
			return ImportResult{}, &OpError{Kind: KindLoad, Op: op, Path: files[1], Err: err}
		}
		r.Logger.Info("base functions loaded", "path", files[1], "functions", len(imp.Functions))
	}
	if len(files) > 2 {
		imp.UserFunctions, err = xs.LoadFunctions(files[2], xs.DefaultSeparator)
		if err != nil {
			return ImportResult{}, &OpError{Kind: KindLoad, Op: op, Path: files[2], Err: err}
		}
		r.Logger.Info("user functions loaded", "path", files[2], "functions", len(imp.UserFunctions))
	}

	var res ImportResult
	if len(files) > 3 {
		res.Ignored = files[3:]
		r.Logger.Warn("extra XS files ignored", "paths", res.Ignored)
	}

	added := editor.ImportScript(sc, imp)
	if added.TitleTrigger != nil {
		res.TitleTrigger = added.TitleTrigger.Name
		r.Logger.Info("scenario title set", "title", res.TitleTrigger)
	}
	res.ScriptTitle = added.ScriptTitle
	res.Conditions = added.Conditions
	res.UserTargets = added.UserTargets
	r.Logger.Info("script conditions added",
		"script_title", res.ScriptTitle, "conditions", res.Conditions, "user_targets", res.UserTargets)

	if err := r.save(ctx, op, sc, p.DesPath); err != nil {
		return res, err
	}

	res.Imported = true
	res.Output = p.DesPath
	r.Logger.Info("scenario saved", "output", p.DesPath)
	return res, nil
}

func (r *Runner) load(ctx context.Context, op, path string) (*scenario.Scenario, error) {
	sc, err := r.Store.Load(ctx, path)
	if err != nil {
		return nil, &OpError{Kind: KindLoad, Op: op, Path: path, Err: err}
	}
	r.Logger.Debug("scenario loaded", "path", path, "triggers", len(sc.Triggers))
	return sc, nil
}

func (r *Runner) save(ctx context.Context, op string, sc *scenario.Scenario, path string) error {
	if err := r.Store.Save(ctx, sc, path); err != nil {
		return &OpError{Kind: KindSave, Op: op, Path: path, Err: err}
	}
	r.Logger.Debug("scenario saved", "path", path, "triggers", len(sc.Triggers))
	return nil
}

// requirePaths takes name/value pairs and fails on the first blank value.
func requirePaths(op string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if blank(pairs[i+1]) {
			return missingParam(op, pairs[i])
		}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

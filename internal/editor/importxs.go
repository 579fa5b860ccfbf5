package editor

import (
	"strings"

	"github.com/roach88/asptool/internal/scenario"
)

// DefaultScriptTitle names the trigger that holds imported XS code when no
// script title is given.
const DefaultScriptTitle = "XS Functions"

// ScriptImport describes the XS code to add to a scenario.
type ScriptImport struct {
	// ScenarioTitle, when not blank, adds a disabled trigger carrying it.
	ScenarioTitle string
	// ScriptTitle names the container trigger; blank means DefaultScriptTitle.
	ScriptTitle string
	// Constants becomes the container's first script-call condition.
	Constants string
	// Functions are appended to the new container, one condition each.
	Functions []string
	// UserFunctions are appended to every trigger named ScriptTitle.
	UserFunctions []string
}

// ScriptImportResult reports what ImportScript added.
type ScriptImportResult struct {
	TitleTrigger *scenario.Trigger
	Container    *scenario.Trigger
	ScriptTitle  string
	Conditions   int
	UserTargets  int
}

// ImportScript adds imp to sc. The title trigger (if any) is created first,
// then a disabled container trigger holding the constants and functions.
// User functions go to every trigger named like the container, including
// containers created by earlier imports.
func ImportScript(sc *scenario.Scenario, imp ScriptImport) ScriptImportResult {
	var res ScriptImportResult

	if title := strings.TrimSpace(imp.ScenarioTitle); title != "" {
		res.TitleTrigger = sc.AddTrigger(imp.ScenarioTitle, false)
	}

	res.ScriptTitle = imp.ScriptTitle
	if strings.TrimSpace(res.ScriptTitle) == "" {
		res.ScriptTitle = DefaultScriptTitle
	}

	res.Container = sc.AddTrigger(res.ScriptTitle, false)
	res.Container.AddScriptCall(imp.Constants)
	res.Conditions++

	for _, fn := range imp.Functions {
		res.Container.AddScriptCall(fn)
		res.Conditions++
	}

	if len(imp.UserFunctions) > 0 {
		for _, t := range sc.TriggersNamed(res.ScriptTitle) {
			for _, fn := range imp.UserFunctions {
				t.AddScriptCall(fn)
				res.Conditions++
			}
			res.UserTargets++
		}
	}

	return res
}

package cli

import (
	"errors"

	"github.com/roach88/asptool/internal/params"
	"github.com/roach88/asptool/internal/tool"
)

// Error code constants reported in CLI error output.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeUsage    = "E002" // Command-line usage error
	ErrCodeLogSetup = "E003" // Log file could not be opened

	// Parameter file errors
	ErrCodeParamsRead    = "E101" // File missing or not JSON
	ErrCodeParamsMissing = "E102" // No block for the selected mode
	ErrCodeParamsInvalid = "E103" // Block does not match its schema

	// Operation errors
	ErrCodeMissingParam = "E111" // Required path is blank
	ErrCodeLoad         = "E112" // Scenario or script file could not be read
	ErrCodeSave         = "E113" // Result could not be written
	ErrCodeInvalid      = "E114" // Edit could not be applied
)

// MapErrorToCode picks the error code for an operation or parameter error.
func MapErrorToCode(err error) string {
	var pe *params.Error
	if errors.As(err, &pe) {
		switch {
		case errors.Is(err, params.ErrMissingBlock):
			return ErrCodeParamsMissing
		case errors.Is(err, params.ErrInvalidBlock):
			return ErrCodeParamsInvalid
		default:
			return ErrCodeParamsRead
		}
	}

	kind, ok := tool.KindOf(err)
	if !ok {
		return ErrCodeGeneric
	}
	switch kind {
	case tool.KindMissingParam:
		return ErrCodeMissingParam
	case tool.KindLoad:
		return ErrCodeLoad
	case tool.KindSave:
		return ErrCodeSave
	case tool.KindInvalid:
		return ErrCodeInvalid
	default:
		return ErrCodeGeneric
	}
}

// errorDetails returns structured context for an error, or nil.
func errorDetails(err error) map[string]string {
	var oe *tool.OpError
	if errors.As(err, &oe) {
		d := map[string]string{"kind": string(oe.Kind), "op": oe.Op}
		if oe.Path != "" {
			d["path"] = oe.Path
		}
		return d
	}
	var pe *params.Error
	if errors.As(err, &pe) {
		d := map[string]string{"params": pe.Path}
		if pe.Mode != "" {
			d["mode"] = string(pe.Mode)
		}
		return d
	}
	return nil
}

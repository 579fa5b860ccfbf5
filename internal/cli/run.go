package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/asptool/internal/config"
	"github.com/roach88/asptool/internal/logging"
	"github.com/roach88/asptool/internal/params"
	"github.com/roach88/asptool/internal/store"
	"github.com/roach88/asptool/internal/tool"
)

// RunIDGenerator produces the id attached to every log record of a run.
// Tests override it for stable output.
var RunIDGenerator = func() string {
	return uuid.Must(uuid.NewV7()).String()
}

func runTool(cmd *cobra.Command, opts *RootOptions) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Keep stdout clean for JSON results
		Verbose:   opts.Verbose,
	}
	mode := params.Mode(opts.Mode)
	runID := RunIDGenerator()

	level := config.ParseLogLevel(opts.LogLevel)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.New(logging.Options{
		Dir:     opts.LogDir,
		Level:   level,
		Format:  opts.LogFormat,
		Console: cmd.ErrOrStderr(),
		RunID:   runID,
	})
	if err != nil {
		_ = formatter.Error(ErrCodeLogSetup, err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to set up logging", err)
	}
	defer logger.Close()

	start := time.Now()
	logger.Info("run started", "mode", mode, "params", opts.ParamsPath, "log_file", logger.Path)
	formatter.VerboseLog("Logging to %s", logger.Path)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runner := tool.NewRunner(store.Files{}, logger.Logger)

	result, err := dispatch(ctx, runner, mode, opts.ParamsPath)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("run failed", "mode", mode, "error", err, "elapsed", elapsed)
		code := MapErrorToCode(err)
		if formatter.Format == "json" {
			_ = formatter.Respond(CLIResponse{
				Status: "error",
				Mode:   string(mode),
				Error:  &CLIError{Code: code, Message: err.Error(), Details: errorDetails(err)},
				RunID:  runID,
			})
		} else {
			_ = formatter.Error(code, err.Error(), errorDetails(err))
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("%s failed", mode), err)
	}

	logger.Info("run finished", "mode", mode, "elapsed", elapsed)
	return formatter.Respond(CLIResponse{Status: "ok", Mode: string(mode), Data: result, RunID: runID})
}

// dispatch loads the parameter block for mode and runs the operation.
func dispatch(ctx context.Context, r *tool.Runner, mode params.Mode, path string) (any, error) {
	switch mode {
	case params.ModeReorder:
		var p params.Reorder
		if err := params.Load(path, mode, &p); err != nil {
			return nil, err
		}
		return r.Reorder(ctx, p)
	case params.ModeDelete:
		var p params.Delete
		if err := params.Load(path, mode, &p); err != nil {
			return nil, err
		}
		return r.Delete(ctx, p)
	case params.ModeMigrate:
		var p params.Migrate
		if err := params.Load(path, mode, &p); err != nil {
			return nil, err
		}
		return r.Migrate(ctx, p)
	case params.ModeImportXS:
		var p params.ImportXS
		if err := params.Load(path, mode, &p); err != nil {
			return nil, err
		}
		return r.ImportXS(ctx, p)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/asptool/internal/config"
	"github.com/roach88/asptool/internal/params"
)

// RootOptions holds the command-line flags.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Mode       string
	ParamsPath string

	LogDir    string
	LogLevel  string
	LogFormat string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the asptool command.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "asptool -m <mode> -i <params.json>",
		Short: "asptool - batch trigger editing for AoE2 DE scenarios",
		Long: `Batch-edit the triggers of an Age of Empires II: Definitive Edition scenario.

The mode selects the operation; its parameters come from the block of the
same name in the JSON parameter file.

Modes:
  reorder   rearrange triggers so creation order follows display order,
            optionally shuffling first
  del       delete the half-open trigger range del_range = [start, end);
            start < 0 means 0, end -1 deletes through the last trigger,
            and an end of 0 deletes the first trigger
  mig       copy the named triggers of one scenario into another
  importxs  add XS constants and functions as script-call conditions

Scenarios are read and written by extension: .json, .yaml/.yml, or
.db/.sqlite/.sqlite3.

Example:
  asptool -m del -i params.json
  asptool -m mig -i params.json --format json --log-dir ./logs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(cmd, opts, fmt.Sprintf("unexpected arguments: %s", strings.Join(args, " ")))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return usageError(cmd, opts, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Mode == "" {
				return usageError(cmd, opts, "missing required flag -m/--mode")
			}
			if _, err := params.ParseMode(opts.Mode); err != nil {
				return usageError(cmd, opts, err.Error())
			}
			if strings.TrimSpace(opts.ParamsPath) == "" {
				return usageError(cmd, opts, "missing required flag -i/--input")
			}
			return runTool(cmd, opts)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(c, opts, err.Error())
	})

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "operation: reorder, del, mig or importxs")
	cmd.Flags().StringVarP(&opts.ParamsPath, "input", "i", "", "path to the JSON parameter file")

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogDir, "log-dir", cfg.LogDir, "directory for per-run log files (empty disables the file)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", cfg.LogLevel.String(), "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", cfg.LogFormat, "log record format (text|json)")

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// usageError reports a command-line problem and returns it with ExitUsage.
func usageError(cmd *cobra.Command, opts *RootOptions, message string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if !isValidFormat(formatter.Format) {
		formatter.Format = "text"
	}
	_ = formatter.Error(ErrCodeUsage, message, nil)
	if formatter.Format == "text" {
		fmt.Fprintf(formatter.GetErrWriter(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return NewExitError(ExitUsage, message)
}

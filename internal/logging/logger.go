// Package logging builds the per-run logger: every record goes to a
// timestamped file under the log directory and to the console.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FilePrefix starts every log file name.
const FilePrefix = "asp_tools"

// Options configures New.
type Options struct {
	// Dir receives the log file. Empty disables the file.
	Dir string
	// Level is the minimum record level.
	Level slog.Level
	// Format is "text" or "json".
	Format string
	// Console also receives every record. Nil means stderr.
	Console io.Writer
	// RunID, when set, is attached to every record as run_id.
	RunID string
	// Now stamps the file name. Nil means time.Now.
	Now func() time.Time
}

// Logger is a slog.Logger bound to the file it writes.
type Logger struct {
	*slog.Logger

	// Path is the log file, empty when no file is written.
	Path string

	file *os.File
}

// New opens the run's log file and returns a logger writing to it and to
// the console.
func New(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	l := &Logger{}
	w := console
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		l.Path = filepath.Join(opts.Dir, FileName(now()))
		f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		w = io.MultiWriter(f, console)
	}

	l.Logger = slog.New(newHandler(w, opts.Level, opts.Format))
	if opts.RunID != "" {
		l.Logger = l.Logger.With("run_id", opts.RunID)
	}
	return l, nil
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return FilePrefix + "-" + t.Format("2006-01-02-150405") + ".log"
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: replaceAttr,
	}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// replaceAttr standardizes the error key to "err" and shortens source
// locations to func:line.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case "error":
		a.Key = "err"
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok {
			a.Value = slog.StringValue(shortFunc(src.Function) + ":" + fmt.Sprint(src.Line))
		}
	}
	return a
}

// shortFunc trims the import path from a fully qualified function name:
// "example.com/x/tool.(*Runner).Delete" becomes "tool.(*Runner).Delete".
func shortFunc(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asptool/internal/testutil"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func fixedNow() time.Time { return testutil.NewClock(fixedTime, 0).Now() }

func TestFileName(t *testing.T) {
	assert.Equal(t, "asp_tools-2024-03-09-140507.log", FileName(fixedTime))
}

func TestNew_WritesFileAndConsole(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	l, err := New(Options{Dir: dir, Level: slog.LevelInfo, Console: &console, RunID: "run-1", Now: fixedNow})
	require.NoError(t, err)

	l.Info("triggers deleted", "remaining", 3)
	require.NoError(t, l.Close())

	assert.Equal(t, filepath.Join(dir, "asp_tools-2024-03-09-140507.log"), l.Path)
	data, err := os.ReadFile(l.Path)
	require.NoError(t, err)

	assert.Equal(t, console.String(), string(data))
	assert.Contains(t, string(data), `msg="triggers deleted"`)
	assert.Contains(t, string(data), "remaining=3")
	assert.Contains(t, string(data), "run_id=run-1")
}

func TestNew_NoDirectory(t *testing.T) {
	var console bytes.Buffer

	l, err := New(Options{Console: &console, Now: fixedNow})
	require.NoError(t, err)
	defer l.Close()

	l.Info("hello")
	assert.Empty(t, l.Path)
	assert.Contains(t, console.String(), "msg=hello")
	assert.NotContains(t, console.String(), "run_id")
}

func TestNew_Level(t *testing.T) {
	var console bytes.Buffer

	l, err := New(Options{Level: slog.LevelWarn, Console: &console})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}

func TestNew_ErrorKeyAndSource(t *testing.T) {
	var console bytes.Buffer

	l, err := New(Options{Console: &console})
	require.NoError(t, err)

	l.Error("load failed", "error", os.ErrNotExist)

	out := console.String()
	assert.Contains(t, out, `err="file does not exist"`)
	assert.NotContains(t, out, "error=")
	assert.Regexp(t, regexp.MustCompile(`source=logging\.TestNew_ErrorKeyAndSource:\d+`), out)
}

func TestNew_JSONFormat(t *testing.T) {
	var console bytes.Buffer

	l, err := New(Options{Format: "json", Console: &console, RunID: "run-2"})
	require.NoError(t, err)

	l.Info("done", "error", "boom")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(console.String())), &rec))
	assert.Equal(t, "done", rec["msg"])
	assert.Equal(t, "boom", rec["err"])
	assert.Equal(t, "run-2", rec["run_id"])
	assert.IsType(t, "", rec["source"])
}

func TestNew_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := New(Options{Dir: filepath.Join(file, "logs")})
	require.Error(t, err)
}

func TestClose_Twice(t *testing.T) {
	l, err := New(Options{Dir: t.TempDir(), Console: &bytes.Buffer{}, Now: fixedNow})
	require.NoError(t, err)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

func TestNew_FileNamePerRun(t *testing.T) {
	dir := t.TempDir()
	clock := testutil.NewClock(fixedTime, time.Second)

	first, err := New(Options{Dir: dir, Console: &bytes.Buffer{}, Now: clock.Now})
	require.NoError(t, err)
	require.NoError(t, first.Close())
	second, err := New(Options{Dir: dir, Console: &bytes.Buffer{}, Now: clock.Now})
	require.NoError(t, err)
	require.NoError(t, second.Close())

	assert.Equal(t, "asp_tools-2024-03-09-140507.log", filepath.Base(first.Path))
	assert.Equal(t, "asp_tools-2024-03-09-140508.log", filepath.Base(second.Path))
}

func TestShortFunc(t *testing.T) {
	assert.Equal(t, "tool.(*Runner).Delete", shortFunc("github.com/roach88/asptool/internal/tool.(*Runner).Delete"))
	assert.Equal(t, "main.main", shortFunc("main.main"))
}

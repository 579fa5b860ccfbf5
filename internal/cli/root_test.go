package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Contains(t, cmd.Use, "asptool")
	assert.Contains(t, cmd.Long, "reorder")
	assert.Contains(t, cmd.Long, "importxs")
}

func TestModeFlags(t *testing.T) {
	cmd := NewRootCommand()

	modeFlag := cmd.Flags().Lookup("mode")
	require.NotNil(t, modeFlag)
	assert.Equal(t, "m", modeFlag.Shorthand)
	assert.Equal(t, "", modeFlag.DefValue)

	inputFlag := cmd.Flags().Lookup("input")
	require.NotNil(t, inputFlag)
	assert.Equal(t, "i", inputFlag.Shorthand)
}

func TestGlobalFlags(t *testing.T) {
	t.Setenv("ASPTOOL_LOG_DIR", "")
	t.Setenv("ASPTOOL_LOG_LEVEL", "")
	t.Setenv("ASPTOOL_LOG_FORMAT", "")
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	logDirFlag := cmd.PersistentFlags().Lookup("log-dir")
	require.NotNil(t, logDirFlag)
	assert.Equal(t, "asp_tools_log", logDirFlag.DefValue)

	logLevelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logLevelFlag)
	assert.Equal(t, "INFO", logLevelFlag.DefValue)
}

func TestGlobalFlags_EnvironmentDefaults(t *testing.T) {
	t.Setenv("ASPTOOL_LOG_DIR", "/tmp/asptool-logs")
	t.Setenv("ASPTOOL_LOG_LEVEL", "warn")
	cmd := NewRootCommand()

	assert.Equal(t, "/tmp/asptool-logs", cmd.PersistentFlags().Lookup("log-dir").DefValue)
	assert.Equal(t, "WARN", cmd.PersistentFlags().Lookup("log-level").DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"no flags", []string{}, "-m/--mode"},
		{"unknown mode", []string{"-m", "delete", "-i", "params.json"}, `unknown mode "delete"`},
		{"missing params file", []string{"-m", "del"}, "-i/--input"},
		{"invalid format", []string{"--format", "xml", "-m", "del", "-i", "p.json"}, "invalid format"},
		{"unknown flag", []string{"--bogus"}, "bogus"},
		{"positional argument", []string{"-m", "del", "-i", "p.json", "extra"}, "unexpected arguments: extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand()
			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitUsage, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, stderr.String(), "Error [E002]")
			assert.Empty(t, stdout.String())
		})
	}
}

func TestHelp(t *testing.T) {
	cmd := NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "del_range")
	assert.Contains(t, stdout.String(), "end -1 deletes through the last trigger")
}

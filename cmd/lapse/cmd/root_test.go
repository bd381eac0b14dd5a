package cmd

import (
	"bytes"
	"testing"

	"github.com/onegii/go-lapse/internal/config"
	"github.com/onegii/go-lapse/lapse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "lapse", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "exec")
	assert.Contains(t, out, "demo")
}

func TestRootCommandVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "lapse version "+lapse.Version+"\n", out)
}

func TestRootCommandInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "demo", "--step", "0")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestCommandLoggerHonorsLevel(t *testing.T) {
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetErr(buf)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "error"
	commandLogger(cmd, cfg).Warn("hidden")
	assert.Empty(t, buf.String())

	cfg.LogLevel = "warn"
	commandLogger(cmd, cfg).Warn("shown")
	assert.Contains(t, buf.String(), "level=WARN msg=shown")
}

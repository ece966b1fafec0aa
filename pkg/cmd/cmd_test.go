package cmd

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leosykes117/archeota/pkg/config"
	exechelper "github.com/leosykes117/archeota/pkg/exec-helper"
	"github.com/leosykes117/archeota/pkg/logger"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Cleanup(func() { logger.Set(nil) })

	var out bytes.Buffer
	err := newCommand(WithArgs(args...), WithOutput(&out)).Execute(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, config.Version()+"\n", out)
}

func TestLogCmd(t *testing.T) {
	out, err := run(t, "log", "--timestamp-pattern=", "--file", "/app/CameraVC.swift",
		"--function", "capture", "--line", "42", "warn", "low", "confidence")
	require.NoError(t, err)
	assert.Equal(t, "[WARN] CameraVC.capture:42 - low confidence\n", out)
}

func TestLogCmdFiltered(t *testing.T) {
	out, err := run(t, "log", "--log-level=error", "info", "hidden")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "log", "--env=prod", "error", "hidden")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "log", "--env=prod", "--log-enabled=true", "--timestamp-pattern=", "error", "shown")
	require.NoError(t, err)
	assert.Equal(t, "[ERROR] - shown\n", out)
}

func TestLogCmdColor(t *testing.T) {
	out, err := run(t, "log", "--log-color=true", "--timestamp-pattern=", "error", "boom")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[31m[ERROR] - boom\x1b[0m\n", out)
}

func TestLogCmdBadLevel(t *testing.T) {
	_, err := run(t, "log", "loud", "x")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestExecCmd(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := run(t, "exec", "--timestamp-pattern=", "--command", `sh -c "echo ready; echo oops >&2"`)
	require.NoError(t, err)
	assert.Contains(t, out, "[INFO] sh.stdout - ready\n")
	assert.Contains(t, out, "[WARN] sh.stderr - oops\n")

	out, err = run(t, "exec", "--timestamp-pattern=", "--include-line=false", "--", "sh", "-c", "exit 4")
	require.Error(t, err)
	assert.Equal(t, 4, exechelper.ExitCode(err))
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "command failed")
}

func TestExecCmdEnviron(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := run(t, "exec", "--timestamp-pattern=", "--environ", "GREETING=hi", "-e", "TARGET=camera",
		"--", "sh", "-c", `echo "$GREETING $TARGET"`)
	require.NoError(t, err)
	assert.Equal(t, "[INFO] sh.stdout - hi camera\n", out)

	// the root --env flag still selects the environment for exec
	out, err = run(t, "exec", "--env=prod", "--", "sh", "-c", "echo silent")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "exec", "--env=prod", "--log-enabled=true", "--timestamp-pattern=", "--", "sh", "-c", "echo loud")
	require.NoError(t, err)
	assert.Equal(t, "[INFO] sh.stdout - loud\n", out)
}

func TestExecCmdUsage(t *testing.T) {
	_, err := run(t, "exec")
	assert.ErrorContains(t, err, "no command given")

	_, err = run(t, "exec", "--command", "ls", "--", "ls")
	assert.ErrorContains(t, err, "not both")

	_, err = run(t, "exec", "--stdout-level", "loud", "--", "ls")
	assert.ErrorContains(t, err, "--stdout-level")
}

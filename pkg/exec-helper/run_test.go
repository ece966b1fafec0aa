package exechelper_test

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exechelper "github.com/leosykes117/archeota/pkg/exec-helper"
	"github.com/leosykes117/archeota/pkg/logger"
)

func shell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRunStdout(t *testing.T) {
	sh := shell(t)
	var out bytes.Buffer

	err := exechelper.Run(sh,
		exechelper.WithArgs("-c", "echo hello"),
		exechelper.WithStdout(&out),
	)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestRunExitCode(t *testing.T) {
	sh := shell(t)

	err := exechelper.Run(sh, exechelper.WithArgs("-c", "exit 3"))
	require.Error(t, err)
	assert.Equal(t, 3, exechelper.ExitCode(err))
	assert.Equal(t, 0, exechelper.ExitCode(nil))
}

func TestRunEnv(t *testing.T) {
	sh := shell(t)
	var out bytes.Buffer

	err := exechelper.Run(sh,
		exechelper.WithArgs("-c", `echo "$GREETING"`),
		exechelper.WithEnvirons("GREETING=first", "GREETING=second"),
		exechelper.WithStdout(&out),
	)
	require.NoError(t, err)
	assert.Equal(t, "second\n", out.String())

	err = exechelper.Run(sh, exechelper.WithEnvirons("broken"))
	assert.ErrorContains(t, err, "key=value")
}

func TestRunContextTimeout(t *testing.T) {
	sh := shell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := exechelper.Run(sh,
		exechelper.WithContext(ctx),
		exechelper.WithGracePeriod(100*time.Millisecond),
		exechelper.WithArgs("-c", "sleep 10"),
	)
	require.Error(t, err)
	assert.Equal(t, 124, exechelper.ExitCode(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunLogOutput(t *testing.T) {
	sh := shell(t)
	var buf bytes.Buffer
	lg := logger.New(logger.WithOutput(&buf), logger.WithTimestampPattern(""))

	err := exechelper.Run(sh,
		exechelper.WithArgs("-c", "echo scanning; echo model missing >&2; printf done"),
		exechelper.WithLogOutput(lg, "scanner", logger.Info, logger.Warn),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[INFO] scanner.stdout - scanning\n")
	assert.Contains(t, out, "[WARN] scanner.stderr - model missing\n")
	assert.Contains(t, out, "[INFO] scanner.stdout - done\n")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestRunPostRun(t *testing.T) {
	sh := shell(t)
	called := false

	err := exechelper.Run(sh,
		exechelper.WithArgs("-c", "exit 1"),
		exechelper.WithPostRun(func(cmd *exec.Cmd) error {
			called = true
			assert.NotNil(t, cmd.ProcessState)
			return nil
		}),
	)
	assert.Error(t, err)
	assert.True(t, called)
}

func TestRunDir(t *testing.T) {
	sh := shell(t)
	dir := filepath.Join(t.TempDir(), "work", "scan")
	var out bytes.Buffer

	err := exechelper.Run(sh,
		exechelper.WithDir(dir),
		exechelper.WithArgs("-c", "pwd"),
		exechelper.WithStdout(&out),
	)
	require.NoError(t, err)
	assert.Equal(t, "scan", filepath.Base(strings.TrimSpace(out.String())))
}

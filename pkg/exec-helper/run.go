package exechelper

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/leosykes117/archeota/pkg/logger"
)

// DefaultGracePeriod is used when no WithGracePeriod option is given.
const DefaultGracePeriod = 5 * time.Second

// Run starts name with the given options and waits for it to exit.
//
// When the context is done the process gets SIGTERM, then SIGKILL after the
// grace period. Post-run options run in all cases once the process has
// exited; their errors are combined with the command's.
func Run(name string, options ...*Option) error {
	cmd := exec.Command(name)
	ctx := context.Background()
	grace := DefaultGracePeriod
	var postRun []CmdFunc

	for _, o := range options {
		if o == nil {
			continue
		}
		if o.Context != nil {
			ctx = o.Context
		}
		if o.GracePeriod > 0 {
			grace = o.GracePeriod
		}
		if o.CmdOption != nil {
			if err := o.CmdOption(cmd); err != nil {
				return fmt.Errorf("apply option to %s: %w", name, err)
			}
		}
		if o.PostRunOption != nil {
			postRun = append(postRun, o.PostRunOption)
		}
	}

	lg := logger.FromContext(ctx)
	lg.Debug("running command", logger.String("command", strings.Join(cmd.Args, " ")))

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		lg.Warn("context done, terminating command", logger.Int("pid", cmd.Process.Pid), logger.Err(ctx.Err()))
		_ = cmd.Process.Signal(syscall.SIGTERM)
		select {
		case err = <-done:
		case <-time.After(grace):
			_ = cmd.Process.Kill()
			err = <-done
		}
		err = multierr.Append(ctx.Err(), err)
	}

	for _, fn := range postRun {
		err = multierr.Append(err, fn(cmd))
	}
	if err != nil {
		lg.Debug("command failed", logger.Int("exitCode", ExitCode(err)), logger.Err(err))
	}
	return err
}

// ExitCode extracts the exit status from an error returned by Run: 0 for
// nil, the process status for an *exec.ExitError, 124 for a deadline and -1
// otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return 124 // 124 timeout standard code
	}
	return -1
}

package exechelper

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/leosykes117/archeota/pkg/logger"
)

// CmdFunc changes an exec.Cmd before it starts or inspects it after it exits.
type CmdFunc func(cmd *exec.Cmd) error

// Option is one piece of configuration for Run. Zero fields are ignored, so
// an Option usually sets just one of them.
type Option struct {
	// Context bounds the run; the last non-nil one wins.
	Context context.Context
	// GracePeriod is the wait between SIGTERM and SIGKILL.
	GracePeriod time.Duration
	// CmdOption is applied before the command starts.
	CmdOption CmdFunc
	// PostRunOption is applied after the command exits.
	PostRunOption CmdFunc
}

// CmdOption wraps fn in an Option applied before the command starts.
func CmdOption(fn CmdFunc) *Option {
	return &Option{CmdOption: fn}
}

// WithContext runs the command under ctx. The logger carried by ctx also
// receives Run's own debug lines.
func WithContext(ctx context.Context) *Option {
	return &Option{Context: ctx}
}

// WithArgs appends args to the command line.
func WithArgs(args ...string) *Option {
	return CmdOption(func(cmd *exec.Cmd) error {
		cmd.Args = append(cmd.Args, args...)
		return nil
	})
}

// WithDir runs the command in dir, creating it first when missing.
func WithDir(dir string) *Option {
	return CmdOption(func(cmd *exec.Cmd) error {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create working dir: %w", err)
		}
		cmd.Dir = dir
		return nil
	})
}

// WithStdin feeds r to the command's standard input.
func WithStdin(r io.Reader) *Option {
	return CmdOption(func(cmd *exec.Cmd) error {
		cmd.Stdin = r
		return nil
	})
}

// WithStdout adds w as a receiver of standard output. Repeated options fan
// out to every writer.
func WithStdout(w io.Writer) *Option {
	return CmdOption(func(cmd *exec.Cmd) error {
		cmd.Stdout = fanOut(cmd.Stdout, w)
		return nil
	})
}

// WithStderr adds w as a receiver of standard error. Repeated options fan
// out to every writer.
func WithStderr(w io.Writer) *Option {
	return CmdOption(func(cmd *exec.Cmd) error {
		cmd.Stderr = fanOut(cmd.Stderr, w)
		return nil
	})
}

func fanOut(cur, w io.Writer) io.Writer {
	if cur == nil {
		return w
	}
	return io.MultiWriter(cur, w)
}

// WithEnvirons sets environment entries given as "KEY=VALUE" strings, e.g.
// WithEnvirons("MODEL=resnet50", "THRESHOLD=0.8").
func WithEnvirons(environs ...string) *Option {
	kvs := make([]string, 0, 2*len(environs))
	for _, env := range environs {
		k, v, ok := strings.Cut(env, "=")
		if !ok || k == "" {
			return CmdOption(func(*exec.Cmd) error {
				return fmt.Errorf("environment entry %q is not formatted as key=value", env)
			})
		}
		kvs = append(kvs, k, v)
	}
	return WithEnvKV(kvs...)
}

// WithEnvKV sets environment entries given as alternating keys and values.
// The child inherits the current environment; a key already present is
// replaced in place.
func WithEnvKV(kvs ...string) *Option {
	return CmdOption(func(cmd *exec.Cmd) error {
		if len(kvs)%2 != 0 {
			return fmt.Errorf("WithEnvKV needs key/value pairs, got %d arguments", len(kvs))
		}
		if cmd.Env == nil {
			cmd.Env = os.Environ()
		}
		for i := 0; i < len(kvs); i += 2 {
			cmd.Env = setEnv(cmd.Env, kvs[i], kvs[i+1])
		}
		return nil
	})
}

func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// WithGracePeriod sets how long a cancelled command gets between SIGTERM and SIGKILL.
func WithGracePeriod(d time.Duration) *Option {
	return &Option{GracePeriod: d}
}

// WithPostRun applies fn once the command has exited, whatever its status.
func WithPostRun(fn CmdFunc) *Option {
	return &Option{PostRunOption: fn}
}

// WithLogOutput streams standard output and standard error into lg, one log
// line per output line, tagged with name as the source file and the stream
// as the function. Partial trailing lines are flushed after the run.
func WithLogOutput(lg logger.Logger, name string, stdoutLevel, stderrLevel logger.Level) *Option {
	stdout := logger.NewLineWriter(lg, stdoutLevel, logger.At(name, "stdout", 0))
	stderr := logger.NewLineWriter(lg, stderrLevel, logger.At(name, "stderr", 0))
	return &Option{
		CmdOption: func(cmd *exec.Cmd) error {
			cmd.Stdout = fanOut(cmd.Stdout, stdout)
			cmd.Stderr = fanOut(cmd.Stderr, stderr)
			return nil
		},
		PostRunOption: func(*exec.Cmd) error {
			return multierr.Combine(stdout.Close(), stderr.Close())
		},
	}
}

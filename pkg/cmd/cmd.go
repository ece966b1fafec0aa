// Package cmd implements the archeota command line: it emits log lines from
// shell scripts and runs commands with their output routed through the logger.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leosykes117/archeota/pkg/config"
	"github.com/leosykes117/archeota/pkg/logger"
)

type command struct {
	root   *cobra.Command
	cfg    *config.Config
	lg     logger.Logger
	output io.Writer
}

type option func(*command)

// WithArgs replaces os.Args[1:].
func WithArgs(args ...string) option {
	return func(c *command) { c.root.SetArgs(args) }
}

// WithOutput sends log lines and command output to w instead of stdout.
func WithOutput(w io.Writer) option {
	return func(c *command) {
		c.output = w
		c.root.SetOut(w)
	}
}

func newCommand(opts ...option) *command {
	c := &command{output: os.Stdout}
	c.root = &cobra.Command{
		Use:           "archeota",
		Short:         "Leveled, timestamped console logging",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initLogger(cmd)
		},
	}
	config.RegisterFlags(c.root.PersistentFlags())

	for _, o := range opts {
		o(c)
	}

	c.initLogCmd()
	c.initExecCmd()
	c.initVersionCmd()
	return c
}

func (c *command) initLogger(cmd *cobra.Command) error {
	// Persistent flags only: a subcommand's local flag must not feed a config key.
	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.lg = logger.New(append(cfg.LoggerOptions(), logger.WithOutput(c.output))...)
	logger.Set(c.lg)
	return nil
}

func (c *command) Execute(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// Execute parses command line arguments and runs appropriate functions.
func Execute(ctx context.Context) error {
	return newCommand().Execute(ctx)
}

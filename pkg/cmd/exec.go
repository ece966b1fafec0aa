package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	exechelper "github.com/leosykes117/archeota/pkg/exec-helper"
	"github.com/leosykes117/archeota/pkg/logger"
)

func (c *command) initExecCmd() {
	var (
		commandLine string
		dir         string
		envs        []string
		stdoutLevel string
		stderrLevel string
	)
	cmd := &cobra.Command{
		Use:   "exec [--command string | -- name [args...]]",
		Short: "Run a command and log each line of its output",
		Example: `  archeota exec --command "make test"
  archeota exec --stderr-level error -e MODEL=resnet50 -- ./scanner`,
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := args
			if commandLine != "" {
				if len(args) > 0 {
					return errors.New("use either --command or arguments after --, not both")
				}
				parsed, err := shlex.Split(commandLine)
				if err != nil {
					return fmt.Errorf("parse --command: %w", err)
				}
				argv = parsed
			}
			if len(argv) == 0 {
				return errors.New("no command given")
			}

			outLvl, err := logger.ParseLevel(stdoutLevel)
			if err != nil {
				return fmt.Errorf("--stdout-level: %w", err)
			}
			errLvl, err := logger.ParseLevel(stderrLevel)
			if err != nil {
				return fmt.Errorf("--stderr-level: %w", err)
			}

			ctx := logger.WithContext(cmd.Context(), c.lg)
			opts := []*exechelper.Option{
				exechelper.WithContext(ctx),
				exechelper.WithArgs(argv[1:]...),
				exechelper.WithStdin(os.Stdin),
				exechelper.WithLogOutput(c.lg, filepath.Base(argv[0]), outLvl, errLvl),
			}
			if dir != "" {
				opts = append(opts, exechelper.WithDir(dir))
			}
			if len(envs) > 0 {
				opts = append(opts, exechelper.WithEnvirons(envs...))
			}

			err = exechelper.Run(argv[0], opts...)
			if err != nil {
				c.lg.Error("command failed", logger.String("command", argv[0]), logger.Int("exitCode", exechelper.ExitCode(err)))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&commandLine, "command", "", "command line to run, split like a shell would")
	cmd.Flags().StringVar(&dir, "dir", "", "working directory, created if missing")
	cmd.Flags().StringArrayVarP(&envs, "environ", "e", nil, "extra KEY=VALUE environment entry for the command, repeatable")
	cmd.Flags().StringVar(&stdoutLevel, "stdout-level", "info", "level for lines on stdout")
	cmd.Flags().StringVar(&stderrLevel, "stderr-level", "warn", "level for lines on stderr")
	c.root.AddCommand(cmd)
}

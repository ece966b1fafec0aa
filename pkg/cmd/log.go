package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leosykes117/archeota/pkg/logger"
)

func (c *command) initLogCmd() {
	var (
		file     string
		function string
		line     int
	)
	cmd := &cobra.Command{
		Use:   "log <level> <message...>",
		Short: "Write one log line",
		Example: `  archeota log info "photo captured"
  archeota log --file CameraVC.swift --function capture --line 42 error "no model"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logger.ParseLevel(args[0])
			if err != nil {
				return err
			}
			msg := strings.Join(args[1:], " ")
			at := logger.At(file, function, line)
			switch lvl {
			case logger.Debug:
				c.lg.Debug(msg, at)
			case logger.Info:
				c.lg.Info(msg, at)
			case logger.Warn:
				c.lg.Warn(msg, at)
			case logger.Error:
				c.lg.Error(msg, at)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "source file rendered in the line")
	cmd.Flags().StringVar(&function, "function", "", "function rendered in the line")
	cmd.Flags().IntVar(&line, "line", 0, "line number rendered in the line")
	c.root.AddCommand(cmd)
}

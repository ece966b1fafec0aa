package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leosykes117/archeota/pkg/cmd"
	exechelper "github.com/leosykes117/archeota/pkg/exec-helper"
	"github.com/leosykes117/archeota/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	_ = logger.L().Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code := exechelper.ExitCode(err)
		if code <= 0 {
			code = 1
		}
		os.Exit(code)
	}
}

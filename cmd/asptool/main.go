// Command asptool batch-edits the triggers of AoE2 DE scenarios.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/asptool/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(cli.GetExitCode(err))
}

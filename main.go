// Command swsfsearch recovers cheat codes from their digests.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclesp1d3r/swsfsearch/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cmd.Execute(ctx)

	stop()
	os.Exit(code)
}

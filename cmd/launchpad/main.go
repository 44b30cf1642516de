// Command launchpad inspects a launchpad schedule offline: it validates a
// YAML config, prints phase boundaries and evaluates allocation and vesting
// at arbitrary instants.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "launchpad:", err)
		os.Exit(1)
	}
}

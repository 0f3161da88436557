package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(defaultApp()).ExecuteContext(ctx)
	cancel()
	os.Exit(exitCode(err))
}

// exitCode maps Execute errors to the process status: 0 once the clock is
// set, 2 for usage errors and 1 for everything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(os.Stderr, "gps-time: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: gps-time [-s 9600][-l /dev/ttyu0][-v]")
		return 2
	}
	fmt.Fprintf(os.Stderr, "gps-time: %v\n", err)
	return 1
}

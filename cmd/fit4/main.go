package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	fit4cmd "fit4/internal/cli/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fit4cmd.Execute(ctx)
	stop()
	if err == nil {
		return
	}

	// The error itself has already been printed by fang.
	code := fit4cmd.ExitCLIError
	var ee *fit4cmd.ExitError
	if errors.As(err, &ee) {
		code = ee.Code
	}
	os.Exit(code)
}

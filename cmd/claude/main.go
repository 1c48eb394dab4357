package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/petasbytes/claude-wrapper/internal/cli"
)

func main() {
	// Ctrl-C / SIGTERM abort an in-flight request; nothing is saved.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], cli.Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	})
	stop()
	os.Exit(code)
}

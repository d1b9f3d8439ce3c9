// Package main provides todo, a command-line todo list backed by SQLite.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhle/todo/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

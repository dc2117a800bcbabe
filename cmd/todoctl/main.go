// Package main is the entry point for the todoctl CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"todoctl/internal/backend/googletasks"
	"todoctl/internal/backend/todoapi"
	"todoctl/internal/cli"
	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// newService picks the backend named in the config.
func newService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.Service, error) {
	if cfg.Backend == config.BackendGoogleTasks {
		return googletasks.New(ctx, cfg, log)
	}
	return todoapi.New(cfg, log)
}

// Package cli exposes the transferwatch command-line interface.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/gabapcia/transferwatch/internal/config"
	"github.com/gabapcia/transferwatch/internal/pkg/logger"
	"github.com/gabapcia/transferwatch/internal/pkg/telemetry"

	"github.com/urfave/cli/v3"
)

// Run parses os.Args and executes the matching command:
//
//   - `start`: runs the poller and the operational HTTP server until SIGINT or SIGTERM.
//   - `check`: reports whether the node answers and its current height.
func Run(ctx context.Context) error {
	return newApp().Run(ctx, os.Args)
}

// newApp builds the root command.
func newApp() *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "transferwatch",
		Description:           "Watches a blockchain for large native-token transfers and records them.",
		Usage:                 "transferwatch [command] [flags]",
		Commands: []*cli.Command{
			startCommand(),
			checkCommand(),
		},
	}
}

// setup loads the configuration, starts telemetry when enabled and initializes
// the global logger. Telemetry comes first so the logger can bridge to its
// LoggerProvider. The returned ShutdownFunc flushes telemetry on exit.
func setup(ctx context.Context) (config.Config, telemetry.ShutdownFunc, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	shutdown := telemetry.ShutdownFunc(telemetry.Nop)
	if cfg.OTelEnabled {
		if shutdown, err = telemetry.Init(ctx, cfg.OTelServiceName); err != nil {
			return config.Config{}, nil, err
		}
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return config.Config{}, nil, errors.Join(err, shutdown(ctx))
	}

	return cfg, shutdown, nil
}

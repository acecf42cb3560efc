/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the planfeed command-line interface.
//
// Commands:
//
//	aggregate - fetch plans from all configured providers and write the collection
//	providers - list registered providers and credential status
//	serve     - aggregate once, then serve a read-only preview API
//	version   - print build information
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/planfeed/planfeed/pkg/logging"
)

const (
	name           = "planfeed"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "VPS hosting plan aggregator",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars(logging.EnvLogLevel),
				Usage:   "log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))

			// Provider credentials are commonly kept in a local .env file.
			// A missing file is not an error.
			if err := godotenv.Load(); err == nil {
				slog.Debug("loaded credentials from .env")
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			aggregateCmd(),
			providersCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main() and handles
// SIGINT/SIGTERM for graceful cancellation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

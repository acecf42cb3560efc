/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/provider"
	"github.com/planfeed/planfeed/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Aggregate once, then serve a read-only preview API",
		Description: `Run a full aggregation, then serve the resulting collection over HTTP.

Endpoints:
  GET /v1/plans            the collection (filter with ?provider=<name>)
  GET /healthz             health check
  GET /metrics             prometheus metrics

The served collection is the snapshot loaded at startup; restart to refresh.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Port to listen on",
				Value:   8080,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall timeout for the startup aggregation",
				Value: defaults.AggregateTimeout,
			},
			&cli.BoolFlag{
				Name:    "include-arm",
				Usage:   "Include ARM server types from providers that gate them",
				Sources: cli.EnvVars(provider.EnvHetznerIncludeARM),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			l := newLoader(cmd.Bool("include-arm"), cmd.Duration("timeout"))
			collection := l.Load(ctx)

			cfg := server.NewConfig()
			cfg.Name = name
			cfg.Version = version
			cfg.Port = int(cmd.Int("port"))

			return server.New(cfg, collection).Start(ctx)
		},
	}
}

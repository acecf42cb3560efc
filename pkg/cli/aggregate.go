/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/loader"
	"github.com/planfeed/planfeed/pkg/provider"
	"github.com/planfeed/planfeed/pkg/serializer"
)

func aggregateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "aggregate",
		EnableShellCompletion: true,
		Usage:                 "Fetch plans from all configured providers",
		Description: `Fetch current plans from every provider with configured credentials,
normalize them into the canonical schema, validate, and write the collection.

Providers without credentials are skipped with a warning. A provider that
fails mid-fetch contributes no plans; the rest of the collection is still
produced.

The collection can be output in JSON, YAML, or table format.

# Examples

Write the full collection to a file:
  planfeed aggregate --output plans.json

Human-readable summary in the terminal:
  planfeed aggregate --format table`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall timeout for the aggregation run",
				Value: defaults.AggregateTimeout,
			},
			&cli.BoolFlag{
				Name:    "include-arm",
				Usage:   "Include ARM server types from providers that gate them",
				Sources: cli.EnvVars(provider.EnvHetznerIncludeARM),
			},
			&cli.BoolFlag{
				Name:  "fail-on-invalid",
				Usage: "Exit non-zero when any fetched record fails validation",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			l := newLoader(cmd.Bool("include-arm"), cmd.Duration("timeout"))
			collection := l.Load(ctx)

			if cmd.Bool("fail-on-invalid") && collection.Summary.Invalid > 0 {
				return fmt.Errorf("%d of %d records failed validation",
					collection.Summary.Invalid, collection.Summary.Total)
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, collection)
		},
	}
}

// newLoader builds the pipeline from environment credentials.
func newLoader(includeARM bool, timeout time.Duration) *loader.Loader {
	getenv := os.Getenv
	if includeARM {
		getenv = func(key string) string {
			if key == provider.EnvHetznerIncludeARM {
				return "true"
			}
			return os.Getenv(key)
		}
	}

	l := loader.New(provider.FromEnv(getenv)...)
	if timeout > 0 {
		l.Aggregator.Timeout = timeout
	}
	return l
}

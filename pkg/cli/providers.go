/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/planfeed/planfeed/pkg/provider"
	"github.com/planfeed/planfeed/pkg/serializer"
)

func providersCmd() *cli.Command {
	return &cli.Command{
		Name:                  "providers",
		EnableShellCompletion: true,
		Usage:                 "List registered providers and credential status",
		Description: `List every registered provider, the environment variables it reads, and
whether credentials are currently present. Secret values are never printed.`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			report := provider.CredentialReport(os.Getenv)

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, report)
		},
	}
}

/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/planfeed/planfeed/pkg/serializer"
)

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Output file path (default: stdout)",
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"t"},
	Value:   string(serializer.FormatJSON),
	Usage:   fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
}

// parseOutputFormat reads and validates the format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/planfeed/planfeed/pkg/plan"
)

// TableRenderer lets a payload control its own table output instead of the
// generic FIELD/VALUE flattening.
type TableRenderer interface {
	RenderTable(w io.Writer) error
}

var tablePrinter = message.NewPrinter(language.English)

// WritePlanTable renders plans as a fixed-column table, one row per plan.
func WritePlanTable(w io.Writer, plans []plan.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROVIDER\tPRICE\tCPU\tRAM\tSTORAGE\tBANDWIDTH\tLOCATIONS")
	for _, p := range plans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d %s\t%s\t%s\t%s\t%d\n",
			p.ID,
			p.Provider,
			tablePrinter.Sprintf("%.2f %s", p.Price.Monthly, p.Price.Currency),
			p.Specs.CPU.Cores, p.Specs.CPU.Type,
			formatSize(p.Specs.RAM.Amount, string(p.Specs.RAM.Unit)),
			formatStorage(p.Specs.Storage),
			formatBandwidth(p.Specs.Bandwidth),
			len(p.Locations))
	}
	return tw.Flush()
}

func formatSize(amount float64, unit string) string {
	return strings.TrimSuffix(tablePrinter.Sprintf("%.2f", amount), ".00") + " " + unit
}

func formatStorage(s plan.Storage) string {
	return formatSize(s.Amount, string(s.Unit)) + " " + string(s.Type)
}

func formatBandwidth(b plan.Bandwidth) string {
	if b.Unlimited {
		return "unlimited"
	}
	return formatSize(b.Amount, string(b.Unit))
}

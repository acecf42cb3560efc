/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package loader runs the full collection pipeline: aggregate across
// providers, validate every record, and drop duplicates.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/planfeed/planfeed/pkg/aggregator"
	"github.com/planfeed/planfeed/pkg/plan"
	"github.com/planfeed/planfeed/pkg/provider"
	"github.com/planfeed/planfeed/pkg/serializer"
	"github.com/planfeed/planfeed/pkg/validator"
)

// Loader ties the aggregator and validator together into one pipeline.
type Loader struct {
	Aggregator *aggregator.Aggregator
	Validator  *validator.Validator
}

// New creates a loader over the given providers with a default validator.
func New(providers ...provider.Provider) *Loader {
	return &Loader{
		Aggregator: aggregator.New(providers...),
		Validator:  validator.New(),
	}
}

// Collection is the result of one pipeline run.
type Collection struct {
	// Plans are the valid, deduplicated records in provider registration
	// order.
	Plans []plan.Plan `json:"plans" yaml:"plans"`

	// Invalid holds the validation results of dropped records.
	Invalid []*validator.Result `json:"-" yaml:"-"`

	// Summary counts the run.
	Summary validator.Summary `json:"summary" yaml:"summary"`
}

// RenderTable implements serializer.TableRenderer so table-format output
// shows one row per plan instead of a flattened field dump.
func (c *Collection) RenderTable(w io.Writer) error {
	if err := serializer.WritePlanTable(w, c.Plans); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d plans (%d invalid dropped)\n", c.Summary.Valid, c.Summary.Invalid)
	return err
}

// ByProvider counts plans per provider display name.
func (c *Collection) ByProvider() map[string]int {
	counts := make(map[string]int)
	for _, p := range c.Plans {
		counts[p.Provider]++
	}
	return counts
}

// Load aggregates, validates, and deduplicates. Records failing validation
// are dropped with a warning; for duplicate IDs the first occurrence wins.
func (l *Loader) Load(ctx context.Context) *Collection {
	raw := l.Aggregator.Aggregate(ctx)

	valid, invalid, sum := l.Validator.ValidateAll(raw)
	deduped := dedupe(valid)
	sum.Valid = len(deduped)

	slog.Info("collection loaded",
		slog.Int("total", sum.Total),
		slog.Int("valid", sum.Valid),
		slog.Int("invalid", sum.Invalid))

	return &Collection{
		Plans:   deduped,
		Invalid: invalid,
		Summary: sum,
	}
}

// dedupe keeps the first record for each ID and logs the rest.
func dedupe(plans []plan.Plan) []plan.Plan {
	seen := make(map[string]bool, len(plans))
	out := make([]plan.Plan, 0, len(plans))
	for _, p := range plans {
		if seen[p.ID] {
			slog.Warn("dropping duplicate plan id", slog.String("id", p.ID))
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

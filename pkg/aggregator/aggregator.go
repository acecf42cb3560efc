/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package aggregator fans out to all registered providers in parallel and
// concatenates their plans in registration order.
package aggregator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/plan"
	"github.com/planfeed/planfeed/pkg/provider"
)

// Aggregator runs every registered provider concurrently and joins the
// results. Provider failures never fail the run: adapters contain their own
// errors and return empty slices, and a panicking adapter is isolated here.
type Aggregator struct {
	// Providers are fetched in parallel; output order follows this slice
	// regardless of completion order.
	Providers []provider.Provider

	// Timeout bounds the whole run. Zero means the default.
	Timeout time.Duration
}

// New creates an aggregator over the given providers.
func New(providers ...provider.Provider) *Aggregator {
	return &Aggregator{Providers: providers}
}

// Aggregate fetches plans from all providers in parallel and returns them
// concatenated in registration order. The result is deterministic for a
// given set of provider responses.
func (a *Aggregator) Aggregate(ctx context.Context) []plan.Plan {
	timeout := a.Timeout
	if timeout == 0 {
		timeout = defaults.AggregateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Debug("starting aggregation", slog.Int("providers", len(a.Providers)))

	start := time.Now()
	defer func() {
		aggregateDuration.Observe(time.Since(start).Seconds())
	}()

	// Results are slotted by provider index so the join preserves
	// registration order.
	perProvider := make([][]plan.Plan, len(a.Providers))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range a.Providers {
		g.Go(func() error {
			fetchStart := time.Now()
			defer func() {
				providerFetchDuration.WithLabelValues(p.Slug()).Observe(time.Since(fetchStart).Seconds())
			}()

			plans := a.fetchOne(gctx, p)

			mu.Lock()
			perProvider[i] = plans
			mu.Unlock()

			providerPlanCount.WithLabelValues(p.Slug()).Set(float64(len(plans)))
			slog.Debug("provider fetch complete",
				slog.String("provider", p.Slug()),
				slog.Int("plans", len(plans)))
			return nil
		})
	}
	// Adapters never return errors, so Wait only synchronizes.
	_ = g.Wait()

	var total int
	for _, plans := range perProvider {
		total += len(plans)
	}
	all := make([]plan.Plan, 0, total)
	for _, plans := range perProvider {
		all = append(all, plans...)
	}

	aggregateTotal.Inc()
	slog.Info("aggregation complete",
		slog.Int("providers", len(a.Providers)),
		slog.Int("plans", len(all)),
		slog.Duration("duration", time.Since(start)))

	return all
}

// fetchOne calls a single provider, turning a panic into an empty result so
// one misbehaving adapter cannot take down the run.
func (a *Aggregator) fetchOne(ctx context.Context, p provider.Provider) (plans []plan.Plan) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("provider panicked",
				slog.String("provider", p.Slug()),
				slog.Any("panic", r))
			plans = nil
		}
	}()
	return p.FetchPlans(ctx)
}

/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package aggregator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Aggregation run metrics
	aggregateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planfeed_aggregate_duration_seconds",
			Help:    "Time taken to run a complete aggregation across all providers",
			Buckets: []float64{1, 5, 10, 30, 60, 120},
		},
	)

	aggregateTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planfeed_aggregate_total",
			Help: "Total number of aggregation runs",
		},
	)

	providerFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planfeed_provider_fetch_duration_seconds",
			Help:    "Time taken by individual provider fetches",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"provider"},
	)

	providerPlanCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "planfeed_provider_plans",
			Help: "Number of plans returned by each provider in the last run",
		},
		[]string{"provider"},
	)
)

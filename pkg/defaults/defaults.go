/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package defaults provides centralized configuration constants for planfeed.
package defaults

import "time"

// Aggregation timeouts.
const (
	// AggregateTimeout bounds a full aggregation run across all providers.
	AggregateTimeout = 120 * time.Second

	// ProviderFetchTimeout bounds a single provider's fetch, including all
	// of its parallel resource requests.
	ProviderFetchTimeout = 30 * time.Second
)

// HTTP client defaults for outbound provider API requests.
const (
	HTTPClientTimeout         = 30 * time.Second
	HTTPConnectTimeout        = 5 * time.Second
	HTTPKeepAlive             = 30 * time.Second
	HTTPTLSHandshakeTimeout   = 5 * time.Second
	HTTPResponseHeaderTimeout = 10 * time.Second
	HTTPIdleConnTimeout       = 90 * time.Second
)

// Preview server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Plan collection limits.
const (
	// MaxLocationsPerPlan caps the locations listed for a single plan.
	// Providers with wider footprints are truncated, not rejected.
	MaxLocationsPerPlan = 10

	// HoursPerMonth is the fixed constant used to derive monthly prices
	// from hourly rates.
	HoursPerMonth = 730
)

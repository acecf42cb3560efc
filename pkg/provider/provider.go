/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package provider contains the per-provider adapters that fetch raw VPS
// plan data from each cloud provider's public API and normalize it into
// canonical plan records.
//
// Adapters are stateless and independent. Each one authenticates against one
// provider's REST API, fetches its related resources in parallel, filters out
// non-applicable plan types, converts units, derives tags and features, and
// returns candidate records for downstream validation.
//
// Failure policy is all-or-nothing per provider: missing credentials produce
// a single warning and an empty result; any fetch, decode, or transform
// failure produces a single error log and an empty result. Adapters never
// return partial results and never propagate errors to the caller.
package provider

import (
	"context"
	"log/slog"

	"github.com/planfeed/planfeed/pkg/errors"
	"github.com/planfeed/planfeed/pkg/plan"
)

// Environment variable names gating each provider adapter.
const (
	EnvDigitalOceanAPIKey = "DIGITALOCEAN_API_KEY"
	EnvHetznerAPIKey      = "HETZNER_API_KEY"
	EnvHetznerIncludeARM  = "HETZNER_INCLUDE_ARM"
	EnvVultrAPIKey        = "VULTR_API_KEY"
	EnvUpCloudUsername    = "UPCLOUD_USERNAME"
	EnvUpCloudPassword    = "UPCLOUD_PASSWORD"
	EnvScalewayAPIKey     = "SCALEWAY_API_KEY"
)

// Provider is the contract every adapter satisfies.
//
// FetchPlans never fails: all errors are contained at the adapter boundary
// and reported through logs. The caller only ever sees zero or more plans.
type Provider interface {
	// Name is the human-readable provider name (e.g. "DigitalOcean").
	Name() string
	// Slug is the lowercase identifier used as the plan id prefix.
	Slug() string
	// FetchPlans fetches and normalizes the provider's current plan listing.
	FetchPlans(ctx context.Context) []plan.Plan
}

// Config carries the externally supplied credentials and flags for one
// adapter. Adapters read configuration from this struct only, never from the
// environment, so tests can run in parallel without env save/restore dances.
type Config struct {
	APIKey   string
	Username string
	Password string

	// IncludeARM includes ARM-architecture plans for providers that
	// distinguish them (Hetzner). Default excluded.
	IncludeARM bool
}

// Getenv is the environment lookup used by FromEnv. It matches os.Getenv so
// tests can substitute a fake.
type Getenv func(string) string

// FromEnv builds the default adapter registry from environment-supplied
// credentials. Registration order is fixed and determines aggregation order:
// DigitalOcean, Hetzner, Linode, Vultr, UpCloud, Scaleway.
func FromEnv(getenv Getenv) []Provider {
	return []Provider{
		NewDigitalOcean(Config{APIKey: getenv(EnvDigitalOceanAPIKey)}),
		NewHetzner(Config{
			APIKey:     getenv(EnvHetznerAPIKey),
			IncludeARM: getenv(EnvHetznerIncludeARM) == "true",
		}),
		NewLinode(Config{}),
		NewVultr(Config{APIKey: getenv(EnvVultrAPIKey)}),
		NewUpCloud(Config{
			Username: getenv(EnvUpCloudUsername),
			Password: getenv(EnvUpCloudPassword),
		}),
		NewScaleway(Config{APIKey: getenv(EnvScalewayAPIKey)}),
	}
}

// CredentialStatus reports whether one provider's credentials are present.
// Values are never included, only presence.
type CredentialStatus struct {
	Name       string   `json:"name" yaml:"name"`
	Slug       string   `json:"slug" yaml:"slug"`
	EnvVars    []string `json:"envVars,omitempty" yaml:"envVars,omitempty"`
	Configured bool     `json:"configured" yaml:"configured"`
}

// CredentialReport inspects the environment for each registered provider's
// required variables, in registration order.
func CredentialReport(getenv Getenv) []CredentialStatus {
	required := [][]string{
		{EnvDigitalOceanAPIKey},
		{EnvHetznerAPIKey},
		nil, // Linode listing endpoints are public
		{EnvVultrAPIKey},
		{EnvUpCloudUsername, EnvUpCloudPassword},
		{EnvScalewayAPIKey},
	}

	providers := FromEnv(getenv)
	out := make([]CredentialStatus, len(providers))
	for i, p := range providers {
		configured := true
		for _, ev := range required[i] {
			if getenv(ev) == "" {
				configured = false
			}
		}
		out[i] = CredentialStatus{
			Name:       p.Name(),
			Slug:       p.Slug(),
			EnvVars:    required[i],
			Configured: configured,
		}
	}
	return out
}

// skipMissingCredentials emits the single warning required when an adapter
// is skipped for lack of configuration.
func skipMissingCredentials(name string, envVars ...string) {
	slog.Warn("skipping provider, missing credentials",
		slog.String("provider", name),
		slog.Any("env", envVars))
}

// contain runs an adapter's fetch and absorbs any failure into an empty
// result with a single error log, per the all-or-nothing adapter policy.
func contain(ctx context.Context, name string, fetch func(context.Context) ([]plan.Plan, error)) []plan.Plan {
	plans, err := fetch(ctx)
	if err != nil {
		slog.Error("provider fetch failed",
			slog.String("provider", name),
			slog.String("code", string(errors.CodeOf(err))),
			slog.Bool("expected", errors.IsExpected(err)),
			slog.String("error", err.Error()))
		return nil
	}
	return plans
}

/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package validator checks candidate plan records against the canonical plan
// schema, producing field-qualified error messages and filling declared
// defaults for absent optional fields.
//
// The validator never corrects out-of-range values. Defaults apply only to
// fields that are absent (zero) in the candidate: cpu.type, ram.unit,
// storage.unit, storage.type, bandwidth.unit, uptime.sla, and featured.
package validator

import (
	"log/slog"
	"net/url"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/plan"
)

// Validator validates candidate plan records against the canonical schema.
type Validator struct {
	// MaxLocations caps locations per plan. Zero uses the collection default.
	MaxLocations int
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithMaxLocations overrides the per-plan location cap.
func WithMaxLocations(n int) Option {
	return func(v *Validator) {
		v.MaxLocations = n
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		MaxLocations: defaults.MaxLocationsPerPlan,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks a single candidate record. It returns the record with
// defaults filled in and a Result describing any violations. The returned
// plan is only meaningful when the result is valid.
func (v *Validator) Validate(candidate plan.Plan) (plan.Plan, *Result) {
	res := &Result{ID: candidate.ID}
	p := v.applyDefaults(candidate)

	if p.ID == "" {
		res.addError("id", "must be a non-empty string")
	}
	if p.Provider == "" {
		res.addError("provider", "must be a non-empty string")
	}
	if p.Name == "" {
		res.addError("name", "must be a non-empty string")
	}

	if p.Price.Monthly <= 0 {
		res.addError("price.monthly", "must be a positive number, got %v", p.Price.Monthly)
	}
	if p.Price.Yearly < 0 {
		res.addError("price.yearly", "must be a positive number when present, got %v", p.Price.Yearly)
	}
	switch p.Price.Currency {
	case plan.CurrencyUSD, plan.CurrencyEUR, plan.CurrencyGBP:
	default:
		res.addError("price.currency", "must be one of USD, EUR, GBP, got %q", p.Price.Currency)
	}

	if p.Specs.CPU.Cores < 1 {
		res.addError("specs.cpu.cores", "must be a positive integer, got %d", p.Specs.CPU.Cores)
	}
	switch p.Specs.CPU.Type {
	case plan.CPUTypeVCPU, plan.CPUTypeCPU, plan.CPUTypeCore:
	default:
		res.addError("specs.cpu.type", "must be one of vCPU, CPU, Core, got %q", p.Specs.CPU.Type)
	}

	if p.Specs.RAM.Amount <= 0 {
		res.addError("specs.ram.amount", "must be a positive number, got %v", p.Specs.RAM.Amount)
	}
	switch p.Specs.RAM.Unit {
	case plan.UnitMB, plan.UnitGB, plan.UnitTB:
	default:
		res.addError("specs.ram.unit", "must be one of MB, GB, TB, got %q", p.Specs.RAM.Unit)
	}

	if p.Specs.Storage.Amount <= 0 {
		res.addError("specs.storage.amount", "must be a positive number, got %v", p.Specs.Storage.Amount)
	}
	switch p.Specs.Storage.Unit {
	case plan.UnitGB, plan.UnitTB:
	default:
		res.addError("specs.storage.unit", "must be one of GB, TB, got %q", p.Specs.Storage.Unit)
	}
	switch p.Specs.Storage.Type {
	case plan.StorageSSD, plan.StorageNVMe, plan.StorageHDD, plan.StorageEBS:
	default:
		res.addError("specs.storage.type", "must be one of SSD, NVMe, HDD, EBS, got %q", p.Specs.Storage.Type)
	}

	if p.Specs.Bandwidth.Amount < 0 {
		res.addError("specs.bandwidth.amount", "must be a non-negative number, got %v", p.Specs.Bandwidth.Amount)
	}
	if p.Specs.Bandwidth.Amount == 0 && !p.Specs.Bandwidth.Unlimited {
		res.addError("specs.bandwidth.amount", "required unless bandwidth is unlimited")
	}
	switch p.Specs.Bandwidth.Unit {
	case plan.UnitGB, plan.UnitTB:
	default:
		res.addError("specs.bandwidth.unit", "must be one of GB, TB, got %q", p.Specs.Bandwidth.Unit)
	}

	if len(p.Features) == 0 {
		res.addError("features", "must contain at least one entry")
	}
	if len(p.Locations) == 0 {
		res.addError("locations", "must contain at least one entry")
	}
	if v.MaxLocations > 0 && len(p.Locations) > v.MaxLocations {
		res.addError("locations", "must contain at most %d entries, got %d", v.MaxLocations, len(p.Locations))
	}

	if p.Uptime.Percentage < 0 || p.Uptime.Percentage > 100 {
		res.addError("uptime.percentage", "must be between 0 and 100, got %v", p.Uptime.Percentage)
	}

	if p.Support == "" {
		res.addError("support", "must be a non-empty string")
	}

	if !validWebsite(p.Website) {
		res.addError("website", "must be a valid http(s) URL, got %q", p.Website)
	}

	return p, res
}

// ValidateAll validates a collection in order, returning the valid records
// with defaults filled, the per-record results for the invalid ones, and a
// summary. Invalid records are dropped, not corrected.
func (v *Validator) ValidateAll(candidates []plan.Plan) ([]plan.Plan, []*Result, Summary) {
	valid := make([]plan.Plan, 0, len(candidates))
	var invalid []*Result

	for _, c := range candidates {
		p, res := v.Validate(c)
		if res.Valid() {
			valid = append(valid, p)
			continue
		}
		invalid = append(invalid, res)
		slog.Warn("dropping invalid plan record",
			slog.String("id", res.ID),
			slog.Int("errors", len(res.Errors)),
			slog.String("detail", res.Error()))
	}

	sum := Summary{
		Total:   len(candidates),
		Valid:   len(valid),
		Invalid: len(invalid),
	}
	return valid, invalid, sum
}

// applyDefaults fills declared defaults for absent optional fields.
func (v *Validator) applyDefaults(p plan.Plan) plan.Plan {
	if p.Specs.CPU.Type == "" {
		p.Specs.CPU.Type = plan.CPUTypeVCPU
	}
	if p.Specs.RAM.Unit == "" {
		p.Specs.RAM.Unit = plan.UnitGB
	}
	if p.Specs.Storage.Unit == "" {
		p.Specs.Storage.Unit = plan.UnitGB
	}
	if p.Specs.Storage.Type == "" {
		p.Specs.Storage.Type = plan.StorageSSD
	}
	if p.Specs.Bandwidth.Unit == "" {
		p.Specs.Bandwidth.Unit = plan.UnitTB
	}
	// uptime.sla and featured default to false, which is Go's zero value.
	return p
}

func validWebsite(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package plan defines the canonical VPS plan record produced by provider
// adapters, plus the unit-conversion and tagging helpers shared across them.
package plan

import "time"

// Currency is the ISO currency code a plan is priced in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// CPUType classifies how a plan's CPU allocation is marketed.
type CPUType string

const (
	CPUTypeVCPU CPUType = "vCPU"
	CPUTypeCPU  CPUType = "CPU"
	CPUTypeCore CPUType = "Core"
)

// SizeUnit is the unit a memory, storage, or bandwidth amount is expressed in.
type SizeUnit string

const (
	UnitMB SizeUnit = "MB"
	UnitGB SizeUnit = "GB"
	UnitTB SizeUnit = "TB"
)

// StorageType classifies the storage tier backing a plan.
type StorageType string

const (
	StorageSSD  StorageType = "SSD"
	StorageNVMe StorageType = "NVMe"
	StorageHDD  StorageType = "HDD"
	StorageEBS  StorageType = "EBS"
)

// Price holds the plan's pricing information.
type Price struct {
	Monthly  float64  `json:"monthly" yaml:"monthly"`
	Yearly   float64  `json:"yearly,omitempty" yaml:"yearly,omitempty"`
	Currency Currency `json:"currency" yaml:"currency"`
}

// CPU describes the plan's CPU allocation.
type CPU struct {
	Cores int     `json:"cores" yaml:"cores"`
	Type  CPUType `json:"type" yaml:"type"`
}

// Size is an amount with a unit, used for RAM.
type Size struct {
	Amount float64  `json:"amount" yaml:"amount"`
	Unit   SizeUnit `json:"unit" yaml:"unit"`
}

// Storage describes the plan's disk allocation.
type Storage struct {
	Amount float64     `json:"amount" yaml:"amount"`
	Unit   SizeUnit    `json:"unit" yaml:"unit"`
	Type   StorageType `json:"type" yaml:"type"`
}

// Bandwidth describes the plan's monthly transfer allowance.
// Amount may be zero when Unlimited is true.
type Bandwidth struct {
	Amount    float64  `json:"amount,omitempty" yaml:"amount,omitempty"`
	Unit      SizeUnit `json:"unit" yaml:"unit"`
	Unlimited bool     `json:"unlimited" yaml:"unlimited"`
}

// Specs groups the plan's hardware specifications.
type Specs struct {
	CPU       CPU       `json:"cpu" yaml:"cpu"`
	RAM       Size      `json:"ram" yaml:"ram"`
	Storage   Storage   `json:"storage" yaml:"storage"`
	Bandwidth Bandwidth `json:"bandwidth" yaml:"bandwidth"`
}

// Uptime describes the provider's availability commitment for the plan.
type Uptime struct {
	Percentage float64 `json:"percentage" yaml:"percentage"`
	SLA        bool    `json:"sla" yaml:"sla"`
}

// Plan is the canonical normalized VPS plan record.
//
// Adapters construct Plan values as candidates; the validator package checks
// them against the schema and fills defaults for absent optional fields. A
// Plan is never mutated after validation.
type Plan struct {
	// ID is globally unique: "<provider-slug>-<lowercased provider plan id>".
	ID       string `json:"id" yaml:"id"`
	Provider string `json:"provider" yaml:"provider"`
	Name     string `json:"name" yaml:"name"`

	Price Price `json:"price" yaml:"price"`
	Specs Specs `json:"specs" yaml:"specs"`

	// Features is ordered for display; duplicates are allowed.
	Features []string `json:"features" yaml:"features"`
	// Locations is capped at defaults.MaxLocationsPerPlan entries.
	Locations []string `json:"locations" yaml:"locations"`

	Uptime  Uptime `json:"uptime" yaml:"uptime"`
	Support string `json:"support" yaml:"support"`
	Website string `json:"website" yaml:"website"`

	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Featured    bool     `json:"featured" yaml:"featured"`

	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// GB returns the size expressed in gigabytes regardless of unit.
func (s Size) GB() float64 {
	switch s.Unit {
	case UnitMB:
		return s.Amount / 1024
	case UnitTB:
		return s.Amount * 1024
	default:
		return s.Amount
	}
}

// CapLocations truncates locations to the collection-wide per-plan limit.
// Truncation preserves the provider's own ordering.
func CapLocations(locations []string, limit int) []string {
	if limit <= 0 || len(locations) <= limit {
		return locations
	}
	return locations[:limit]
}

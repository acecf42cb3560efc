/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package plan

// TagRule appends Tag when its predicate holds for a plan. Provider adapters
// declare their tag cascades as ordered rule tables so the derivation logic
// is testable as data.
type TagRule struct {
	Tag  string
	When func(Plan) bool
}

// ApplyTagRules returns base followed by the tags of every matching rule,
// evaluated in declaration order. The base slice is not modified.
func ApplyTagRules(p Plan, base []string, rules []TagRule) []string {
	tags := make([]string, 0, len(base)+len(rules))
	tags = append(tags, base...)
	for _, r := range rules {
		if r.When(p) {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}

// Common tag predicates shared by provider rule tables.

// PriceBelow matches plans cheaper than the given monthly price.
func PriceBelow(monthly float64) func(Plan) bool {
	return func(p Plan) bool { return p.Price.Monthly < monthly }
}

// CoresAtLeast matches plans with at least n cores.
func CoresAtLeast(n int) func(Plan) bool {
	return func(p Plan) bool { return p.Specs.CPU.Cores >= n }
}

// RAMAtLeastGB matches plans with at least n gigabytes of memory.
func RAMAtLeastGB(n float64) func(Plan) bool {
	return func(p Plan) bool { return p.Specs.RAM.GB() >= n }
}

// StorageIs matches plans backed by the given storage type.
func StorageIs(t StorageType) func(Plan) bool {
	return func(p Plan) bool { return p.Specs.Storage.Type == t }
}

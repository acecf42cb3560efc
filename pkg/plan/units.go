/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package plan

import (
	"github.com/shopspring/decimal"

	"github.com/planfeed/planfeed/pkg/defaults"
)

// SizeFromMB normalizes a raw megabyte amount. Values of 1024 MB and above
// are reported in GB (divided by 1024); smaller values stay in MB.
func SizeFromMB(mb float64) Size {
	if mb >= 1024 {
		return Size{Amount: round2(mb / 1024), Unit: UnitGB}
	}
	return Size{Amount: mb, Unit: UnitMB}
}

// SizeFromGB normalizes a raw gigabyte amount. Values of 1024 GB and above
// are reported in TB (divided by 1024); smaller values stay in GB.
func SizeFromGB(gb float64) Size {
	if gb >= 1024 {
		return Size{Amount: round2(gb / 1024), Unit: UnitTB}
	}
	return Size{Amount: gb, Unit: UnitGB}
}

// SizeFromBytes normalizes a raw byte amount through the MB rule.
func SizeFromBytes(b float64) Size {
	return SizeFromMB(b / (1024 * 1024))
}

// MonthlyFromHourly derives a monthly price from an hourly rate using the
// fixed 730 hours/month constant, rounded to 2 decimal places.
func MonthlyFromHourly(hourly float64) float64 {
	d := decimal.NewFromFloat(hourly).
		Mul(decimal.NewFromInt(defaults.HoursPerMonth)).
		Round(2)
	return d.InexactFloat64()
}

// CheapestMonthly selects the minimum of several tiered monthly prices.
// Ties are broken by listing order: the first occurrence of the minimum wins.
// Returns 0 when the slice is empty.
func CheapestMonthly(prices []decimal.Decimal) float64 {
	if len(prices) == 0 {
		return 0
	}
	min := prices[0]
	for _, p := range prices[1:] {
		if p.LessThan(min) {
			min = p
		}
	}
	return min.Round(2).InexactFloat64()
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

package plan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSizeFromMB(t *testing.T) {
	tests := []struct {
		name string
		mb   float64
		want Size
	}{
		{"below threshold stays MB", 512, Size{Amount: 512, Unit: UnitMB}},
		{"exact threshold converts", 1024, Size{Amount: 1, Unit: UnitGB}},
		{"above threshold converts", 2048, Size{Amount: 2, Unit: UnitGB}},
		{"large value", 65536, Size{Amount: 64, Unit: UnitGB}},
		{"non-power-of-two rounds to 2dp", 1536, Size{Amount: 1.5, Unit: UnitGB}},
		{"tiny stays MB", 256, Size{Amount: 256, Unit: UnitMB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeFromMB(tt.mb))
		})
	}
}

func TestSizeFromGB(t *testing.T) {
	tests := []struct {
		name string
		gb   float64
		want Size
	}{
		{"below threshold stays GB", 25, Size{Amount: 25, Unit: UnitGB}},
		{"exact threshold converts", 1024, Size{Amount: 1, Unit: UnitTB}},
		{"above threshold converts", 2048, Size{Amount: 2, Unit: UnitTB}},
		{"odd value rounds", 4000, Size{Amount: 3.91, Unit: UnitTB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeFromGB(tt.gb))
		})
	}
}

func TestSizeFromBytes(t *testing.T) {
	// 2 GiB in bytes normalizes through the MB rule.
	assert.Equal(t, Size{Amount: 2, Unit: UnitGB}, SizeFromBytes(2147483648))
	// 512 MiB stays in MB.
	assert.Equal(t, Size{Amount: 512, Unit: UnitMB}, SizeFromBytes(536870912))
}

func TestSizeGB(t *testing.T) {
	assert.InDelta(t, 0.5, Size{Amount: 512, Unit: UnitMB}.GB(), 0.001)
	assert.InDelta(t, 4, Size{Amount: 4, Unit: UnitGB}.GB(), 0.001)
	assert.InDelta(t, 2048, Size{Amount: 2, Unit: UnitTB}.GB(), 0.001)
}

func TestMonthlyFromHourly(t *testing.T) {
	// 730 hours/month, rounded to 2 decimal places.
	assert.Equal(t, 6.52, MonthlyFromHourly(0.00893))
	assert.Equal(t, 10.86, MonthlyFromHourly(0.01488))
	assert.Equal(t, 0.0, MonthlyFromHourly(0))
}

func TestCheapestMonthly(t *testing.T) {
	prices := func(vals ...string) []decimal.Decimal {
		out := make([]decimal.Decimal, 0, len(vals))
		for _, v := range vals {
			d, err := decimal.NewFromString(v)
			if err != nil {
				t.Fatalf("bad test price %q: %v", v, err)
			}
			out = append(out, d)
		}
		return out
	}

	assert.Equal(t, 4.15, CheapestMonthly(prices("5.00", "4.15", "4.50")))
	assert.Equal(t, 5.0, CheapestMonthly(prices("5.00")))
	assert.Equal(t, 3.92, CheapestMonthly(prices("3.92", "3.92", "4.51")))
	assert.Equal(t, 0.0, CheapestMonthly(nil))
}

func TestCapLocations(t *testing.T) {
	ten := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	twelve := append(append([]string{}, ten...), "k", "l")

	assert.Len(t, CapLocations(twelve, 10), 10)
	assert.Equal(t, ten, CapLocations(twelve, 10))
	assert.Equal(t, ten, CapLocations(ten, 10))
	assert.Equal(t, []string{"a"}, CapLocations([]string{"a"}, 10))
}

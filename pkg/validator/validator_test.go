package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfeed/planfeed/pkg/plan"
)

func validCandidate() plan.Plan {
	return plan.Plan{
		ID:       "digitalocean-s-1vcpu-1gb",
		Provider: "DigitalOcean",
		Name:     "Basic Droplet",
		Price:    plan.Price{Monthly: 6, Currency: plan.CurrencyUSD},
		Specs: plan.Specs{
			CPU:       plan.CPU{Cores: 1, Type: plan.CPUTypeVCPU},
			RAM:       plan.Size{Amount: 1, Unit: plan.UnitGB},
			Storage:   plan.Storage{Amount: 25, Unit: plan.UnitGB, Type: plan.StorageSSD},
			Bandwidth: plan.Bandwidth{Amount: 1, Unit: plan.UnitTB},
		},
		Features:  []string{"SSD Storage", "IPv6"},
		Locations: []string{"New York 1", "Amsterdam 3"},
		Uptime:    plan.Uptime{Percentage: 99.99, SLA: true},
		Support:   "24/7 Ticket Support",
		Website:   "https://www.digitalocean.com",
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	v := New()
	p, res := v.Validate(validCandidate())

	require.True(t, res.Valid(), "unexpected errors: %v", res.Errors)
	assert.Equal(t, "digitalocean-s-1vcpu-1gb", p.ID)
}

func TestValidate_FillsDefaults(t *testing.T) {
	c := validCandidate()
	c.Specs.CPU.Type = ""
	c.Specs.RAM.Unit = ""
	c.Specs.Storage.Unit = ""
	c.Specs.Storage.Type = ""
	c.Specs.Bandwidth.Unit = ""

	v := New()
	p, res := v.Validate(c)

	require.True(t, res.Valid(), "unexpected errors: %v", res.Errors)
	assert.Equal(t, plan.CPUTypeVCPU, p.Specs.CPU.Type)
	assert.Equal(t, plan.UnitGB, p.Specs.RAM.Unit)
	assert.Equal(t, plan.UnitGB, p.Specs.Storage.Unit)
	assert.Equal(t, plan.StorageSSD, p.Specs.Storage.Type)
	assert.Equal(t, plan.UnitTB, p.Specs.Bandwidth.Unit)
	assert.False(t, p.Featured)
	assert.False(t, p.Uptime.SLA)
}

func TestValidate_DoesNotCorrectOutOfRange(t *testing.T) {
	c := validCandidate()
	c.Uptime.Percentage = 101

	v := New()
	_, res := v.Validate(c)

	require.False(t, res.Valid())
	assert.Equal(t, "uptime.percentage", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "between 0 and 100")
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*plan.Plan)
		field   string
		message string
	}{
		{"empty id", func(p *plan.Plan) { p.ID = "" }, "id", "non-empty"},
		{"empty provider", func(p *plan.Plan) { p.Provider = "" }, "provider", "non-empty"},
		{"empty name", func(p *plan.Plan) { p.Name = "" }, "name", "non-empty"},
		{"zero price", func(p *plan.Plan) { p.Price.Monthly = 0 }, "price.monthly", "positive"},
		{"negative price", func(p *plan.Plan) { p.Price.Monthly = -5 }, "price.monthly", "positive"},
		{"bad currency", func(p *plan.Plan) { p.Price.Currency = "JPY" }, "price.currency", "USD, EUR, GBP"},
		{"zero cores", func(p *plan.Plan) { p.Specs.CPU.Cores = 0 }, "specs.cpu.cores", "positive"},
		{"bad cpu type", func(p *plan.Plan) { p.Specs.CPU.Type = "Thread" }, "specs.cpu.type", "vCPU, CPU, Core"},
		{"zero ram", func(p *plan.Plan) { p.Specs.RAM.Amount = 0 }, "specs.ram.amount", "positive"},
		{"bad ram unit", func(p *plan.Plan) { p.Specs.RAM.Unit = "KB" }, "specs.ram.unit", "MB, GB, TB"},
		{"zero storage", func(p *plan.Plan) { p.Specs.Storage.Amount = 0 }, "specs.storage.amount", "positive"},
		{"bad storage unit", func(p *plan.Plan) { p.Specs.Storage.Unit = "MB" }, "specs.storage.unit", "GB, TB"},
		{"bad storage type", func(p *plan.Plan) { p.Specs.Storage.Type = "Tape" }, "specs.storage.type", "SSD, NVMe, HDD, EBS"},
		{"negative bandwidth", func(p *plan.Plan) { p.Specs.Bandwidth.Amount = -1 }, "specs.bandwidth.amount", "non-negative"},
		{"no features", func(p *plan.Plan) { p.Features = nil }, "features", "at least one"},
		{"no locations", func(p *plan.Plan) { p.Locations = nil }, "locations", "at least one"},
		{"empty support", func(p *plan.Plan) { p.Support = "" }, "support", "non-empty"},
		{"bad website", func(p *plan.Plan) { p.Website = "not-a-url" }, "website", "valid http"},
		{"ftp website", func(p *plan.Plan) { p.Website = "ftp://example.com" }, "website", "valid http"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)

			_, res := v.Validate(c)
			require.False(t, res.Valid())
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.field, res.Errors[0].Field)
			assert.Contains(t, res.Errors[0].Message, tt.message)
		})
	}
}

func TestValidate_BandwidthUnlimited(t *testing.T) {
	c := validCandidate()
	c.Specs.Bandwidth = plan.Bandwidth{Unit: plan.UnitTB, Unlimited: true}

	v := New()
	_, res := v.Validate(c)
	assert.True(t, res.Valid(), "unlimited bandwidth may omit amount: %v", res.Errors)

	c.Specs.Bandwidth = plan.Bandwidth{Unit: plan.UnitTB}
	_, res = v.Validate(c)
	require.False(t, res.Valid())
	assert.Equal(t, "specs.bandwidth.amount", res.Errors[0].Field)
}

func TestValidate_TooManyLocations(t *testing.T) {
	c := validCandidate()
	c.Locations = make([]string, 11)
	for i := range c.Locations {
		c.Locations[i] = "Somewhere"
	}

	v := New()
	_, res := v.Validate(c)
	require.False(t, res.Valid())
	assert.Equal(t, "locations", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "at most 10")
}

func TestValidateAll(t *testing.T) {
	good := validCandidate()
	bad := validCandidate()
	bad.ID = "digitalocean-broken"
	bad.Price.Monthly = 0

	v := New()
	valid, invalid, sum := v.ValidateAll([]plan.Plan{good, bad})

	assert.Len(t, valid, 1)
	assert.Equal(t, good.ID, valid[0].ID)
	require.Len(t, invalid, 1)
	assert.Equal(t, "digitalocean-broken", invalid[0].ID)
	assert.Equal(t, Summary{Total: 2, Valid: 1, Invalid: 1}, sum)
}

func TestResult_Error(t *testing.T) {
	v := New()
	c := validCandidate()
	c.Name = ""
	c.Support = ""

	_, res := v.Validate(c)
	msg := res.Error()
	assert.Contains(t, msg, c.ID)
	assert.Contains(t, msg, "name:")
	assert.Contains(t, msg, "support:")
}

package provider

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfeed/planfeed/pkg/plan"
)

// Per-zone product listings. DEV1-S is offered in fr-par-1 and nl-ams-1,
// the rest only in fr-par-1.
var scalewayZoneFixtures = map[string]string{
	"fr-par-1": `{
	  "servers": {
	    "DEV1-S": {
	      "ncpus": 2,
	      "ram": 2147483648,
	      "arch": "x86_64",
	      "gpu": 0,
	      "baremetal": false,
	      "hourly_price": 0,
	      "volumes_constraint": {"min_size": 21474836480}
	    },
	    "GP1-XS": {
	      "ncpus": 4,
	      "ram": 17179869184,
	      "arch": "x86_64",
	      "gpu": 0,
	      "baremetal": false,
	      "hourly_price": 0.0228,
	      "volumes_constraint": {"min_size": 161061273600}
	    },
	    "COPARM1-2C-8G": {
	      "ncpus": 2,
	      "ram": 8589934592,
	      "arch": "arm64",
	      "gpu": 0,
	      "baremetal": false,
	      "hourly_price": 0.0101,
	      "volumes_constraint": {"min_size": 0}
	    },
	    "RENDER-S": {
	      "ncpus": 10,
	      "ram": 48318382080,
	      "arch": "x86_64",
	      "gpu": 1,
	      "baremetal": false,
	      "hourly_price": 1.0,
	      "volumes_constraint": {"min_size": 429496729600}
	    },
	    "EM-A210R-HDD": {
	      "ncpus": 4,
	      "ram": 17179869184,
	      "arch": "x86_64",
	      "gpu": 0,
	      "baremetal": true,
	      "hourly_price": 0.11,
	      "volumes_constraint": {"min_size": 0}
	    }
	  }
	}`,
	"fr-par-2": `{"servers": {}}`,
	"nl-ams-1": `{
	  "servers": {
	    "DEV1-S": {
	      "ncpus": 2,
	      "ram": 2147483648,
	      "arch": "x86_64",
	      "gpu": 0,
	      "baremetal": false,
	      "hourly_price": 0,
	      "volumes_constraint": {"min_size": 21474836480}
	    }
	  }
	}`,
	"pl-waw-1": `{"servers": {}}`,
}

func newScalewayServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "scw-test-key", r.Header.Get("X-Auth-Token"))
		for zone, body := range scalewayZoneFixtures {
			if r.URL.Path == "/instance/v1/zones/"+zone+"/products/servers" {
				w.Write([]byte(body))
				return
			}
		}
		http.NotFound(w, r)
	}))
}

func TestScaleway_MissingCredentials(t *testing.T) {
	logs := captureLogs(t)

	s := NewScaleway(Config{})
	plans := s.FetchPlans(t.Context())

	assert.Empty(t, plans)
	assert.Equal(t, 1, logs.count(slog.LevelWarn))
	assert.True(t, logs.contains(slog.LevelWarn, EnvScalewayAPIKey))
}

func TestScaleway_FetchPlans(t *testing.T) {
	srv := newScalewayServer(t)
	defer srv.Close()

	s := &Scaleway{APIKey: "scw-test-key", BaseURL: srv.URL}
	plans := s.FetchPlans(t.Context())

	// RENDER-S (GPU) and EM-A210R-HDD (bare metal) are excluded; the rest
	// come back sorted by product name.
	require.Len(t, plans, 3)

	arm := plans[0]
	assert.Equal(t, "scaleway-coparm1-2c-8g", arm.ID)
	// 0.0101 * 730 = 7.37.
	assert.Equal(t, 7.37, arm.Price.Monthly)
	assert.Equal(t, plan.CurrencyEUR, arm.Price.Currency)
	assert.Contains(t, arm.Tags, "arm")
	assert.Contains(t, arm.Tags, "energy-efficient")
	assert.Contains(t, arm.Features, "ARM Architecture")
	// No volume constraint: storage defaults to 25 GB.
	assert.Equal(t, plan.Storage{Amount: 25, Unit: plan.UnitGB, Type: plan.StorageSSD}, arm.Specs.Storage)

	dev := plans[1]
	assert.Equal(t, "scaleway-dev1-s", dev.ID)
	assert.Equal(t, "DEV1-S", dev.Name)
	assert.Equal(t, plan.Size{Amount: 2, Unit: plan.UnitGB}, dev.Specs.RAM)
	assert.Equal(t, plan.Storage{Amount: 20, Unit: plan.UnitGB, Type: plan.StorageSSD}, dev.Specs.Storage)
	assert.True(t, dev.Featured)
	// Offered in two zones; duplicated labels are kept as reported.
	assert.Equal(t, []string{"Paris, FR", "Amsterdam, NL"}, dev.Locations)

	gp := plans[2]
	assert.Equal(t, "scaleway-gp1-xs", gp.ID)
	// 0.0228 * 730 = 16.64.
	assert.Equal(t, 16.64, gp.Price.Monthly)
	assert.Equal(t, plan.CPUTypeCPU, gp.Specs.CPU.Type)
	assert.Equal(t, plan.StorageNVMe, gp.Specs.Storage.Type)
	assert.Equal(t, []string{"Paris, FR"}, gp.Locations)
}

func TestScaleway_PriceEstimateFromSpecs(t *testing.T) {
	srv := newScalewayServer(t)
	defer srv.Close()

	s := &Scaleway{APIKey: "scw-test-key", BaseURL: srv.URL}
	plans := s.FetchPlans(t.Context())
	require.Len(t, plans, 3)

	// DEV1-S has no hourly price: 2 cores * 3.0 + 2 GB * 1.5 = 9.0 EUR.
	dev := plans[1]
	assert.Equal(t, 9.0, dev.Price.Monthly)
	assert.Contains(t, dev.Tags, "budget")
}

func TestScaleway_UpstreamFailure(t *testing.T) {
	logs := captureLogs(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	s := &Scaleway{APIKey: "scw-test-key", BaseURL: srv.URL}
	plans := s.FetchPlans(t.Context())

	assert.Empty(t, plans)
	assert.Equal(t, 1, logs.count(slog.LevelError))
}

func TestScaleway_ValidatesCleanly(t *testing.T) {
	srv := newScalewayServer(t)
	defer srv.Close()

	s := &Scaleway{APIKey: "scw-test-key", BaseURL: srv.URL}
	assertAllValid(t, s.FetchPlans(t.Context()))
}

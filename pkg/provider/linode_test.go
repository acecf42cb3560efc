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

const linodeTypesFixture = `{
  "data": [
    {
      "id": "g6-nanode-1",
      "label": "Nanode 1GB",
      "class": "nanode",
      "memory": 1024,
      "disk": 25600,
      "transfer": 1000,
      "vcpus": 1,
      "gpus": 0,
      "price": {"hourly": 0.0075, "monthly": 5.0}
    },
    {
      "id": "g6-standard-2",
      "label": "Linode 4GB",
      "class": "standard",
      "memory": 4096,
      "disk": 81920,
      "transfer": 4000,
      "vcpus": 2,
      "gpus": 0,
      "price": {"hourly": 0.036, "monthly": 24.0}
    },
    {
      "id": "g1-gpu-rtx6000-1",
      "label": "Dedicated 32GB + RTX6000 GPU x1",
      "class": "gpu",
      "memory": 32768,
      "disk": 655360,
      "transfer": 16000,
      "vcpus": 8,
      "gpus": 1,
      "price": {"hourly": 1.5, "monthly": 1000.0}
    },
    {
      "id": "g7-highmem-1",
      "label": "Linode 24GB",
      "class": "highmem",
      "memory": 24576,
      "disk": 20480,
      "transfer": 5000,
      "vcpus": 2,
      "gpus": 0,
      "price": {"hourly": 0.09, "monthly": 60.0}
    }
  ]
}`

const linodeRegionsFixture = `{
  "data": [
    {"id": "us-east", "label": "Newark, NJ", "country": "us"},
    {"id": "eu-west", "label": "London, UK", "country": "gb"},
    {"id": "ap-south", "label": "Singapore, SG", "country": "sg"},
    {"id": "eu-central", "label": "Frankfurt, DE", "country": "de"},
    {"id": "us-central", "label": "Dallas, TX", "country": "us"},
    {"id": "us-west", "label": "Fremont, CA", "country": "us"},
    {"id": "ap-west", "label": "Mumbai, IN", "country": "in"},
    {"id": "ca-central", "label": "Toronto, ON", "country": "ca"},
    {"id": "ap-southeast", "label": "Sydney, AU", "country": "au"},
    {"id": "us-iad", "label": "Washington, DC", "country": "us"},
    {"id": "us-ord", "label": "Chicago, IL", "country": "us"},
    {"id": "fr-par", "label": "Paris, FR", "country": "fr"}
  ]
}`

func newLinodeServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Listing endpoints are public: no Authorization header expected.
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v4/linode/types":
			w.Write([]byte(linodeTypesFixture))
		case "/v4/regions":
			w.Write([]byte(linodeRegionsFixture))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestLinode_NoCredentialsRequired(t *testing.T) {
	logs := captureLogs(t)
	srv := newLinodeServer(t)
	defer srv.Close()

	l := &Linode{BaseURL: srv.URL}
	plans := l.FetchPlans(t.Context())

	assert.NotEmpty(t, plans)
	assert.Equal(t, 0, logs.count(slog.LevelWarn))
}

func TestLinode_FetchPlans(t *testing.T) {
	srv := newLinodeServer(t)
	defer srv.Close()

	l := &Linode{BaseURL: srv.URL}
	plans := l.FetchPlans(t.Context())

	// The GPU class is excluded.
	require.Len(t, plans, 3)

	nanode := plans[0]
	assert.Equal(t, "linode-g6-nanode-1", nanode.ID)
	assert.Equal(t, "Nanode 1GB (Nanode)", nanode.Name)
	assert.Equal(t, 5.0, nanode.Price.Monthly)
	assert.Equal(t, plan.CurrencyUSD, nanode.Price.Currency)
	assert.Equal(t, plan.Size{Amount: 1, Unit: plan.UnitGB}, nanode.Specs.RAM)
	// Disk is reported in MB: 25600 MB -> 25 GB.
	assert.Equal(t, plan.Storage{Amount: 25, Unit: plan.UnitGB, Type: plan.StorageSSD}, nanode.Specs.Storage)
	assert.True(t, nanode.Featured)

	std := plans[1]
	assert.Equal(t, "linode-g6-standard-2", std.ID)
	// 4000 GB transfer crosses into TB.
	assert.Equal(t, plan.Bandwidth{Amount: 3.91, Unit: plan.UnitTB}, std.Specs.Bandwidth)

	highmem := plans[2]
	assert.Equal(t, plan.CPUTypeCPU, highmem.Specs.CPU.Type)
	assert.Contains(t, highmem.Tags, "high-memory")
}

func TestLinode_LocationsCapped(t *testing.T) {
	srv := newLinodeServer(t)
	defer srv.Close()

	l := &Linode{BaseURL: srv.URL}
	plans := l.FetchPlans(t.Context())
	require.NotEmpty(t, plans)

	// Fixture has 12 regions; plans list at most 10.
	for _, p := range plans {
		assert.LessOrEqual(t, len(p.Locations), 10)
	}
	assert.Equal(t, "Newark, NJ", plans[0].Locations[0])
}

func TestLinode_UpstreamFailure(t *testing.T) {
	logs := captureLogs(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	l := &Linode{BaseURL: srv.URL}
	plans := l.FetchPlans(t.Context())

	assert.Empty(t, plans)
	assert.Equal(t, 1, logs.count(slog.LevelError))
}

func TestLinode_ValidatesCleanly(t *testing.T) {
	srv := newLinodeServer(t)
	defer srv.Close()

	l := &Linode{BaseURL: srv.URL}
	assertAllValid(t, l.FetchPlans(t.Context()))
}

/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/plan"
)

const (
	scalewayName    = "Scaleway"
	scalewaySlug    = "scaleway"
	scalewayBaseURL = "https://api.scaleway.com"
	scalewayWebsite = "https://www.scaleway.com"
)

// Rough price estimate coefficients (EUR/month) used when a product carries
// no hourly price. These are approximations of Scaleway's published pricing,
// not billing data; they are kept as-is to match what the site has always
// displayed.
const (
	scalewayEstimatePerCore  = 3.0
	scalewayEstimatePerRAMGB = 1.5
)

// scalewayZones are the zones polled for product availability, in the order
// their locations are reported.
var scalewayZones = []struct {
	id    string
	label string
}{
	{"fr-par-1", "Paris, FR"},
	{"fr-par-2", "Paris, FR"},
	{"nl-ams-1", "Amsterdam, NL"},
	{"pl-waw-1", "Warsaw, PL"},
}

// scalewayServer is the trust-boundary shape of one product in
// GET /instance/v1/zones/{zone}/products/servers. Products are keyed by
// commercial name in the response object.
type scalewayServer struct {
	NCPUs             int     `json:"ncpus"`
	RAM               float64 `json:"ram"` // bytes
	Arch              string  `json:"arch"`
	Gpu               int     `json:"gpu"`
	Baremetal         bool    `json:"baremetal"`
	HourlyPrice       float64 `json:"hourly_price"`
	VolumesConstraint struct {
		MinSize float64 `json:"min_size"` // bytes
	} `json:"volumes_constraint"`
}

type scalewayServersResponse struct {
	Servers map[string]scalewayServer `json:"servers"`
}

var scalewayFeatured = map[string]bool{
	"DEV1-S": true,
	"GP1-XS": true,
}

var scalewayTagRules = []plan.TagRule{
	{Tag: "budget", When: plan.PriceBelow(10)},
	{Tag: "performance", When: plan.CoresAtLeast(8)},
	{Tag: "high-memory", When: plan.RAMAtLeastGB(32)},
}

// Scaleway fetches instance products from each zone of the Scaleway API
// using its custom header token. A plan's locations are the zones that
// offer it. Bare-metal and GPU classes are excluded.
type Scaleway struct {
	// APIKey is the X-Auth-Token secret. When empty the adapter is skipped.
	APIKey string
	// BaseURL overrides the public API endpoint, for tests.
	BaseURL string
	// Client overrides the shared HTTP fetcher.
	Client *Fetcher
}

// NewScaleway creates the Scaleway adapter from explicit config.
func NewScaleway(cfg Config) *Scaleway {
	return &Scaleway{APIKey: cfg.APIKey}
}

func (s *Scaleway) Name() string { return scalewayName }
func (s *Scaleway) Slug() string { return scalewaySlug }

// FetchPlans implements Provider.
func (s *Scaleway) FetchPlans(ctx context.Context) []plan.Plan {
	if s.APIKey == "" {
		skipMissingCredentials(scalewayName, EnvScalewayAPIKey)
		return nil
	}
	return contain(ctx, scalewayName, s.fetch)
}

func (s *Scaleway) fetch(ctx context.Context) ([]plan.Plan, error) {
	base := s.BaseURL
	if base == "" {
		base = scalewayBaseURL
	}
	client := s.Client
	if client == nil {
		client = defaultFetcher
	}
	auth := HeaderAuth("X-Auth-Token", s.APIKey)

	ctx, cancel := context.WithTimeout(ctx, defaults.ProviderFetchTimeout)
	defer cancel()

	// One products listing per zone, fetched concurrently. Results are
	// slotted by zone index so availability order stays deterministic.
	perZone := make([]scalewayServersResponse, len(scalewayZones))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, zone := range scalewayZones {
		g.Go(func() error {
			var resp scalewayServersResponse
			url := fmt.Sprintf("%s/instance/v1/zones/%s/products/servers", base, zone.id)
			if err := client.GetJSON(gctx, "products/"+zone.id, url, auth, &resp); err != nil {
				return err
			}
			mu.Lock()
			perZone[i] = resp
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Union the zone listings. Product objects are keyed by name, so the
	// output is sorted by name to keep runs deterministic.
	products := make(map[string]scalewayServer)
	availability := make(map[string][]string)
	for i, resp := range perZone {
		for name, srv := range resp.Servers {
			if _, seen := products[name]; !seen {
				products[name] = srv
			}
			availability[name] = append(availability[name], scalewayZones[i].label)
		}
	}

	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Strings(names)

	plans := make([]plan.Plan, 0, len(names))
	for _, name := range names {
		srv := products[name]
		if srv.Baremetal || srv.Gpu > 0 || strings.HasPrefix(name, "RENDER") {
			continue
		}
		plans = append(plans, s.transform(name, srv, availability[name]))
	}
	return plans, nil
}

func (s *Scaleway) transform(name string, srv scalewayServer, locations []string) plan.Plan {
	ram := plan.SizeFromBytes(srv.RAM)

	monthly := plan.MonthlyFromHourly(srv.HourlyPrice)
	if monthly == 0 {
		// No price endpoint for this product: estimate from specs.
		monthly = float64(srv.NCPUs)*scalewayEstimatePerCore + ram.GB()*scalewayEstimatePerRAMGB
	}

	cpuType := plan.CPUTypeVCPU
	storageType := plan.StorageSSD
	features := []string{"Block Storage", "IPv6", "Security Groups"}
	if strings.HasPrefix(name, "GP1") || strings.HasPrefix(name, "PRO2") {
		cpuType = plan.CPUTypeCPU
		storageType = plan.StorageNVMe
		features = append(features, "Dedicated Resources", "NVMe Storage")
	}
	arm := strings.HasPrefix(srv.Arch, "arm")
	if arm {
		features = append(features, "ARM Architecture")
	}

	storageGB := srv.VolumesConstraint.MinSize / (1024 * 1024 * 1024)
	if storageGB == 0 {
		// Products without a volume constraint start from block storage.
		storageGB = 25
	}

	p := plan.Plan{
		ID:       scalewaySlug + "-" + strings.ToLower(name),
		Provider: scalewayName,
		Name:     name,
		Price:    plan.Price{Monthly: monthly, Currency: plan.CurrencyEUR},
		Specs: plan.Specs{
			CPU:       plan.CPU{Cores: srv.NCPUs, Type: cpuType},
			RAM:       ram,
			Storage:   storageFromGB(storageGB, storageType),
			Bandwidth: plan.Bandwidth{Unit: plan.UnitTB, Unlimited: true},
		},
		Features:  features,
		Locations: plan.CapLocations(locations, defaults.MaxLocationsPerPlan),
		Uptime:    plan.Uptime{Percentage: 99.9},
		Support:   "Ticket Support",
		Website:   scalewayWebsite,
		Featured:  scalewayFeatured[name],
	}
	p.Tags = plan.ApplyTagRules(p, []string{"cloud", "eu"}, scalewayTagRules)
	if arm {
		p.Tags = append(p.Tags, "arm", "energy-efficient")
	}
	return p
}

/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/plan"
)

const (
	digitalOceanName    = "DigitalOcean"
	digitalOceanSlug    = "digitalocean"
	digitalOceanBaseURL = "https://api.digitalocean.com"
	digitalOceanWebsite = "https://www.digitalocean.com"

	// Droplets below this memory floor are legacy sizes not worth listing.
	digitalOceanMinMemoryMB = 512
)

// doSize is the trust-boundary shape of one entry in GET /v2/sizes.
type doSize struct {
	Slug         string   `json:"slug"`
	Memory       float64  `json:"memory"` // MB
	VCPUs        int      `json:"vcpus"`
	Disk         float64  `json:"disk"`     // GB
	Transfer     float64  `json:"transfer"` // TB
	PriceMonthly float64  `json:"price_monthly"`
	PriceHourly  float64  `json:"price_hourly"`
	Regions      []string `json:"regions"`
	Available    bool     `json:"available"`
	Description  string   `json:"description"`
}

type doSizesResponse struct {
	Sizes []doSize `json:"sizes"`
}

type doRegion struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}

type doRegionsResponse struct {
	Regions []doRegion `json:"regions"`
}

// doPlanClasses maps droplet slug prefixes to their marketing class.
// Order matters: the first matching prefix wins.
var doPlanClasses = []struct {
	prefix    string
	feature   string
	dedicated bool
	nvme      bool
}{
	{"so-", "NVMe Storage", true, true},
	{"s-", "Shared vCPU", false, false},
	{"c-", "Dedicated CPU", true, false},
	{"g-", "Dedicated CPU", true, false},
	{"m-", "High Memory", true, false},
}

var doFeatured = map[string]bool{
	"s-1vcpu-1gb": true,
	"s-2vcpu-2gb": true,
	"s-4vcpu-8gb": true,
}

var doTagRules = []plan.TagRule{
	{Tag: "budget", When: plan.PriceBelow(10)},
	{Tag: "performance", When: plan.CoresAtLeast(4)},
	{Tag: "high-performance", When: plan.CoresAtLeast(8)},
	{Tag: "high-memory", When: plan.RAMAtLeastGB(16)},
}

// DigitalOcean fetches droplet sizes and regions from the DigitalOcean API.
type DigitalOcean struct {
	// APIKey is the bearer token. When empty the adapter is skipped.
	APIKey string
	// BaseURL overrides the public API endpoint, for tests.
	BaseURL string
	// Client overrides the shared HTTP fetcher.
	Client *Fetcher
}

// NewDigitalOcean creates the DigitalOcean adapter from explicit config.
func NewDigitalOcean(cfg Config) *DigitalOcean {
	return &DigitalOcean{APIKey: cfg.APIKey}
}

func (d *DigitalOcean) Name() string { return digitalOceanName }
func (d *DigitalOcean) Slug() string { return digitalOceanSlug }

// FetchPlans implements Provider.
func (d *DigitalOcean) FetchPlans(ctx context.Context) []plan.Plan {
	if d.APIKey == "" {
		skipMissingCredentials(digitalOceanName, EnvDigitalOceanAPIKey)
		return nil
	}
	return contain(ctx, digitalOceanName, d.fetch)
}

func (d *DigitalOcean) fetch(ctx context.Context) ([]plan.Plan, error) {
	base := d.BaseURL
	if base == "" {
		base = digitalOceanBaseURL
	}
	client := d.Client
	if client == nil {
		client = defaultFetcher
	}
	auth := BearerAuth(d.APIKey)

	ctx, cancel := context.WithTimeout(ctx, defaults.ProviderFetchTimeout)
	defer cancel()

	var sizes doSizesResponse
	var regions doRegionsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.GetJSON(gctx, "sizes", base+"/v2/sizes?per_page=200", auth, &sizes)
	})
	g.Go(func() error {
		return client.GetJSON(gctx, "regions", base+"/v2/regions?per_page=200", auth, &regions)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	regionNames := make(map[string]string, len(regions.Regions))
	for _, r := range regions.Regions {
		if r.Available {
			regionNames[r.Slug] = r.Name
		}
	}

	plans := make([]plan.Plan, 0, len(sizes.Sizes))
	for _, s := range sizes.Sizes {
		if !s.Available || s.Memory < digitalOceanMinMemoryMB {
			continue
		}
		plans = append(plans, d.transform(s, regionNames))
	}
	return plans, nil
}

func (d *DigitalOcean) transform(s doSize, regionNames map[string]string) plan.Plan {
	name := s.Description
	if name == "" {
		name = fmt.Sprintf("%.0fMB / %d vCPU", s.Memory, s.VCPUs)
	} else {
		name = fmt.Sprintf("%s (%s)", s.Description, s.Slug)
	}

	cpuType := plan.CPUTypeVCPU
	storageType := plan.StorageSSD
	features := []string{"SSD Storage", "IPv6", "Private Networking", "Monitoring", "Cloud Firewalls"}
	for _, class := range doPlanClasses {
		if !strings.HasPrefix(s.Slug, class.prefix) {
			continue
		}
		features = append(features, class.feature)
		if class.dedicated {
			cpuType = plan.CPUTypeCPU
		}
		if class.nvme {
			storageType = plan.StorageNVMe
		}
		break
	}

	// Availability intersection: a size lists region slugs, keep only the
	// ones that are actually open, in the provider's order.
	locations := make([]string, 0, len(s.Regions))
	for _, slug := range s.Regions {
		if rn, ok := regionNames[slug]; ok {
			locations = append(locations, rn)
		}
	}

	bandwidth := plan.Bandwidth{Unit: plan.UnitTB, Unlimited: true}
	if s.Transfer > 0 {
		size := plan.SizeFromGB(s.Transfer * 1024)
		bandwidth = plan.Bandwidth{Amount: size.Amount, Unit: size.Unit}
	}

	p := plan.Plan{
		ID:       digitalOceanSlug + "-" + strings.ToLower(s.Slug),
		Provider: digitalOceanName,
		Name:     name,
		Price:    plan.Price{Monthly: s.PriceMonthly, Currency: plan.CurrencyUSD},
		Specs: plan.Specs{
			CPU:       plan.CPU{Cores: s.VCPUs, Type: cpuType},
			RAM:       plan.SizeFromMB(s.Memory),
			Storage:   storageFromGB(s.Disk, storageType),
			Bandwidth: bandwidth,
		},
		Features:  features,
		Locations: plan.CapLocations(locations, defaults.MaxLocationsPerPlan),
		Uptime:    plan.Uptime{Percentage: 99.99, SLA: true},
		Support:   "24/7 Ticket Support",
		Website:   digitalOceanWebsite,
		Featured:  doFeatured[s.Slug],
	}
	p.Tags = plan.ApplyTagRules(p, []string{"cloud"}, doTagRules)
	return p
}

// storageFromGB normalizes a raw GB disk size into a typed Storage spec.
func storageFromGB(gb float64, t plan.StorageType) plan.Storage {
	size := plan.SizeFromGB(gb)
	return plan.Storage{Amount: size.Amount, Unit: size.Unit, Type: t}
}

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
	vultrName    = "Vultr"
	vultrSlug    = "vultr"
	vultrBaseURL = "https://api.vultr.com"
	vultrWebsite = "https://www.vultr.com"
)

// vultrPlan is the trust-boundary shape of one entry in GET /v2/plans.
type vultrPlan struct {
	ID          string   `json:"id"`
	VCPUCount   int      `json:"vcpu_count"`
	RAM         float64  `json:"ram"`       // MB
	Disk        float64  `json:"disk"`      // GB
	Bandwidth   float64  `json:"bandwidth"` // GB
	MonthlyCost float64  `json:"monthly_cost"`
	Type        string   `json:"type"`
	Locations   []string `json:"locations"`
}

type vultrPlansResponse struct {
	Plans []vultrPlan `json:"plans"`
}

type vultrRegion struct {
	ID      string `json:"id"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type vultrRegionsResponse struct {
	Regions []vultrRegion `json:"regions"`
}

// vultrPlanTypes maps compute plan types to their display class, feature set,
// and hardware signals. Plan types missing from this table (bare metal, GPU)
// are excluded.
type vultrPlanType struct {
	display   string
	features  []string
	storage   plan.StorageType
	dedicated bool
}

var vultrPlanTypes = map[string]vultrPlanType{
	"vc2": {
		display:  "Cloud Compute",
		features: []string{"Shared vCPU", "SSD Storage"},
		storage:  plan.StorageSSD,
	},
	"vhf": {
		display:  "High Frequency",
		features: []string{"High Frequency CPU", "NVMe Storage"},
		storage:  plan.StorageNVMe,
	},
	"vhp": {
		display:  "High Performance",
		features: []string{"AMD EPYC CPU", "NVMe Storage"},
		storage:  plan.StorageNVMe,
	},
	"voc": {
		display:   "Optimized Cloud Compute",
		features:  []string{"Dedicated vCPU", "NVMe Storage"},
		storage:   plan.StorageNVMe,
		dedicated: true,
	},
}

var vultrFeatured = map[string]bool{
	"vc2-1c-1gb": true,
	"vhf-2c-4gb": true,
}

var vultrTagRules = []plan.TagRule{
	{Tag: "budget", When: plan.PriceBelow(10)},
	{Tag: "performance", When: plan.CoresAtLeast(4)},
	{Tag: "high-memory", When: plan.RAMAtLeastGB(16)},
	{Tag: "nvme", When: plan.StorageIs(plan.StorageNVMe)},
}

// Vultr fetches compute plans and regions from the Vultr API. Bare-metal and
// GPU plan types are excluded via the plan type lookup table.
type Vultr struct {
	// APIKey is the bearer token. When empty the adapter is skipped.
	APIKey string
	// BaseURL overrides the public API endpoint, for tests.
	BaseURL string
	// Client overrides the shared HTTP fetcher.
	Client *Fetcher
}

// NewVultr creates the Vultr adapter from explicit config.
func NewVultr(cfg Config) *Vultr {
	return &Vultr{APIKey: cfg.APIKey}
}

func (v *Vultr) Name() string { return vultrName }
func (v *Vultr) Slug() string { return vultrSlug }

// FetchPlans implements Provider.
func (v *Vultr) FetchPlans(ctx context.Context) []plan.Plan {
	if v.APIKey == "" {
		skipMissingCredentials(vultrName, EnvVultrAPIKey)
		return nil
	}
	return contain(ctx, vultrName, v.fetch)
}

func (v *Vultr) fetch(ctx context.Context) ([]plan.Plan, error) {
	base := v.BaseURL
	if base == "" {
		base = vultrBaseURL
	}
	client := v.Client
	if client == nil {
		client = defaultFetcher
	}
	auth := BearerAuth(v.APIKey)

	ctx, cancel := context.WithTimeout(ctx, defaults.ProviderFetchTimeout)
	defer cancel()

	var plansResp vultrPlansResponse
	var regions vultrRegionsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.GetJSON(gctx, "plans", base+"/v2/plans?per_page=500", auth, &plansResp)
	})
	g.Go(func() error {
		return client.GetJSON(gctx, "regions", base+"/v2/regions?per_page=500", auth, &regions)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	regionLabels := make(map[string]string, len(regions.Regions))
	for _, r := range regions.Regions {
		regionLabels[r.ID] = fmt.Sprintf("%s, %s", r.City, r.Country)
	}

	plans := make([]plan.Plan, 0, len(plansResp.Plans))
	for _, vp := range plansResp.Plans {
		if _, ok := vultrPlanTypes[vp.Type]; !ok {
			continue
		}
		plans = append(plans, v.transform(vp, regionLabels))
	}
	return plans, nil
}

func (v *Vultr) transform(vp vultrPlan, regionLabels map[string]string) plan.Plan {
	pt := vultrPlanTypes[vp.Type]

	cpuType := plan.CPUTypeVCPU
	if pt.dedicated {
		cpuType = plan.CPUTypeCPU
	}

	features := []string{"DDoS Protection", "IPv6", "Snapshots"}
	features = append(features, pt.features...)

	locations := make([]string, 0, len(vp.Locations))
	for _, id := range vp.Locations {
		if label, ok := regionLabels[id]; ok {
			locations = append(locations, label)
		}
	}

	bandwidth := plan.Bandwidth{Unit: plan.UnitTB, Unlimited: true}
	if vp.Bandwidth > 0 {
		size := plan.SizeFromGB(vp.Bandwidth)
		bandwidth = plan.Bandwidth{Amount: size.Amount, Unit: size.Unit}
	}

	p := plan.Plan{
		ID:       vultrSlug + "-" + strings.ToLower(vp.ID),
		Provider: vultrName,
		Name:     fmt.Sprintf("%s %.0fMB / %d vCPU", pt.display, vp.RAM, vp.VCPUCount),
		Price:    plan.Price{Monthly: vp.MonthlyCost, Currency: plan.CurrencyUSD},
		Specs: plan.Specs{
			CPU:       plan.CPU{Cores: vp.VCPUCount, Type: cpuType},
			RAM:       plan.SizeFromMB(vp.RAM),
			Storage:   storageFromGB(vp.Disk, pt.storage),
			Bandwidth: bandwidth,
		},
		Features:  features,
		Locations: plan.CapLocations(locations, defaults.MaxLocationsPerPlan),
		Uptime:    plan.Uptime{Percentage: 100, SLA: true},
		Support:   "24/7 Ticket Support",
		Website:   vultrWebsite,
		Featured:  vultrFeatured[vp.ID],
	}
	p.Tags = plan.ApplyTagRules(p, []string{"cloud"}, vultrTagRules)
	return p
}

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
	linodeName    = "Linode"
	linodeSlug    = "linode"
	linodeBaseURL = "https://api.linode.com"
	linodeWebsite = "https://www.linode.com"
)

// linodeType is the trust-boundary shape of one entry in GET /v4/linode/types.
type linodeType struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Class    string      `json:"class"`
	Memory   float64     `json:"memory"`   // MB
	Disk     float64     `json:"disk"`     // MB
	Transfer float64     `json:"transfer"` // GB
	VCPUs    int         `json:"vcpus"`
	GPUs     int         `json:"gpus"`
	Price    linodePrice `json:"price"`
}

type linodePrice struct {
	Hourly  float64 `json:"hourly"`
	Monthly float64 `json:"monthly"`
}

type linodeTypesResponse struct {
	Data []linodeType `json:"data"`
}

type linodeRegion struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Country string `json:"country"`
}

type linodeRegionsResponse struct {
	Data []linodeRegion `json:"data"`
}

// linodeClasses maps instance classes to their display name and extras.
type linodeClass struct {
	display   string
	feature   string
	dedicated bool
}

var linodeClasses = map[string]linodeClass{
	"nanode":   {display: "Nanode", feature: "Shared vCPU"},
	"standard": {display: "Shared CPU", feature: "Shared vCPU"},
	"dedicated": {
		display:   "Dedicated CPU",
		feature:   "Dedicated CPU",
		dedicated: true,
	},
	"highmem": {display: "High Memory", feature: "High Memory", dedicated: true},
	"premium": {display: "Premium CPU", feature: "Premium AMD EPYC", dedicated: true},
}

// linodeExcludedClasses are accelerated plan classes not applicable to a
// general-purpose VPS comparison.
var linodeExcludedClasses = map[string]bool{
	"gpu":         true,
	"accelerated": true,
}

var linodeFeatured = map[string]bool{
	"g6-nanode-1":   true,
	"g6-standard-2": true,
}

var linodeTagRules = []plan.TagRule{
	{Tag: "budget", When: plan.PriceBelow(10)},
	{Tag: "performance", When: plan.CoresAtLeast(4)},
	{Tag: "high-performance", When: plan.CoresAtLeast(16)},
	{Tag: "high-memory", When: plan.RAMAtLeastGB(16)},
}

// Linode fetches instance types and regions from the public Linode API.
// The listing endpoints require no authentication.
type Linode struct {
	// BaseURL overrides the public API endpoint, for tests.
	BaseURL string
	// Client overrides the shared HTTP fetcher.
	Client *Fetcher
}

// NewLinode creates the Linode adapter. The config is accepted for interface
// symmetry; the listing endpoints are unauthenticated.
func NewLinode(_ Config) *Linode {
	return &Linode{}
}

func (l *Linode) Name() string { return linodeName }
func (l *Linode) Slug() string { return linodeSlug }

// FetchPlans implements Provider.
func (l *Linode) FetchPlans(ctx context.Context) []plan.Plan {
	return contain(ctx, linodeName, l.fetch)
}

func (l *Linode) fetch(ctx context.Context) ([]plan.Plan, error) {
	base := l.BaseURL
	if base == "" {
		base = linodeBaseURL
	}
	client := l.Client
	if client == nil {
		client = defaultFetcher
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ProviderFetchTimeout)
	defer cancel()

	var types linodeTypesResponse
	var regions linodeRegionsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.GetJSON(gctx, "types", base+"/v4/linode/types", NoAuth(), &types)
	})
	g.Go(func() error {
		return client.GetJSON(gctx, "regions", base+"/v4/regions", NoAuth(), &regions)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Linode plans are offered in every region, so the location list is
	// shared across plans.
	locations := make([]string, 0, len(regions.Data))
	for _, r := range regions.Data {
		locations = append(locations, r.Label)
	}
	locations = plan.CapLocations(locations, defaults.MaxLocationsPerPlan)

	plans := make([]plan.Plan, 0, len(types.Data))
	for _, t := range types.Data {
		if linodeExcludedClasses[t.Class] || t.GPUs > 0 {
			continue
		}
		plans = append(plans, l.transform(t, locations))
	}
	return plans, nil
}

func (l *Linode) transform(t linodeType, locations []string) plan.Plan {
	class := linodeClasses[t.Class]

	name := t.Label
	if name == "" {
		name = fmt.Sprintf("%.0fMB / %d vCPU", t.Memory, t.VCPUs)
	}
	if class.display != "" {
		name = fmt.Sprintf("%s (%s)", name, class.display)
	}

	cpuType := plan.CPUTypeVCPU
	if class.dedicated {
		cpuType = plan.CPUTypeCPU
	}

	features := []string{"SSD Storage", "DDoS Protection", "Cloud Firewall", "Backups Available"}
	if class.feature != "" {
		features = append(features, class.feature)
	}

	bandwidth := plan.Bandwidth{Unit: plan.UnitTB, Unlimited: true}
	if t.Transfer > 0 {
		size := plan.SizeFromGB(t.Transfer)
		bandwidth = plan.Bandwidth{Amount: size.Amount, Unit: size.Unit}
	}

	p := plan.Plan{
		ID:       linodeSlug + "-" + strings.ToLower(t.ID),
		Provider: linodeName,
		Name:     name,
		Price:    plan.Price{Monthly: t.Price.Monthly, Currency: plan.CurrencyUSD},
		Specs: plan.Specs{
			CPU:       plan.CPU{Cores: t.VCPUs, Type: cpuType},
			RAM:       plan.SizeFromMB(t.Memory),
			Storage:   storageFromGB(t.Disk/1024, plan.StorageSSD), // disk reported in MB
			Bandwidth: bandwidth,
		},
		Features:  features,
		Locations: locations,
		Uptime:    plan.Uptime{Percentage: 99.99, SLA: true},
		Support:   "24/7 Phone & Ticket Support",
		Website:   linodeWebsite,
		Featured:  linodeFeatured[t.ID],
	}
	p.Tags = plan.ApplyTagRules(p, []string{"cloud"}, linodeTagRules)
	return p
}

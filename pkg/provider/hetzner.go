/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/errors"
	"github.com/planfeed/planfeed/pkg/plan"
)

const (
	hetznerName    = "Hetzner"
	hetznerSlug    = "hetzner"
	hetznerBaseURL = "https://api.hetzner.cloud"
	hetznerWebsite = "https://www.hetzner.com"
)

// hetznerServerType is the trust-boundary shape of one entry in
// GET /v1/server_types.
type hetznerServerType struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Cores        int            `json:"cores"`
	Memory       float64        `json:"memory"` // GB
	Disk         float64        `json:"disk"`   // GB
	Deprecated   bool           `json:"deprecated"`
	CPUType      string         `json:"cpu_type"` // shared or dedicated
	Architecture string         `json:"architecture"`
	StorageType  string         `json:"storage_type"` // local or network
	Prices       []hetznerPrice `json:"prices"`
}

type hetznerPrice struct {
	Location        string            `json:"location"`
	PriceMonthly    hetznerGrossPrice `json:"price_monthly"`
	IncludedTraffic float64           `json:"included_traffic"` // bytes
}

type hetznerGrossPrice struct {
	Net   string `json:"net"`
	Gross string `json:"gross"`
}

type hetznerServerTypesResponse struct {
	ServerTypes []hetznerServerType `json:"server_types"`
}

type hetznerLocation struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type hetznerLocationsResponse struct {
	Locations []hetznerLocation `json:"locations"`
}

var hetznerFeatured = map[string]bool{
	"cx22":  true,
	"cax11": true,
	"cpx31": true,
}

var hetznerTagRules = []plan.TagRule{
	{Tag: "budget", When: plan.PriceBelow(8)},
	{Tag: "performance", When: plan.CoresAtLeast(8)},
	{Tag: "high-memory", When: plan.RAMAtLeastGB(32)},
	{Tag: "nvme", When: plan.StorageIs(plan.StorageNVMe)},
}

// Hetzner fetches server types and locations from the Hetzner Cloud API.
// Plans are priced per location; the adapter always selects the cheapest
// listed monthly gross price.
type Hetzner struct {
	// APIKey is the bearer token. When empty the adapter is skipped.
	APIKey string
	// IncludeARM includes ARM-architecture (CAX) server types.
	IncludeARM bool
	// BaseURL overrides the public API endpoint, for tests.
	BaseURL string
	// Client overrides the shared HTTP fetcher.
	Client *Fetcher
}

// NewHetzner creates the Hetzner adapter from explicit config.
func NewHetzner(cfg Config) *Hetzner {
	return &Hetzner{APIKey: cfg.APIKey, IncludeARM: cfg.IncludeARM}
}

func (h *Hetzner) Name() string { return hetznerName }
func (h *Hetzner) Slug() string { return hetznerSlug }

// FetchPlans implements Provider.
func (h *Hetzner) FetchPlans(ctx context.Context) []plan.Plan {
	if h.APIKey == "" {
		skipMissingCredentials(hetznerName, EnvHetznerAPIKey)
		return nil
	}
	return contain(ctx, hetznerName, h.fetch)
}

func (h *Hetzner) fetch(ctx context.Context) ([]plan.Plan, error) {
	base := h.BaseURL
	if base == "" {
		base = hetznerBaseURL
	}
	client := h.Client
	if client == nil {
		client = defaultFetcher
	}
	auth := BearerAuth(h.APIKey)

	ctx, cancel := context.WithTimeout(ctx, defaults.ProviderFetchTimeout)
	defer cancel()

	var types hetznerServerTypesResponse
	var locations hetznerLocationsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.GetJSON(gctx, "server_types", base+"/v1/server_types", auth, &types)
	})
	g.Go(func() error {
		return client.GetJSON(gctx, "locations", base+"/v1/locations", auth, &locations)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	locationLabels := make(map[string]string, len(locations.Locations))
	for _, l := range locations.Locations {
		locationLabels[l.Name] = fmt.Sprintf("%s, %s", l.City, l.Country)
	}

	plans := make([]plan.Plan, 0, len(types.ServerTypes))
	for _, st := range types.ServerTypes {
		if st.Deprecated || len(st.Prices) == 0 {
			continue
		}
		if st.Architecture == "arm" && !h.IncludeARM {
			continue
		}
		p, err := h.transform(st, locationLabels)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (h *Hetzner) transform(st hetznerServerType, locationLabels map[string]string) (plan.Plan, error) {
	prices := make([]decimal.Decimal, 0, len(st.Prices))
	for _, pr := range st.Prices {
		d, err := decimal.NewFromString(pr.PriceMonthly.Gross)
		if err != nil {
			return plan.Plan{}, errors.Wrap(errors.ErrCodeDecode,
				fmt.Sprintf("parsing monthly price for %s", st.Name), err)
		}
		prices = append(prices, d)
	}

	name := st.Description
	if name == "" {
		name = fmt.Sprintf("%.0fGB / %d vCPU", st.Memory, st.Cores)
	}

	cpuType := plan.CPUTypeVCPU
	features := []string{"Traffic Included", "DDoS Protection", "IPv6", "Snapshots"}
	if st.CPUType == "dedicated" {
		cpuType = plan.CPUTypeCPU
		features = append(features, "Dedicated CPU")
	}
	storageType := plan.StorageSSD
	if st.StorageType == "local" {
		storageType = plan.StorageNVMe
		features = append(features, "NVMe Storage")
	}
	arm := st.Architecture == "arm"
	if arm {
		features = append(features, "Ampere ARM")
	}

	locations := make([]string, 0, len(st.Prices))
	for _, pr := range st.Prices {
		if label, ok := locationLabels[pr.Location]; ok {
			locations = append(locations, label)
		}
	}

	bandwidth := plan.Bandwidth{Unit: plan.UnitTB, Unlimited: true}
	if traffic := st.Prices[0].IncludedTraffic; traffic > 0 {
		size := plan.SizeFromGB(traffic / (1024 * 1024 * 1024))
		bandwidth = plan.Bandwidth{Amount: size.Amount, Unit: size.Unit}
	}

	p := plan.Plan{
		ID:       hetznerSlug + "-" + strings.ToLower(st.Name),
		Provider: hetznerName,
		Name:     name,
		Price:    plan.Price{Monthly: plan.CheapestMonthly(prices), Currency: plan.CurrencyEUR},
		Specs: plan.Specs{
			CPU:       plan.CPU{Cores: st.Cores, Type: cpuType},
			RAM:       plan.Size{Amount: st.Memory, Unit: plan.UnitGB},
			Storage:   storageFromGB(st.Disk, storageType),
			Bandwidth: bandwidth,
		},
		Features:  features,
		Locations: plan.CapLocations(locations, defaults.MaxLocationsPerPlan),
		Uptime:    plan.Uptime{Percentage: 99.9},
		Support:   "Ticket Support",
		Website:   hetznerWebsite,
		Featured:  hetznerFeatured[st.Name],
	}
	p.Tags = plan.ApplyTagRules(p, []string{"cloud", "eu"}, hetznerTagRules)
	if arm {
		p.Tags = append(p.Tags, "arm", "energy-efficient")
	}
	return p, nil
}

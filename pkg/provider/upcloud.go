/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/planfeed/planfeed/pkg/defaults"
	"github.com/planfeed/planfeed/pkg/plan"
)

const (
	upCloudName    = "UpCloud"
	upCloudSlug    = "upcloud"
	upCloudBaseURL = "https://api.upcloud.com"
	upCloudWebsite = "https://upcloud.com"
)

// upcloudPlan is the trust-boundary shape of one entry in GET /1.3/plan.
type upcloudPlan struct {
	Name             string  `json:"name"`
	CoreNumber       int     `json:"core_number"`
	MemoryAmount     float64 `json:"memory_amount"` // MB
	StorageSize      float64 `json:"storage_size"`  // GB
	StorageTier      string  `json:"storage_tier"`
	PublicTrafficOut float64 `json:"public_traffic_out"` // GB
}

type upcloudPlansResponse struct {
	Plans struct {
		Plan []upcloudPlan `json:"plan"`
	} `json:"plans"`
}

type upcloudZone struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Public      string `json:"public"` // "yes" or "no"
}

type upcloudZonesResponse struct {
	Zones struct {
		Zone []upcloudZone `json:"zone"`
	} `json:"zones"`
}

// upcloudPricesResponse carries per-zone price entries. Each zone object has
// a "name" key plus one dynamic "server_plan_<name>" key per plan, so zones
// are decoded loosely and picked apart in code.
type upcloudPricesResponse struct {
	Prices struct {
		Zone []map[string]json.RawMessage `json:"zone"`
	} `json:"prices"`
}

// upcloudPlanPrice is the value of a "server_plan_<name>" key. Price is in
// hundredths of the account currency per hour.
type upcloudPlanPrice struct {
	Amount int     `json:"amount"`
	Price  float64 `json:"price"`
}

var upCloudFeatured = map[string]bool{
	"1xCPU-1GB": true,
	"2xCPU-4GB": true,
}

var upCloudTagRules = []plan.TagRule{
	{Tag: "budget", When: plan.PriceBelow(10)},
	{Tag: "performance", When: plan.CoresAtLeast(4)},
	{Tag: "high-memory", When: plan.RAMAtLeastGB(16)},
}

// UpCloud fetches plans, zones, and zone prices from the UpCloud API using
// basic authentication. Plans carry no price directly; the adapter selects
// the cheapest per-zone hourly price and derives the monthly price from it.
type UpCloud struct {
	// Username and Password are the API credentials. Both are required;
	// the adapter is skipped when either is empty.
	Username string
	Password string
	// BaseURL overrides the public API endpoint, for tests.
	BaseURL string
	// Client overrides the shared HTTP fetcher.
	Client *Fetcher
}

// NewUpCloud creates the UpCloud adapter from explicit config.
func NewUpCloud(cfg Config) *UpCloud {
	return &UpCloud{Username: cfg.Username, Password: cfg.Password}
}

func (u *UpCloud) Name() string { return upCloudName }
func (u *UpCloud) Slug() string { return upCloudSlug }

// FetchPlans implements Provider.
func (u *UpCloud) FetchPlans(ctx context.Context) []plan.Plan {
	if u.Username == "" || u.Password == "" {
		skipMissingCredentials(upCloudName, EnvUpCloudUsername, EnvUpCloudPassword)
		return nil
	}
	return contain(ctx, upCloudName, u.fetch)
}

func (u *UpCloud) fetch(ctx context.Context) ([]plan.Plan, error) {
	base := u.BaseURL
	if base == "" {
		base = upCloudBaseURL
	}
	client := u.Client
	if client == nil {
		client = defaultFetcher
	}
	auth := BasicAuth(u.Username, u.Password)

	ctx, cancel := context.WithTimeout(ctx, defaults.ProviderFetchTimeout)
	defer cancel()

	var plansResp upcloudPlansResponse
	var zones upcloudZonesResponse
	var prices upcloudPricesResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.GetJSON(gctx, "plans", base+"/1.3/plan", auth, &plansResp)
	})
	g.Go(func() error {
		return client.GetJSON(gctx, "zones", base+"/1.3/zone", auth, &zones)
	})
	g.Go(func() error {
		return client.GetJSON(gctx, "prices", base+"/1.3/price", auth, &prices)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	locations := make([]string, 0, len(zones.Zones.Zone))
	for _, z := range zones.Zones.Zone {
		if z.Public == "yes" {
			locations = append(locations, z.Description)
		}
	}
	locations = plan.CapLocations(locations, defaults.MaxLocationsPerPlan)

	plans := make([]plan.Plan, 0, len(plansResp.Plans.Plan))
	for _, up := range plansResp.Plans.Plan {
		monthly := u.cheapestMonthly(up.Name, prices)
		plans = append(plans, u.transform(up, monthly, locations))
	}
	return plans, nil
}

// cheapestMonthly finds the lowest hourly price for the plan across all
// zones and converts it to a monthly price (x730, 2 decimal places).
// Returns 0 when no zone prices the plan.
func (u *UpCloud) cheapestMonthly(planName string, prices upcloudPricesResponse) float64 {
	key := "server_plan_" + planName

	var hourly []decimal.Decimal
	for _, zone := range prices.Prices.Zone {
		raw, ok := zone[key]
		if !ok {
			continue
		}
		var pp upcloudPlanPrice
		if err := json.Unmarshal(raw, &pp); err != nil {
			continue
		}
		// Price is in hundredths per hour.
		hourly = append(hourly, decimal.NewFromFloat(pp.Price).Div(decimal.NewFromInt(100)))
	}
	if len(hourly) == 0 {
		return 0
	}

	min := hourly[0]
	for _, h := range hourly[1:] {
		if h.LessThan(min) {
			min = h
		}
	}
	return plan.MonthlyFromHourly(min.InexactFloat64())
}

func (u *UpCloud) transform(up upcloudPlan, monthly float64, locations []string) plan.Plan {
	storageType := plan.StorageSSD
	features := []string{"MaxIOPS Storage", "IPv6", "Backups Available"}
	if up.StorageTier == "hdd" {
		storageType = plan.StorageHDD
		features[0] = "HDD Storage"
	}

	bandwidth := plan.Bandwidth{Unit: plan.UnitTB, Unlimited: true}
	if up.PublicTrafficOut > 0 {
		size := plan.SizeFromGB(up.PublicTrafficOut)
		bandwidth = plan.Bandwidth{Amount: size.Amount, Unit: size.Unit}
	}

	name := up.Name
	if name == "" {
		name = fmt.Sprintf("%.0fMB / %d vCPU", up.MemoryAmount, up.CoreNumber)
	}

	p := plan.Plan{
		ID:       upCloudSlug + "-" + strings.ToLower(up.Name),
		Provider: upCloudName,
		Name:     name,
		Price:    plan.Price{Monthly: monthly, Currency: plan.CurrencyUSD},
		Specs: plan.Specs{
			CPU:       plan.CPU{Cores: up.CoreNumber, Type: plan.CPUTypeVCPU},
			RAM:       plan.SizeFromMB(up.MemoryAmount),
			Storage:   storageFromGB(up.StorageSize, storageType),
			Bandwidth: bandwidth,
		},
		Features:  features,
		Locations: locations,
		Uptime:    plan.Uptime{Percentage: 100, SLA: true},
		Support:   "24/7 Support",
		Website:   upCloudWebsite,
		Featured:  upCloudFeatured[up.Name],
	}
	p.Tags = plan.ApplyTagRules(p, []string{"cloud", "eu"}, upCloudTagRules)
	return p
}

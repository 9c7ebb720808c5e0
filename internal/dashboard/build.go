// Package dashboard turns a generated sales dataset into a ViewModel and
// answers keyword questions about it. Rendering lives in package web.
package dashboard

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hpungsan/concierge/internal/metrics"
	"github.com/hpungsan/concierge/internal/sales"
	"github.com/hpungsan/concierge/internal/store"
)

// CustomerScale stretches customer counts onto the sales axis in the
// sales-vs-customers chart.
const CustomerScale = 6

// Options controls what a build includes. Zero values select defaults.
type Options struct {
	Horizon int // forecast days, default 7
	TopN    int // top products, default 3
	RecentN int // recent table rows, default 10
}

func (o Options) withDefaults() Options {
	if o.Horizon <= 0 {
		o.Horizon = sales.DefaultHorizon
	}
	if o.TopN <= 0 {
		o.TopN = 3
	}
	if o.RecentN <= 0 {
		o.RecentN = 10
	}
	return o
}

// ProductForecast is a decorative projection for one drink.
// Simulated is always true: these numbers are noise around a ramp.
type ProductForecast struct {
	Drink     string                `json:"drink"`
	Simulated bool                  `json:"simulated"`
	Points    []sales.ForecastPoint `json:"points"`
}

// ViewModel is everything the four dashboard views display.
type ViewModel struct {
	SnapshotID  string    `json:"snapshot_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Horizon     int       `json:"horizon"`

	Overview     sales.Overview        `json:"overview"`
	Recent       []sales.SalesSample   `json:"recent"`
	TopProducts  []sales.ProductSample `json:"top_products"`
	TopSeller    sales.ProductSample   `json:"top_seller"`
	HighestRated sales.ProductSample   `json:"highest_rated"`
	BusiestDay   sales.SalesSample     `json:"busiest_day"`
	Insights     []string              `json:"insights"`

	Sales    []sales.SalesSample   `json:"sales"`
	Products []sales.ProductSample `json:"products"`

	Forecast         []sales.ForecastPoint `json:"forecast"`
	Trend            sales.Line            `json:"trend"`
	ProductForecasts []ProductForecast     `json:"product_forecasts"`
}

// DailySales returns the daily sales series in date order.
func (vm *ViewModel) DailySales() []float64 {
	return sales.Dataset{Sales: vm.Sales}.DailySales()
}

// Build computes a ViewModel from ds. rng drives the simulated product trends.
func Build(ctx context.Context, ds sales.Dataset, opts Options, rng *rand.Rand) (vm *ViewModel, err error) {
	start := time.Now()
	defer func() { metrics.ObserveBuild(start, err) }()

	opts = opts.withDefaults()

	snap, err := store.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	if err := snap.Load(ctx, ds); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	vm = &ViewModel{
		SnapshotID:  snap.ID,
		GeneratedAt: start,
		Horizon:     opts.Horizon,
		Overview:    sales.Summarize(ds),
		Sales:       ds.Sales,
		Products:    ds.Products,
	}

	if vm.Recent, err = snap.RecentSales(ctx, opts.RecentN); err != nil {
		return nil, err
	}
	if vm.TopProducts, err = snap.TopProducts(ctx, opts.TopN); err != nil {
		return nil, err
	}
	if vm.TopSeller, err = snap.TopSeller(ctx); err != nil {
		return nil, err
	}
	if vm.HighestRated, err = snap.HighestRated(ctx); err != nil {
		return nil, err
	}
	if vm.BusiestDay, err = snap.BusiestDay(ctx); err != nil {
		return nil, err
	}

	vm.Forecast, vm.Trend = sales.ForecastDataset(ds, opts.Horizon)
	dates := sales.ForecastDates(ds.LastDate(), opts.Horizon)
	for _, p := range vm.TopProducts {
		trend := sales.SimulatedTrend(float64(p.Sales), opts.Horizon, rng)
		pf := ProductForecast{Drink: p.Drink, Simulated: true}
		for i, v := range trend {
			pf.Points = append(pf.Points, sales.ForecastPoint{Date: dates[i], Predicted: v})
		}
		vm.ProductForecasts = append(vm.ProductForecasts, pf)
	}

	vm.Insights = []string{
		fmt.Sprintf("Your busiest day had **%d** customers", vm.BusiestDay.Customers),
		fmt.Sprintf("**%s** is your top seller with %d units sold", vm.TopSeller.Drink, vm.TopSeller.Sales),
		fmt.Sprintf("Your highest-rated drink is **%s** (%.1f/5 stars)", vm.HighestRated.Drink, vm.HighestRated.Rating),
		fmt.Sprintf("You average **$%s** in sales per day", FormatNumber(vm.Overview.MeanDailySales, 0)),
	}

	return vm, nil
}

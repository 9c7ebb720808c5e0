// Package sales generates the coffee shop's synthetic sales data and the
// numbers derived from it: overview metrics and the linear sales forecast.
package sales

import (
	"math"
	"math/rand/v2"
	"time"
)

// SalesSample is one day of shop-wide sales.
type SalesSample struct {
	Date         time.Time `json:"date"`
	DailySales   float64   `json:"daily_sales"`
	Customers    int       `json:"customers"`
	AverageOrder float64   `json:"average_order"`
}

// ProductSample is one drink on the menu with its period totals.
type ProductSample struct {
	Drink    string  `json:"drink"`
	Sales    int     `json:"sales"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category"`
}

// Dataset is everything one dashboard view is built from.
type Dataset struct {
	Sales    []SalesSample   `json:"sales"`
	Products []ProductSample `json:"products"`
}

// DefaultDays is the length of the generated sales history.
const DefaultDays = 30

// Menu returns the fixed product table.
func Menu() []ProductSample {
	return []ProductSample{
		{Drink: "Latte", Sales: 145, Price: 4.50, Rating: 4.8, Category: "Hot"},
		{Drink: "Cappuccino", Sales: 132, Price: 4.25, Rating: 4.6, Category: "Hot"},
		{Drink: "Americano", Sales: 98, Price: 3.50, Rating: 4.3, Category: "Hot"},
		{Drink: "Espresso", Sales: 76, Price: 2.75, Rating: 4.5, Category: "Hot"},
		{Drink: "Mocha", Sales: 89, Price: 5.00, Rating: 4.7, Category: "Hot"},
		{Drink: "Cold Brew", Sales: 67, Price: 3.75, Rating: 4.4, Category: "Cold"},
	}
}

// Generator produces synthetic datasets.
type Generator struct {
	Days int
	Now  func() time.Time
	Rand *rand.Rand
}

// NewGenerator creates a Generator for days of history using rng.
func NewGenerator(days int, rng *rand.Rand) *Generator {
	return &Generator{Days: days, Now: time.Now, Rand: rng}
}

// Generate builds a fresh dataset. Daily sales follow a 900 to 1400 ramp with
// N(0, 50) noise; customers are uniform in [120, 250); average order is
// uniform in [6.50, 12.00) rounded to cents.
func (g *Generator) Generate() Dataset {
	days := g.Days
	if days <= 0 {
		days = DefaultDays
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	rng := g.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	today := now()
	ramp := Linspace(900, 1400, days)
	samples := make([]SalesSample, days)
	for i := range samples {
		samples[i] = SalesSample{
			Date:         today.AddDate(0, 0, i-days),
			DailySales:   ramp[i] + rng.NormFloat64()*50,
			Customers:    120 + rng.IntN(130),
			AverageOrder: roundCents(6.50 + rng.Float64()*5.50),
		}
	}

	return Dataset{Sales: samples, Products: Menu()}
}

// DailySales extracts the daily sales series.
func (d Dataset) DailySales() []float64 {
	out := make([]float64, len(d.Sales))
	for i, s := range d.Sales {
		out[i] = s.DailySales
	}
	return out
}

// LastDate returns the date of the most recent sample, or the zero time.
func (d Dataset) LastDate() time.Time {
	var last time.Time
	for _, s := range d.Sales {
		if s.Date.After(last) {
			last = s.Date
		}
	}
	return last
}

// Product returns the named product.
func (d Dataset) Product(drink string) (ProductSample, bool) {
	for _, p := range d.Products {
		if p.Drink == drink {
			return p, true
		}
	}
	return ProductSample{}, false
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

package sales

import (
	"github.com/montanaflynn/stats"
)

// Overview holds the headline metrics of a dataset.
type Overview struct {
	TotalSales     float64 `json:"total_sales"`
	TotalCustomers int     `json:"total_customers"`
	AverageOrder   float64 `json:"average_order"`
	BestDaySales   float64 `json:"best_day_sales"`
	MeanDailySales float64 `json:"mean_daily_sales"`

	// Day-over-day change between the last two samples.
	SalesDelta        float64 `json:"sales_delta"`
	CustomersDelta    int     `json:"customers_delta"`
	AverageOrderDelta float64 `json:"average_order_delta"`
}

// Summarize computes the overview metrics. An empty dataset yields zeros.
func Summarize(d Dataset) Overview {
	if len(d.Sales) == 0 {
		return Overview{}
	}

	daily := make(stats.Float64Data, len(d.Sales))
	orders := make(stats.Float64Data, len(d.Sales))
	customers := 0
	for i, s := range d.Sales {
		daily[i] = s.DailySales
		orders[i] = s.AverageOrder
		customers += s.Customers
	}

	// Errors only signal empty input, ruled out above.
	total, _ := stats.Sum(daily)
	mean, _ := stats.Mean(daily)
	best, _ := stats.Max(daily)
	avgOrder, _ := stats.Mean(orders)

	o := Overview{
		TotalSales:     total,
		TotalCustomers: customers,
		AverageOrder:   avgOrder,
		BestDaySales:   best,
		MeanDailySales: mean,
	}

	if n := len(d.Sales); n >= 2 {
		last, prev := d.Sales[n-1], d.Sales[n-2]
		o.SalesDelta = last.DailySales - prev.DailySales
		o.CustomersDelta = last.Customers - prev.Customers
		o.AverageOrderDelta = last.AverageOrder - prev.AverageOrder
	}
	return o
}

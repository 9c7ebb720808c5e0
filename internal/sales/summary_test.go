package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := Dataset{Sales: []SalesSample{
		{Date: day, DailySales: 1000, Customers: 150, AverageOrder: 8.00},
		{Date: day.AddDate(0, 0, 1), DailySales: 1200, Customers: 200, AverageOrder: 10.00},
		{Date: day.AddDate(0, 0, 2), DailySales: 1100, Customers: 180, AverageOrder: 9.00},
	}}

	o := Summarize(ds)
	assert.InDelta(t, 3300, o.TotalSales, 1e-9)
	assert.Equal(t, 530, o.TotalCustomers)
	assert.InDelta(t, 9.00, o.AverageOrder, 1e-9)
	assert.InDelta(t, 1200, o.BestDaySales, 1e-9)
	assert.InDelta(t, 1100, o.MeanDailySales, 1e-9)
	assert.InDelta(t, -100, o.SalesDelta, 1e-9)
	assert.Equal(t, -20, o.CustomersDelta)
	assert.InDelta(t, -1.00, o.AverageOrderDelta, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Overview{}, Summarize(Dataset{}))
}

func TestSummarize_SingleDayHasNoDelta(t *testing.T) {
	o := Summarize(Dataset{Sales: []SalesSample{{DailySales: 500, Customers: 10, AverageOrder: 7}}})
	assert.InDelta(t, 500, o.TotalSales, 1e-9)
	assert.Zero(t, o.SalesDelta)
	assert.Zero(t, o.CustomersDelta)
}

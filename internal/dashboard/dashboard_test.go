package dashboard

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/concierge/internal/intent"
	"github.com/hpungsan/concierge/internal/sales"
)

var fixedNow = time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC)

func buildTest(t *testing.T, seed uint64) (*ViewModel, sales.Dataset) {
	t.Helper()
	gen := &sales.Generator{
		Days: sales.DefaultDays,
		Now:  func() time.Time { return fixedNow },
		Rand: rand.New(rand.NewPCG(seed, seed)),
	}
	ds := gen.Generate()
	vm, err := Build(context.Background(), ds, Options{}, rand.New(rand.NewPCG(seed, 1)))
	require.NoError(t, err)
	return vm, ds
}

func TestBuild(t *testing.T) {
	vm, ds := buildTest(t, 5)

	assert.Len(t, vm.SnapshotID, 26)
	assert.Equal(t, sales.DefaultHorizon, vm.Horizon)
	assert.Equal(t, sales.Summarize(ds), vm.Overview)

	require.Len(t, vm.Recent, 10)
	assert.True(t, ds.Sales[20].Date.Equal(vm.Recent[0].Date))
	assert.True(t, ds.Sales[29].Date.Equal(vm.Recent[9].Date))

	require.Len(t, vm.TopProducts, 3)
	assert.Equal(t, "Latte", vm.TopProducts[0].Drink)
	assert.Equal(t, "Cappuccino", vm.TopProducts[1].Drink)
	assert.Equal(t, "Americano", vm.TopProducts[2].Drink)
	assert.Equal(t, "Latte", vm.TopSeller.Drink)
	assert.Equal(t, "Latte", vm.HighestRated.Drink)

	maxCustomers := 0
	for _, s := range ds.Sales {
		maxCustomers = max(maxCustomers, s.Customers)
	}
	assert.Equal(t, maxCustomers, vm.BusiestDay.Customers)

	require.Len(t, vm.Forecast, 7)
	assert.True(t, vm.Forecast[0].Date.Equal(ds.LastDate().AddDate(0, 0, 1)))

	require.Len(t, vm.ProductForecasts, 3)
	for i, pf := range vm.ProductForecasts {
		assert.Equal(t, vm.TopProducts[i].Drink, pf.Drink)
		assert.True(t, pf.Simulated)
		assert.Len(t, pf.Points, 7)
	}

	require.Len(t, vm.Insights, 4)
	assert.Contains(t, vm.Insights[1], "**Latte** is your top seller with 145 units sold")
	assert.Contains(t, vm.Insights[2], "(4.8/5 stars)")
}

func TestBuild_Options(t *testing.T) {
	gen := sales.NewGenerator(12, rand.New(rand.NewPCG(1, 1)))
	vm, err := Build(context.Background(), gen.Generate(), Options{Horizon: 3, TopN: 2, RecentN: 4}, rand.New(rand.NewPCG(2, 2)))
	require.NoError(t, err)

	assert.Len(t, vm.Forecast, 3)
	assert.Len(t, vm.TopProducts, 2)
	assert.Len(t, vm.ProductForecasts, 2)
	assert.Len(t, vm.Recent, 4)
}

func TestBuild_NoProducts(t *testing.T) {
	_, err := Build(context.Background(), sales.Dataset{}, Options{}, rand.New(rand.NewPCG(1, 1)))
	require.Error(t, err)
}

func TestAssistant_Categories(t *testing.T) {
	vm, _ := buildTest(t, 8)
	a := NewAssistant(vm)

	tests := []struct {
		question string
		intent   string
		contains string
	}{
		{"What's the AVERAGE ORDER value?", IntentAverageOrder, "The average order value is"},
		{"what is the average   order", IntentAverageOrder, "$"},
		{"Who is the top seller?", IntentTopSeller, "**Latte** with **145** units sold"},
		{"Which drink sells best?", IntentTopSeller, "Latte"},
		{"best drink", IntentTopSeller, "Latte"},
		{"What's the highest-rated drink?", IntentHighestRated, "rating of **4.8/5**"},
		{"highest rated", IntentHighestRated, "Latte"},
		{"Best Rating please", IntentHighestRated, "Latte"},
		{"Show me the forecast", IntentForecast, "7-Day Total Sales Forecast"},
		{"can you PREDICT next week", IntentForecast, "Forecast"},
		{"busiest day?", IntentBusiestDay, "Your busiest day had"},
		{"Who are the most customers in a day?", IntentBusiestDay, "customers"},
		{"how is the weather", intent.FallbackIntent, "didn't understand"},
		{"", intent.FallbackIntent, "didn't understand"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			resp := a.Ask(tt.question)
			assert.Equal(t, tt.intent, resp.Intent)
			assert.Contains(t, resp.Text, tt.contains)
		})
	}
}

func TestAssistant_ForecastAction(t *testing.T) {
	vm, _ := buildTest(t, 8)
	a := NewAssistant(vm)

	assert.Equal(t, intent.ActionRenderForecast, a.Ask("forecast").Action)
	assert.Equal(t, intent.ActionReply, a.Ask("average order").Action)
	assert.Equal(t, intent.ActionReply, a.Ask("nothing").Action)
}

func TestAssistant_PriorityOrder(t *testing.T) {
	vm, _ := buildTest(t, 8)
	a := NewAssistant(vm)

	// Mentions two categories; the earlier rule wins.
	resp := a.Ask("forecast the average order")
	assert.Equal(t, IntentAverageOrder, resp.Intent)

	assert.Equal(t, []string{IntentAverageOrder, IntentTopSeller, IntentHighestRated, IntentForecast, IntentBusiestDay}, a.Intents())
}

func TestAssistant_ExamplesAreRecognized(t *testing.T) {
	vm, _ := buildTest(t, 8)
	a := NewAssistant(vm)
	for _, q := range Examples {
		assert.NotEqual(t, intent.FallbackIntent, a.Ask(q).Intent, q)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{0, 0, "0"},
		{999, 0, "999"},
		{1000, 0, "1,000"},
		{33021.7, 0, "33,022"},
		{1234567.891, 2, "1,234,567.89"},
		{-1500, 0, "-1,500"},
		{9.5, 2, "9.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.v, tt.decimals))
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+42", FormatSigned(42, 0))
	assert.Equal(t, "-1,200", FormatSigned(-1200, 0))
	assert.Equal(t, "0", FormatSigned(0, 0))
	assert.Equal(t, "+0.25", FormatSigned(0.25, 2))
}

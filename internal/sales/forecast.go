package sales

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultHorizon is the number of forecast days.
const DefaultHorizon = 7

// Line is y = Intercept + Slope*x.
type Line struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// ForecastPoint is one predicted day.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
}

// FitLine fits an ordinary least squares line against the index 0..N-1.
// Fewer than two points give a flat line through the only value, or zero.
func FitLine(series []float64) Line {
	switch len(series) {
	case 0:
		return Line{}
	case 1:
		return Line{Intercept: series[0]}
	}

	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, series, nil, false)
	return Line{Intercept: alpha, Slope: beta}
}

// Forecast extrapolates the fitted line over the next horizon indices.
func Forecast(series []float64, horizon int) ([]float64, Line) {
	line := FitLine(series)
	if horizon <= 0 {
		return nil, line
	}
	out := make([]float64, horizon)
	n := len(series)
	for i := range out {
		out[i] = line.At(float64(n + i))
	}
	return out, line
}

// ForecastDates returns the horizon days following last.
func ForecastDates(last time.Time, horizon int) []time.Time {
	if horizon <= 0 {
		return nil
	}
	out := make([]time.Time, horizon)
	for i := range out {
		out[i] = last.AddDate(0, 0, i+1)
	}
	return out
}

// ForecastDataset forecasts total daily sales for horizon days after the
// dataset's last sample.
func ForecastDataset(d Dataset, horizon int) ([]ForecastPoint, Line) {
	values, line := Forecast(d.DailySales(), horizon)
	dates := ForecastDates(d.LastDate(), horizon)
	points := make([]ForecastPoint, len(values))
	for i := range values {
		points[i] = ForecastPoint{Date: dates[i], Predicted: values[i]}
	}
	return points, line
}

// SimulatedTrend is a decorative per-product projection, not a model: a
// straight ramp from 95% to 105% of base with N(0, 2) noise on each day.
func SimulatedTrend(base float64, horizon int, rng *rand.Rand) []float64 {
	ramp := Linspace(base*0.95, base*1.05, horizon)
	for i := range ramp {
		ramp[i] += rng.NormFloat64() * 2
	}
	return ramp
}

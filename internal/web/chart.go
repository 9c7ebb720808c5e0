package web

import (
	"fmt"
	"math"
	"strings"

	"github.com/hpungsan/concierge/internal/dashboard"
)

// Chart geometry, in SVG user units.
const (
	chartWidth   = 720
	chartHeight  = 300
	marginLeft   = 64
	marginRight  = 20
	marginTop    = 16
	marginBottom = 44
	maxXLabels   = 8
	yTickCount   = 5
)

// Chart is a precomputed SVG chart; templates only place the shapes.
type Chart struct {
	ID      string
	Title   string
	Caption string
	Width   float64
	Height  float64
	Left    float64
	Right   float64
	Top     float64
	Bottom  float64
	Series  []Series
	Bars    []Bar
	YTicks  []Tick
	XLabels []Label
}

// Series is one polyline with its legend entry.
type Series struct {
	Name   string
	Class  string
	Points string
	Dots   []Point
}

// Point is a plotted sample.
type Point struct {
	X, Y  float64
	Title string
}

// Bar is one rectangle of a bar chart.
type Bar struct {
	X, Y, W, H float64
	Label      string
	Value      string
}

// Tick is a horizontal gridline on the value axis.
type Tick struct {
	Y     float64
	Label string
}

// Label is a category label on the x axis.
type Label struct {
	X    float64
	Text string
}

// lineInput is one series before layout. Offset shifts it right by that many
// slots, which lets a forecast continue where the history ends.
type lineInput struct {
	Name   string
	Class  string
	Values []float64
	Offset int
}

func newChart(id, title string) Chart {
	return Chart{
		ID:     id,
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Left:   marginLeft,
		Right:  chartWidth - marginRight,
		Top:    marginTop,
		Bottom: chartHeight - marginBottom,
	}
}

// lineChart lays out one or more series over shared x labels.
func lineChart(id, title string, labels []string, lines ...lineInput) Chart {
	c := newChart(id, title)

	slots := len(labels)
	var values []float64
	for _, l := range lines {
		slots = max(slots, l.Offset+len(l.Values))
		values = append(values, l.Values...)
	}
	if slots == 0 || len(values) == 0 {
		return c
	}

	lo, hi := valueRange(values, false)
	c.YTicks = ticks(c, lo, hi)
	c.XLabels = xLabels(c, labels, slots)

	for _, l := range lines {
		s := Series{Name: l.Name, Class: l.Class}
		pts := make([]string, 0, len(l.Values))
		for i, v := range l.Values {
			x := slotX(c, l.Offset+i, slots)
			y := scaleY(c, v, lo, hi)
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
			title := dashboard.FormatNumber(v, 0)
			if idx := l.Offset + i; idx < len(labels) {
				title = labels[idx] + ": " + title
			}
			s.Dots = append(s.Dots, Point{X: x, Y: y, Title: title})
		}
		s.Points = strings.Join(pts, " ")
		c.Series = append(c.Series, s)
	}
	return c
}

// barChart lays out one bar per label, with the value axis starting at zero.
func barChart(id, title string, labels []string, values []float64) Chart {
	c := newChart(id, title)
	if len(values) == 0 {
		return c
	}

	lo, hi := valueRange(values, true)
	c.YTicks = ticks(c, lo, hi)

	band := (c.Right - c.Left) / float64(len(values))
	width := band * 0.6
	for i, v := range values {
		x := c.Left + band*float64(i) + (band-width)/2
		y := scaleY(c, v, lo, hi)
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		c.Bars = append(c.Bars, Bar{
			X: x, Y: y, W: width, H: c.Bottom - y,
			Label: label,
			Value: dashboard.FormatNumber(v, 0),
		})
		c.XLabels = append(c.XLabels, Label{X: x + width/2, Text: label})
	}
	return c
}

// valueRange returns the padded value axis bounds. fromZero pins the lower bound.
func valueRange(values []float64, fromZero bool) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if fromZero {
		lo = math.Min(0, lo)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.05, 1)
	}
	if !fromZero {
		lo -= pad
	}
	return lo, hi + pad
}

func scaleY(c Chart, v, lo, hi float64) float64 {
	return c.Bottom - (v-lo)/(hi-lo)*(c.Bottom-c.Top)
}

func slotX(c Chart, i, slots int) float64 {
	if slots <= 1 {
		return (c.Left + c.Right) / 2
	}
	return c.Left + float64(i)*(c.Right-c.Left)/float64(slots-1)
}

func ticks(c Chart, lo, hi float64) []Tick {
	out := make([]Tick, 0, yTickCount)
	for i := range yTickCount {
		v := lo + (hi-lo)*float64(i)/float64(yTickCount-1)
		out = append(out, Tick{Y: scaleY(c, v, lo, hi), Label: dashboard.FormatNumber(v, 0)})
	}
	return out
}

func xLabels(c Chart, labels []string, slots int) []Label {
	step := int(math.Ceil(float64(len(labels)) / maxXLabels))
	step = max(step, 1)
	var out []Label
	for i := 0; i < len(labels); i += step {
		out = append(out, Label{X: slotX(c, i, slots), Text: labels[i]})
	}
	return out
}

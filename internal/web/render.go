package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/hpungsan/concierge/internal/dashboard"
	"github.com/hpungsan/concierge/internal/errors"
	"github.com/hpungsan/concierge/internal/sales"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "dashboard", "visuals", "forecast", "ask"
}

// MetricCard is one headline number with its day-over-day change.
type MetricCard struct {
	Label    string
	Value    string
	Delta    string
	Negative bool
}

// DashboardPageData is the template data for the overview page.
type DashboardPageData struct {
	PageData
	View     *dashboard.ViewModel
	Metrics  []MetricCard
	Insights []template.HTML
}

// VisualsPageData is the template data for the charts page.
type VisualsPageData struct {
	PageData
	View   *dashboard.ViewModel
	Charts []Chart
}

// ForecastPageData is the template data for the forecast page.
type ForecastPageData struct {
	PageData
	View          *dashboard.ViewModel
	Total         Chart
	ProductCharts []Chart
}

// AskPageData is the template data for the question page.
type AskPageData struct {
	PageData
	Question string
	Examples []string
	HasQuery bool
	Intent   string
	Answer   template.HTML
	Forecast *Chart
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
	log       *zap.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, log *zap.Logger) (*Renderer, error) {
	funcMap := template.FuncMap{
		"formatDate":   formatDate,
		"formatMoney":  func(v float64) string { return "$" + dashboard.FormatNumber(v, 2) },
		"formatNumber": dashboard.FormatNumber,
		"formatInt":    func(n int) string { return dashboard.FormatNumber(float64(n), 0) },
	}

	layoutTmpl, err := template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html", "chart.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := map[string]string{
		"dashboard": "dashboard.html",
		"visuals":   "visuals.html",
		"forecast":  "forecast.html",
		"ask":       "ask.html",
		"error":     "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t, err := layoutTmpl.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
		log:       log,
	}, nil
}

func (r *Renderer) page(title, nav string) PageData {
	return PageData{Title: title, Version: r.version, Nav: nav}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
// For HTMX requests, only the "content" block is rendered to avoid duplicating the layout.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.log.Error("template not found", zap.String("template", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	block := "layout"
	if req != nil && isHTMX(req) {
		block = "content"
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		r.log.Error("template execution failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var cErr *errors.ConciergeError
	if !stderrors.As(err, &cErr) {
		cErr = errors.NewInternal(err)
	}

	status := cErr.Status
	message := cErr.Message
	if status >= http.StatusInternalServerError {
		r.log.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
	}

	if isHTMX(req) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `<div class="error-message">%s</div>`, template.HTMLEscapeString(message))
		return
	}

	if wantsJSON(req) {
		renderJSON(w, status, map[string]any{
			"error": map[string]any{
				"code":    string(cErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData:   r.page(fmt.Sprintf("Error %d", status), ""),
		StatusCode: status,
		Message:    message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func isHTMX(req *http.Request) bool {
	return req.Header.Get("HX-Request") == "true"
}

func wantsJSON(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "application/json")
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatDate formats a sample date as "Jan 02".
func formatDate(t time.Time) string {
	return t.Format("Jan 02")
}

func dateLabels(samples []sales.SalesSample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = formatDate(s.Date)
	}
	return out
}

// metricCards builds the four overview cards.
func metricCards(o sales.Overview) []MetricCard {
	return []MetricCard{
		{
			Label: "Total Sales", Value: "$" + dashboard.FormatNumber(o.TotalSales, 0),
			Delta: dashboard.FormatSigned(o.SalesDelta, 0), Negative: o.SalesDelta < 0,
		},
		{
			Label: "Total Customers", Value: dashboard.FormatNumber(float64(o.TotalCustomers), 0),
			Delta: dashboard.FormatSigned(float64(o.CustomersDelta), 0), Negative: o.CustomersDelta < 0,
		},
		{
			Label: "Avg Order Value", Value: "$" + dashboard.FormatNumber(o.AverageOrder, 2),
			Delta: dashboard.FormatSigned(o.AverageOrderDelta, 2), Negative: o.AverageOrderDelta < 0,
		},
		{
			Label: "Best Day Sales", Value: "$" + dashboard.FormatNumber(o.BestDaySales, 0),
		},
	}
}

// forecastChart plots the history followed by the fitted forecast.
func forecastChart(vm *dashboard.ViewModel) Chart {
	labels := dateLabels(vm.Sales)
	predicted := make([]float64, len(vm.Forecast))
	for i, p := range vm.Forecast {
		labels = append(labels, formatDate(p.Date))
		predicted[i] = p.Predicted
	}
	return lineChart("forecast-total", fmt.Sprintf("%d-Day Total Sales Forecast", vm.Horizon), labels,
		lineInput{Name: "Actual", Class: "series-actual", Values: vm.DailySales()},
		lineInput{Name: "Forecast", Class: "series-forecast", Values: predicted, Offset: len(vm.Sales)},
	)
}

// productCharts plots the simulated per-drink projections.
func productCharts(vm *dashboard.ViewModel) []Chart {
	out := make([]Chart, 0, len(vm.ProductForecasts))
	for i, pf := range vm.ProductForecasts {
		labels := make([]string, len(pf.Points))
		values := make([]float64, len(pf.Points))
		for j, p := range pf.Points {
			labels[j] = formatDate(p.Date)
			values[j] = p.Predicted
		}
		c := lineChart(fmt.Sprintf("forecast-product-%d", i), pf.Drink, labels,
			lineInput{Name: pf.Drink, Class: "series-product", Values: values})
		c.Caption = "Simulated trend for illustration, not a model prediction."
		out = append(out, c)
	}
	return out
}

// visualCharts builds the three history charts.
func visualCharts(vm *dashboard.ViewModel) []Chart {
	labels := dateLabels(vm.Sales)

	drinks := make([]string, len(vm.Products))
	units := make([]float64, len(vm.Products))
	for i, p := range vm.Products {
		drinks[i] = p.Drink
		units[i] = float64(p.Sales)
	}

	customers := make([]float64, len(vm.Sales))
	for i, s := range vm.Sales {
		customers[i] = float64(s.Customers * dashboard.CustomerScale)
	}

	vs := lineChart("sales-vs-customers", "Sales vs Customers", labels,
		lineInput{Name: "Daily Sales", Class: "series-actual", Values: vm.DailySales()},
		lineInput{Name: fmt.Sprintf("Customers x%d", dashboard.CustomerScale), Class: "series-customers", Values: customers},
	)
	vs.Caption = fmt.Sprintf("Customer counts are scaled by %d to share the sales axis.", dashboard.CustomerScale)

	return []Chart{
		lineChart("daily-sales", "Daily Sales", labels,
			lineInput{Name: "Daily Sales", Class: "series-actual", Values: vm.DailySales()}),
		barChart("product-sales", "Sales by Drink", drinks, units),
		vs,
	}
}

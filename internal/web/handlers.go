package web

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/concierge/internal/dashboard"
	"github.com/hpungsan/concierge/internal/errors"
	"github.com/hpungsan/concierge/internal/intent"
)

// maxQuestionLen bounds /ask input, in runes.
const maxQuestionLen = 500

// ViewSource produces a fresh ViewModel per request.
type ViewSource interface {
	Build(ctx context.Context) (*dashboard.ViewModel, error)
}

// Handlers contains HTTP route handlers for the dashboard.
type Handlers struct {
	source   ViewSource
	renderer *Renderer
}

func (h *Handlers) build(w http.ResponseWriter, r *http.Request) (*dashboard.ViewModel, bool) {
	vm, err := h.source.Build(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInternal(err))
		return nil, false
	}
	return vm, true
}

// HandleDashboard handles GET /dashboard: headline metrics, tables and insights.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.build(w, r)
	if !ok {
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, vm)
		return
	}

	insights := make([]template.HTML, len(vm.Insights))
	for i, s := range vm.Insights {
		insights[i] = renderMarkdown(s)
	}

	h.renderer.renderPage(w, r, "dashboard", DashboardPageData{
		PageData: h.renderer.page("Dashboard", "dashboard"),
		View:     vm,
		Metrics:  metricCards(vm.Overview),
		Insights: insights,
	})
}

// HandleVisuals handles GET /visuals: daily sales, product sales, sales vs customers.
func (h *Handlers) HandleVisuals(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.build(w, r)
	if !ok {
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"snapshot_id":    vm.SnapshotID,
			"sales":          vm.Sales,
			"products":       vm.Products,
			"customer_scale": dashboard.CustomerScale,
		})
		return
	}

	h.renderer.renderPage(w, r, "visuals", VisualsPageData{
		PageData: h.renderer.page("Visuals", "visuals"),
		View:     vm,
		Charts:   visualCharts(vm),
	})
}

// HandleForecast handles GET /forecast: fitted total forecast and simulated product trends.
func (h *Handlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.build(w, r)
	if !ok {
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, map[string]any{
			"snapshot_id":       vm.SnapshotID,
			"horizon":           vm.Horizon,
			"trend":             vm.Trend,
			"forecast":          vm.Forecast,
			"product_forecasts": vm.ProductForecasts,
		})
		return
	}

	h.renderer.renderPage(w, r, "forecast", ForecastPageData{
		PageData:      h.renderer.page("Forecast", "forecast"),
		View:          vm,
		Total:         forecastChart(vm),
		ProductCharts: productCharts(vm),
	})
}

// HandleAsk handles GET /ask?q=: keyword Q&A over a fresh view.
func (h *Handlers) HandleAsk(w http.ResponseWriter, r *http.Request) {
	question := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(question) > maxQuestionLen {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("question is too long"))
		return
	}

	data := AskPageData{
		PageData: h.renderer.page("Ask", "ask"),
		Question: question,
		Examples: dashboard.Examples,
		HasQuery: question != "",
	}

	if question == "" {
		if wantsJSON(r) {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("q is required"))
			return
		}
		h.renderer.renderPage(w, r, "ask", data)
		return
	}

	vm, ok := h.build(w, r)
	if !ok {
		return
	}
	resp := dashboard.NewAssistant(vm).Ask(question)

	if wantsJSON(r) {
		body := map[string]any{
			"question": question,
			"intent":   resp.Intent,
			"action":   resp.Action,
			"text":     resp.Text,
		}
		if resp.Action == intent.ActionRenderForecast {
			body["forecast"] = vm.Forecast
		}
		renderJSON(w, http.StatusOK, body)
		return
	}

	data.Intent = resp.Intent
	data.Answer = renderMarkdown(resp.Text)
	if resp.Action == intent.ActionRenderForecast {
		c := forecastChart(vm)
		data.Forecast = &c
	}
	h.renderer.renderPage(w, r, "ask", data)
}

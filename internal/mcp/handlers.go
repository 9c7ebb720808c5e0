package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/concierge/internal/dashboard"
	"github.com/hpungsan/concierge/internal/errors"
	"github.com/hpungsan/concierge/internal/flight"
	"github.com/hpungsan/concierge/internal/intent"
	"github.com/hpungsan/concierge/internal/sales"
)

// MaxForecastDays bounds the sales_forecast horizon.
const MaxForecastDays = 30

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	bot    *flight.Bot
	source *dashboard.Source
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(bot *flight.Bot, source *dashboard.Source) *Handlers {
	return &Handlers{bot: bot, source: source}
}

// FlightLookupRequest represents the arguments for flight_lookup.
type FlightLookupRequest struct {
	Query string `json:"query"`
}

// SalesAskRequest represents the arguments for sales_ask.
type SalesAskRequest struct {
	Question string `json:"question"`
}

// SalesForecastRequest represents the arguments for sales_forecast.
type SalesForecastRequest struct {
	Days *int `json:"days,omitempty"`
}

// FlightListOutput is the flight_list result.
type FlightListOutput struct {
	Flights []flight.Record `json:"flights"`
}

// SalesAskOutput is the sales_ask result.
type SalesAskOutput struct {
	Question   string                `json:"question"`
	Intent     string                `json:"intent"`
	Action     intent.Action         `json:"action"`
	Text       string                `json:"text"`
	SnapshotID string                `json:"snapshot_id"`
	Forecast   []sales.ForecastPoint `json:"forecast,omitempty"`
}

// SalesForecastOutput is the sales_forecast result.
type SalesForecastOutput struct {
	SnapshotID       string                      `json:"snapshot_id"`
	Horizon          int                         `json:"horizon"`
	Trend            sales.Line                  `json:"trend"`
	Forecast         []sales.ForecastPoint       `json:"forecast"`
	ProductForecasts []dashboard.ProductForecast `json:"product_forecasts"`
}

// HandleFlightList handles the flight_list tool call.
func (h *Handlers) HandleFlightList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(FlightListOutput{Flights: h.bot.Table().Records()})
}

// HandleFlightLookup handles the flight_lookup tool call. An unknown flight
// is a normal answer, not an error.
func (h *Handlers) HandleFlightLookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FlightLookupRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if strings.TrimSpace(input.Query) == "" {
		return errorResult(errors.NewInvalidRequest("query is required")), nil
	}

	return successResult(h.bot.Lookup(input.Query))
}

// HandleSalesAsk handles the sales_ask tool call.
func (h *Handlers) HandleSalesAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SalesAskRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if strings.TrimSpace(input.Question) == "" {
		return errorResult(errors.NewInvalidRequest("question is required")), nil
	}

	vm, err := h.source.Build(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	resp := dashboard.NewAssistant(vm).Ask(input.Question)

	out := SalesAskOutput{
		Question:   input.Question,
		Intent:     resp.Intent,
		Action:     resp.Action,
		Text:       resp.Text,
		SnapshotID: vm.SnapshotID,
	}
	if resp.Action == intent.ActionRenderForecast {
		out.Forecast = vm.Forecast
	}
	return successResult(out)
}

// HandleSalesForecast handles the sales_forecast tool call.
func (h *Handlers) HandleSalesForecast(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SalesForecastRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	src := *h.source
	if input.Days != nil {
		if *input.Days < 1 || *input.Days > MaxForecastDays {
			return errorResult(errors.NewInvalidRequest("days must be between 1 and 30")), nil
		}
		src.Options.Horizon = *input.Days
	}

	vm, err := src.Build(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(SalesForecastOutput{
		SnapshotID:       vm.SnapshotID,
		Horizon:          vm.Horizon,
		Trend:            vm.Trend,
		Forecast:         vm.Forecast,
		ProductForecasts: vm.ProductForecasts,
	})
}

// errorResult converts an error to an MCP error result.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var cErr *errors.ConciergeError
	if stderrors.As(err, &cErr) {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}
		// Internal details can carry SQL text; keep them out of tool output.
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

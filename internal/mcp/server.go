// Package mcp exposes the flight desk and the sales assistant as MCP tools
// over stdio.
package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hpungsan/concierge/internal/config"
	"github.com/hpungsan/concierge/internal/dashboard"
	"github.com/hpungsan/concierge/internal/flight"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

var (
	flightListToolDef = mcp.NewTool("flight_list",
		mcp.WithDescription("List the destinations the flight desk knows about."),
	)
	flightLookupToolDef = mcp.NewTool("flight_lookup",
		mcp.WithDescription("Look up a flight by destination and number, e.g. \"Chicago 306\". Case and spacing are ignored."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Destination city followed by flight number")),
	)
	salesAskToolDef = mcp.NewTool("sales_ask",
		mcp.WithDescription("Ask a question about the coffee shop's sales: average order, top seller, highest rated, forecast, busiest day."),
		mcp.WithString("question", mcp.Required(), mcp.Description("Free-text question")),
	)
	salesForecastToolDef = mcp.NewTool("sales_forecast",
		mcp.WithDescription("Forecast total daily sales with a linear trend over freshly generated history."),
		mcp.WithNumber("days", mcp.Description("Forecast horizon in days (1-30, default from config)")),
	)
)

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"flight_list": {
		def:     flightListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFlightList },
	},
	"flight_lookup": {
		def:     flightLookupToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFlightLookup },
	},
	"sales_ask": {
		def:     salesAskToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSalesAsk },
	},
	"sales_forecast": {
		def:     salesForecastToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSalesForecast },
	},
}

// AllToolNames returns all valid tool names, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the concierge tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(bot *flight.Bot, source *dashboard.Source, cfg *config.Config, version string, log *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"concierge",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(bot, source)

	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}
	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(bot *flight.Bot, source *dashboard.Source, cfg *config.Config, version string, log *zap.Logger) error {
	return server.ServeStdio(NewServer(bot, source, cfg, version, log))
}

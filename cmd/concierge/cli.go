package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/concierge/internal/config"
	"github.com/hpungsan/concierge/internal/dashboard"
	"github.com/hpungsan/concierge/internal/errors"
	"github.com/hpungsan/concierge/internal/flight"
	"github.com/hpungsan/concierge/internal/intent"
	"github.com/hpungsan/concierge/internal/mcp"
	"github.com/hpungsan/concierge/internal/web"
)

// deps are the long-lived objects every command shares.
type deps struct {
	cfg    *config.Config
	log    *zap.Logger
	bot    *flight.Bot
	source *dashboard.Source
}

// newDeps wires the flight desk and the dashboard source from cfg.
func newDeps(cfg *config.Config, log *zap.Logger) *deps {
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	return &deps{
		cfg: cfg,
		log: log,
		bot: flight.NewBot(flight.Options{
			AirlineName:          cfg.AirlineName,
			ExitPhrases:          cfg.ExitPhrases,
			ConfirmCaseSensitive: cfg.ConfirmCaseSensitive,
			Rand:                 rng,
		}),
		source: &dashboard.Source{
			Days: cfg.HistoryDays,
			Seed: cfg.Seed,
			Options: dashboard.Options{
				Horizon: cfg.ForecastDays,
				TopN:    cfg.TopProducts,
			},
		},
	}
}

// newCLIApp creates the CLI application with all commands.
// d may be nil when only help or version output is needed.
func newCLIApp(d *deps) *cli.App {
	app := &cli.App{
		Name:    "concierge",
		Usage:   "Flight desk and coffee sales assistant",
		Version: Version,
		Commands: []*cli.Command{
			chatCmd(d),
			flightsCmd(d),
			askCmd(d),
			forecastCmd(d),
			serveCmd(d),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// chatCmd runs the interactive flight desk on stdin/stdout.
func chatCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to the flight desk",
		Action: func(c *cli.Context) error {
			console := flight.NewConsole(d.bot, d.log)
			if err := console.Run(c.Context, c.App.Reader, c.App.Writer); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// flightsCmd prints the flight catalog.
func flightsCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "flights",
		Usage:     "List flights, or look one up",
		ArgsUsage: "[destination number]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				res := d.bot.Lookup(strings.Join(c.Args().Slice(), " "))
				if !res.Found {
					return outputError(errors.NewNotFound("flight", strings.Join(c.Args().Slice(), " ")))
				}
				return outputJSON(c.App.Writer, res)
			}
			return outputJSON(c.App.Writer, mcp.FlightListOutput{Flights: d.bot.Table().Records()})
		},
	}
}

// askCmd answers one sales question over freshly generated data.
func askCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a question about coffee sales",
		ArgsUsage: "<question>",
		Action: func(c *cli.Context) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				return outputError(errors.NewInvalidRequest("question is required"))
			}

			vm, err := d.source.Build(c.Context)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			resp := dashboard.NewAssistant(vm).Ask(question)

			out := mcp.SalesAskOutput{
				Question:   question,
				Intent:     resp.Intent,
				Action:     resp.Action,
				Text:       resp.Text,
				SnapshotID: vm.SnapshotID,
			}
			if resp.Action == intent.ActionRenderForecast {
				out.Forecast = vm.Forecast
			}
			return outputJSON(c.App.Writer, out)
		},
	}
}

// forecastCmd prints the total sales forecast.
func forecastCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "forecast",
		Usage: "Forecast total daily sales",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Aliases: []string{"d"}, Usage: "Forecast horizon in days (1-30)"},
		},
		Action: func(c *cli.Context) error {
			src := *d.source
			if c.IsSet("days") {
				days := c.Int("days")
				if days < 1 || days > mcp.MaxForecastDays {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("days must be between 1 and %d", mcp.MaxForecastDays)))
				}
				src.Options.Horizon = days
			}

			vm, err := src.Build(c.Context)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(c.App.Writer, mcp.SalesForecastOutput{
				SnapshotID:       vm.SnapshotID,
				Horizon:          vm.Horizon,
				Trend:            vm.Trend,
				Forecast:         vm.Forecast,
				ProductForecasts: vm.ProductForecasts,
			})
		},
	}
}

// serveCmd runs the dashboard web server.
func serveCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the coffee sales dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to bind (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg := *d.cfg
			if c.IsSet("bind") {
				cfg.WebBind = c.String("bind")
			}
			if c.IsSet("port") {
				cfg.WebPort = c.Int("port")
			}
			if cfg.WebPort < 1 || cfg.WebPort > 65535 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid port: %d", cfg.WebPort)))
			}

			srv, err := web.NewServer(d.source, d.log, Version, cfg.Addr())
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(c.Context, srv, d.log); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON writes v to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if cErr, ok := err.(*errors.ConciergeError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

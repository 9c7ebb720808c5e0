package dashboard

import (
	"fmt"

	"github.com/hpungsan/concierge/internal/intent"
	"github.com/hpungsan/concierge/internal/metrics"
)

// BotName labels sales assistant dispatches in metrics.
const BotName = "sales"

// Intent names produced by the assistant.
const (
	IntentAverageOrder = "average_order"
	IntentTopSeller    = "top_seller"
	IntentHighestRated = "highest_rated"
	IntentForecast     = "forecast"
	IntentBusiestDay   = "busiest_day"
)

const fallbackText = "🤔 Sorry, I didn't understand that. Try asking about sales, ratings, or forecasts."

// Examples are the sample questions shown next to the question box.
var Examples = []string{
	"What is the average order value?",
	"Which drink sells best?",
	"What's the highest-rated drink?",
	"Show me the forecast",
	"Who are the most customers in a day?",
}

// Assistant answers keyword questions about one ViewModel.
type Assistant struct {
	vm *ViewModel
	d  *intent.Dispatcher
}

// NewAssistant creates an Assistant over vm.
func NewAssistant(vm *ViewModel) *Assistant {
	a := &Assistant{vm: vm}
	a.d = intent.New(intent.Reply(fallbackText),
		intent.Rule{Name: IntentAverageOrder, Match: intent.Contains("average order"), Handle: a.averageOrder},
		intent.Rule{Name: IntentTopSeller, Match: intent.Contains("top seller", "best drink", "sells best"), Handle: a.topSeller},
		intent.Rule{Name: IntentHighestRated, Match: intent.Contains("highest rated", "highest-rated", "best rating"), Handle: a.highestRated},
		intent.Rule{Name: IntentForecast, Match: intent.Contains("forecast", "predict"), Handle: a.forecast},
		intent.Rule{Name: IntentBusiestDay, Match: intent.Contains("busiest day", "most customers"), Handle: a.busiestDay},
	)
	return a
}

// Ask answers one question. Unrecognized questions get the fallback reply.
func (a *Assistant) Ask(question string) intent.Response {
	resp := a.d.Dispatch(question)
	metrics.ObserveIntent(BotName, resp.Intent)
	return resp
}

// Intents lists the recognized categories in priority order.
func (a *Assistant) Intents() []string {
	return a.d.Intents()
}

func (a *Assistant) averageOrder(intent.Input) intent.Response {
	return intent.Response{Text: fmt.Sprintf("🧾 The average order value is **$%.2f**.", a.vm.Overview.AverageOrder)}
}

func (a *Assistant) topSeller(intent.Input) intent.Response {
	p := a.vm.TopSeller
	return intent.Response{Text: fmt.Sprintf("🏆 Your top-selling drink is **%s** with **%d** units sold.", p.Drink, p.Sales)}
}

func (a *Assistant) highestRated(intent.Input) intent.Response {
	p := a.vm.HighestRated
	return intent.Response{Text: fmt.Sprintf("🌟 Your highest-rated drink is **%s** with a rating of **%.1f/5**.", p.Drink, p.Rating)}
}

func (a *Assistant) forecast(intent.Input) intent.Response {
	return intent.Response{
		Text:   fmt.Sprintf("🔮 %d-Day Total Sales Forecast", a.vm.Horizon),
		Action: intent.ActionRenderForecast,
	}
}

func (a *Assistant) busiestDay(intent.Input) intent.Response {
	return intent.Response{Text: fmt.Sprintf("👥 Your busiest day had **%d** customers.", a.vm.BusiestDay.Customers)}
}

package flight

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/hpungsan/concierge/internal/intent"
	"github.com/hpungsan/concierge/internal/metrics"
)

// BotName labels flight desk dispatches in metrics.
const BotName = "flight"

// Intent names produced by the flight desk.
const (
	IntentExit        = "exit"
	IntentHelp        = "help"
	IntentListFlights = "list_flights"
	IntentLookup      = "lookup"
	IntentConfirm     = "confirm"
	IntentContinue    = "continue"
)

// DefaultExitPhrases are the inputs that start the exit confirmation.
var DefaultExitPhrases = []string{"quit", "pause", "exit", "goodbye", "bye", "later"}

// affirmatives are the only answers that confirm an exit.
var affirmatives = []string{"yes", "y"}

const (
	NamePrompt    = "What is your name? "
	MainPrompt    = "\nType a city and flight number (e.g., 'Dallas 305'), 'list flights', 'help', or 'exit': "
	ConfirmPrompt = "Are you sure you'd like to end the chat? (yes/no) "

	continueText = "No problem! Let's continue."
	notFoundText = "Sorry, I couldn't find that flight. Please try again with a valid city and flight number."
	helpText     = "\nYou can:\n" +
		"- Ask about a flight (e.g., 'Dallas 305')\n" +
		"- Type 'list flights' to see all available flights\n" +
		"- Type 'exit' to leave the chat"
)

// phrasings all carry the same fields: key, departure, arrival.
var phrasings = []string{
	"Flight %[1]s departs at %[2]s and lands at %[3]s.",
	"You're booked on %[1]s. Departure: %[2]s, Arrival: %[3]s.",
	"%[1]s takes off at %[2]s and touches down at %[3]s.",
	"Confirmed: %[1]s leaves at %[2]s and arrives at %[3]s.",
}

// Options configures a Bot. Zero values select defaults.
type Options struct {
	AirlineName string
	Table       *Table
	ExitPhrases []string
	// ConfirmCaseSensitive compares the exit confirmation verbatim,
	// so "Yes" or " y" do not end the chat.
	ConfirmCaseSensitive bool
	// Rand picks the response phrasing. Nil seeds from the clock.
	Rand *rand.Rand
}

// Session is one conversation. It lives from greeting to confirmed exit.
type Session struct {
	Name string
	Done bool

	awaitingConfirm bool
}

// AwaitingConfirmation reports whether the next line answers the exit question.
func (s *Session) AwaitingConfirmation() bool {
	return s.awaitingConfirm
}

// LookupResult is the structured answer to a flight query.
type LookupResult struct {
	Found   bool    `json:"found"`
	Flight  *Record `json:"flight,omitempty"`
	Message string  `json:"message"`
}

// Bot answers flight desk input.
type Bot struct {
	airline     string
	table       *Table
	exitPhrases []string
	strict      bool
	dispatcher  *intent.Dispatcher

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBot creates a flight desk bot.
func NewBot(opts Options) *Bot {
	b := &Bot{
		airline:     opts.AirlineName,
		table:       opts.Table,
		exitPhrases: opts.ExitPhrases,
		strict:      opts.ConfirmCaseSensitive,
		rng:         opts.Rand,
	}
	if b.airline == "" {
		b.airline = "Astro Airlines"
	}
	if b.table == nil {
		b.table = DefaultTable()
	}
	if len(b.exitPhrases) == 0 {
		b.exitPhrases = DefaultExitPhrases
	}
	if b.rng == nil {
		seed := uint64(time.Now().UnixNano())
		b.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	b.dispatcher = intent.New(b.handleLookup,
		intent.Rule{Name: IntentExit, Match: intent.Equals(b.exitPhrases...), Handle: func(intent.Input) intent.Response {
			return intent.Response{Action: intent.ActionConfirmExit}
		}},
		intent.Rule{Name: IntentHelp, Match: intent.Equals("help"), Handle: intent.Reply(helpText)},
		intent.Rule{Name: IntentListFlights, Match: intent.Equals("list flights"), Handle: b.handleList},
	)
	return b
}

// Table returns the bot's flight catalog.
func (b *Bot) Table() *Table {
	return b.table
}

// Greeting is printed before asking for the user's name.
func (b *Bot) Greeting() string {
	return fmt.Sprintf("Hi! Good afternoon. Thank you for choosing %s.\nBefore I can assist you, I'll need some info.", b.airline)
}

// Welcome greets the user by name.
func (b *Bot) Welcome(name string) string {
	return fmt.Sprintf("Hi %s! I'm happy to help you with your flight information today.", name)
}

// Farewell is printed after a confirmed exit.
func (b *Bot) Farewell() string {
	return fmt.Sprintf("Thank you for choosing %s. Have a safe flight!", b.airline)
}

// Respond handles one line of user input within a session.
func (b *Bot) Respond(s *Session, line string) intent.Response {
	var resp intent.Response
	switch {
	case s.Done:
		resp = intent.Response{Intent: IntentConfirm, Text: b.Farewell(), Action: intent.ActionReply}
	case s.awaitingConfirm:
		resp = b.confirm(s, line)
	default:
		resp = b.dispatcher.Dispatch(line)
		if resp.Action == intent.ActionConfirmExit {
			s.awaitingConfirm = true
		}
	}

	metrics.ObserveIntent(BotName, resp.Intent)
	return resp
}

// confirm resolves the one-shot exit confirmation.
func (b *Bot) confirm(s *Session, answer string) intent.Response {
	s.awaitingConfirm = false
	if b.isAffirmative(answer) {
		s.Done = true
		return intent.Response{Intent: IntentConfirm, Text: b.Farewell(), Action: intent.ActionReply}
	}
	return intent.Response{Intent: IntentContinue, Text: continueText, Action: intent.ActionReply}
}

func (b *Bot) isAffirmative(answer string) bool {
	if !b.strict {
		answer = intent.Normalize(answer)
	}
	for _, a := range affirmatives {
		if answer == a {
			return true
		}
	}
	return false
}

// Lookup answers a flight query without a session.
func (b *Bot) Lookup(request string) LookupResult {
	rec, ok := b.table.Lookup(request)
	if !ok {
		return LookupResult{Message: notFoundText}
	}
	return LookupResult{Found: true, Flight: &rec, Message: b.describe(rec)}
}

func (b *Bot) handleLookup(in intent.Input) intent.Response {
	res := b.Lookup(in.Raw)
	return intent.Response{Intent: IntentLookup, Text: res.Message}
}

func (b *Bot) handleList(intent.Input) intent.Response {
	var sb strings.Builder
	sb.WriteString("\nHere are the available flights:")
	for _, key := range b.table.Keys() {
		sb.WriteString("\n- ")
		sb.WriteString(key)
	}
	return intent.Response{Text: sb.String()}
}

// describe picks one phrasing uniformly at random.
func (b *Bot) describe(r Record) string {
	b.mu.Lock()
	i := b.rng.IntN(len(phrasings))
	b.mu.Unlock()
	return fmt.Sprintf(phrasings[i], r.Key, r.Departs, r.Arrives)
}

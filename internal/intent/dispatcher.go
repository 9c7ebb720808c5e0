// Package intent maps one line of free text to exactly one handler using an
// ordered list of keyword rules and a fallback.
package intent

import "strings"

// Action tags the side effect a caller should perform for a response.
type Action string

const (
	ActionReply          Action = "reply"
	ActionConfirmExit    Action = "confirm_exit"
	ActionRenderForecast Action = "render_forecast"
)

// FallbackIntent is the intent name reported when no rule matched.
const FallbackIntent = "fallback"

// Input is what a handler receives: the caller's text and its normalized form.
type Input struct {
	Raw        string
	Normalized string
}

// Response is the single result of a dispatch.
type Response struct {
	Intent string `json:"intent"`
	Text   string `json:"text"`
	Action Action `json:"action"`
}

// Predicate reports whether a rule applies to normalized input.
type Predicate func(normalized string) bool

// Handler produces the response for a matched input.
type Handler func(in Input) Response

// Rule pairs a predicate with the handler it guards.
type Rule struct {
	Name   string
	Match  Predicate
	Handle Handler
}

// Dispatcher evaluates rules in declared order; the first match wins.
type Dispatcher struct {
	rules    []Rule
	fallback Handler
}

// New creates a Dispatcher. A nil fallback replies with empty text.
func New(fallback Handler, rules ...Rule) *Dispatcher {
	if fallback == nil {
		fallback = func(Input) Response { return Response{} }
	}
	return &Dispatcher{
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
	}
}

// Dispatch normalizes input and runs exactly one handler.
func (d *Dispatcher) Dispatch(input string) Response {
	in := Input{Raw: input, Normalized: Normalize(input)}

	for _, r := range d.rules {
		if r.Match != nil && r.Match(in.Normalized) {
			return complete(r.Handle(in), r.Name)
		}
	}
	return complete(d.fallback(in), FallbackIntent)
}

// Intents returns rule names in priority order.
func (d *Dispatcher) Intents() []string {
	names := make([]string, 0, len(d.rules))
	for _, r := range d.rules {
		names = append(names, r.Name)
	}
	return names
}

func complete(r Response, name string) Response {
	if r.Intent == "" {
		r.Intent = name
	}
	if r.Action == "" {
		r.Action = ActionReply
	}
	return r
}

// Equals matches when the normalized input is exactly one of phrases.
func Equals(phrases ...string) Predicate {
	set := make(map[string]bool, len(phrases))
	for _, p := range normalizeAll(phrases) {
		set[p] = true
	}
	return func(normalized string) bool {
		return set[normalized]
	}
}

// Contains matches when any of phrases occurs in the normalized input.
func Contains(phrases ...string) Predicate {
	norm := normalizeAll(phrases)
	return func(normalized string) bool {
		for _, p := range norm {
			if strings.Contains(normalized, p) {
				return true
			}
		}
		return false
	}
}

// Reply is a handler that always returns the same text.
func Reply(text string) Handler {
	return func(Input) Response {
		return Response{Text: text}
	}
}

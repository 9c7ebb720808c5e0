package flight

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/concierge/internal/intent"
)

func newTestBot(opts Options) *Bot {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	return NewBot(opts)
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Dallas 305", "Dallas 305"},
		{"  dallas   305 ", "Dallas 305"},
		{"CHICAGO 306", "Chicago 306"},
		{"columbus\t307", "Columbus 307"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalKey(tt.input))
		})
	}
}

func TestTable_Lookup(t *testing.T) {
	table := DefaultTable()
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"Dallas 305", "Chicago 306", "Columbus 307"}, table.Keys())

	rec, ok := table.Lookup("  dallas   305 ")
	require.True(t, ok)
	assert.Equal(t, "4:00PM", rec.Departs)
	assert.Equal(t, "10:00PM", rec.Arrives)

	for _, miss := range []string{"Dallas", "305", "Dallas 30", "Dallas 3050", "Houston 305", ""} {
		_, ok := table.Lookup(miss)
		assert.False(t, ok, "lookup %q", miss)
	}
}

func TestNewTable_DuplicateReplacesInPlace(t *testing.T) {
	table := NewTable(
		Record{City: "Dallas", Number: "305", Departs: "1", Arrives: "2"},
		Record{City: "Chicago", Number: "306", Departs: "3", Arrives: "4"},
		Record{City: "dallas", Number: "305", Departs: "5", Arrives: "6"},
	)
	require.Equal(t, 2, table.Len())
	rec, ok := table.Lookup("Dallas 305")
	require.True(t, ok)
	assert.Equal(t, "5", rec.Departs)
	assert.Equal(t, []string{"Dallas 305", "Chicago 306"}, table.Keys())
}

func TestRespond_KnownFlights(t *testing.T) {
	bot := newTestBot(Options{})
	want := map[string][2]string{
		"Dallas 305":   {"4:00PM", "10:00PM"},
		"Chicago 306":  {"3:00AM", "12:00PM"},
		"Columbus 307": {"2:00PM", "8:00PM"},
	}

	for key, times := range want {
		variants := []string{key, strings.ToLower(key), strings.ToUpper(key), "  " + strings.ReplaceAll(strings.ToLower(key), " ", "   ") + " "}
		for _, v := range variants {
			// Phrasing is random; the data fields are not.
			for i := 0; i < 8; i++ {
				resp := bot.Respond(&Session{}, v)
				assert.Equal(t, IntentLookup, resp.Intent)
				assert.Contains(t, resp.Text, key)
				assert.Contains(t, resp.Text, times[0])
				assert.Contains(t, resp.Text, times[1])
			}
		}
	}
}

func TestRespond_PhrasingIsPinnedBySeed(t *testing.T) {
	a := newTestBot(Options{Rand: rand.New(rand.NewPCG(7, 7))})
	b := newTestBot(Options{Rand: rand.New(rand.NewPCG(7, 7))})
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Respond(&Session{}, "Dallas 305").Text, b.Respond(&Session{}, "Dallas 305").Text)
	}
}

func TestRespond_AllPhrasingsReachable(t *testing.T) {
	bot := newTestBot(Options{})
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[bot.Respond(&Session{}, "Chicago 306").Text] = true
	}
	assert.Len(t, seen, len(phrasings))
}

func TestRespond_UnknownFlight(t *testing.T) {
	bot := newTestBot(Options{})
	for _, in := range []string{"Houston 999", "dallas", "what time is it", ""} {
		resp := bot.Respond(&Session{}, in)
		assert.Equal(t, IntentLookup, resp.Intent)
		assert.Equal(t, notFoundText, resp.Text)
	}
}

func TestRespond_HelpAndList(t *testing.T) {
	bot := newTestBot(Options{})
	s := &Session{}

	help := bot.Respond(s, " HELP ")
	assert.Equal(t, IntentHelp, help.Intent)
	assert.Contains(t, help.Text, "list flights")

	list := bot.Respond(s, "List   Flights")
	assert.Equal(t, IntentListFlights, list.Intent)
	assert.Equal(t, "\nHere are the available flights:\n- Dallas 305\n- Chicago 306\n- Columbus 307", list.Text)

	// Same output after other traffic.
	bot.Respond(s, "Dallas 305")
	bot.Respond(s, "nonsense")
	assert.Equal(t, help.Text, bot.Respond(s, "help").Text)
	assert.Equal(t, list.Text, bot.Respond(s, "list flights").Text)
}

func TestRespond_ExitConfirmed(t *testing.T) {
	bot := newTestBot(Options{})
	for _, phrase := range DefaultExitPhrases {
		for _, yes := range []string{"yes", "y"} {
			s := &Session{}
			resp := bot.Respond(s, phrase)
			require.Equal(t, IntentExit, resp.Intent, phrase)
			require.Equal(t, intent.ActionConfirmExit, resp.Action)
			require.True(t, s.AwaitingConfirmation())
			require.False(t, s.Done)

			resp = bot.Respond(s, yes)
			assert.Equal(t, IntentConfirm, resp.Intent)
			assert.True(t, s.Done, "%s then %s", phrase, yes)
			assert.Equal(t, "Thank you for choosing Astro Airlines. Have a safe flight!", resp.Text)
		}
	}
}

func TestRespond_ExitDeclined(t *testing.T) {
	bot := newTestBot(Options{})
	for _, answer := range []string{"no", "nope", "help", "Dallas 305", ""} {
		s := &Session{}
		bot.Respond(s, "exit")
		resp := bot.Respond(s, answer)
		assert.Equal(t, IntentContinue, resp.Intent)
		assert.Equal(t, continueText, resp.Text)
		assert.False(t, s.Done)
		assert.False(t, s.AwaitingConfirmation())

		// The loop resumes unchanged.
		assert.Equal(t, IntentHelp, bot.Respond(s, "help").Intent)
	}
}

func TestRespond_ConfirmCaseHandling(t *testing.T) {
	lenient := newTestBot(Options{})
	strict := newTestBot(Options{ConfirmCaseSensitive: true})

	for _, answer := range []string{"YES", "Y", " yes ", "Yes"} {
		s := &Session{}
		lenient.Respond(s, "quit")
		lenient.Respond(s, answer)
		assert.True(t, s.Done, "lenient %q", answer)

		s = &Session{}
		strict.Respond(s, "quit")
		resp := strict.Respond(s, answer)
		assert.False(t, s.Done, "strict %q", answer)
		assert.Equal(t, IntentContinue, resp.Intent)
	}

	s := &Session{}
	strict.Respond(s, "quit")
	strict.Respond(s, "y")
	assert.True(t, s.Done)
}

func TestRespond_CustomOptions(t *testing.T) {
	bot := newTestBot(Options{
		AirlineName: "Comet Air",
		ExitPhrases: []string{"Adios"},
	})

	s := &Session{}
	assert.Equal(t, IntentLookup, bot.Respond(s, "quit").Intent)
	assert.Equal(t, IntentExit, bot.Respond(s, "ADIOS").Intent)
	resp := bot.Respond(s, "yes")
	assert.Contains(t, resp.Text, "Comet Air")
	assert.Contains(t, bot.Greeting(), "Comet Air")
}

func TestLookup_Structured(t *testing.T) {
	bot := newTestBot(Options{})

	res := bot.Lookup("columbus 307")
	require.True(t, res.Found)
	require.NotNil(t, res.Flight)
	assert.Equal(t, "Columbus 307", res.Flight.Key)
	assert.Equal(t, "2:00PM", res.Flight.Departs)
	assert.Contains(t, res.Message, "8:00PM")

	res = bot.Lookup("Columbus")
	assert.False(t, res.Found)
	assert.Nil(t, res.Flight)
	assert.Equal(t, notFoundText, res.Message)
}

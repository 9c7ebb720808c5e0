package flight

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func runConsole(t *testing.T, ctx context.Context, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := NewConsole(newTestBot(Options{}), zaptest.NewLogger(t))
	err := c.Run(ctx, strings.NewReader(input), &out)
	return out.String(), err
}

func TestConsole_FullConversation(t *testing.T) {
	out, err := runConsole(t, context.Background(), strings.Join([]string{
		"Ada",
		"help",
		"list flights",
		"  dallas   305 ",
		"Miami 1",
		"exit",
		"no",
		"bye",
		"yes",
		"Chicago 306",
	}, "\n")+"\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Hi! Good afternoon. Thank you for choosing Astro Airlines."))
	assert.Contains(t, out, NamePrompt)
	assert.Contains(t, out, "Hi Ada! I'm happy to help you with your flight information today.")
	assert.Contains(t, out, "- Type 'exit' to leave the chat")
	assert.Contains(t, out, "- Columbus 307")
	assert.Contains(t, out, "4:00PM")
	assert.Contains(t, out, notFoundText)
	assert.Equal(t, 2, strings.Count(out, ConfirmPrompt))
	assert.Contains(t, out, continueText)
	assert.True(t, strings.HasSuffix(out, "Thank you for choosing Astro Airlines. Have a safe flight!\n"))

	// Input after the confirmed exit is never read.
	assert.NotContains(t, out, "3:00AM")
}

func TestConsole_EndOfInput(t *testing.T) {
	out, err := runConsole(t, context.Background(), "Ada\nDallas 305\n")
	require.NoError(t, err)
	assert.Contains(t, out, "10:00PM")
	assert.NotContains(t, out, "Have a safe flight")
}

func TestConsole_NoName(t *testing.T) {
	out, err := runConsole(t, context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, out, NamePrompt)
	assert.NotContains(t, out, MainPrompt)
}

func TestConsole_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runConsole(t, ctx, "Ada\nhelp\n")
	assert.ErrorIs(t, err, context.Canceled)
}

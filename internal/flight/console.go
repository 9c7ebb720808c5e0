package flight

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Console drives one Session over line-oriented I/O.
type Console struct {
	bot *Bot
	log *zap.Logger
}

// NewConsole creates a Console. A nil logger discards log output.
func NewConsole(bot *Bot, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{bot: bot, log: log}
}

// Run greets the user, asks for a name and answers lines until the user
// confirms an exit, input ends, or ctx is cancelled. End of input is not an error.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	session := &Session{}

	if _, err := fmt.Fprintln(out, c.bot.Greeting()); err != nil {
		return err
	}
	name, ok := c.prompt(out, scanner, NamePrompt)
	if !ok {
		return scanner.Err()
	}
	session.Name = name
	fmt.Fprintln(out, c.bot.Welcome(name))
	c.log.Debug("session started", zap.String("name", name))

	for !session.Done {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := MainPrompt
		if session.AwaitingConfirmation() {
			p = ConfirmPrompt
		}
		line, ok := c.prompt(out, scanner, p)
		if !ok {
			c.log.Debug("input closed", zap.String("name", session.Name))
			return scanner.Err()
		}

		resp := c.bot.Respond(session, line)
		c.log.Debug("dispatched",
			zap.String("intent", resp.Intent),
			zap.String("action", string(resp.Action)),
		)
		if resp.Text != "" {
			fmt.Fprintln(out, resp.Text)
		}
	}

	c.log.Debug("session ended", zap.String("name", session.Name))
	return nil
}

// prompt writes p and reads one line. ok is false at end of input.
func (c *Console) prompt(out io.Writer, scanner *bufio.Scanner, p string) (string, bool) {
	fmt.Fprint(out, p)
	if !scanner.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	return scanner.Text(), true
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/common"
)

// List reloads conversations from the backend and prints them.
func (a *App) List(ctx context.Context) error {
	err := a.withSpinner(ctx, "Loading chats", a.chat.Load)
	if err != nil {
		return err
	}
	active, _ := a.chat.Active()
	a.println(a.renderer.List(a.chat.Conversations(), active.ID))
	return nil
}

func (a *App) New(ctx context.Context) error {
	c, err := a.chat.Create(ctx)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Started %q. Type a message to begin.", c.Title))
	return nil
}

// Open activates conversation n (1-based, as numbered by List) and prints it.
func (a *App) Open(ctx context.Context, arg string) error {
	list := a.chat.Conversations()
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(list) {
		a.println(fmt.Sprintf("Usage: open <n>, where n is between 1 and %d", len(list)))
		return fmt.Errorf("invalid conversation number %q", arg)
	}
	if err := a.chat.Select(list[n-1].ID); err != nil {
		return err
	}
	return a.Show(ctx)
}

// Send posts text, starting a conversation first when none is active, and
// prints the assistant's reply.
func (a *App) Send(ctx context.Context, text string) error {
	if common.IsBlank(text) {
		a.println("Usage: send <text>")
		return nil
	}

	before := 0
	if c, ok := a.chat.Active(); ok {
		before = len(c.Messages)
	}

	var sent bool
	err := a.withSpinner(ctx, "Thinking", func(ctx context.Context) error {
		var err error
		sent, err = a.chat.Submit(ctx, text)
		return err
	})
	if err != nil || !sent {
		return err
	}

	c, ok := a.chat.Active()
	if !ok {
		return nil
	}
	if before > len(c.Messages) {
		before = 0
	}
	for _, m := range c.Messages[before:] {
		if m.Role == models.RoleAssistant {
			a.println(a.renderer.Message(m))
		}
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	c, ok := a.chat.Active()
	if !ok {
		a.println("No active conversation. Use 'new' or 'open <n>'.")
		return nil
	}
	a.println(a.renderer.Conversation(c))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/dmitrijs2005/gophchat/internal/client/notify"
)

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) draft() string {
	return a.chat.Draft()
}

// flush prints notifications raised since the last prompt.
func (a *App) flush() {
	for _, n := range a.notes.Drain() {
		a.println(notify.Render(n, a.width))
	}
}

// Notifications lists the notifications that are still active, with the ids
// "dismiss" takes.
func (a *App) Notifications(ctx context.Context) error {
	active := a.notes.Active()
	if len(active) == 0 {
		a.println("No notifications.")
		return nil
	}
	for _, n := range active {
		line := fmt.Sprintf("#%d [%s] %s", n.ID, n.Kind, n.Title)
		if n.Description != "" {
			line += ": " + n.Description
		}
		a.println(line)
	}
	return nil
}

func (a *App) Dismiss(ctx context.Context, arg string) error {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil {
		a.println("Usage: dismiss <id>")
		return fmt.Errorf("dismiss: %w", err)
	}
	if !a.notes.Dismiss(id) {
		a.println(fmt.Sprintf("No notification #%d.", id))
		return fmt.Errorf("dismiss: no notification %d", id)
	}
	a.println(fmt.Sprintf("Dismissed #%d.", id))
	return nil
}

// withSpinner runs fn while animating label on the terminal. Without a
// terminal fn just runs.
func (a *App) withSpinner(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if !a.spin {
		return fn(ctx)
	}

	frames := spinner.MiniDot
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(frames.FPS)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(a.out, "\r%s %s", frames.Frames[i%len(frames.Frames)], label)
			select {
			case <-done:
				fmt.Fprintf(a.out, "\r%*s\r", len(label)+4, "")
				return
			case <-ticker.C:
			}
		}
	}()

	err := fn(ctx)
	close(done)
	<-stopped
	return err
}

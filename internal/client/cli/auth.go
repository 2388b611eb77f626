package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/router"
	"github.com/dmitrijs2005/gophchat/internal/client/services"
)

// Navigate moves to path and reports where the guard let the user land.
func (a *App) Navigate(ctx context.Context, path string) error {
	to := a.nav.Navigate(path)
	if to != router.Normalize(path) && router.Normalize(path) != router.RouteRoot {
		a.println(fmt.Sprintf("Redirected to %s.", to))
	}
	if to == router.RouteChat {
		return a.List(ctx)
	}
	a.println(helpText(to))
	return nil
}

// Login prompts for email and password and starts a session.
//
// On success the REPL moves to the chat screen and loads the conversation
// list. On failure a notification explains why and the session is left as
// it was.
func (a *App) Login(ctx context.Context) error {
	a.nav.Navigate(string(router.RouteLogin))

	email, err := a.in.ReadLine("Email: ", "")
	if err != nil {
		return err
	}
	password, err := a.in.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	err = a.withSpinner(ctx, "Signing in", func(ctx context.Context) error {
		_, err := a.auth.Login(ctx, email, password)
		return err
	})
	if err != nil {
		a.reportAuth(ctx, services.OpLogin, err)
		return err
	}

	a.enterChat(ctx)
	return nil
}

// Register prompts for username, email, password and confirmation and
// creates an account. Mismatched passwords are caught before any request.
func (a *App) Register(ctx context.Context) error {
	a.nav.Navigate(string(router.RouteRegister))

	username, err := a.in.ReadLine("Username (optional): ", "")
	if err != nil {
		return err
	}
	email, err := a.in.ReadLine("Email: ", "")
	if err != nil {
		return err
	}
	password, err := a.in.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	confirmation, err := a.in.ReadPassword("Confirm password: ")
	if err != nil {
		return err
	}

	err = a.withSpinner(ctx, "Creating account", func(ctx context.Context) error {
		_, err := a.auth.Register(ctx, username, email, password, confirmation)
		return err
	})
	if err != nil {
		a.reportAuth(ctx, services.OpRegister, err)
		return err
	}

	a.notes.Success("Account created", "Welcome to gophchat!")
	a.enterChat(ctx)
	return nil
}

// Logout ends the session locally; it cannot fail from the user's side.
func (a *App) Logout(ctx context.Context) error {
	to := a.chat.Logout(ctx)
	a.println(fmt.Sprintf("Logged out. Now on %s.", to))
	return nil
}

func (a *App) enterChat(ctx context.Context) {
	a.nav.Navigate(string(router.RouteRoot))
	a.greet(ctx)
	_ = a.List(ctx)
}

func (a *App) reportAuth(ctx context.Context, op services.Operation, err error) {
	a.log.Info(ctx, "authentication failed", "op", string(op), "kind", services.Classify(err).String())
	title, desc := services.Describe(op, err)
	a.notes.Error(title, desc)
}

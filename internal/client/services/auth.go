// Package services contains application services for the gophchat client.
// This file defines the authentication service: login and registration
// against the backend, with the resulting credential handed to the session
// store.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate with email and password and start a session.
//   - Register: validate the form locally, create the account and start a
//     session.
//
// On failure the session is left untouched. Nothing is retried; every call
// is one independent request.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, username, email, password, confirmation string) (models.Session, error)
}

// SessionWriter is the part of the session store the service needs.
type SessionWriter interface {
	SetSession(ctx context.Context, credential string, user *models.User) error
	Current() models.Session
}

type authService struct {
	client  api.Client
	session SessionWriter
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client api.Client, session SessionWriter, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: client, session: session, log: log.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, ErrMissingCredentials
	}

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "email", email, "error", err)
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	return a.start(ctx, resp)
}

// Register checks the form before anything goes over the wire: blank email
// or password yields ErrMissingCredentials, a confirmation that differs from
// the password yields ErrPasswordMismatch.
func (a *authService) Register(ctx context.Context, username, email, password, confirmation string) (models.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, ErrMissingCredentials
	}
	if password != confirmation {
		return models.Session{}, ErrPasswordMismatch
	}

	resp, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		a.log.Info(ctx, "registration failed", "email", email, "error", err)
		return models.Session{}, fmt.Errorf("register: %w", err)
	}
	return a.start(ctx, resp)
}

func (a *authService) start(ctx context.Context, resp api.AuthResponse) (models.Session, error) {
	if err := a.session.SetSession(ctx, resp.Token, resp.User); err != nil {
		return models.Session{}, fmt.Errorf("start session: %w", err)
	}
	s := a.session.Current()
	if s.User != nil {
		a.log.Info(ctx, "session started", "user", s.User.DisplayName())
	}
	return s, nil
}

package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrMissingCredentials = errors.New("email and password are required")
)

// FailureKind groups errors by what the user can do about them.
type FailureKind int

const (
	FailureUnexpected FailureKind = iota
	FailureTransport
	FailureAuth
	FailureValidation
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureAuth:
		return "auth"
	case FailureValidation:
		return "validation"
	default:
		return "unexpected"
	}
}

// Classify maps an error returned by the services or the API client onto a
// FailureKind.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrMissingCredentials),
		errors.Is(err, api.ErrBadRequest):
		return FailureValidation
	case errors.Is(err, api.ErrUnauthorized):
		return FailureAuth
	case errors.Is(err, api.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return FailureTransport
	default:
		return FailureUnexpected
	}
}

// Operation names a user action for failure messages.
type Operation string

const (
	OpLogin    Operation = "login"
	OpRegister Operation = "register"
	OpLoad     Operation = "load"
	OpSend     Operation = "send"
	OpCreate   Operation = "create"
)

// Describe returns a notification title and description for err raised by
// op. The title is fixed per operation; the description is the most specific
// explanation available.
func Describe(op Operation, err error) (title, description string) {
	switch op {
	case OpLogin:
		title = "Failed to login"
	case OpRegister:
		title = "Failed to create account"
	case OpLoad:
		title = "Failed to load chats"
	case OpSend:
		title = "Failed to send message"
	case OpCreate:
		title = "Failed to create chat"
	default:
		title = "Something went wrong"
	}

	if errors.Is(err, ErrPasswordMismatch) {
		return "Passwords do not match", "Please make sure both passwords are the same."
	}

	var se *api.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return title, se.Message
	}

	switch Classify(err) {
	case FailureValidation:
		if errors.Is(err, ErrMissingCredentials) {
			description = "Email and password are required."
		} else {
			description = "The request was rejected."
		}
	case FailureAuth:
		if op == OpLogin {
			description = "Invalid email or password."
		} else {
			description = "Your session is no longer valid. Please log in again."
		}
	case FailureTransport:
		description = "The server could not be reached. Please try again."
	default:
		description = "Unexpected response from the server."
	}
	return title, description
}

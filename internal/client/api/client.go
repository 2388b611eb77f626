package api

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// AuthResponse is what login and registration yield. User is nil when the
// backend only returns a token.
type AuthResponse struct {
	Token string
	User  *models.User
}

type Client interface {
	Login(ctx context.Context, email, password string) (AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (AuthResponse, error)
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	CreateConversation(ctx context.Context) (models.Conversation, error)
	SendMessage(ctx context.Context, conversationID, text string) (models.Conversation, error)
}

// TokenSource supplies the credential for the Authorization header; an empty
// string means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// MessageRoute selects how a message is posted.
type MessageRoute string

const (
	// RouteNested posts {message} to {prefix}/chat/{id}/messages.
	RouteNested MessageRoute = "nested"
	// RouteFlat posts {chatId, message} to {prefix}/chat/message.
	RouteFlat MessageRoute = "flat"
)

// Package models defines the client-side values every layer of gophchat
// shares: users, conversations, messages and the derived session.
package models

import "slices"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the roles the UI knows how to render.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// User is the identity associated with a credential.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DisplayName prefers the username, then the email, then the id.
func (u User) DisplayName() string {
	switch {
	case u.Username != "":
		return u.Username
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}

// Message is a single immutable turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the backend-owned thread the client caches.
// Messages are append-only and ordered by the server.
type Conversation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// Clone returns a copy that shares no memory with c.
func (c Conversation) Clone() Conversation {
	c.Messages = slices.Clone(c.Messages)
	return c
}

// LastMessage returns the final message and true, or false for an empty thread.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Session is the projection of the session store every screen consumes.
type Session struct {
	Credential      string
	User            *User
	IsAuthenticated bool
}

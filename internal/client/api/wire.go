package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// DefaultTitle names conversations the backend returned without a title.
const DefaultTitle = "New Chat"

// flexID accepts a JSON string or number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func pickID(ids ...flexID) string {
	for _, id := range ids {
		if id != "" {
			return string(id)
		}
	}
	return ""
}

type wireUser struct {
	ID       flexID `json:"id"`
	MongoID  flexID `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func (w *wireUser) normalize() *models.User {
	if w == nil {
		return nil
	}
	u := &models.User{
		ID:       pickID(w.ID, w.MongoID),
		Username: w.Username,
		Email:    w.Email,
	}
	if u.Username == "" {
		u.Username = w.Name
	}
	if u.ID == "" && u.Email == "" && u.Username == "" {
		return nil
	}
	return u
}

type wireAuth struct {
	Token       string    `json:"token"`
	AccessToken string    `json:"accessToken"`
	User        *wireUser `json:"user"`
}

func (w wireAuth) normalize() (AuthResponse, error) {
	token := w.Token
	if token == "" {
		token = w.AccessToken
	}
	if token == "" {
		return AuthResponse{}, unexpected("response carries no token")
	}
	return AuthResponse{Token: token, User: w.User.normalize()}, nil
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireConversation struct {
	ID       flexID        `json:"id"`
	MongoID  flexID        `json:"_id"`
	ChatID   flexID        `json:"chatId"`
	Title    string        `json:"title"`
	Messages []wireMessage `json:"messages"`
}

func (w wireConversation) normalize() (models.Conversation, error) {
	id := pickID(w.ID, w.MongoID, w.ChatID)
	if id == "" {
		return models.Conversation{}, unexpected("conversation without id")
	}

	c := models.Conversation{
		ID:       id,
		Title:    strings.TrimSpace(w.Title),
		Messages: make([]models.Message, 0, len(w.Messages)),
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	for i, m := range w.Messages {
		role := models.Role(strings.ToLower(strings.TrimSpace(m.Role)))
		if role == "" {
			return models.Conversation{}, unexpected("message %d of %s has no role", i, id)
		}
		if !role.Valid() {
			continue
		}
		c.Messages = append(c.Messages, models.Message{Role: role, Content: m.Content})
	}
	return c, nil
}

// decodeConversation accepts a bare conversation or one wrapped in
// {"chat": ...} / {"conversation": ...}.
func decodeConversation(body []byte) (models.Conversation, error) {
	var wrapped struct {
		Chat         *wireConversation `json:"chat"`
		Conversation *wireConversation `json:"conversation"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return models.Conversation{}, unexpected("decode conversation: %v", err)
	}
	switch {
	case wrapped.Chat != nil:
		return wrapped.Chat.normalize()
	case wrapped.Conversation != nil:
		return wrapped.Conversation.normalize()
	}

	var w wireConversation
	if err := json.Unmarshal(body, &w); err != nil {
		return models.Conversation{}, unexpected("decode conversation: %v", err)
	}
	return w.normalize()
}

// decodeConversationList accepts a JSON array or an object holding the array
// under "chats", "conversations" or "data".
func decodeConversationList(body []byte) ([]models.Conversation, error) {
	trimmed := bytes.TrimSpace(body)

	var items []wireConversation
	if bytes.Equal(trimmed, []byte("null")) {
		return []models.Conversation{}, nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, unexpected("decode conversation list: %v", err)
		}
	} else {
		var wrapped struct {
			Chats         []wireConversation `json:"chats"`
			Conversations []wireConversation `json:"conversations"`
			Data          []wireConversation `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, unexpected("decode conversation list: %v", err)
		}
		switch {
		case wrapped.Chats != nil:
			items = wrapped.Chats
		case wrapped.Conversations != nil:
			items = wrapped.Conversations
		case wrapped.Data != nil:
			items = wrapped.Data
		default:
			return nil, unexpected("conversation list not found in response")
		}
	}

	out := make([]models.Conversation, 0, len(items))
	for i, w := range items {
		c, err := w.normalize()
		if err != nil {
			return nil, unexpected("item %d: %v", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeAuth(body []byte) (AuthResponse, error) {
	var w wireAuth
	if err := json.Unmarshal(body, &w); err != nil {
		return AuthResponse{}, unexpected("decode auth response: %v", err)
	}
	return w.normalize()
}

// Package chat holds the state behind the chat screen: the cached
// conversation list, the active conversation and the input draft.
//
// The active conversation is always looked up in the cached list by ID, so a
// reply that replaces the list entry replaces the active conversation too.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/client/router"
	"github.com/dmitrijs2005/gophchat/internal/client/services"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

var (
	ErrUnknownConversation = errors.New("unknown conversation")
	// ErrSessionEnded is returned when a logout happened while the request
	// was in flight. The reply is dropped.
	ErrSessionEnded = errors.New("session ended")
)

// SessionClearer ends the session on logout.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

type Navigator interface {
	Navigate(path string) router.Route
}

type Controller struct {
	client   api.Client
	sessions SessionClearer
	nav      Navigator
	notifier notify.Notifier
	log      logging.Logger

	mu            sync.Mutex
	conversations []models.Conversation
	activeID      string
	draft         string
	loading       int
	sending       int
	seq           uint64
	applied       map[string]uint64
	// gen is bumped by Logout; replies started under an older gen are dropped.
	gen uint64
}

func NewController(client api.Client, sessions SessionClearer, nav Navigator, notifier notify.Notifier, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		client:   client,
		sessions: sessions,
		nav:      nav,
		notifier: notifier,
		log:      log.With("component", "chat"),
		applied:  make(map[string]uint64),
	}
}

// Load replaces the cached list with the backend's and selects the first
// conversation when none is active. On failure the list is kept.
func (c *Controller) Load(ctx context.Context) error {
	gen := c.begin(&c.loading)
	defer c.end(&c.loading)

	list, err := c.client.ListConversations(ctx)
	if err != nil {
		if c.current(gen) {
			c.fail(ctx, services.OpLoad, err)
		}
		return fmt.Errorf("load conversations: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug(ctx, "discarding conversation list from ended session")
		return ErrSessionEnded
	}
	c.conversations = cloneAll(list)
	if c.indexLocked(c.activeID) < 0 {
		c.activeID = ""
		if len(c.conversations) > 0 {
			c.activeID = c.conversations[0].ID
		}
	}
	return nil
}

// Create starts a new conversation, puts it first and makes it active.
func (c *Controller) Create(ctx context.Context) (models.Conversation, error) {
	gen := c.begin(&c.loading)
	defer c.end(&c.loading)

	conv, err := c.client.CreateConversation(ctx)
	if err != nil {
		if c.current(gen) {
			c.fail(ctx, services.OpCreate, err)
		}
		return models.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug(ctx, "discarding conversation from ended session", "conversation", conv.ID)
		return models.Conversation{}, ErrSessionEnded
	}
	if i := c.indexLocked(conv.ID); i >= 0 {
		c.conversations = append(c.conversations[:i], c.conversations[i+1:]...)
	}
	c.conversations = append([]models.Conversation{conv.Clone()}, c.conversations...)
	c.activeID = conv.ID
	return conv.Clone(), nil
}

func (c *Controller) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexLocked(id) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownConversation, id)
	}
	c.activeID = id
	return nil
}

// Send posts text to the active conversation. Blank text or no active
// conversation is a no-op that reports false. The draft is cleared when the
// request starts and restored if it fails.
func (c *Controller) Send(ctx context.Context, text string) (bool, error) {
	if common.IsBlank(text) {
		return false, nil
	}

	c.mu.Lock()
	id := c.activeID
	if id == "" {
		c.mu.Unlock()
		return false, nil
	}
	c.seq++
	seq, gen := c.seq, c.gen
	c.draft = ""
	c.sending++
	c.mu.Unlock()

	defer c.end(&c.sending)

	conv, err := c.client.SendMessage(ctx, id, text)
	if err != nil {
		c.mu.Lock()
		live := gen == c.gen
		if live && c.draft == "" {
			c.draft = text
		}
		c.mu.Unlock()
		if live {
			c.fail(ctx, services.OpSend, err)
		}
		return true, fmt.Errorf("send message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug(ctx, "discarding reply from ended session", "conversation", id)
		return true, ErrSessionEnded
	}
	if seq < c.applied[id] {
		c.log.Debug(ctx, "discarding stale reply", "conversation", id, "seq", seq, "applied", c.applied[id])
		return true, nil
	}
	i := c.indexLocked(id)
	if i < 0 {
		c.log.Debug(ctx, "discarding reply for uncached conversation", "conversation", id)
		return true, nil
	}
	c.applied[id] = seq
	c.conversations[i] = conv.Clone()
	return true, nil
}

// Submit sends text, first creating a conversation when none is active.
func (c *Controller) Submit(ctx context.Context, text string) (bool, error) {
	if common.IsBlank(text) {
		return false, nil
	}
	if _, ok := c.Active(); !ok {
		if _, err := c.Create(ctx); err != nil {
			if !errors.Is(err, ErrSessionEnded) {
				c.SetDraft(text)
			}
			return false, err
		}
	}
	return c.Send(ctx, text)
}

// Logout ends the session locally and returns the route shown afterwards.
// A storage failure is logged; the user is logged out regardless.
func (c *Controller) Logout(ctx context.Context) router.Route {
	if err := c.sessions.Clear(ctx); err != nil {
		c.log.Error(ctx, "logout: clear session", "error", err)
	}

	c.mu.Lock()
	c.gen++
	c.conversations = nil
	c.activeID = ""
	c.draft = ""
	c.applied = make(map[string]uint64)
	c.mu.Unlock()

	return c.nav.Navigate(string(router.RouteLogin))
}

func (c *Controller) Conversations() []models.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.conversations)
}

func (c *Controller) Active() (models.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(c.activeID)
	if i < 0 {
		return models.Conversation{}, false
	}
	return c.conversations[i].Clone(), true
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetDraft(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = s
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading > 0
}

func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending > 0
}

// begin bumps counter and returns the session generation the call runs under.
func (c *Controller) begin(counter *int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	*counter++
	return c.gen
}

func (c *Controller) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen
}

func (c *Controller) end(counter *int) {
	c.mu.Lock()
	*counter--
	c.mu.Unlock()
}

func (c *Controller) fail(ctx context.Context, op services.Operation, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	c.log.Warn(ctx, "chat operation failed", "op", string(op), "kind", services.Classify(err).String(), "error", err)
	if c.notifier != nil {
		title, desc := services.Describe(op, err)
		c.notifier.Notify(notify.KindError, title, desc)
	}
}

func (c *Controller) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.conversations {
		if c.conversations[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(list []models.Conversation) []models.Conversation {
	out := make([]models.Conversation, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// Package notify holds transient, dismissible notifications: the failures
// and confirmations the user sees after a command, each expiring on its own.
package notify

import (
	"sync"
	"time"
)

type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// DefaultDuration is how long a notification stays active.
const DefaultDuration = 5 * time.Second

type Notification struct {
	ID          int
	Kind        Kind
	Title       string
	Description string
	CreatedAt   time.Time
	Duration    time.Duration
}

func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.CreatedAt.Add(n.Duration))
}

// Notifier is the sending side, used by the services and the chat controller.
type Notifier interface {
	Notify(kind Kind, title, description string) Notification
}

// Center keeps notifications until they are delivered, dismissed or expired.
// It is safe for concurrent use.
type Center struct {
	mu       sync.Mutex
	items    []Notification
	seen     map[int]bool
	nextID   int
	duration time.Duration
	now      func() time.Time
}

type Option func(*Center)

func WithDuration(d time.Duration) Option {
	return func(c *Center) { c.duration = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

func NewCenter(opts ...Option) *Center {
	c := &Center{
		seen:     make(map[int]bool),
		duration: DefaultDuration,
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Notifier = (*Center)(nil)

func (c *Center) Notify(kind Kind, title, description string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	n := Notification{
		ID:          c.nextID,
		Kind:        kind,
		Title:       title,
		Description: description,
		CreatedAt:   c.now(),
		Duration:    c.duration,
	}
	c.items = append(c.items, n)
	return n
}

func (c *Center) Error(title, description string) Notification {
	return c.Notify(KindError, title, description)
}

func (c *Center) Success(title, description string) Notification {
	return c.Notify(KindSuccess, title, description)
}

// Active returns the notifications that are neither dismissed nor expired,
// oldest first. Expired ones are dropped.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	return append([]Notification(nil), c.items...)
}

// Drain returns active notifications not returned by a previous Drain.
func (c *Center) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()

	var out []Notification
	for _, n := range c.items {
		if !c.seen[n.ID] {
			c.seen[n.ID] = true
			out = append(out, n)
		}
	}
	return out
}

// Dismiss removes a notification early. Unknown ids are ignored.
func (c *Center) Dismiss(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			delete(c.seen, id)
			return true
		}
	}
	return false
}

func (c *Center) pruneLocked() {
	now := c.now()
	kept := c.items[:0]
	for _, n := range c.items {
		if n.Expired(now) {
			delete(c.seen, n.ID)
			continue
		}
		kept = append(kept, n)
	}
	c.items = kept
}

// Package router decides which screen the client shows. Guard is the pure
// decision; Navigator keeps the current route and re-runs the decision
// whenever the session changes.
package router

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/session"
)

type Route string

const (
	RouteRoot     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteChat     Route = "/chat"
)

// AuthState is the guard's view of the session.
type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticated
)

func StateOf(s models.Session) AuthState {
	if s.IsAuthenticated {
		return Authenticated
	}
	return Unauthenticated
}

// Normalize maps user input such as "chat", "/chat/" or "/CHAT" onto a known
// route. Anything unrecognised becomes RouteRoot.
func Normalize(path string) Route {
	p := "/" + strings.Trim(strings.ToLower(strings.TrimSpace(path)), "/")
	switch Route(p) {
	case RouteLogin, RouteRegister, RouteChat:
		return Route(p)
	default:
		return RouteRoot
	}
}

// Guard resolves the route actually shown for a requested path.
//
//	unauthenticated: /chat and / go to /login; /login and /register stay
//	authenticated:   / goes to /chat; every other route stays
func Guard(state AuthState, requested Route) Route {
	r := Normalize(string(requested))
	if state == Authenticated {
		if r == RouteRoot {
			return RouteChat
		}
		return r
	}
	switch r {
	case RouteLogin, RouteRegister:
		return r
	default:
		return RouteLogin
	}
}

// Listener is told about every route change.
type Listener func(from, to Route)

// Navigator is safe for concurrent use.
type Navigator struct {
	mu        sync.Mutex
	state     AuthState
	requested Route
	current   Route
	listeners []Listener

	cancel func()
}

// NewNavigator starts at "/" and follows the session reported by sessions.
func NewNavigator(sessions session.Reader) *Navigator {
	n := &Navigator{
		state:     StateOf(sessions.Current()),
		requested: RouteRoot,
	}
	n.current = Guard(n.state, n.requested)
	n.cancel = sessions.Subscribe(n.onSession)
	return n
}

// Close stops following the session.
func (n *Navigator) Close() {
	if n.cancel != nil {
		n.cancel()
	}
}

func (n *Navigator) OnChange(fn Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate requests path and returns where the guard let the user land.
func (n *Navigator) Navigate(path string) Route {
	n.mu.Lock()
	n.requested = Normalize(path)
	return n.apply()
}

func (n *Navigator) onSession(s models.Session) {
	n.mu.Lock()
	n.state = StateOf(s)
	// A session change re-evaluates the screen being shown, not the one
	// originally asked for: logging in on /login stays there until the
	// caller navigates on.
	n.requested = n.current
	n.apply()
}

// apply must be entered with mu held; it releases it before calling listeners.
func (n *Navigator) apply() Route {
	from := n.current
	to := Guard(n.state, n.requested)
	n.current = to
	listeners := append([]Listener(nil), n.listeners...)
	n.mu.Unlock()

	if from != to {
		for _, l := range listeners {
			l(from, to)
		}
	}
	return to
}

package router

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/session"
	"github.com/dmitrijs2005/gophchat/internal/client/storage"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		state AuthState
		path  Route
		want  Route
	}{
		{Unauthenticated, RouteChat, RouteLogin},
		{Unauthenticated, RouteRoot, RouteLogin},
		{Unauthenticated, RouteLogin, RouteLogin},
		{Unauthenticated, RouteRegister, RouteRegister},
		{Unauthenticated, "/nowhere", RouteLogin},
		{Authenticated, RouteRoot, RouteChat},
		{Authenticated, RouteChat, RouteChat},
		{Authenticated, RouteLogin, RouteLogin},
		{Authenticated, "/nowhere", RouteChat},
	}
	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(tt.state, tt.path))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, RouteChat, Normalize("chat"))
	assert.Equal(t, RouteChat, Normalize(" /Chat/ "))
	assert.Equal(t, RouteRoot, Normalize(""))
	assert.Equal(t, RouteRoot, Normalize("/chat/42"))
}

// fakeReader is a minimal session.Reader driven by the test.
type fakeReader struct {
	s         models.Session
	listeners []session.Listener
}

func (f *fakeReader) Current() models.Session { return f.s }

func (f *fakeReader) Subscribe(fn session.Listener) func() {
	f.listeners = append(f.listeners, fn)
	idx := len(f.listeners) - 1
	return func() { f.listeners[idx] = nil }
}

func (f *fakeReader) set(s models.Session) {
	f.s = s
	for _, l := range f.listeners {
		if l != nil {
			l(s)
		}
	}
}

func TestNavigator_FollowsSession(t *testing.T) {
	r := &fakeReader{}
	n := NewNavigator(r)
	defer n.Close()

	var changes [][2]Route
	n.OnChange(func(from, to Route) { changes = append(changes, [2]Route{from, to}) })

	assert.Equal(t, RouteLogin, n.Current())
	assert.Equal(t, RouteLogin, n.Navigate("/chat"))

	r.set(models.Session{Credential: "t", IsAuthenticated: true})
	assert.Equal(t, RouteLogin, n.Current())

	assert.Equal(t, RouteChat, n.Navigate("/"))

	r.set(models.Session{})
	assert.Equal(t, RouteLogin, n.Current())

	assert.Equal(t, [][2]Route{
		{RouteLogin, RouteChat},
		{RouteChat, RouteLogin},
	}, changes)
}

func TestNavigator_RestoredSessionStartsOnChat(t *testing.T) {
	n := NewNavigator(&fakeReader{s: models.Session{Credential: "t", IsAuthenticated: true}})
	defer n.Close()
	assert.Equal(t, RouteChat, n.Current())
}

func TestNavigator_CloseStopsFollowing(t *testing.T) {
	r := &fakeReader{}
	n := NewNavigator(r)
	n.Navigate("/register")
	n.Close()

	r.set(models.Session{Credential: "t", IsAuthenticated: true})
	assert.Equal(t, RouteRegister, n.Current())
	assert.Equal(t, RouteRegister, n.Navigate("/register"))
}

func TestNavigator_WithRealStore(t *testing.T) {
	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db, nil)
	n := NewNavigator(store)
	defer n.Close()

	require.NoError(t, store.SetSession(ctx, "tok", nil))
	assert.Equal(t, RouteChat, n.Navigate("/chat"))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, RouteLogin, n.Current())

	// Clearing twice changes nothing.
	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, RouteLogin, n.Current())
}

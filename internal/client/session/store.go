package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

var ErrEmptyCredential = errors.New("empty credential")

// Listener receives the new session after every transition.
type Listener func(models.Session)

// Reader is the read/subscribe side of the store.
type Reader interface {
	Current() models.Session
	Subscribe(fn Listener) (cancel func())
}

// Store is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log logging.Logger

	mu        sync.RWMutex
	state     models.Session
	listeners map[int]Listener
	nextID    int
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		db:        db,
		log:       log.With("component", "session"),
		listeners: make(map[int]Listener),
	}
}

func (s *Store) repo() localstore.Repository {
	return localstore.NewSQLiteRepository(s.db)
}

// Restore loads a previously persisted session. The credential is trusted as
// is: an expired token is only discovered when the backend rejects it.
func (s *Store) Restore(ctx context.Context) (models.Session, error) {
	repo := s.repo()

	token, err := repo.GetItem(ctx, common.StorageKeyToken)
	if err != nil {
		return s.Current(), fmt.Errorf("restore token: %w", err)
	}

	next := models.Session{}
	if len(token) > 0 {
		next.Credential = string(token)
		next.IsAuthenticated = true
		next.User = s.loadUser(ctx, repo, next.Credential)
	}

	s.log.Debug(ctx, "session restored", "authenticated", next.IsAuthenticated)
	s.transition(next)
	return next, nil
}

func (s *Store) loadUser(ctx context.Context, repo localstore.Repository, token string) *models.User {
	raw, err := repo.GetItem(ctx, common.StorageKeyUser)
	if err != nil {
		s.log.Warn(ctx, "cannot read persisted user", "error", err)
	}
	if len(raw) > 0 {
		var u models.User
		if err := json.Unmarshal(raw, &u); err == nil {
			return &u
		}
		s.log.Warn(ctx, "persisted user record is corrupt, ignoring")
	}
	return identityFromToken(token)
}

// SetSession persists credential and user in one transaction and marks the
// session authenticated. A nil user removes any stale persisted record; the
// in-memory identity then falls back to the token's claims.
func (s *Store) SetSession(ctx context.Context, credential string, user *models.User) error {
	if credential == "" {
		return ErrEmptyCredential
	}

	var userJSON []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userJSON = b
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstore.NewSQLiteRepository(tx)
		if err := repo.SetItem(ctx, common.StorageKeyToken, []byte(credential)); err != nil {
			return err
		}
		if userJSON == nil {
			return repo.RemoveItem(ctx, common.StorageKeyUser)
		}
		return repo.SetItem(ctx, common.StorageKeyUser, userJSON)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	next := models.Session{Credential: credential, IsAuthenticated: true}
	if user != nil {
		u := *user
		next.User = &u
	} else {
		next.User = identityFromToken(credential)
	}

	s.transition(next)
	return nil
}

// Clear forgets the session in memory first, so the credential stops being
// attached even if local storage cannot be updated; the storage error is
// still returned. Calling Clear on a cleared store is a no-op transition.
func (s *Store) Clear(ctx context.Context) error {
	s.transition(models.Session{})

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstore.NewSQLiteRepository(tx)
		if err := repo.RemoveItem(ctx, common.StorageKeyToken); err != nil {
			return err
		}
		return repo.RemoveItem(ctx, common.StorageKeyUser)
	})
	if err != nil {
		s.log.Error(ctx, "cannot remove persisted session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.state)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Credential
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Subscribe registers fn for future transitions. The returned function
// removes the subscription and may be called more than once.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// transition swaps the state and notifies listeners when it actually changed.
// Listeners run outside the lock so they may read the store.
func (s *Store) transition(next models.Session) {
	s.mu.Lock()
	if sameSession(s.state, next) {
		s.mu.Unlock()
		return
	}
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(copySession(next))
	}
}

func sameSession(a, b models.Session) bool {
	if a.Credential != b.Credential || a.IsAuthenticated != b.IsAuthenticated {
		return false
	}
	if a.User == nil || b.User == nil {
		return a.User == b.User
	}
	return *a.User == *b.User
}

func copySession(s models.Session) models.Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// ---- fakes ----

type fakeClient struct {
	LoginRet    api.AuthResponse
	LoginErr    error
	RegisterRet api.AuthResponse
	RegisterErr error

	LoginCalls    int
	RegisterCalls int

	LastEmail    string
	LastPassword string
	LastUsername string
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (api.AuthResponse, error) {
	f.LoginCalls++
	f.LastEmail, f.LastPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (api.AuthResponse, error) {
	f.RegisterCalls++
	f.LastUsername, f.LastEmail, f.LastPassword = username, email, password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return nil, nil
}

func (f *fakeClient) CreateConversation(ctx context.Context) (models.Conversation, error) {
	return models.Conversation{}, nil
}

func (f *fakeClient) SendMessage(ctx context.Context, id, text string) (models.Conversation, error) {
	return models.Conversation{}, nil
}

type fakeSession struct {
	SetErr  error
	Calls   int
	current models.Session
}

func (f *fakeSession) SetSession(ctx context.Context, credential string, user *models.User) error {
	f.Calls++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.current = models.Session{Credential: credential, User: user, IsAuthenticated: true}
	return nil
}

func (f *fakeSession) Current() models.Session { return f.current }

// ---- tests ----

func TestLogin_Success_StartsSession(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@x.org"}
	fc := &fakeClient{LoginRet: api.AuthResponse{Token: "tok", User: user}}
	fs := &fakeSession{}
	svc := NewAuthService(fc, fs, nil)

	s, err := svc.Login(context.Background(), " a@x.org ", "pw")
	require.NoError(t, err)
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "tok", s.Credential)
	assert.Equal(t, "a@x.org", fc.LastEmail)
	assert.Equal(t, 1, fs.Calls)
}

func TestLogin_Rejected_LeavesSessionUntouched(t *testing.T) {
	fc := &fakeClient{LoginErr: &api.StatusError{StatusCode: http.StatusUnauthorized}}
	fs := &fakeSession{}
	svc := NewAuthService(fc, fs, nil)

	_, err := svc.Login(context.Background(), "a@x.org", "bad")
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, FailureAuth, Classify(err))
	assert.Zero(t, fs.Calls)
	assert.False(t, fs.Current().IsAuthenticated)
}

func TestLogin_Blank_NoRequest(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeSession{}, nil)

	_, err := svc.Login(context.Background(), "  ", "pw")
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, fc.LoginCalls)
}

func TestLogin_EachSubmissionIsOneRequest(t *testing.T) {
	fc := &fakeClient{LoginErr: api.ErrUnavailable}
	svc := NewAuthService(fc, &fakeSession{}, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), "a@x.org", "pw")
		require.Error(t, err)
	}
	assert.Equal(t, 3, fc.LoginCalls)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		confirm   string
		wantErr   error
		wantCalls int
	}{
		{"mismatch", "a@x.org", "pw1", "pw2", ErrPasswordMismatch, 0},
		{"blank email", "", "pw", "pw", ErrMissingCredentials, 0},
		{"blank password", "a@x.org", "", "", ErrMissingCredentials, 0},
		{"ok", "a@x.org", "pw", "pw", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{RegisterRet: api.AuthResponse{Token: "tok"}}
			fs := &fakeSession{}
			svc := NewAuthService(fc, fs, nil)

			_, err := svc.Register(context.Background(), "bob", tt.email, tt.password, tt.confirm)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, fs.Calls)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "bob", fc.LastUsername)
			}
			assert.Equal(t, tt.wantCalls, fc.RegisterCalls)
		})
	}
}

func TestRegister_SessionPersistFailure(t *testing.T) {
	fc := &fakeClient{RegisterRet: api.AuthResponse{Token: "tok"}}
	fs := &fakeSession{SetErr: errors.New("disk full")}
	svc := NewAuthService(fc, fs, nil)

	_, err := svc.Register(context.Background(), "", "a@x.org", "pw", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

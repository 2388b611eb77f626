package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeBackend is an in-memory chat server recording what it received.
type fakeBackend struct {
	mu       sync.Mutex
	headers  []http.Header
	bodies   []map[string]any
	srv      *httptest.Server
}

func newFakeBackend(t *testing.T, routes func(r chi.Router, fb *fakeBackend)) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	r := chi.NewRouter()
	r.Use(fb.record)
	routes(r, fb)
	fb.srv = httptest.NewServer(r)
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		fb.mu.Lock()
		fb.headers = append(fb.headers, r.Header.Clone())
		fb.bodies = append(fb.bodies, body)
		fb.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (fb *fakeBackend) lastHeader() http.Header {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.headers) == 0 {
		return nil
	}
	return fb.headers[len(fb.headers)-1]
}

func (fb *fakeBackend) lastBody() map[string]any {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.bodies) == 0 {
		return nil
	}
	return fb.bodies[len(fb.bodies)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

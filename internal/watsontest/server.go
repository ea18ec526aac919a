// Package watsontest provides an in-process fake of a Watson service that
// records every request it receives.
package watsontest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/goliatone/go-watson/core"
)

type Recorded struct {
	Method   string
	Path     string
	RawQuery string
	Query    url.Values
	Header   http.Header
	Body     []byte
}

type Server struct {
	*httptest.Server
	router   chi.Router
	mu       sync.Mutex
	requests []Recorded
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{router: chi.NewRouter()}
	s.router.Use(s.record)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, core.ServiceError{Code: http.StatusNotFound, Error: "Not Found: " + r.URL.Path})
	})
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// JSON serves body encoded as JSON for method and pattern. Patterns use chi
// syntax, for example /v1/models/{model_id}.
func (s *Server) JSON(method, pattern string, status int, body any) {
	s.router.MethodFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Raw serves a fixed payload with the given content type.
func (s *Server) Raw(method, pattern string, status int, contentType string, payload []byte) {
	s.router.MethodFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(payload)
	})
}

func (s *Server) HandleFunc(method, pattern string, handler http.HandlerFunc) {
	s.router.MethodFunc(method, pattern, handler)
}

// Config returns a service configuration pointing at the fake with basic
// credentials and tracing disabled.
func (s *Server) Config() core.Config {
	return core.Config{
		URL: s.URL,
		Auth: core.AuthConfig{
			Type:     core.AuthKindBasic,
			Username: "user",
			Password: "pass",
		},
		DisableTracing: true,
	}
}

func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) Last() Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Query:    r.URL.Query(),
			Header:   r.Header.Clone(),
			Body:     body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", core.ContentTypeJSON)
	w.Header().Set(core.TransactionIDHeader, "fake-transaction")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	switch typed := body.(type) {
	case string:
		_, _ = io.WriteString(w, typed)
	case []byte:
		_, _ = w.Write(typed)
	default:
		_ = json.NewEncoder(w).Encode(typed)
	}
}

// Package apitest provides a scriptable fake posterity server for tests.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// Response is one scripted reply
type Response struct {
	Status int
	Body   string
	Delay  time.Duration
}

// Request is one recorded request
type Request struct {
	Method    string
	Path      string
	Body      string
	Header    http.Header
	StartedAt time.Time
}

// Server replays scripted responses per method and path. The last scripted
// response of a route repeats once the others are used up.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	scripts     map[string][]Response
	requests    []Request
	inFlight    map[string]int
	maxInFlight map[string]int
}

// NewServer starts a server that is closed when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		scripts:     make(map[string][]Response),
		inFlight:    make(map[string]int),
		maxInFlight: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Post("/api/v1/core/post_link", s.handle)
	r.Post("/api/v1/core/start_download/{id}", s.handle)
	r.Post("/api/v1/core/start_processing/{id}", s.handle)
	r.Post("/api/v1/core/title_suggestion", s.handle)
	r.Get("/api/v1/core/desc_from_source/{id}", s.handle)
	r.Get("/check_progress/{id}", s.handle)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Enqueue appends scripted responses for a route
func (s *Server) Enqueue(method, path string, responses ...Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, path)
	s.scripts[key] = append(s.scripts[key], responses...)
}

// Requests returns every recorded request in arrival order
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request{}, s.requests...)
}

// Count returns how many requests hit a route
func (s *Server) Count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, req := range s.requests {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// MaxConcurrent returns the highest number of simultaneous requests seen on a route
func (s *Server) MaxConcurrent(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight[routeKey(method, path)]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := routeKey(r.Method, r.URL.Path)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Body:      string(body),
		Header:    r.Header.Clone(),
		StartedAt: time.Now(),
	})
	s.inFlight[key]++
	if s.inFlight[key] > s.maxInFlight[key] {
		s.maxInFlight[key] = s.inFlight[key]
	}
	resp, ok := s.next(key)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight[key]--
		s.mu.Unlock()
	}()

	if !ok {
		http.Error(w, "unscripted route: "+key, http.StatusInternalServerError)
		return
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-r.Context().Done():
			return
		}
	}

	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

// next must be called with mu held
func (s *Server) next(key string) (Response, bool) {
	queue := s.scripts[key]
	if len(queue) == 0 {
		return Response{}, false
	}
	resp := queue[0]
	if len(queue) > 1 {
		s.scripts[key] = queue[1:]
	}
	return resp, true
}

func routeKey(method, path string) string {
	return method + " " + path
}

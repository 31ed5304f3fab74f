// Package fakemyft provides a fake myFT HTTP API for testing purposes.
//
// Configure stub responses that match a method and path, along with failure
// configurations that specify how a response fails (delays, invalid bodies,
// error statuses, dropped connections). Every request the server receives is
// recorded so tests can assert on paths, headers and bodies.
//
// Requests without a matching stub are answered with 404, which the myFT
// client reports as "no user data exists".
package fakemyft

import (
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/financial-times/myft.go/internal/codec"
)

// FailureType represents the type of failure to inject during request processing
type FailureType string

const (
	FailureNone FailureType = "none"
	// FailureRequestDelay delays before answering
	FailureRequestDelay FailureType = "request_delay"
	// FailureInvalidResponse answers with a body that is not JSON
	FailureInvalidResponse FailureType = "invalid_response"
	// FailureStatus answers with StatusCode and an empty JSON object
	FailureStatus FailureType = "status"
	// FailureDropConnection closes the underlying connection without answering
	FailureDropConnection FailureType = "drop_connection"
)

// RequestMatcher defines criteria for matching incoming requests.
type RequestMatcher struct {
	// Method is the HTTP method to match. Empty matches any method.
	Method string
	// Path is matched against the request path without the leading slash,
	// e.g. "user/abcd/followed/concept". Empty matches any path.
	Path string
	// Matcher optionally narrows the match further.
	Matcher func(r *http.Request) bool
}

func (m RequestMatcher) match(r *http.Request, path string) bool {
	if m.Method != "" && m.Method != r.Method {
		return false
	}
	if m.Path != "" && m.Path != path {
		return false
	}
	return m.Matcher == nil || m.Matcher(r)
}

// StubResponse is a pre-configured response for matching requests.
type StubResponse struct {
	Matcher RequestMatcher
	// Status defaults to 200.
	Status int
	// Body is marshalled as JSON unless it is a []byte, which is sent verbatim.
	Body     any
	Failures []FailureConfig
}

// FailureConfig defines how and when to inject a specific failure type
type FailureConfig struct {
	Type FailureType
	// Probability of triggering this failure (0.0 to 1.0)
	Probability float64
	MinDelay    time.Duration
	MaxDelay    time.Duration
	// StatusCode is the status sent for FailureStatus
	StatusCode int
}

// RecordedRequest is a request as the server received it.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Header        http.Header
	Body          []byte
	ContentLength int64
}

type Server struct {
	mu             sync.RWMutex
	stubResponses  []StubResponse
	globalFailures []FailureConfig
	requests       []RecordedRequest

	router     *mux.Router
	httpServer *httptest.Server
	marshaler  codec.Marshaler
}

func NewServer() *Server {
	s := &Server{
		router:    mux.NewRouter(),
		marshaler: codec.NewJSON(),
	}
	s.router.HandleFunc("/{path:.*}", s.handle)
	return s
}

// Start serves the fake API on a random local port.
func (s *Server) Start() {
	s.httpServer = httptest.NewServer(s.router)
}

func (s *Server) Close() {
	if s.httpServer != nil {
		s.httpServer.Close()
	}
}

// URL is the API root to configure the client with, ending in a slash.
func (s *Server) URL() string {
	return s.httpServer.URL + "/"
}

// Client returns an HTTP client wired to the server.
func (s *Server) Client() *http.Client {
	return s.httpServer.Client()
}

// AddStubResponse registers a stub. Stubs are matched in registration order.
func (s *Server) AddStubResponse(stub StubResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubResponses = append(s.stubResponses, stub)
}

// SetGlobalFailures sets failures applied to every request, after the stub's own.
func (s *Server) SetGlobalFailures(failures []FailureConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalFailures = failures
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Reset forgets stubs, failures and recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubResponses = nil
	s.globalFailures = nil
	s.requests = nil
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]

	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        r.Method,
		Path:          path,
		RawQuery:      r.URL.RawQuery,
		Header:        r.Header.Clone(),
		Body:          body,
		ContentLength: r.ContentLength,
	})
	stub, found := s.findStub(r, path)
	failures := append(append([]FailureConfig(nil), stub.Failures...), s.globalFailures...)
	s.mu.Unlock()

	for _, failure := range failures {
		if !shouldTriggerFailure(failure.Probability) {
			continue
		}
		if done := s.applyFailure(w, failure); done {
			return
		}
	}

	if !found {
		http.Error(w, "no stub for "+r.Method+" "+path, http.StatusNotFound)
		return
	}
	s.writeStub(w, stub)
}

func (s *Server) findStub(r *http.Request, path string) (StubResponse, bool) {
	for _, stub := range s.stubResponses {
		if stub.Matcher.match(r, path) {
			return stub, true
		}
	}
	return StubResponse{}, false
}

// applyFailure injects failure and reports whether the response has been written.
func (s *Server) applyFailure(w http.ResponseWriter, failure FailureConfig) bool {
	switch failure.Type {
	case FailureRequestDelay:
		time.Sleep(randomDuration(failure.MinDelay, failure.MaxDelay))
		return false
	case FailureInvalidResponse:
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
		return true
	case FailureStatus:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(failure.StatusCode)
		_, _ = w.Write([]byte("{}"))
		return true
	case FailureDropConnection:
		hj, ok := w.(http.Hijacker)
		if !ok {
			return false
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	default:
		return false
	}
}

func (s *Server) writeStub(w http.ResponseWriter, stub StubResponse) {
	status := stub.Status
	if status == 0 {
		status = http.StatusOK
	}

	var payload []byte
	switch b := stub.Body.(type) {
	case []byte:
		payload = b
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = s.marshaler.Marshal(stub.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func shouldTriggerFailure(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return rand.Float64() < probability
}

func randomDuration(dMin, dMax time.Duration) time.Duration {
	if dMax <= dMin {
		return dMin
	}
	return dMin + rand.N(dMax-dMin)
}

// MatchRoute matches a method and a path without its leading slash.
func MatchRoute(method, path string) RequestMatcher {
	return RequestMatcher{Method: method, Path: strings.TrimPrefix(path, "/")}
}

// SimpleStubResponse answers method and path with body and status 200.
func SimpleStubResponse(method, path string, body any) StubResponse {
	return StubResponse{Matcher: MatchRoute(method, path), Body: body}
}

// StatusStubResponse answers method and path with the given status and body.
func StatusStubResponse(method, path string, status int, body any) StubResponse {
	return StubResponse{Matcher: MatchRoute(method, path), Status: status, Body: body}
}

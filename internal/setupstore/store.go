// Package setupstore is the client-side orchestrator for the setup-sheet
// scheduler. A Store holds the loaded templates, weekly setups and employee
// roster, gates every assignment mutation through the pure conflict checks in
// the schedule package, and talks to the persistence API for everything
// durable.
//
// Stores are plain constructed objects; callers that need isolated state
// (tests, multiple restaurants) create one Store each.
package setupstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

const (
	defaultRequestTimeout = 60 * time.Second

	// defaultPayloadLimit is the serialized-size threshold above which the
	// auxiliary uploaded-schedule data is trimmed before submission.
	defaultPayloadLimit = 5 << 20
)

// PayloadTooLargeMessage is surfaced when the server rejects a request body
// with 413 despite trimming.
const PayloadTooLargeMessage = "setup sheet is too large to save - reduce the number of staff members or positions"

// TransportError is any failure of the persistence round trip: network
// errors, timeouts, non-JSON responses and non-2xx statuses. StatusCode is
// zero when the request never produced a response.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// TokenSource supplies the bearer token attached to every request. The token
// lives in the caller's session layer, not in the store.
type TokenSource func() string

type Option func(*Store)

func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) { s.client = client }
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Store) { s.requestTimeout = timeout }
}

func WithPayloadLimit(limit int) Option {
	return func(s *Store) { s.payloadLimit = limit }
}

type Store struct {
	baseURL        string
	token          TokenSource
	client         *http.Client
	requestTimeout time.Duration
	payloadLimit   int

	mu                 sync.Mutex
	employees          []domain.Employee
	templates          []*domain.SetupTemplate
	weeklySetups       []*domain.WeeklySetup
	currentTemplate    *domain.SetupTemplate
	currentWeeklySetup *domain.WeeklySetup
	isLoading          bool
	lastError          string
}

func New(baseURL string, token TokenSource, opts ...Option) *Store {
	s := &Store{
		baseURL:        baseURL,
		token:          token,
		requestTimeout: defaultRequestTimeout,
		payloadLimit:   defaultPayloadLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{}
	}
	return s
}

func (s *Store) Employees() []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees
}

func (s *Store) Templates() []*domain.SetupTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templates
}

func (s *Store) WeeklySetups() []*domain.WeeklySetup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weeklySetups
}

func (s *Store) CurrentTemplate() *domain.SetupTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTemplate
}

func (s *Store) CurrentWeeklySetup() *domain.WeeklySetup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWeeklySetup
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// LastError holds the message of the most recent failed action, empty after
// a successful one.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.lastError = ""
	s.mu.Unlock()
}

// fail records the error into the store state and hands it back to the
// caller. Nothing is ever swallowed: every failure path both sets the shared
// error field and returns the error.
func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.isLoading = false
	s.lastError = err.Error()
	s.mu.Unlock()
	return err
}

func (s *Store) finish(update func()) {
	s.mu.Lock()
	if update != nil {
		update()
	}
	s.isLoading = false
	s.mu.Unlock()
}

// do performs one persistence round trip. The request is bounded by the
// store's timeout (60 s by default) through the request context, which also
// carries the abort path for cancellation.
func (s *Store) do(ctx context.Context, method, path string, payload any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &TransportError{Message: fmt.Sprintf("could not serialize request: %v", err)}
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return &TransportError{Message: fmt.Sprintf("could not build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != nil {
		if token := s.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &TransportError{Message: "the request timed out, please try again"}
		}
		return &TransportError{Message: fmt.Sprintf("could not reach the server: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusRequestEntityTooLarge {
		return &TransportError{StatusCode: resp.StatusCode, Message: PayloadTooLargeMessage}
	}

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// prefer the server-provided message when the body parsed
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		if decodeErr == nil && envelope.Message != "" {
			message = envelope.Message
		}
		return &TransportError{StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return &TransportError{StatusCode: resp.StatusCode, Message: "the server returned an unreadable response"}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &TransportError{StatusCode: resp.StatusCode, Message: "the server returned an unreadable response"}
		}
	}

	return nil
}

package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"dealchat/internal/app/store"
)

// PollInterval is the fixed wall-clock interval between message fetches.
const PollInterval = 3 * time.Second

// State is the session controller's lifecycle position.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StatePolling
)

// ErrNotAuthenticated is returned when an operation requires a logged-in session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session drives the client side of the chat: login, fixed-interval polling,
// sends, and logout. Each poll response replaces the whole view rather than
// merging deltas, so duplicate or out-of-order responses cannot corrupt the
// displayed ordering.
type Session struct {
	api      *API
	stateDir string

	mu       sync.Mutex
	state    State
	username string
	view     []store.Message

	// OnUpdate, when set, is invoked with the fresh view after every poll.
	OnUpdate func([]store.Message)
}

// NewSession creates a session controller talking to api. stateDir overrides
// the identity file location; empty means the user's home directory.
func NewSession(api *API, stateDir string) *Session {
	return &Session{
		api:      api,
		stateDir: stateDir,
		state:    StateUnauthenticated,
	}
}

// Resume restores a previously persisted identity, if any, and moves the
// session to Authenticated. No server round-trip happens: the stored username
// alone is trusted.
func (s *Session) Resume() bool {
	username, ok := loadIdentity(s.stateDir)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.state = StateAuthenticated
	return true
}

// Login authenticates against the server and persists the username locally.
func (s *Session) Login(ctx context.Context, username, password string) error {
	confirmed, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := saveIdentity(s.stateDir, confirmed); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = confirmed
	s.state = StateAuthenticated
	return nil
}

// Username returns the authenticated username, empty when unauthenticated.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// CurrentState returns the session's lifecycle state.
func (s *Session) CurrentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the currently displayed message window.
func (s *Session) View() []store.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Poll fetches the message window once and replaces the view with it.
func (s *Session) Poll(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateUnauthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.mu.Unlock()

	messages, err := s.api.Messages(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.view = messages
	onUpdate := s.OnUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate(messages)
	}
	return nil
}

// Run polls once immediately, then on every tick of the fixed interval, until
// ctx is cancelled. A failed poll is reported through onError and retried on
// the next tick.
func (s *Session) Run(ctx context.Context, onError func(error)) error {
	s.mu.Lock()
	if s.state == StateUnauthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.state = StatePolling
	s.mu.Unlock()

	if err := s.Poll(ctx); err != nil && onError != nil {
		onError(err)
	}

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Poll(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}

// SendText submits a text message and immediately re-polls.
func (s *Session) SendText(ctx context.Context, content string) error {
	username := s.Username()
	if username == "" {
		return ErrNotAuthenticated
	}

	if err := s.api.Send(ctx, username, content, store.KindText, nil); err != nil {
		return err
	}

	return s.Poll(ctx)
}

// SendImage uploads the image at path, then submits an image message carrying
// the resulting locator, and immediately re-polls.
func (s *Session) SendImage(ctx context.Context, path string) error {
	username := s.Username()
	if username == "" {
		return ErrNotAuthenticated
	}

	url, err := s.api.Upload(ctx, path)
	if err != nil {
		return err
	}

	if err := s.api.Send(ctx, username, "Image", store.KindImage, &url); err != nil {
		return err
	}

	return s.Poll(ctx)
}

// Logout clears the local identity and returns to Unauthenticated. It does not
// revoke anything server-side; no server-side session exists to revoke.
func (s *Session) Logout() {
	clearIdentity(s.stateDir)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.view = nil
	s.state = StateUnauthenticated
}

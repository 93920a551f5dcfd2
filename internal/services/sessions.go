package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/game"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one game of a human against the computer.
type Session struct {
	id uuid.UUID

	mu         sync.Mutex
	controller *game.Controller
	lastUsed   time.Time
}

// ID returns the session ID.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Use runs fn with exclusive access to the session's game.
func (s *Session) Use(fn func(controller *game.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = time.Now()
	return fn(s.controller)
}

// Swap replaces the session's game with the one fn returns. A failing fn keeps the current game.
func (s *Session) Swap(fn func(controller *game.Controller) (*game.Controller, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = time.Now()

	next, err := fn(s.controller)
	if err != nil {
		return err
	}

	s.controller = next
	return nil
}

func (s *Session) replace(controller *game.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.controller = controller
	s.lastUsed = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastUsed
}

// Sessions is an in-memory registry of game sessions. It is safe for concurrent use.
type Sessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewSessions creates an empty registry.
func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create registers controller under a new random ID.
func (s *Sessions) Create(controller *game.Controller) *Session {
	session := &Session{
		id:         uuid.New(),
		controller: controller,
		lastUsed:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	slog.Debug("Created session", "id", session.id)
	return session
}

// Get looks up a session.
func (s *Sessions) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	return session, nil
}

// Replace swaps the game of a session, which is how restarts work.
func (s *Sessions) Replace(id uuid.UUID, controller *game.Controller) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	session.replace(controller)
	return nil
}

// Delete removes a session.
func (s *Sessions) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	delete(s.sessions, id)
	slog.Debug("Deleted session", "id", id)
	return nil
}

// Len returns the number of sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Prune removes sessions that were not used for longer than olderThan. It returns the
// number of removed sessions. Busy sessions do not block the registry while it runs.
func (s *Sessions) Prune(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	candidates := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		candidates = append(candidates, session)
	}
	s.mu.Unlock()

	var idle []*Session
	for _, session := range candidates {
		if session.idleSince().Before(cutoff) {
			idle = append(idle, session)
		}
	}

	if len(idle) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for _, session := range idle {
		if s.sessions[session.id] == session {
			delete(s.sessions, session.id)
			pruned++
		}
	}

	if pruned > 0 {
		slog.Info("Pruned idle sessions", "count", pruned, "remaining", len(s.sessions))
	}

	return pruned
}

// PruneEvery calls Prune with ttl every interval until stop is called.
func (s *Sessions) PruneEvery(interval, ttl time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				s.Prune(ttl)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

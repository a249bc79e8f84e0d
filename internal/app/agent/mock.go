package agent

import (
	"context"
	"sync"
)

// MockSession publishes no media. It records what it was asked to say so
// tests and operators can inspect the calls.
type MockSession struct {
	roomName string
	identity string

	mu   sync.Mutex
	says []string
}

func NewMockSession(roomName, identity string) *MockSession {
	return &MockSession{roomName: roomName, identity: identity}
}

func (s *MockSession) Start(ctx context.Context) error { return nil }

func (s *MockSession) Say(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.says = append(s.says, text)
	return nil
}

func (s *MockSession) Stop(ctx context.Context) error { return nil }

func (s *MockSession) Kind() string { return "mock" }

// Says returns everything said so far, oldest first.
func (s *MockSession) Says() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.says))
	copy(out, s.says)
	return out
}

package mcp

import (
	"sync"

	"github.com/ftnpaper/curator/internal/curator"
)

// Session is the one curation session a server exposes. Tool calls are
// serialised on its mutex.
type Session struct {
	mu       sync.Mutex
	cur      *curator.Curator
	warnings []string
}

// NewSession wraps a curator and collects its warnings per call.
func NewSession(cur *curator.Curator) *Session {
	s := &Session{cur: cur}
	cur.Subscribe(func(ev curator.Event) {
		if ev.Kind == curator.EventWarning {
			s.warnings = append(s.warnings, ev.Message)
		}
	})
	return s
}

// do runs fn under the session lock and returns the warnings it raised.
func (s *Session) do(fn func(c *curator.Curator) error) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.warnings = nil
	err := fn(s.cur)
	warnings := s.warnings
	s.warnings = nil
	return warnings, err
}

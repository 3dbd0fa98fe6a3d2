package state

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Session wraps one websocket connection behind a write lock. Handler
// replies and the sync fanout loops run on different goroutines, and the
// underlying connection allows at most one writer at a time.
type Session struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewSession(conn *websocket.Conn) *Session {
	return &Session{conn: conn}
}

// WriteJSON sends one message; concurrent callers serialize here.
func (s *Session) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

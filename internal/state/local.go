package state

import (
	"sync"

	"github.com/akhilrajvs/SquidEventWssService/internal/model"
)

// LocalStateManager tracks everything scoped to this process: connected
// websocket clients and the last snapshot each session has been computed
// against. The store remains the source of truth; this is a mirror for
// fanout.
type LocalStateManager struct {
	mu           sync.RWMutex
	clients      map[string]*Session
	admins       map[string]bool
	participants map[string]*model.Participant
	eventState   *model.EventState
}

func NewLocalStateManager() *LocalStateManager {
	return &LocalStateManager{
		clients:      make(map[string]*Session),
		admins:       make(map[string]bool),
		participants: make(map[string]*model.Participant),
	}
}

// AddClient registers a connected session. A reconnect for the same user
// closes and replaces the previous connection.
func (lsm *LocalStateManager) AddClient(userID string, sess *Session, isAdmin bool) {
	lsm.mu.Lock()
	defer lsm.mu.Unlock()

	if old, exists := lsm.clients[userID]; exists && old != sess && old != nil {
		old.Close()
	}
	lsm.clients[userID] = sess
	if isAdmin {
		lsm.admins[userID] = true
	} else {
		delete(lsm.admins, userID)
	}
}

// RemoveClient drops a session and its cached snapshot, but only if sess
// is still the registered connection for userID. A replaced connection's
// read loop exiting late must not evict the live session.
func (lsm *LocalStateManager) RemoveClient(userID string, sess *Session) bool {
	lsm.mu.Lock()
	defer lsm.mu.Unlock()

	current, exists := lsm.clients[userID]
	if !exists || current != sess {
		return false
	}
	if current != nil {
		current.Close()
	}
	delete(lsm.clients, userID)
	delete(lsm.admins, userID)
	delete(lsm.participants, userID)
	return true
}

func (lsm *LocalStateManager) GetClient(userID string) (*Session, bool) {
	lsm.mu.RLock()
	defer lsm.mu.RUnlock()

	sess, found := lsm.clients[userID]
	return sess, found
}

// AllClients returns a copy of every connected session.
func (lsm *LocalStateManager) AllClients() map[string]*Session {
	lsm.mu.RLock()
	defer lsm.mu.RUnlock()

	clients := make(map[string]*Session, len(lsm.clients))
	for userID, sess := range lsm.clients {
		clients[userID] = sess
	}
	return clients
}

// AdminClients returns a copy of the connected admin sessions.
func (lsm *LocalStateManager) AdminClients() map[string]*Session {
	lsm.mu.RLock()
	defer lsm.mu.RUnlock()

	clients := make(map[string]*Session)
	for userID := range lsm.admins {
		if sess, ok := lsm.clients[userID]; ok {
			clients[userID] = sess
		}
	}
	return clients
}

// SetEventState caches the latest event state snapshot.
func (lsm *LocalStateManager) SetEventState(s *model.EventState) {
	lsm.mu.Lock()
	defer lsm.mu.Unlock()
	lsm.eventState = s
}

func (lsm *LocalStateManager) EventState() *model.EventState {
	lsm.mu.RLock()
	defer lsm.mu.RUnlock()
	return lsm.eventState
}

// SetParticipant caches the latest snapshot for a connected session. No-op
// for users without a connection.
func (lsm *LocalStateManager) SetParticipant(p *model.Participant) {
	lsm.mu.Lock()
	defer lsm.mu.Unlock()

	if _, connected := lsm.clients[p.UserID]; connected {
		lsm.participants[p.UserID] = p
	}
}

func (lsm *LocalStateManager) Participant(userID string) (*model.Participant, bool) {
	lsm.mu.RLock()
	defer lsm.mu.RUnlock()

	p, found := lsm.participants[userID]
	return p, found
}

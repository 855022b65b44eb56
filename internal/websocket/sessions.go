package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// SessionRegistry maps a user to their single direct-message connection.
// Registration is last-writer-wins: a second connection for the same user
// evicts the first.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Client
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Client),
	}
}

// Register installs the connection for the user and closes any prior one.
func (r *SessionRegistry) Register(userID string, client *Client) {
	r.mu.Lock()
	prev := r.sessions[userID]
	r.sessions[userID] = client
	r.mu.Unlock()

	if prev != nil && prev != client {
		log.Info().Str("userID", userID).Str("clientID", prev.ID).Msg("ws: evicting replaced session")
		prev.Close()
	}

	log.Info().Str("userID", userID).Str("clientID", client.ID).Msg("ws: session registered")
}

// Unregister removes the mapping only while client is still the current
// session. Returns false when the client had already been replaced, so the
// caller knows not to flip the user's presence flag.
func (r *SessionRegistry) Unregister(userID string, client *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[userID]
	if !ok || current != client {
		return false
	}

	delete(r.sessions, userID)
	return true
}

// SendTo delivers the event to the user's live connection. false means the
// recipient is offline, not an error.
func (r *SessionRegistry) SendTo(userID string, event any) bool {
	r.mu.RLock()
	client, ok := r.sessions[userID]
	r.mu.RUnlock()

	if !ok || !client.IsActive() {
		return false
	}

	return client.SendJSON(event)
}

func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

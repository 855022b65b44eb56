package websocket

import (
	"sync"

	"github.com/robiulsunnyemon/eron/internal/dtos/live_dto"
	"github.com/rs/zerolog/log"
)

// Hub is the live-room registry: channel name -> member set. Mutations on a
// single room's member set are serialized by that room's lock; the outer lock
// only guards the room map itself.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

type room struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*room),
	}
}

// Join adds the connection to the room's member set, creating the set on
// first join, and broadcasts the updated viewer count to every member.
func (h *Hub) Join(channelName string, client *Client) {
	h.mu.Lock()
	rm, ok := h.rooms[channelName]
	if !ok {
		rm = &room{clients: make(map[*Client]struct{})}
		h.rooms[channelName] = rm
	}
	// the outer lock stays held while adding so a concurrent Leave cannot
	// prune the room between lookup and insert
	rm.mu.Lock()
	rm.clients[client] = struct{}{}
	count := len(rm.clients)
	rm.mu.Unlock()
	h.mu.Unlock()

	log.Info().Str("channel", channelName).Str("clientID", client.ID).Str("userID", client.UserID).Int("roomSize", count).Msg("ws: client joined room")

	h.broadcastViewerCount(channelName)
}

// Leave removes the connection. Empty rooms are pruned; otherwise the
// remaining members get a viewer-count update.
func (h *Hub) Leave(channelName string, client *Client) {
	h.mu.Lock()
	rm, ok := h.rooms[channelName]
	if !ok {
		h.mu.Unlock()
		return
	}

	rm.mu.Lock()
	delete(rm.clients, client)
	remaining := len(rm.clients)
	rm.mu.Unlock()

	if remaining == 0 {
		delete(h.rooms, channelName)
	}
	h.mu.Unlock()

	log.Info().Str("channel", channelName).Str("clientID", client.ID).Int("roomSize", remaining).Msg("ws: client left room")

	if remaining > 0 {
		h.broadcastViewerCount(channelName)
	}
}

// Broadcast sends the event to every current member, best effort: one dead
// member never blocks delivery to the rest.
func (h *Hub) Broadcast(channelName string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("channel", channelName).Msg("ws: failed to marshal broadcast event")
		return
	}

	for _, client := range h.Members(channelName) {
		select {
		case client.Send <- data:
		case <-client.ctx.Done():
		default:
			log.Warn().Str("channel", channelName).Str("clientID", client.ID).Msg("ws: slow consumer, dropping broadcast")
		}
	}
}

// Members returns a snapshot of the room's active connections.
func (h *Hub) Members(channelName string) []*Client {
	h.mu.RLock()
	rm, ok := h.rooms[channelName]
	h.mu.RUnlock()

	if !ok {
		return nil
	}

	rm.mu.RLock()
	defer rm.mu.RUnlock()

	members := make([]*Client, 0, len(rm.clients))
	for client := range rm.clients {
		if client.IsActive() {
			members = append(members, client)
		}
	}

	return members
}

// ViewerCount returns the current member-set size, 0 for unknown rooms.
func (h *Hub) ViewerCount(channelName string) int {
	h.mu.RLock()
	rm, ok := h.rooms[channelName]
	h.mu.RUnlock()

	if !ok {
		return 0
	}

	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.clients)
}

// RoomCount returns how many rooms currently have members.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) broadcastViewerCount(channelName string) {
	h.Broadcast(channelName, live_dto.ViewerCountEvent{
		Event: live_dto.EventViewerCountUpdate,
		Count: h.ViewerCount(channelName),
	})
}

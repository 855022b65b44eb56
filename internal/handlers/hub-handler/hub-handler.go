package hub_handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/internal/handlers"
	"github.com/robiulsunnyemon/eron/internal/middleware"
	"github.com/robiulsunnyemon/eron/internal/websocket"
)

type HubHandler struct {
	Hub      *websocket.Hub
	Sessions *websocket.SessionRegistry
}

func NewHubHandler(hub *websocket.Hub, sessions *websocket.SessionRegistry) *HubHandler {
	return &HubHandler{
		Hub:      hub,
		Sessions: sessions,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "eron-realtime",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := map[string]any{
		"chat_sessions": h.Sessions.Count(),
		"live_rooms":    h.Hub.RoomCount(),
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket stats", stats, reqID))
	return nil
}

func (h *HubHandler) HandleGetRoomStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelName := chi.URLParam(r, "channelName")
	stats := map[string]any{
		"channel_name": channelName,
		"viewer_count": h.Hub.ViewerCount(channelName),
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket room stats", stats, reqID))
	return nil
}

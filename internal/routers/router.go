package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/robiulsunnyemon/eron/internal/middleware"
	chat_service "github.com/robiulsunnyemon/eron/internal/use-case/chat-case"
	live_service "github.com/robiulsunnyemon/eron/internal/use-case/live-case"
	"github.com/robiulsunnyemon/eron/internal/websocket"
	"github.com/robiulsunnyemon/eron/state"
)

type Deps struct {
	ChatServer  *websocket.ChatServer
	LiveServer  *websocket.LiveServer
	Hub         *websocket.Hub
	Sessions    *websocket.SessionRegistry
	ChatService chat_service.ChatServiceContract
	LiveService live_service.LiveServiceContract
}

func NewRouter(appState *state.AppState, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	ChatRouter(r, appState, deps)
	LiveRouter(r, appState, deps)
	HubRouter(r, deps)
	return r
}

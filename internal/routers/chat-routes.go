package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/robiulsunnyemon/eron/internal/handlers"
	chat_handler "github.com/robiulsunnyemon/eron/internal/handlers/chat-handler"
	"github.com/robiulsunnyemon/eron/internal/middleware"
	"github.com/robiulsunnyemon/eron/state"
)

func ChatRouter(r chi.Router, appState *state.AppState, deps Deps) {
	chatHandler := chat_handler.NewChatHandler(appState, deps.ChatService)

	// Websocket auth happens after the upgrade, inside the handler.
	r.Get("/api/v1/chat/ws", deps.ChatServer.HandleWS)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret.Public))
		protected.Get("/api/v1/chat/history/{otherUserId}", handlers.WrapHandler(chatHandler.GetHistory))
		protected.Get("/api/v1/chat/active-users", handlers.WrapHandler(chatHandler.GetActiveUsers))
	})
}

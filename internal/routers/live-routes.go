package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/robiulsunnyemon/eron/internal/handlers"
	live_handler "github.com/robiulsunnyemon/eron/internal/handlers/live-handler"
	"github.com/robiulsunnyemon/eron/internal/middleware"
	"github.com/robiulsunnyemon/eron/state"
)

func LiveRouter(r chi.Router, appState *state.AppState, deps Deps) {
	liveHandler := live_handler.NewLiveHandler(appState, deps.LiveService)

	r.Get("/api/v1/live/ws", deps.LiveServer.HandleWS)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret.Public))
		protected.Get("/api/v1/live/active", handlers.WrapHandler(liveHandler.GetActiveLives))
		protected.Get("/api/v1/live/session/{sessionId}/viewers", handlers.WrapHandler(liveHandler.GetSessionViewers))
	})
}

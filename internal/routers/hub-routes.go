package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/robiulsunnyemon/eron/internal/handlers"
	hub_handler "github.com/robiulsunnyemon/eron/internal/handlers/hub-handler"
)

func HubRouter(r chi.Router, deps Deps) {
	hubHandler := hub_handler.NewHubHandler(deps.Hub, deps.Sessions)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))
		r.Get("/rooms/{channelName}/stats", handlers.WrapHandler(hubHandler.HandleGetRoomStats))
	})
}

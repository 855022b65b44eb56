package live_handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/internal/handlers"
	"github.com/robiulsunnyemon/eron/internal/middleware"
	live_service "github.com/robiulsunnyemon/eron/internal/use-case/live-case"
	"github.com/robiulsunnyemon/eron/state"
)

type LiveHandler struct {
	State   *state.AppState
	Service live_service.LiveServiceContract
}

func NewLiveHandler(appState *state.AppState, service live_service.LiveServiceContract) *LiveHandler {
	return &LiveHandler{
		State:   appState,
		Service: service,
	}
}

// GetActiveLives lists every room currently live, newest first, with the
// host's cached profile attached.
func (h *LiveHandler) GetActiveLives(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	lives, appErr := h.Service.ListActive(r.Context())
	if appErr != nil {
		return appErr
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("active lives fetched", lives, reqID))
	return nil
}

// GetSessionViewers lists everyone who holds an entitlement for the session,
// including viewers who already left.
func (h *LiveHandler) GetSessionViewers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	sessionID := chi.URLParam(r, "sessionId")
	if sessionID == "" {
		return app_error.NewAppError(http.StatusBadRequest, "session id is required", "sessionId")
	}

	viewers, appErr := h.Service.ListViewers(r.Context(), sessionID)
	if appErr != nil {
		return appErr
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("session viewers fetched", viewers, reqID))
	return nil
}

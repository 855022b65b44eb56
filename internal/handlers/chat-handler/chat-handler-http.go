package chat_handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/internal/handlers"
	"github.com/robiulsunnyemon/eron/internal/middleware"
	chat_service "github.com/robiulsunnyemon/eron/internal/use-case/chat-case"
	"github.com/robiulsunnyemon/eron/state"
)

type ChatHandler struct {
	State   *state.AppState
	Service chat_service.ChatServiceContract
}

func NewChatHandler(appState *state.AppState, service chat_service.ChatServiceContract) *ChatHandler {
	return &ChatHandler{
		State:   appState,
		Service: service,
	}
}

// GetHistory returns the full conversation with the other user ordered by
// timestamp ascending. Fetching also marks every message addressed to the
// caller as read.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	otherUserID := chi.URLParam(r, "otherUserId")
	if otherUserID == "" {
		return app_error.NewAppError(http.StatusBadRequest, "other user id is required", "otherUserId")
	}

	resp, appErr := h.Service.GetHistory(r.Context(), userID, otherUserID)
	if appErr != nil {
		return appErr
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("chat history fetched", *resp, reqID))
	return nil
}

func (h *ChatHandler) GetActiveUsers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	users, appErr := h.Service.ActiveUsers(r.Context(), userID)
	if appErr != nil {
		return appErr
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("active users fetched", users, reqID))
	return nil
}

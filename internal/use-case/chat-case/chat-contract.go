package chat_service

import (
	"context"

	"github.com/robiulsunnyemon/eron/internal/dtos/chat_dto"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
)

type ChatServiceContract interface {
	// SendDirectMessage persists the message and returns the delivery payload
	// for the receiver's connection. Delivery itself is the caller's job.
	SendDirectMessage(ctx context.Context, senderID string, req chat_dto.WSSendMessage) (*chat_dto.WSDirectMessage, *app_error.AppError)
	// GetHistory returns the full conversation ordered by timestamp ascending
	// and marks every message the caller received as read.
	GetHistory(ctx context.Context, userID, otherUserID string) (*chat_dto.HistoryResponse, *app_error.AppError)
	ActiveUsers(ctx context.Context, userID string) ([]chat_dto.ActiveUser, *app_error.AppError)
}

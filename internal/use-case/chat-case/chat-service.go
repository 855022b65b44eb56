package chat_service

import (
	"context"
	"time"

	"github.com/robiulsunnyemon/eron/internal/dtos/chat_dto"
	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	chat_repo "github.com/robiulsunnyemon/eron/internal/repo/chat"
	user_repo "github.com/robiulsunnyemon/eron/internal/repo/user"
	"github.com/robiulsunnyemon/eron/state"
	"github.com/rs/zerolog/log"
)

type ChatService struct {
	AppState *state.AppState
	ChatRepo chat_repo.ChatRepoContract
	UserRepo user_repo.UserRepoContract
}

func NewChatService(appState *state.AppState) ChatServiceContract {
	return &ChatService{
		AppState: appState,
		ChatRepo: chat_repo.NewChatRepo(appState),
		UserRepo: user_repo.NewUserRepo(appState),
	}
}

func (c *ChatService) SendDirectMessage(ctx context.Context, senderID string, req chat_dto.WSSendMessage) (*chat_dto.WSDirectMessage, *app_error.AppError) {
	if _, err := c.UserRepo.FindByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	msg := &entity.ChatMessage{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		IsRead:     false,
		Timestamp:  time.Now().UTC(),
	}

	if _, err := c.ChatRepo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	return &chat_dto.WSDirectMessage{
		SenderID:  senderID,
		Message:   msg.Message,
		Timestamp: msg.Timestamp.Format(time.RFC3339),
		IsRead:    msg.IsRead,
	}, nil
}

func (c *ChatService) GetHistory(ctx context.Context, userID, otherUserID string) (*chat_dto.HistoryResponse, *app_error.AppError) {
	if _, err := c.UserRepo.FindByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	messages, err := c.ChatRepo.History(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	// fetching is what flips the read flag on everything addressed to the
	// caller; the other side's flags are untouched
	if err := c.ChatRepo.MarkConversationRead(ctx, userID, otherUserID); err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("failed to mark conversation as read")
	}

	resp := &chat_dto.HistoryResponse{
		Messages: make([]chat_dto.HistoryMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		isRead := msg.IsRead
		if msg.ReceiverID == userID {
			isRead = true
		}
		resp.Messages = append(resp.Messages, chat_dto.HistoryMessage{
			MessageID:  msg.ID.Hex(),
			SenderID:   msg.SenderID,
			ReceiverID: msg.ReceiverID,
			Message:    msg.Message,
			IsRead:     isRead,
			Timestamp:  msg.Timestamp,
		})
	}

	return resp, nil
}

func (c *ChatService) ActiveUsers(ctx context.Context, userID string) ([]chat_dto.ActiveUser, *app_error.AppError) {
	users, err := c.UserRepo.ListOnline(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]chat_dto.ActiveUser, 0, len(users))
	for _, u := range users {
		if u.ID == userID {
			continue
		}
		active = append(active, chat_dto.ActiveUser{
			UserID:       u.ID,
			FullName:     u.FullName(),
			ProfileImage: u.ProfileImage,
		})
	}

	return active, nil
}

package websocket

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/robiulsunnyemon/eron/internal/dtos/chat_dto"
	user_repo "github.com/robiulsunnyemon/eron/internal/repo/user"
	chat_service "github.com/robiulsunnyemon/eron/internal/use-case/chat-case"
	"github.com/rs/zerolog/log"
)

// ChatServer owns the direct-message channel: one connection per user in the
// session registry, one implicit "send" message shape.
type ChatServer struct {
	Sessions *SessionRegistry
	Chat     chat_service.ChatServiceContract
	Users    user_repo.UserRepoContract
	Auth     AuthenticatorFunc

	validate *validator.Validate
}

func NewChatServer(sessions *SessionRegistry, chat chat_service.ChatServiceContract, users user_repo.UserRepoContract, auth AuthenticatorFunc) *ChatServer {
	return &ChatServer{
		Sessions: sessions,
		Chat:     chat,
		Users:    users,
		Auth:     auth,
		validate: validator.New(),
	}
}

func (s *ChatServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, ok := upgrade(w, r)
	if !ok {
		return
	}

	userID, err := s.Auth(r)
	if err != nil {
		closePolicyViolation(conn, err.Error())
		return
	}

	client := NewClient(uuid.New().String(), userID, conn)
	client.Start()

	s.Sessions.Register(userID, client)
	if appErr := s.setOnline(userID, true); appErr != nil {
		log.Warn().Str("userID", userID).Msg("failed to set presence flag online")
	}

	s.readLoop(client)
}

func (s *ChatServer) readLoop(client *Client) {
	defer func() {
		wasCurrent := s.Sessions.Unregister(client.UserID, client)
		client.Close()

		// a replaced connection must not flip the replacement's presence
		if wasCurrent {
			if appErr := s.setOnline(client.UserID, false); appErr != nil {
				log.Warn().Str("userID", client.UserID).Msg("failed to set presence flag offline")
			}
		}
	}()

	client.setupRead()

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}
		s.handleMessage(client, data)
	}
}

func (s *ChatServer) handleMessage(client *Client, data []byte) {
	var req chat_dto.WSSendMessage
	if err := json.Unmarshal(data, &req); err != nil {
		client.SendJSON(chat_dto.WSError{Error: "Invalid data format", Details: err.Error()})
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		client.SendJSON(chat_dto.WSError{Error: "Invalid data format", Details: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	payload, appErr := s.Chat.SendDirectMessage(ctx, client.UserID, req)
	if appErr != nil {
		client.SendJSON(chat_dto.WSError{Error: appErr.Message})
		return
	}

	// false just means the recipient is offline; they read it from history
	if !s.Sessions.SendTo(req.ReceiverID, payload) {
		log.Debug().Str("receiverID", req.ReceiverID).Msg("ws: recipient offline, message stored only")
	}
}

func (s *ChatServer) setOnline(userID string, online bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	if appErr := s.Users.SetOnline(ctx, userID, online); appErr != nil {
		return appErr
	}
	return nil
}

package websocket

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/robiulsunnyemon/eron/internal/dtos/live_dto"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	live_service "github.com/robiulsunnyemon/eron/internal/use-case/live-case"
	"github.com/rs/zerolog/log"
)

// LiveServer owns the live-room channel: tagged action envelopes in, typed
// events out, room membership through the hub.
type LiveServer struct {
	Hub  *Hub
	Live live_service.LiveServiceContract
	Auth AuthenticatorFunc

	validate *validator.Validate
}

func NewLiveServer(hub *Hub, live live_service.LiveServiceContract, auth AuthenticatorFunc) *LiveServer {
	return &LiveServer{
		Hub:      hub,
		Live:     live,
		Auth:     auth,
		validate: validator.New(),
	}
}

func (s *LiveServer) HandleWS(w http.ResponseWriter, r *http.Request) {
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

	s.readLoop(client)
}

func (s *LiveServer) readLoop(client *Client) {
	defer s.teardown(client)

	client.setupRead()

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(client, data)
	}
}

// dispatch routes one inbound envelope. Malformed payloads and unknown action
// kinds produce an error event; the connection stays open either way.
func (s *LiveServer) dispatch(client *Client, data []byte) {
	var envelope live_dto.WSAction
	if err := json.Unmarshal(data, &envelope); err != nil {
		client.SendJSON(live_dto.NewErrorEvent("invalid action payload"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	switch envelope.Action {
	case live_dto.ActionStart:
		s.handleStart(ctx, client, data)
	case live_dto.ActionJoin:
		s.handleJoin(ctx, client, data)
	case live_dto.ActionLike:
		s.handleLike(ctx, client, data)
	case live_dto.ActionComment:
		s.handleComment(ctx, client, data)
	default:
		client.SendJSON(live_dto.NewErrorEvent("unknown action"))
	}
}

func (s *LiveServer) handleStart(ctx context.Context, client *Client, data []byte) {
	if client.Channel != "" {
		client.SendJSON(live_dto.NewErrorEvent("already attached to a live room"))
		return
	}

	var req live_dto.StartAction
	if !s.decode(client, data, &req) {
		return
	}

	event, live, appErr := s.Live.StartLive(ctx, client.UserID, req)
	if appErr != nil {
		s.sendError(client, appErr)
		return
	}

	client.Channel = live.ChannelName
	s.Hub.Join(live.ChannelName, client)
	client.SendJSON(event)
}

func (s *LiveServer) handleJoin(ctx context.Context, client *Client, data []byte) {
	if client.Channel != "" {
		client.SendJSON(live_dto.NewErrorEvent("already attached to a live room"))
		return
	}

	var req live_dto.JoinAction
	if !s.decode(client, data, &req) {
		return
	}

	event, live, appErr := s.Live.JoinLive(ctx, client.UserID, req.ChannelName)
	if appErr != nil {
		s.sendError(client, appErr)
		return
	}

	client.Channel = live.ChannelName
	s.Hub.Join(live.ChannelName, client)
	client.SendJSON(event)
}

func (s *LiveServer) handleLike(ctx context.Context, client *Client, data []byte) {
	var req live_dto.LikeAction
	if !s.decode(client, data, &req) {
		return
	}

	event, appErr := s.Live.Like(ctx, client.UserID, req.ChannelName)
	if appErr != nil {
		s.sendError(client, appErr)
		return
	}

	// the broadcast is the confirmation; the sender is a member too
	s.Hub.Broadcast(req.ChannelName, event)
}

func (s *LiveServer) handleComment(ctx context.Context, client *Client, data []byte) {
	var req live_dto.CommentAction
	if !s.decode(client, data, &req) {
		return
	}

	event, appErr := s.Live.Comment(ctx, client.UserID, req.ChannelName, req.Message)
	if appErr != nil {
		s.sendError(client, appErr)
		return
	}

	s.Hub.Broadcast(req.ChannelName, event)
}

// teardown runs once the read loop exits: leave the room, and if the leaver
// hosted it, end the session and tell everyone left behind.
func (s *LiveServer) teardown(client *Client) {
	defer client.Close()

	channel := client.Channel
	if channel == "" {
		return
	}

	s.Hub.Leave(channel, client)

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	ended, appErr := s.Live.EndOnHostDisconnect(ctx, client.UserID, channel)
	if appErr != nil {
		log.Error().Err(appErr).Str("channel", channel).Msg("ws: failed to end live on host disconnect")
		return
	}

	if ended {
		s.Hub.Broadcast(channel, live_dto.LiveEndedEvent{Event: live_dto.EventLiveEnded})
	}
}

func (s *LiveServer) decode(client *Client, data []byte, req any) bool {
	if err := json.Unmarshal(data, req); err != nil {
		client.SendJSON(live_dto.NewErrorEvent("invalid action payload"))
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		client.SendJSON(live_dto.NewErrorEvent(err.Error()))
		return false
	}
	return true
}

func (s *LiveServer) sendError(client *Client, appErr *app_error.AppError) {
	client.SendJSON(live_dto.NewErrorEvent(appErr.Message))
}

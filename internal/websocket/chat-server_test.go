package websocket

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/robiulsunnyemon/eron/internal/dtos/chat_dto"
	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	sendErr *app_error.AppError
}

func (f *fakeChatService) SendDirectMessage(ctx context.Context, senderID string, req chat_dto.WSSendMessage) (*chat_dto.WSDirectMessage, *app_error.AppError) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &chat_dto.WSDirectMessage{
		SenderID:  senderID,
		Message:   req.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (f *fakeChatService) GetHistory(ctx context.Context, userID, otherUserID string) (*chat_dto.HistoryResponse, *app_error.AppError) {
	return &chat_dto.HistoryResponse{}, nil
}

func (f *fakeChatService) ActiveUsers(ctx context.Context, userID string) ([]chat_dto.ActiveUser, *app_error.AppError) {
	return nil, nil
}

type presenceRecorder struct {
	mu    sync.Mutex
	state map[string]bool
}

func (p *presenceRecorder) FindByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "not-found")
}

func (p *presenceRecorder) GetProfileCached(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "not-found")
}

func (p *presenceRecorder) SetOnline(ctx context.Context, userID string, online bool) *app_error.AppError {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		p.state = make(map[string]bool)
	}
	p.state[userID] = online
	return nil
}

func (p *presenceRecorder) ListOnline(ctx context.Context) ([]*entity.User, *app_error.AppError) {
	return nil, nil
}

func (p *presenceRecorder) IncTotalLike(ctx context.Context, userID string) *app_error.AppError {
	return nil
}

func (p *presenceRecorder) online(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state[userID]
}

func newTestChatServer(svc *fakeChatService) (*ChatServer, *presenceRecorder) {
	users := &presenceRecorder{}
	return NewChatServer(NewSessionRegistry(), svc, users, nil), users
}

func TestHandleMessage_DeliversToReceiver(t *testing.T) {
	srv, _ := newTestChatServer(&fakeChatService{})
	sender := newTestClient("c1", "alice")
	receiver := newTestClient("c2", "bob")
	srv.Sessions.Register("alice", sender)
	srv.Sessions.Register("bob", receiver)

	srv.handleMessage(sender, []byte(`{"receiver_id":"bob","message":"hi"}`))

	events := drain(t, receiver)
	require.Len(t, events, 1)
	assert.Equal(t, "alice", events[0]["sender_id"])
	assert.Equal(t, "hi", events[0]["message"])

	// the sender gets no echo
	assert.Empty(t, drain(t, sender))
}

func TestHandleMessage_OfflineReceiverIsNotAnError(t *testing.T) {
	srv, _ := newTestChatServer(&fakeChatService{})
	sender := newTestClient("c1", "alice")
	srv.Sessions.Register("alice", sender)

	srv.handleMessage(sender, []byte(`{"receiver_id":"bob","message":"hi"}`))

	assert.Empty(t, drain(t, sender), "no error event for an offline recipient")
	assert.True(t, sender.IsActive())
}

func TestHandleMessage_ValidationError(t *testing.T) {
	srv, _ := newTestChatServer(&fakeChatService{})
	sender := newTestClient("c1", "alice")

	srv.handleMessage(sender, []byte(`{"receiver_id":"bob"}`)) // message missing

	events := drain(t, sender)
	require.Len(t, events, 1)
	assert.Equal(t, "Invalid data format", events[0]["error"])
	assert.True(t, sender.IsActive(), "connection survives a bad payload")
}

func TestHandleMessage_MalformedJSON(t *testing.T) {
	srv, _ := newTestChatServer(&fakeChatService{})
	sender := newTestClient("c1", "alice")

	srv.handleMessage(sender, []byte(`{oops`))

	events := drain(t, sender)
	require.Len(t, events, 1)
	assert.Equal(t, "Invalid data format", events[0]["error"])
}

func TestHandleMessage_ServiceError(t *testing.T) {
	srv, _ := newTestChatServer(&fakeChatService{
		sendErr: app_error.NewAppError(http.StatusNotFound, "user not found", "not-found"),
	})
	sender := newTestClient("c1", "alice")

	srv.handleMessage(sender, []byte(`{"receiver_id":"ghost","message":"hi"}`))

	events := drain(t, sender)
	require.Len(t, events, 1)
	assert.Equal(t, "user not found", events[0]["error"])
}

func TestReadLoopTeardown_PresenceFollowsCurrentSession(t *testing.T) {
	srv, users := newTestChatServer(&fakeChatService{})
	first := newTestClient("c1", "alice")
	second := newTestClient("c2", "alice")

	srv.Sessions.Register("alice", first)
	require.Nil(t, srv.Users.SetOnline(context.Background(), "alice", true))
	srv.Sessions.Register("alice", second)

	// the evicted connection's teardown must not mark alice offline
	if srv.Sessions.Unregister("alice", first) {
		srv.Users.SetOnline(context.Background(), "alice", false)
	}
	assert.True(t, users.online("alice"))

	if srv.Sessions.Unregister("alice", second) {
		srv.Users.SetOnline(context.Background(), "alice", false)
	}
	assert.False(t, users.online("alice"))
}

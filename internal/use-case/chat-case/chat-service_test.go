package chat_service

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/robiulsunnyemon/eron/internal/dtos/chat_dto"
	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []*entity.ChatMessage
}

func (f *fakeChatRepo) InsertMessage(ctx context.Context, msg *entity.ChatMessage) (bson.ObjectID, *app_error.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = bson.NewObjectID()
	cp := *msg
	f.messages = append(f.messages, &cp)
	return msg.ID, nil
}

func (f *fakeChatRepo) History(ctx context.Context, userA, userB string) ([]*entity.ChatMessage, *app_error.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ChatMessage
	for _, msg := range f.messages {
		if (msg.SenderID == userA && msg.ReceiverID == userB) || (msg.SenderID == userB && msg.ReceiverID == userA) {
			cp := *msg
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeChatRepo) MarkConversationRead(ctx context.Context, readerID, otherID string) *app_error.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range f.messages {
		if msg.SenderID == otherID && msg.ReceiverID == readerID {
			msg.IsRead = true
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	u, ok := f.users[userID]
	if !ok {
		return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "not-found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetProfileCached(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	return f.FindByID(ctx, userID)
}

func (f *fakeUserRepo) SetOnline(ctx context.Context, userID string, online bool) *app_error.AppError {
	return nil
}

func (f *fakeUserRepo) ListOnline(ctx context.Context) ([]*entity.User, *app_error.AppError) {
	var out []*entity.User
	for _, u := range f.users {
		if u.IsOnline {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) IncTotalLike(ctx context.Context, userID string) *app_error.AppError {
	return nil
}

func newChatService(users ...*entity.User) (*ChatService, *fakeChatRepo) {
	userRepo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	chatRepo := &fakeChatRepo{}
	return &ChatService{ChatRepo: chatRepo, UserRepo: userRepo}, chatRepo
}

func TestSendDirectMessage(t *testing.T) {
	svc, repo := newChatService(
		&entity.User{ID: "alice", FirstName: "Alice"},
		&entity.User{ID: "bob", FirstName: "Bob"},
	)
	ctx := context.Background()

	payload, appErr := svc.SendDirectMessage(ctx, "alice", chat_dto.WSSendMessage{
		ReceiverID: "bob",
		Message:    "hi bob",
	})

	require.Nil(t, appErr)
	assert.Equal(t, "alice", payload.SenderID)
	assert.Equal(t, "hi bob", payload.Message)
	assert.False(t, payload.IsRead)

	_, err := time.Parse(time.RFC3339, payload.Timestamp)
	assert.NoError(t, err, "timestamp is RFC3339")

	require.Len(t, repo.messages, 1)
	assert.Equal(t, "bob", repo.messages[0].ReceiverID)
	assert.False(t, repo.messages[0].IsRead, "stored unread until the receiver fetches")
}

func TestSendDirectMessage_UnknownReceiver(t *testing.T) {
	svc, repo := newChatService(&entity.User{ID: "alice"})

	payload, appErr := svc.SendDirectMessage(context.Background(), "alice", chat_dto.WSSendMessage{
		ReceiverID: "ghost",
		Message:    "anyone there?",
	})

	require.NotNil(t, appErr)
	assert.True(t, appErr.IsNotFound())
	assert.Nil(t, payload)
	assert.Empty(t, repo.messages, "nothing persisted for an unknown receiver")
}

func TestGetHistory_OrderAndReadFlags(t *testing.T) {
	svc, repo := newChatService(
		&entity.User{ID: "alice", FirstName: "Alice"},
		&entity.User{ID: "bob", FirstName: "Bob"},
	)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, m := range []struct {
		from, to, text string
	}{
		{"alice", "bob", "hey"},
		{"bob", "alice", "hello"},
		{"alice", "bob", "how are you?"},
	} {
		_, appErr := repo.InsertMessage(ctx, &entity.ChatMessage{
			SenderID:   m.from,
			ReceiverID: m.to,
			Message:    m.text,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		})
		require.Nil(t, appErr)
	}

	resp, appErr := svc.GetHistory(ctx, "alice", "bob")
	require.Nil(t, appErr)
	require.Len(t, resp.Messages, 3)

	// timestamp ascending
	assert.Equal(t, "hey", resp.Messages[0].Message)
	assert.Equal(t, "hello", resp.Messages[1].Message)
	assert.Equal(t, "how are you?", resp.Messages[2].Message)

	// what alice received shows read, what she sent stays as stored
	assert.False(t, resp.Messages[0].IsRead)
	assert.True(t, resp.Messages[1].IsRead)
	assert.False(t, resp.Messages[2].IsRead)

	// the fetch itself flipped the stored flag on bob's message to alice
	for _, msg := range repo.messages {
		if msg.SenderID == "bob" {
			assert.True(t, msg.IsRead)
		} else {
			assert.False(t, msg.IsRead, "alice's outbound messages stay unread until bob fetches")
		}
	}
}

func TestGetHistory_UnknownUser(t *testing.T) {
	svc, _ := newChatService(&entity.User{ID: "alice"})

	resp, appErr := svc.GetHistory(context.Background(), "alice", "ghost")

	require.NotNil(t, appErr)
	assert.True(t, appErr.IsNotFound())
	assert.Nil(t, resp)
}

func TestActiveUsers_ExcludesSelf(t *testing.T) {
	svc, _ := newChatService(
		&entity.User{ID: "alice", FirstName: "Alice", LastName: "A", IsOnline: true},
		&entity.User{ID: "bob", FirstName: "Bob", LastName: "B", IsOnline: true},
		&entity.User{ID: "carol", FirstName: "Carol", LastName: "C", IsOnline: false},
	)

	active, appErr := svc.ActiveUsers(context.Background(), "alice")

	require.Nil(t, appErr)
	require.Len(t, active, 1)
	assert.Equal(t, "bob", active[0].UserID)
	assert.Equal(t, "Bob B", active[0].FullName)
}

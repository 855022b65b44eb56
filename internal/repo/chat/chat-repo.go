package chat_repo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const messagesCollection = "chat_messages"

type ChatRepo struct {
	AppState *state.AppState
}

func NewChatRepo(appState *state.AppState) ChatRepoContract {
	return &ChatRepo{
		AppState: appState,
	}
}

func (r *ChatRepo) collection() *mongo.Collection {
	return r.AppState.MongoDB().Collection(messagesCollection)
}

func (r *ChatRepo) InsertMessage(ctx context.Context, msg *entity.ChatMessage) (bson.ObjectID, *app_error.AppError) {
	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	if _, err := r.collection().InsertOne(ctx, msg); err != nil {
		return bson.NilObjectID, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to create message: %v", err), "mongo")
	}
	return msg.ID, nil
}

func (r *ChatRepo) History(ctx context.Context, userA, userB string) ([]*entity.ChatMessage, *app_error.AppError) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"senderId": userA, "receiverId": userB},
			bson.M{"senderId": userB, "receiverId": userA},
		},
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch chat history: %v", err), "mongo")
	}
	defer cursor.Close(ctx)

	var messages []*entity.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to decode chat history: %v", err), "mongo")
	}

	return messages, nil
}

func (r *ChatRepo) MarkConversationRead(ctx context.Context, readerID, otherID string) *app_error.AppError {
	filter := bson.M{
		"senderId":   otherID,
		"receiverId": readerID,
		"isRead":     false,
	}

	if _, err := r.collection().UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}}); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to mark messages as read: %v", err), "mongo")
	}

	return nil
}

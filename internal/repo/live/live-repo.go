package live_repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	livesCollection    = "livestreams"
	commentsCollection = "live_comments"
)

type LiveRepo struct {
	AppState *state.AppState
}

func NewLiveRepo(appState *state.AppState) LiveRepoContract {
	return &LiveRepo{
		AppState: appState,
	}
}

func (r *LiveRepo) lives() *mongo.Collection {
	return r.AppState.MongoDB().Collection(livesCollection)
}

func (r *LiveRepo) comments() *mongo.Collection {
	return r.AppState.MongoDB().Collection(commentsCollection)
}

func (r *LiveRepo) CreateLive(ctx context.Context, live *entity.LiveStream) *app_error.AppError {
	if live.ID.IsZero() {
		live.ID = bson.NewObjectID()
	}
	if _, err := r.lives().InsertOne(ctx, live); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to create live session: %v", err), "mongo")
	}
	return nil
}

func (r *LiveRepo) FindLiveByChannel(ctx context.Context, channelName string) (*entity.LiveStream, *app_error.AppError) {
	filter := bson.M{"channelName": channelName, "status": entity.LiveStatusLive}

	var live entity.LiveStream
	if err := r.lives().FindOne(ctx, filter).Decode(&live); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "Live session not found", "not-found")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch live session: %v", err), "mongo")
	}

	return &live, nil
}

func (r *LiveRepo) IncCounter(ctx context.Context, channelName, field string, delta int64) (*entity.LiveStream, *app_error.AppError) {
	filter := bson.M{"channelName": channelName, "status": entity.LiveStatusLive}
	update := bson.M{"$inc": bson.M{field: delta}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var live entity.LiveStream
	if err := r.lives().FindOneAndUpdate(ctx, filter, update, opts).Decode(&live); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "Live session not found", "not-found")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to update live counter: %v", err), "mongo")
	}

	return &live, nil
}

func (r *LiveRepo) EndLive(ctx context.Context, channelName string) (*entity.LiveStream, bool, *app_error.AppError) {
	now := time.Now().UTC()
	filter := bson.M{"channelName": channelName, "status": entity.LiveStatusLive}
	update := bson.M{"$set": bson.M{"status": entity.LiveStatusEnded, "endTime": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var live entity.LiveStream
	if err := r.lives().FindOneAndUpdate(ctx, filter, update, opts).Decode(&live); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// already ended, or never existed
			return nil, false, nil
		}
		return nil, false, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to end live session: %v", err), "mongo")
	}

	return &live, true, nil
}

func (r *LiveRepo) InsertComment(ctx context.Context, comment *entity.LiveComment) *app_error.AppError {
	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}
	if _, err := r.comments().InsertOne(ctx, comment); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to save comment: %v", err), "mongo")
	}
	return nil
}

func (r *LiveRepo) ListActive(ctx context.Context) ([]*entity.LiveStream, *app_error.AppError) {
	cursor, err := r.lives().Find(ctx, bson.M{"status": entity.LiveStatusLive})
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to list active lives: %v", err), "mongo")
	}
	defer cursor.Close(ctx)

	var lives []*entity.LiveStream
	if err := cursor.All(ctx, &lives); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to decode active lives: %v", err), "mongo")
	}

	return lives, nil
}

func (r *LiveRepo) FindByID(ctx context.Context, roomID string) (*entity.LiveStream, *app_error.AppError) {
	objID, err := bson.ObjectIDFromHex(roomID)
	if err != nil {
		return nil, app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("invalid session ID: %v", err), "invalid-id")
	}

	var live entity.LiveStream
	if err := r.lives().FindOne(ctx, bson.M{"_id": objID}).Decode(&live); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NewAppError(http.StatusNotFound, "Live session not found", "not-found")
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch live session: %v", err), "mongo")
	}

	return &live, nil
}

package chat_repo

import (
	"context"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ChatRepoContract interface {
	InsertMessage(ctx context.Context, msg *entity.ChatMessage) (bson.ObjectID, *app_error.AppError)
	// History returns every message exchanged between the two users ordered by
	// timestamp ascending.
	History(ctx context.Context, userA, userB string) ([]*entity.ChatMessage, *app_error.AppError)
	// MarkConversationRead flips the read flag on every unread message the
	// reader received from the other user. false→true only.
	MarkConversationRead(ctx context.Context, readerID, otherID string) *app_error.AppError
}

package live_repo

import (
	"context"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
)

type LiveRepoContract interface {
	CreateLive(ctx context.Context, live *entity.LiveStream) *app_error.AppError
	// FindLiveByChannel only matches rooms whose status is still live; an
	// ended room looks exactly like a missing one to callers.
	FindLiveByChannel(ctx context.Context, channelName string) (*entity.LiveStream, *app_error.AppError)
	// IncCounter atomically bumps one of the side-effect counters on a live
	// room and returns the updated document. Ended rooms are rejected with a
	// not-found error.
	IncCounter(ctx context.Context, channelName, field string, delta int64) (*entity.LiveStream, *app_error.AppError)
	// EndLive flips the room to ended exactly once. A second call for the same
	// channel reports ended=false with no error so the caller does not
	// re-broadcast the termination event.
	EndLive(ctx context.Context, channelName string) (*entity.LiveStream, bool, *app_error.AppError)
	InsertComment(ctx context.Context, comment *entity.LiveComment) *app_error.AppError
	ListActive(ctx context.Context) ([]*entity.LiveStream, *app_error.AppError)
	FindByID(ctx context.Context, roomID string) (*entity.LiveStream, *app_error.AppError)
}

package live_service

import (
	"context"

	"github.com/robiulsunnyemon/eron/internal/dtos/live_dto"
	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
)

type LiveServiceContract interface {
	// StartLive creates a live room, issues the host's publish credential and
	// returns the event for the host's connection.
	StartLive(ctx context.Context, hostID string, req live_dto.StartAction) (*live_dto.LiveStartedEvent, *entity.LiveStream, *app_error.AppError)
	// JoinLive runs the entitlement workflow (charge-once entry fee), bumps
	// the view counter and issues the viewer's subscribe credential.
	JoinLive(ctx context.Context, userID, channelName string) (*live_dto.JoinedSuccessEvent, *entity.LiveStream, *app_error.AppError)
	Like(ctx context.Context, userID, channelName string) (*live_dto.NewLikeEvent, *app_error.AppError)
	Comment(ctx context.Context, userID, channelName, message string) (*live_dto.NewCommentEvent, *app_error.AppError)
	// EndOnHostDisconnect flips the room to ended if and only if the
	// disconnecting user is its host. Reports whether the transition happened
	// now, so the caller broadcasts live_ended at most once.
	EndOnHostDisconnect(ctx context.Context, userID, channelName string) (bool, *app_error.AppError)
	ListActive(ctx context.Context) ([]live_dto.ActiveLive, *app_error.AppError)
	ListViewers(ctx context.Context, roomID string) ([]live_dto.LiveViewer, *app_error.AppError)
}

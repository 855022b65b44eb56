package user_repo

import (
	"context"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
)

type UserRepoContract interface {
	FindByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError)
	// GetProfileCached resolves a user profile through the short-TTL Redis
	// cache, falling through to Postgres on a miss.
	GetProfileCached(ctx context.Context, userID string) (*entity.User, *app_error.AppError)
	SetOnline(ctx context.Context, userID string, online bool) *app_error.AppError
	ListOnline(ctx context.Context) ([]*entity.User, *app_error.AppError)
	IncTotalLike(ctx context.Context, userID string) *app_error.AppError
}

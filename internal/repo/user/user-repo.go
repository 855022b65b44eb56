package user_repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/internal/utils"
	"github.com/robiulsunnyemon/eron/state"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const profileCacheTTL = 5 * time.Minute

type UserRepo struct {
	AppState *state.AppState
}

func NewUserRepo(appState *state.AppState) UserRepoContract {
	return &UserRepo{
		AppState: appState,
	}
}

func (r *UserRepo) FindByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	var user entity.User
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewAppError(http.StatusNotFound, "user not found", "not-found")
		}
		log.Error().Err(err).Str("userID", userID).Msg("failed to fetch user")
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch user", "db-error")
	}
	return &user, nil
}

func (r *UserRepo) GetProfileCached(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	cacheKey := fmt.Sprintf("profile:%s", userID)

	if r.AppState.Redis != nil {
		cached, appErr := utils.GetCacheData[entity.User](ctx, r.AppState.Redis, cacheKey)
		if appErr == nil && cached != nil {
			return cached, nil
		}
	}

	user, appErr := r.FindByID(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	if r.AppState.Redis != nil {
		if err := utils.SetCacheData(ctx, r.AppState.Redis, cacheKey, user, profileCacheTTL); err != nil {
			log.Warn().Err(err).Str("userID", userID).Msg("failed to cache user profile")
		}
	}

	return user, nil
}

func (r *UserRepo) SetOnline(ctx context.Context, userID string, online bool) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Update("is_online", online).Error; err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to update presence flag")
		return app_error.NewAppError(http.StatusInternalServerError, "failed to update presence flag", "db-error")
	}
	return nil
}

func (r *UserRepo) ListOnline(ctx context.Context) ([]*entity.User, *app_error.AppError) {
	var users []*entity.User
	if err := r.AppState.DB.WithContext(ctx).Where("is_online = ?", true).Find(&users).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch online users", "db-error")
	}
	return users, nil
}

func (r *UserRepo) IncTotalLike(ctx context.Context, userID string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).
		UpdateColumn("total_like", gorm.Expr("total_like + ?", 1)).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to increment host likes", "db-error")
	}
	return nil
}

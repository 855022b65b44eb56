package ledger_repo

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
	"github.com/robiulsunnyemon/eron/state"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var errInsufficientFunds = errors.New("insufficient funds")

type LedgerRepo struct {
	AppState *state.AppState
}

func NewLedgerRepo(appState *state.AppState) LedgerRepoContract {
	return &LedgerRepo{
		AppState: appState,
	}
}

func (r *LedgerRepo) FindEntitlement(ctx context.Context, roomID, viewerID string) (*entity.Entitlement, *app_error.AppError) {
	var ent entity.Entitlement
	err := r.AppState.DB.WithContext(ctx).Where("room_id = ? AND viewer_id = ?", roomID, viewerID).First(&ent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to query entitlement", "db-error")
	}
	return &ent, nil
}

func (r *LedgerRepo) GrantEntry(ctx context.Context, roomID, viewerID, hostID string, fee int64) (*entity.Entitlement, *app_error.AppError) {
	ent := &entity.Entitlement{
		RoomID:   roomID,
		ViewerID: viewerID,
		FeePaid:  fee,
	}

	err := r.AppState.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ent).Error; err != nil {
			return err
		}

		if fee > 0 {
			// conditional debit keeps the payer's balance non-negative
			res := tx.Model(&entity.User{}).
				Where("id = ? AND coins >= ?", viewerID, fee).
				UpdateColumn("coins", gorm.Expr("coins - ?", fee))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientFunds
			}

			if err := tx.Model(&entity.User{}).
				Where("id = ?", hostID).
				UpdateColumn("coins", gorm.Expr("coins + ?", fee)).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err == nil {
		return ent, nil
	}

	if errors.Is(err, errInsufficientFunds) {
		return nil, app_error.NewAppError(http.StatusPaymentRequired, "insufficient coins for entry fee", "balance")
	}

	// A concurrent join already created the entitlement: the unique index on
	// (room_id, viewer_id) fired and the whole transaction rolled back, so no
	// money moved. Treat the loser as already entitled.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
		existing, appErr := r.FindEntitlement(ctx, roomID, viewerID)
		if appErr == nil && existing != nil {
			return existing, nil
		}
	}

	log.Error().Err(err).Str("roomID", roomID).Str("viewerID", viewerID).Msg("entry charge failed")
	return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to settle entry fee", "db-error")
}

func (r *LedgerRepo) Balance(ctx context.Context, userID string) (int64, *app_error.AppError) {
	var user entity.User
	if err := r.AppState.DB.WithContext(ctx).Select("coins").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, app_error.NewAppError(http.StatusNotFound, "user not found", "not-found")
		}
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to read balance", "db-error")
	}
	return user.Coins, nil
}

func (r *LedgerRepo) ListEntitlements(ctx context.Context, roomID string) ([]*entity.Entitlement, *app_error.AppError) {
	var ents []*entity.Entitlement
	if err := r.AppState.DB.WithContext(ctx).Where("room_id = ?", roomID).Order("joined_at asc").Find(&ents).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to list viewers", "db-error")
	}
	return ents, nil
}

func (r *LedgerRepo) SumFees(ctx context.Context, roomID string) (int64, *app_error.AppError) {
	var total int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.Entitlement{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(SUM(fee_paid), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to sum entry fees", "db-error")
	}
	return total, nil
}

func (r *LedgerRepo) SaveSummary(ctx context.Context, summary *entity.LiveSummary) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(summary).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return nil // summary already written by an earlier attempt
		}
		return app_error.NewAppError(http.StatusInternalServerError, "failed to save live summary", "db-error")
	}
	return nil
}

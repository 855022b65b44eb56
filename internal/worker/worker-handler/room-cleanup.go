package worker_handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/robiulsunnyemon/eron/internal/entity"
	ledger_repo "github.com/robiulsunnyemon/eron/internal/repo/ledger"
	"github.com/robiulsunnyemon/eron/internal/utils"
	"github.com/robiulsunnyemon/eron/internal/utils/types"
)

type WorkerHandler struct {
	Redis  *redis.Client
	Ledger ledger_repo.LedgerRepoContract
}

func NewWorkerHandler(redis *redis.Client, ledger ledger_repo.LedgerRepoContract) *WorkerHandler {
	return &WorkerHandler{
		Redis:  redis,
		Ledger: ledger,
	}
}

// HandleRoomCleanup settles an ended live session: it totals the entry fees
// collected, writes the summary row and drops the host's cached profile so
// the next read sees the updated like total. Safe to retry, the summary
// insert is idempotent on room ID.
func (wh *WorkerHandler) HandleRoomCleanup(ctx context.Context, raw json.RawMessage) error {
	var payload types.RoomCleanupPayload

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid room cleanup payload: %w", err)
	}

	coinsEarned, appErr := wh.Ledger.SumFees(ctx, payload.RoomID)
	if appErr != nil {
		return fmt.Errorf("sum fees for room %s: %s", payload.RoomID, appErr.Message)
	}

	summary := &entity.LiveSummary{
		RoomID:       payload.RoomID,
		HostID:       payload.HostID,
		ChannelName:  payload.ChannelName,
		TotalLike:    payload.TotalLike,
		TotalComment: payload.TotalComment,
		TotalViews:   payload.TotalViews,
		CoinsEarned:  coinsEarned,
		EndedAt:      payload.EndedAt,
	}

	if appErr := wh.Ledger.SaveSummary(ctx, summary); appErr != nil {
		return fmt.Errorf("save summary for room %s: %s", payload.RoomID, appErr.Message)
	}

	if err := utils.DeleteCacheData(ctx, wh.Redis, fmt.Sprintf("profile:%s", payload.HostID)); err != nil {
		// The cache entry expires on its own, no reason to fail the job.
		log.Warn().Err(err).Str("host_id", payload.HostID).Msg("failed to evict host profile cache")
	}

	log.Info().
		Str("room_id", payload.RoomID).
		Str("channel_name", payload.ChannelName).
		Int64("coins_earned", coinsEarned).
		Msg("live session settled")

	return nil
}

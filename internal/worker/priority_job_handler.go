package worker

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/robiulsunnyemon/eron/internal/queue"
	ledger_repo "github.com/robiulsunnyemon/eron/internal/repo/ledger"
	worker_handler "github.com/robiulsunnyemon/eron/internal/worker/worker-handler"
)

func HandleJob(ctx context.Context, job queue.Job, redis *redis.Client, ledger ledger_repo.LedgerRepoContract) error {
	workerHandler := worker_handler.NewWorkerHandler(redis, ledger)
	switch job.Type {
	case queue.JobRoomCleanup:
		return workerHandler.HandleRoomCleanup(ctx, job.Payload)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

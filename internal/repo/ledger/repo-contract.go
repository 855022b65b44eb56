package ledger_repo

import (
	"context"

	"github.com/robiulsunnyemon/eron/internal/entity"
	app_error "github.com/robiulsunnyemon/eron/internal/errors"
)

type LedgerRepoContract interface {
	// FindEntitlement returns (nil, nil) when the viewer has no entitlement
	// for the room yet.
	FindEntitlement(ctx context.Context, roomID, viewerID string) (*entity.Entitlement, *app_error.AppError)
	// GrantEntry creates the entitlement and, when fee > 0, moves the fee from
	// viewer to host in the same transaction. Either everything commits or
	// nothing does. A duplicate (room, viewer) insert is resolved internally
	// by returning the already-existing entitlement with no charge.
	GrantEntry(ctx context.Context, roomID, viewerID, hostID string, fee int64) (*entity.Entitlement, *app_error.AppError)
	Balance(ctx context.Context, userID string) (int64, *app_error.AppError)
	ListEntitlements(ctx context.Context, roomID string) ([]*entity.Entitlement, *app_error.AppError)
	SumFees(ctx context.Context, roomID string) (int64, *app_error.AppError)
	// SaveSummary is idempotent on room ID so the housekeeping worker can
	// retry it safely.
	SaveSummary(ctx context.Context, summary *entity.LiveSummary) *app_error.AppError
}

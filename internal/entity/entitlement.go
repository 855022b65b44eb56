package entity

import (
	"time"
)

// Entitlement is the durable proof that a viewer has settled (or been exempted
// from) a room's entry fee. The unique index on (room_id, viewer_id) is what
// makes the charge happen at most once per viewer per session.
type Entitlement struct {
	ID       int64     `gorm:"primaryKey" json:"id"`
	RoomID   string    `gorm:"not null;uniqueIndex:idx_room_viewer" json:"room_id"`
	ViewerID string    `gorm:"not null;uniqueIndex:idx_room_viewer" json:"viewer_id"`
	FeePaid  int64     `gorm:"not null;default:0" json:"fee_paid"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// LiveSummary is the settlement row written by the housekeeping worker after a
// live session ends.
type LiveSummary struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	RoomID       string    `gorm:"not null;uniqueIndex" json:"room_id"`
	HostID       string    `gorm:"not null" json:"host_id"`
	ChannelName  string    `gorm:"not null" json:"channel_name"`
	TotalLike    int64     `json:"total_like"`
	TotalComment int64     `json:"total_comment"`
	TotalViews   int64     `json:"total_views"`
	CoinsEarned  int64     `json:"coins_earned"`
	EndedAt      time.Time `json:"ended_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package types

import "time"

// RoomCleanupPayload is enqueued when a live session ends. It carries the
// final counter snapshot so the worker does not have to re-read the ended
// document.
type RoomCleanupPayload struct {
	RoomID       string    `json:"room_id"`
	ChannelName  string    `json:"channel_name"`
	HostID       string    `json:"host_id"`
	TotalLike    int64     `json:"total_like"`
	TotalComment int64     `json:"total_comment"`
	TotalViews   int64     `json:"total_views"`
	EndedAt      time.Time `json:"ended_at"`
}

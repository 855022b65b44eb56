package live_dto

import "time"

type HostProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ActiveLive struct {
	ID           string      `json:"id"`
	Host         HostProfile `json:"host"`
	ChannelName  string      `json:"channel_name"`
	IsPremium    bool        `json:"is_premium"`
	EntryFee     int64       `json:"entry_fee"`
	Status       string      `json:"status"`
	TotalLike    int64       `json:"total_like"`
	TotalComment int64       `json:"total_comment"`
	TotalViews   int64       `json:"total_views"`
}

type LiveViewer struct {
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	ProfileImage string    `json:"profile_image"`
	JoinedAt     time.Time `json:"joined_at"`
	FeePaid      int64     `json:"fee_paid"`
}

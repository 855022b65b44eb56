package queue

import "encoding/json"

const (
	// JobRoomCleanup settles an ended live session: final counters snapshot,
	// coins earned, cache eviction.
	JobRoomCleanup = "room_cleanup"
)

type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Priority  int             `json:"priority"`
	Retry     int             `json:"retry"`
	MaxRetry  int             `json:"max_retry"`
	ErrorMsg  string          `json:"error_msg,omitempty"`
	CreatedAt int64           `json:"created_at"`
	ExpireAt  int64           `json:"expired_at"`
	// NotBefore delays processing, used for retry backoff. Zero means run now.
	NotBefore int64 `json:"not_before,omitempty"`
}

func MustMarshal(payload any) json.RawMessage {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return b
}

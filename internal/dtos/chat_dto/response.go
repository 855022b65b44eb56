package chat_dto

import "time"

type HistoryMessage struct {
	MessageID  string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	Timestamp  time.Time `json:"timestamp"`
}

type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

type ActiveUser struct {
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	ProfileImage string `json:"profile_image"`
}

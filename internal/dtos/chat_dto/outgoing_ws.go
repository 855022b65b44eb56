package chat_dto

// WSDirectMessage is delivered to the receiver's live connection.
type WSDirectMessage struct {
	SenderID  string `json:"sender_id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"is_read"`
}

// WSError is sent back to the sender when an inbound message cannot be
// processed. The connection stays open.
type WSError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

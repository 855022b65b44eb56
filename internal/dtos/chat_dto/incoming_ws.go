package chat_dto

// WSSendMessage is the single inbound message shape on the direct-message
// channel.
type WSSendMessage struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Message    string `json:"message" validate:"required,min=1"`
}

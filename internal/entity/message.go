package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ChatMessage struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	SenderID   string        `bson:"senderId"`
	ReceiverID string        `bson:"receiverId"`
	Message    string        `bson:"message"`
	IsRead     bool          `bson:"isRead"`
	Timestamp  time.Time     `bson:"timestamp"`
}

package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	LiveStatusLive  = "live"
	LiveStatusEnded = "ended"
)

type LiveStream struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	HostID       string        `bson:"hostId"`
	ChannelName  string        `bson:"channelName"`
	IsPremium    bool          `bson:"isPremium"`
	EntryFee     int64         `bson:"entryFee"`
	Status       string        `bson:"status"`
	TotalLike    int64         `bson:"totalLike"`
	TotalComment int64         `bson:"totalComment"`
	TotalViews   int64         `bson:"totalViews"`
	StartTime    time.Time     `bson:"startTime"`
	EndTime      *time.Time    `bson:"endTime,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

type LiveComment struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	SessionID   string        `bson:"sessionId"`
	ChannelName string        `bson:"channelName"`
	UserID      string        `bson:"userId"`
	Content     string        `bson:"content"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

package live_dto

// Action kinds accepted on the live-room channel.
const (
	ActionStart   = "start"
	ActionJoin    = "join"
	ActionLike    = "like"
	ActionComment = "comment"
)

// WSAction carries only the envelope tag. The kind-specific fields sit flat in
// the same JSON object and are decoded into one of the typed actions below
// once the tag is known.
type WSAction struct {
	Action string `json:"action"`
}

type StartAction struct {
	IsPremium bool  `json:"is_premium"`
	EntryFee  int64 `json:"entry_fee" validate:"min=0"`
}

type JoinAction struct {
	ChannelName string `json:"channel_name" validate:"required"`
}

type LikeAction struct {
	ChannelName string `json:"channel_name" validate:"required"`
}

type CommentAction struct {
	ChannelName string `json:"channel_name" validate:"required"`
	Message     string `json:"message" validate:"required,min=1"`
}

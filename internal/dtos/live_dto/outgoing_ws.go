package live_dto

// Event kinds emitted on the live-room channel.
const (
	EventLiveStarted       = "live_started"
	EventJoinedSuccess     = "joined_success"
	EventViewerCountUpdate = "viewer_count_update"
	EventNewLike           = "new_like"
	EventNewComment        = "new_comment"
	EventLiveEnded         = "live_ended"
	EventError             = "error"
)

type LiveStartedEvent struct {
	Event       string `json:"event"`
	ChannelName string `json:"channel_name"`
	Credential  string `json:"credential"`
	UID         int    `json:"uid"`
}

type JoinedSuccessEvent struct {
	Event      string `json:"event"`
	Channel    string `json:"channel"`
	Credential string `json:"credential"`
	UID        int    `json:"uid"`
	NewBalance int64  `json:"new_balance"`
}

type ViewerCountEvent struct {
	Event string `json:"event"`
	Count int    `json:"count"`
}

type NewLikeEvent struct {
	Event      string `json:"event"`
	TotalLikes int64  `json:"total_likes"`
}

type CommentUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type NewCommentEvent struct {
	Event         string      `json:"event"`
	User          CommentUser `json:"user"`
	Message       string      `json:"message"`
	TotalComments int64       `json:"total_comments"`
}

type LiveEndedEvent struct {
	Event string `json:"event"`
}

type ErrorEvent struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

func NewErrorEvent(msg string) ErrorEvent {
	return ErrorEvent{Event: EventError, Message: msg}
}

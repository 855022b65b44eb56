package websocket

import (
	"net/http"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

// actionTimeout bounds every external call made while handling one inbound
// action (persistence, balance transfer, credential issuance).
const actionTimeout = 10 * time.Second

func upgrade(w http.ResponseWriter, r *http.Request) (*gws.Conn, bool) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return nil, false
	}
	return conn, true
}

// closePolicyViolation rejects an authenticated-too-late connection the way
// the protocol demands: close code 1008 before any core logic runs.
func closePolicyViolation(conn *gws.Conn, reason string) {
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(gws.CloseMessage, gws.FormatCloseMessage(gws.ClosePolicyViolation, reason), deadline)
	_ = conn.Close()
}

package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1 MB
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is one live bidirectional connection bound to a single user. The
// read side stays with the owning server loop so inbound actions from one
// connection are processed strictly in order; writes go through the buffered
// Send channel and a single writePump.
type Client struct {
	ID      string
	UserID  string
	Channel string // current live room; empty on the direct-message channel

	Conn *websocket.Conn
	Send chan []byte

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewClient(id, userID string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:     id,
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the write pump.
func (c *Client) Start() {
	go c.writePump()
}

// Close tears the connection down. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
	})
}

func (c *Client) IsActive() bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
		return true
	}
}

// SendJSON queues an event for delivery. Returns false when the client is
// gone or its buffer is full; a full buffer marks a slow consumer and the
// connection is dropped.
func (c *Client) SendJSON(event any) bool {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("clientID", c.ID).Msg("ws: failed to marshal event")
		return false
	}

	select {
	case c.Send <- data:
		return true
	case <-c.ctx.Done():
		return false
	default:
		log.Warn().Str("clientID", c.ID).Str("userID", c.UserID).Msg("ws: slow consumer, dropping connection")
		go c.Close()
		return false
	}
}

// setupRead configures read limits and the pong-based keep-alive. Call once
// before the owning server's read loop.
func (c *Client) setupRead() {
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

// writePump: take data from c.Send and send to socket + ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			if _, err := w.Write(msg); err != nil {
				_ = w.Close()
				return
			}

			_ = w.Close()

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

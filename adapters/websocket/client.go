package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/prismaticcrm/teacher-assistant/adapters/http"
	"github.com/prismaticcrm/teacher-assistant/usecase"
	"github.com/prismaticcrm/teacher-assistant/utils/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 64 * 1024
)

// Client is one chat connection. Incoming frames carry the same fields
// as POST /chat; each is answered with a response or error frame.
type Client struct {
	conn   *websocket.Conn
	svc    *usecase.ChatService
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	closed bool
}

type replyFrame struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
	Code     int    `json:"code,omitempty"`
}

func NewClient(conn *websocket.Conn, svc *usecase.ChatService) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		conn:   conn,
		svc:    svc,
		send:   make(chan []byte, 16),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *Client) Run() {
	c.conn.SetCloseHandler(func(code int, text string) error {
		log.WithCtx(c.ctx).Debug("websocket closed", zap.Int("code", code), zap.String("text", text))
		c.Close()
		return nil
	})
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.readPump()
	go c.writePump()
}

// Close gracefully closes the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.conn.Close()
	close(c.send)
}

func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Context returns the connection's context.
func (c *Client) Context() context.Context {
	return c.ctx
}

// readPump reads chat frames and runs one turn per frame. Turns are
// handled in order for a single connection.
func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithCtx(c.ctx).Error("websocket read error", zap.Error(err))
			}
			return
		}

		var req usecase.ChatRequest
		if err := json.Unmarshal(message, &req); err != nil {
			c.reply(replyFrame{Error: "invalid chat frame", Code: 400})
			continue
		}

		reply, err := c.svc.Chat(c.ctx, req)
		if err != nil {
			httpErr := http.HTTPError(err)
			c.reply(replyFrame{Error: fmt.Sprintf("%v", httpErr.Message), Code: httpErr.Code})
			continue
		}
		c.reply(replyFrame{Response: reply})
	}
}

func (c *Client) reply(frame replyFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		log.WithCtx(c.ctx).Error("failed to marshal reply frame", zap.Error(err))
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
		// Writer is backed up; drop the frame rather than block reads.
		log.WithCtx(c.ctx).Warn("dropping reply frame, send queue full")
	}
}

// writePump writes queued frames and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.WithCtx(c.ctx).Error("websocket write error", zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

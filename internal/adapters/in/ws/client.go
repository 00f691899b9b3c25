package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type clientMessage struct {
	Type string `json:"type"`
}

// Client is one websocket connection watching a single parcel.
type Client struct {
	id         string
	trackingID string
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	logger     *zap.Logger
}

// Serve upgrades the request and streams events for trackingID until the
// peer goes away. Access to the parcel must be checked before calling it.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, trackingID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:         uuid.NewString(),
		trackingID: trackingID,
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		logger:     h.logger,
	}
	h.Register(client)

	go client.writePump()
	client.readPump()

	return nil
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", zap.Error(err), zap.String("client_id", c.id))
			}
			return
		}

		var msg clientMessage
		if err = json.Unmarshal(raw, &msg); err != nil || msg.Type != "ping" {
			continue
		}
		if data, mErr := json.Marshal(Message{Type: "pong"}); mErr == nil {
			c.trySend(data)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend holds the hub lock because send is closed once the client leaves the hub.
func (c *Client) trySend(data []byte) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

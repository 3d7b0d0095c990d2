package ws

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Boards only send control frames.
	maxMessageSize = 512

	// Buffered events per board before it counts as fallen behind.
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one table board watching an area.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	areaID uuid.UUID
	send   chan []byte

	// Set by the hub before it closes send.
	closeCode   int
	closeReason string
}

// detach records why the hub is dropping the board and closes its queue.
// Must be called at most once, with the hub lock held.
func (c *Client) detach(code int, reason string) {
	c.closeCode = code
	c.closeReason = reason
	close(c.send)
}

// closeFrame is the close message sent once the hub has dropped the board.
func (c *Client) closeFrame() []byte {
	code := c.closeCode
	if code == 0 {
		code = websocket.CloseNormalClosure
	}
	return websocket.FormatCloseMessage(code, c.closeReason)
}

// ReadPump only watches for the board going away.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WritePump sends each queued event as its own text frame and keeps the
// connection alive with pings. When the hub drops the board it sends a close
// frame carrying the reason.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, c.closeFrame()) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, event); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS upgrades a table-board connection for one area.
// Endpoint: WS /ws/areas/{aid}/tables
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	areaID, err := uuid.Parse(chi.URLParam(r, "aid"))
	if err != nil {
		http.Error(w, "invalid area id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("websocket upgrade")
		return
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		areaID: areaID,
		send:   make(chan []byte, sendBuffer),
	}
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
			websocket.FormatCloseMessage(websocket.CloseGoingAway, reasonShutdown),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

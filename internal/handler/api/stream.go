package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"YenMetrics/internal/domain/models"
	xlogger "YenMetrics/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamHub pushes each freshly published snapshot to connected WebSocket
// clients. New connections immediately receive the last snapshot so a
// dashboard never starts empty.
type StreamHub struct {
	logger *xlogger.Logger

	mu      sync.RWMutex
	clients map[*streamClient]struct{}
	last    []byte
}

type streamClient struct {
	send chan []byte
}

func NewStreamHub(logger *xlogger.Logger) *StreamHub {
	return &StreamHub{
		logger:  logger,
		clients: make(map[*streamClient]struct{}),
	}
}

func (h *StreamHub) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/stream", h.Stream)
}

// Notify fans the snapshot out to every connected client. Slow clients are
// dropped rather than allowed to block the refresh path.
func (h *StreamHub) Notify(snap *models.MetricsSnapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		h.logger.Warn("stream marshal error", xlogger.Error(err))
		return
	}

	h.mu.Lock()
	h.last = b
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
	h.mu.Unlock()
}

// Stream upgrades the connection and streams snapshot updates until the
// client disconnects.
func (h *StreamHub) Stream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("stream upgrade error", xlogger.Error(err))
		return nil
	}

	client := &streamClient{send: make(chan []byte, 16)}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	if h.last != nil {
		client.send <- h.last
	}
	h.mu.Unlock()

	go h.writePump(conn, client)
	h.readPump(conn, client)
	return nil
}

func (h *StreamHub) remove(client *streamClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

func (h *StreamHub) writePump(conn *websocket.Conn, client *streamClient) {
	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case b, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains control frames; the stream is push-only.
func (h *StreamHub) readPump(conn *websocket.Conn, client *streamClient) {
	defer func() {
		h.remove(client)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("stream read error", xlogger.Error(err))
			}
			return
		}
	}
}

package layoutserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lattice-viz/layoutengine/internal/animator"
	"github.com/lattice-viz/layoutengine/internal/apierr"
	"github.com/lattice-viz/layoutengine/internal/logger"
	"github.com/lattice-viz/layoutengine/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// frameInterval is the rate the server drives the animator's
	// clock at, the layoutserver equivalent of a display refresh.
	frameInterval = 16 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS middleware governs cross-origin access for the REST
		// surface; the WebSocket upgrade itself allows all origins.
		return true
	},
}

// StreamMessage is the envelope sent over a GET /layout/stream
// connection: a "frame" carries interpolated positions, "complete"
// signals the end of a transition, and "error" reports a stream-level
// failure (e.g. an unknown token).
type StreamMessage struct {
	Type    string      `json:"type"` // "frame", "complete", "error"
	Payload interface{} `json:"payload,omitempty"`
}

// Client represents one GET /layout/stream connection.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	token string
}

// Hub tracks active streaming clients and, on registration, looks up
// and runs the client's transition job.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	jobs *jobStore
}

// NewHub creates a new streaming hub over the given job store.
func NewHub(jobs *jobStore) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		jobs:       jobs,
	}
}

// Run is the hub's main loop: it registers and unregisters clients and
// kicks off each client's transition job exactly once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.clients[client] = true
			metrics.WebSocketConnections.Inc()
			logger.Info("animation stream client connected", "total_clients", len(h.clients))

			job, ok := h.jobs.take(client.token)
			if !ok {
				h.sendError(client, "unknown or already-consumed transition token")
				delete(h.clients, client)
				close(client.send)
				metrics.WebSocketConnections.Dec()
				continue
			}
			go h.runTransition(ctx, client, job)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WebSocketConnections.Dec()
				logger.Info("animation stream client disconnected", "total_clients", len(h.clients))
			}
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	data, err := json.Marshal(StreamMessage{Type: "error", Payload: message})
	if err != nil {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}

// closeClient is called from a transition's own goroutine (never from
// the Run loop itself) to hand the client back to Run for cleanup.
func (h *Hub) closeClient(client *Client) {
	h.unregister <- client
}

// runTransition drives the animator's clock with a time.Ticker,
// emitting a "frame" message per tick and a final "complete" message.
func (h *Hub) runTransition(ctx context.Context, client *Client, job *transitionJob) {
	anim := animator.New()

	from := make(map[string]animator.Point, len(job.from))
	for id, p := range job.from {
		from[id] = animator.Point{X: p.X, Y: p.Y}
	}
	to := make(map[string]animator.Point, len(job.to))
	for id, p := range job.to {
		to[id] = animator.Point{X: p.X, Y: p.Y}
	}

	send := func(msg StreamMessage) {
		data, err := json.Marshal(msg)
		if err != nil {
			return
		}
		select {
		case client.send <- data:
			metrics.WebSocketMessagesSent.Inc()
		default:
			logger.Warn("animation stream client buffer full, dropping frame")
		}
	}

	onUpdate := func(current map[string]animator.Point) {
		metrics.AnimationFramesTotal.Inc()
		send(StreamMessage{Type: "frame", Payload: toPointDTOMap(current)})
	}
	done := make(chan struct{})
	onComplete := func() {
		send(StreamMessage{Type: "complete"})
		close(done)
	}

	anim.Animate(from, to, animator.EaseInOutCubic, job.durationMs, nowMs(), onUpdate, onComplete)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			h.closeClient(client)
			return
		case <-ticker.C:
			if !anim.IsAnimating() {
				h.closeClient(client)
				return
			}
			anim.Tick(nowMs())
		}
	}
}

func toPointDTOMap(in map[string]animator.Point) PositionsDTO {
	out := make(PositionsDTO, len(in))
	for id, p := range in {
		out[id] = PointDTO{X: p.X, Y: p.Y}
	}
	return out
}

func nowMs() float64 {
	return float64(time.Now().UnixNano()) / 1e6
}

// readPump pumps messages from the WebSocket connection to the hub.
// Streaming clients never send application messages; this only
// services pongs and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("animation stream unexpected close", "error", err)
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
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

// Stream handles the WebSocket upgrade for GET /layout/stream?token=...
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		apierr.WriteErrorWithContext(w, r, apierr.ValidationMissingField("token"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("failed to upgrade animation stream", "error", err)
		return
	}

	client := &Client{hub: s.hub, conn: conn, send: make(chan []byte, 256), token: token}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}

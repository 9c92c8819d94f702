package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seenimoa/brandradar/internal/dashboard"
	"github.com/seenimoa/brandradar/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Upper bound for rendering one event.
	renderTimeout = 60 * time.Second
)

// RenderPayload is the data of a "render" message.
type RenderPayload struct {
	Page dashboard.Page `json:"page"`
	HTML string         `json:"html"`
}

// handleWebSocket upgrades to a WebSocket that carries UI events from the
// browser. Each event is dispatched, the affected page is re-rendered and
// the body is sent back as a "render" message. Events on one connection
// are handled strictly in order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	q := r.URL.Query()
	in := s.inputsFromQuery(dashboard.ParsePage(q.Get("page")), q)

	var hdr http.Header
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		hdr = http.Header{"Set-Cookie": cookies}
	}
	conn, err := upgrader.Upgrade(w, r, hdr)
	if err != nil {
		s.log.WithError(err).Warn("WebSocket upgrade error")
		return
	}

	client := &WSClient{
		hub:  s.wsHub,
		send: make(chan WSMessage, 16),
	}
	s.wsHub.Register(client)

	go wsWritePump(conn, client, s)
	go wsReadPump(conn, client, s, sess, in)
}

// wsReadPump reads events from the connection and answers each with a
// render (or error) message.
func wsReadPump(conn *websocket.Conn, client *WSClient, s *Server, sess *session.Session, in *dashboard.Inputs) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		client.hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("WebSocket read error")
			}
			return
		}

		var ev dashboard.Event
		if err := json.Unmarshal(message, &ev); err != nil {
			client.trySend(WSMessage{Type: "error", Data: "invalid event: " + err.Error()})
			continue
		}
		if ev.Type == "ping" {
			client.trySend(WSMessage{Type: "pong"})
			continue
		}

		client.trySend(s.handleEvent(ctx, sess, in, ev))
	}
}

// handleEvent runs one event through the dispatcher and renders the
// resulting page. The key guard is re-checked for every event.
func (s *Server) handleEvent(ctx context.Context, sess *session.Session, in *dashboard.Inputs, ev dashboard.Event) WSMessage {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	var buf bytes.Buffer
	if err := s.cfg.RequireKeys(); err != nil {
		if rerr := s.dash.RenderFatal(&buf, in.Page, err.Error(), false); rerr != nil {
			return WSMessage{Type: "error", Data: err.Error()}
		}
		return WSMessage{Type: "render", Data: RenderPayload{Page: in.Page, HTML: buf.String()}}
	}

	if err := s.dash.Dispatch(sess, in, ev); err != nil {
		return WSMessage{Type: "error", Data: err.Error()}
	}
	if err := s.dash.Render(ctx, &buf, sess, in, false); err != nil {
		s.log.WithError(err).Error("render failed")
		return WSMessage{Type: "error", Data: "render failed"}
	}
	return WSMessage{Type: "render", Data: RenderPayload{Page: in.Page, HTML: buf.String()}}
}

// wsWritePump pumps messages from the client queue to the connection.
func wsWritePump(conn *websocket.Conn, client *WSClient, s *Server) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				s.log.WithError(err).Debug("WebSocket write failed")
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ============================================================
// WebSocket Hub
// ============================================================

// WSMessage is a message sent over WebSocket connections.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WSHub tracks connected clients and fans out broadcast messages.
type WSHub struct {
	mu         sync.RWMutex
	clients    map[*WSClient]bool
	broadcast  chan WSMessage
	register   chan *WSClient
	unregister chan *WSClient
}

// WSClient represents a single WebSocket connection.
type WSClient struct {
	hub    *WSHub
	send   chan WSMessage
	mu     sync.Mutex
	closed bool
}

// trySend queues msg unless the client is gone or its queue is full.
func (c *WSClient) trySend(msg WSMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (c *WSClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// NewWSHub creates a new WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WSMessage, 16),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
	}
}

// Run starts the hub event loop.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				client.trySend(msg)
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends a message to all connected clients.
func (h *WSHub) Broadcast(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		// Drop message if broadcast channel is full
	}
}

// ClientCount returns the number of connected clients.
func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register adds a client to the hub.
func (h *WSHub) Register(client *WSClient) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *WSHub) Unregister(client *WSClient) {
	h.unregister <- client
}

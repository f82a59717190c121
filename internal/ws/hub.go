package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/flowgrid/flowfs/internal/monitoring"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// clientMessage is an inbound message from a connected client.
type clientMessage struct {
	Type string `json:"type"`
}

// client wraps a connection with a write lock. Gorilla connections
// do not support concurrent writers.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(data)
}

// Hub manages WebSocket connections and broadcasts run events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *zap.Logger
	metrics *monitoring.Metrics
}

// NewHub creates a hub. The metrics collector may be nil.
func NewHub(log *zap.Logger, metrics *monitoring.Metrics) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
		metrics: metrics,
	}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn}
	h.register(cl)
	defer h.unregister(cl)

	// Send welcome message
	cl.send(map[string]interface{}{
		"type":      "system",
		"message":   "Connected to FlowFS event stream",
		"timestamp": time.Now().Unix(),
	})

	// Listen for messages
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read error", zap.Error(err))
			}
			break
		}

		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "ping":
			cl.send(map[string]interface{}{"type": "pong"})
		default:
			h.sendError(cl, "unknown message type")
		}
	}
}

// Publish broadcasts an event to every connected client. Clients whose
// connection fails are dropped.
func (h *Hub) Publish(event map[string]interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	if h.metrics != nil && len(clients) > 0 {
		msgType, _ := event["type"].(string)
		h.metrics.RecordWSMessage("out", msgType)
	}

	for _, cl := range clients {
		if err := cl.send(event); err != nil {
			h.unregister(cl)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	_, present := h.clients[cl]
	if present {
		delete(h.clients, cl)
	}
	h.mu.Unlock()

	if !present {
		return
	}
	cl.conn.Close()
	if h.metrics != nil {
		h.metrics.DecWSConnections()
	}
}

func (h *Hub) sendError(cl *client, msg string) error {
	return cl.send(map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}

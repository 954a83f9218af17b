package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Rooms the displays subscribe to.
const (
	RoomOrders  = "orders"
	RoomKitchen = "kitchen"
)

// Broadcaster pushes named events to a subscriber room. Fire-and-forget: no
// acknowledgement, no delivery guarantee, no replay on reconnect.
type Broadcaster interface {
	Emit(event string, payload interface{}, room string)
}

// Event is the wire frame sent to subscribers.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type client struct {
	id   string
	room string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to websocket subscribers grouped by room. A client that
// cannot keep up has its buffer overrun and simply misses events.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[string]*client
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[string]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[c.room] == nil {
		h.rooms[c.room] = make(map[string]*client)
	}
	h.rooms[c.room][c.id] = c
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[c.room]; ok {
		if _, ok := room[c.id]; ok {
			delete(room, c.id)
			close(c.send)
		}
	}
}

// Emit marshals the event and queues it for every subscriber in the room.
func (h *Hub) Emit(event string, payload interface{}, room string) {
	msg, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", event, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			// subscriber is not draining; it misses this event
		}
	}
}

// Serve upgrades a GET /ws?room=orders|kitchen request to a websocket
// subscription.
func (h *Hub) Serve(c *gin.Context) {
	room := c.Query("room")
	if room != RoomOrders && room != RoomKitchen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown room"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		room: room,
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.add(cl)
	go cl.writeLoop(h)
	go cl.readLoop(h)
}

func (c *client) writeLoop(h *Hub) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readLoop exists only to notice the peer going away; clients never send
// anything of interest.
func (c *client) readLoop(h *Hub) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	c.conn.Close()
}

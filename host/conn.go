package host

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"docengine/document"
	"docengine/presence"
)

// presenceTTL bounds how long a joined author is considered present
// without a fresh heartbeat/join, mirroring the teacher's 600-second
// window in ws/conn.go.
const presenceTTL = 600 * time.Second

// Conn is one websocket connection joined to at most one Room at a
// time, mirroring the teacher's ws.Conn: a buffered outbound queue
// drained by a dedicated write loop, and a read loop dispatching
// ClientMessage.Type the way collab-service's conn.go does.
type Conn struct {
	ws       *websocket.Conn
	hub      *Hub
	room     *Room
	authorID string
	name     string
	send     chan OutboundMessage

	presence presence.Cache
}

// NewConn wraps an upgraded websocket connection for authorID/name.
func NewConn(ws *websocket.Conn, hub *Hub, authorID, name string, pc presence.Cache) *Conn {
	return &Conn{ws: ws, hub: hub, authorID: authorID, name: name, send: make(chan OutboundMessage, 32), presence: pc}
}

func (c *Conn) enqueue(msg OutboundMessage) {
	select {
	case c.send <- msg:
	default:
		// Outbound queue full: drop rather than block the room's broadcast.
	}
}

// WriteLoop drains c.send to the underlying connection until it is
// closed.
func (c *Conn) WriteLoop() {
	for msg := range c.send {
		if err := c.ws.WriteJSON(msg); err != nil {
			log.Printf("host: write error author=%s: %v", c.authorID, err)
			return
		}
	}
}

// ReadLoop consumes ClientMessages until the connection errors or
// closes, dispatching each to the joined room's Controller.
func (c *Conn) ReadLoop() {
	defer close(c.send)
	for {
		var msg ClientMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			if c.room != nil {
				c.room.Leave(c)
			}
			return
		}
		c.handle(msg)
	}
}

func (c *Conn) handle(msg ClientMessage) {
	switch msg.Type {
	case "join":
		room, err := c.hub.RoomFor(msg.DocID, nil)
		if err != nil {
			c.enqueue(ServerMessage{Type: "error", DocID: msg.DocID, Content: err.Error()})
			return
		}
		if c.room != nil {
			c.room.Leave(c)
		}
		c.room = room
		room.Join(c)
		if c.presence != nil {
			_ = c.presence.Join(context.Background(), msg.DocID, c.authorID, c.name, presenceTTL)
		}
		c.enqueue(ServerMessage{Type: "joined", DocID: msg.DocID})

	case "op_submit":
		c.handleOpSubmit(msg)

	case "heartbeat":
		if c.presence != nil && c.room != nil {
			_ = c.presence.Join(context.Background(), msg.DocID, c.authorID, c.name, presenceTTL)
		}
		c.enqueue(ServerMessage{Type: "heartbeat_ack"})

	default:
		c.enqueue(ServerMessage{Type: "ignored", Content: "unknown message type " + msg.Type})
	}
}

func (c *Conn) handleOpSubmit(msg ClientMessage) {
	if c.room == nil {
		c.enqueue(ServerMessage{Type: "error", Content: "not joined to a document"})
		return
	}
	change, err := c.room.Controller().Compose(msg.Ops, document.SourceLocal)
	if err != nil {
		c.enqueue(ServerMessage{Type: "error", DocID: msg.DocID, Content: err.Error()})
		return
	}
	c.enqueue(OpAppliedMessage{Type: "op_applied", DocID: msg.DocID, ClientID: msg.ClientID, ClientSeq: msg.ClientSeq})
	c.room.Broadcast(c, OpBroadcastMessage{
		Type:      "op_broadcast",
		DocID:     msg.DocID,
		ClientID:  msg.ClientID,
		ClientSeq: msg.ClientSeq,
		Ops:       change,
		AppliedAt: time.Now(),
	})
}

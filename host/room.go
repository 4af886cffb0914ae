package host

import (
	"sync"

	"docengine/delta"
	"docengine/document"
	"docengine/object"
	"docengine/style"
)

// Room owns one document's Controller plus the set of connections
// currently joined to it, mirroring how the teacher's ws.Hub groups
// Conns per docID. Room constructs and holds the document.Controller;
// Conns reach it through Room.Controller.
type Room struct {
	docID string
	ctrl  *document.Controller

	mu    sync.Mutex
	conns map[*Conn]struct{}
}

// NewRoom wraps a freshly constructed Controller for docID. initialJSON
// is a serialized document Delta (spec.md §6); nil starts from the
// minimal empty document.
func NewRoom(docID string, initialJSON []byte) (*Room, error) {
	ctrl, err := newController(initialJSON)
	if err != nil {
		return nil, err
	}
	return &Room{docID: docID, ctrl: ctrl, conns: map[*Conn]struct{}{}}, nil
}

func newController(initialJSON []byte) (*document.Controller, error) {
	var initial delta.Delta
	if len(initialJSON) > 0 {
		parsed, err := delta.FromJSON(initialJSON)
		if err != nil {
			return nil, err
		}
		initial = parsed
	}
	return document.New(initial, style.DefaultRegistry(), object.DefaultRegistry())
}

// Join adds c to the room's connection set.
func (r *Room) Join(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c] = struct{}{}
}

// Leave removes c from the room's connection set.
func (r *Room) Leave(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, c)
}

// Broadcast sends msg to every connection in the room except from.
func (r *Room) Broadcast(from *Conn, msg OutboundMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for c := range r.conns {
		if c == from {
			continue
		}
		c.enqueue(msg)
	}
}

// Controller exposes the room's Controller to Conn handlers.
func (r *Room) Controller() *document.Controller { return r.ctrl }

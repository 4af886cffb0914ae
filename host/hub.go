package host

import (
	"sync"
)

// Hub is the process-wide registry of open Rooms, keyed by docID,
// mirroring the teacher's ws.Hub.
type Hub struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	onOpen  func(docID string, r *Room)
	loadDoc func(docID string) ([]byte, error)
}

// NewHub returns an empty Hub. loadDoc, if non-nil, resolves a docID's
// latest persisted Delta JSON (a store.SnapshotStore in the reference
// host) when a Room must be created from scratch; onOpen, if non-nil,
// runs once right after a new Room is created, so main wiring can
// attach a syncbus subscriber without this package importing syncbus.
func NewHub(loadDoc func(docID string) ([]byte, error), onOpen func(docID string, r *Room)) *Hub {
	return &Hub{rooms: map[string]*Room{}, loadDoc: loadDoc, onOpen: onOpen}
}

// RoomFor returns the Room for docID, creating it if it does not
// already exist. initialJSON, when non-empty, seeds a freshly created
// room directly; otherwise the Hub's loadDoc hook is consulted.
func (h *Hub) RoomFor(docID string, initialJSON []byte) (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[docID]; ok {
		return r, nil
	}
	if len(initialJSON) == 0 && h.loadDoc != nil {
		loaded, err := h.loadDoc(docID)
		if err == nil {
			initialJSON = loaded
		}
	}
	r, err := NewRoom(docID, initialJSON)
	if err != nil {
		return nil, err
	}
	h.rooms[docID] = r
	if h.onOpen != nil {
		h.onOpen(docID, r)
	}
	return r, nil
}

// Lookup returns the Room for docID without creating one.
func (h *Hub) Lookup(docID string) (*Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[docID]
	return r, ok
}

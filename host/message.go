// Package host is the reference collaboration server: it owns no
// document-engine internals, only document.Controller instances and
// their change streams, exactly like any other host spec.md's Purpose
// section describes as external to the engine. It is modeled directly
// on the teacher's collab-service cmd/collab_server and internal/ws.
package host

import (
	"time"

	"docengine/delta"
)

// ClientMessage is the inbound websocket envelope, mirroring the
// teacher's ws/message.go ClientMessage.
type ClientMessage struct {
	Type      string      `json:"type"`
	DocID     string      `json:"docId"`
	DocTitle  string      `json:"docTitle"`
	ClientID  string      `json:"clientId"`
	ClientSeq uint64      `json:"clientSeq"`
	Ops       delta.Delta `json:"ops"`
}

// PresenceMember mirrors presence.Member on the wire.
type PresenceMember struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name,omitempty"`
}

// OutboundMessage is anything a Conn's write loop can send.
type OutboundMessage interface {
	MessageType() string
}

// ServerMessage is a generic status/error/feedback envelope.
type ServerMessage struct {
	Type    string `json:"type"`
	DocID   string `json:"docId,omitempty"`
	Content string `json:"content,omitempty"`
}

func (m ServerMessage) MessageType() string { return m.Type }

// OpBroadcastMessage is pushed to every other connection in a room
// after a local edit is applied, so peers can Controller.Compose the
// same change with SourceRemote.
type OpBroadcastMessage struct {
	Type      string      `json:"type"`
	DocID     string      `json:"docId"`
	ClientID  string      `json:"clientId,omitempty"`
	ClientSeq uint64      `json:"clientSeq,omitempty"`
	Ops       delta.Delta `json:"ops"`
	AppliedAt time.Time   `json:"appliedAt"`
}

func (m OpBroadcastMessage) MessageType() string { return m.Type }

// OpAppliedMessage acks the submitting client's own op.
type OpAppliedMessage struct {
	Type      string `json:"type"`
	DocID     string `json:"docId"`
	ClientID  string `json:"clientId"`
	ClientSeq uint64 `json:"clientSeq"`
}

func (m OpAppliedMessage) MessageType() string { return m.Type }

// PresenceMessage reports the current alive roster of a room.
type PresenceMessage struct {
	Type    string           `json:"type"`
	DocID   string           `json:"docId"`
	Members []PresenceMember `json:"members"`
}

func (m PresenceMessage) MessageType() string { return m.Type }

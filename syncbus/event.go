// Package syncbus republishes a document controller's change stream
// onto Kafka, the concrete "remote synchronization" consumer spec.md's
// Purpose section anticipates a host layering on top of the engine. It
// only ever subscribes to document.Controller — it never calls back
// into it.
package syncbus

import (
	"time"

	"github.com/google/uuid"

	"docengine/delta"
	"docengine/document"
)

// DocOpEvent is the wire shape published to Kafka for every applied
// change, mirroring the teacher's collab/kafka.go DocOpEvent.
type DocOpEvent struct {
	EventType    string      `json:"eventType"`
	DocID        string      `json:"docId"`
	OperationID  string      `json:"operationId"`
	Revision     uint64      `json:"revision"`
	AuthorID     string      `json:"authorId"`
	BaseRevision uint64      `json:"baseRevision"`
	Source       string      `json:"source"`
	Ops          delta.Delta `json:"ops"`
	AppliedAt    time.Time   `json:"appliedAt"`
}

// newOperationID mints a collision-proof operation id, replacing the
// teacher's fmt.Sprintf("o-%d", time.Now().UnixNano()) placeholder the
// same way the rest of the pack upgrades ad hoc id generation.
func newOperationID() string {
	return uuid.NewString()
}

func eventFromChange(docID, authorID string, revision, base uint64, evt document.ChangeEvent, appliedAt time.Time) DocOpEvent {
	return DocOpEvent{
		EventType:    "OP_APPLIED",
		DocID:        docID,
		OperationID:  newOperationID(),
		Revision:     revision,
		AuthorID:     authorID,
		BaseRevision: base,
		Source:       string(evt.Source),
		Ops:          evt.Change,
		AppliedAt:    appliedAt,
	}
}

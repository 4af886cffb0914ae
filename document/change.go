package document

import "docengine/delta"

// Source tags who originated a change, so a host layering undo/redo or
// remote synchronization on top of the engine can tell its own
// resubmits apart from genuinely new local edits.
type Source string

const (
	// SourceLocal marks an edit made by the local author.
	SourceLocal Source = "local"
	// SourceRemote marks an edit received from a remote collaborator.
	SourceRemote Source = "remote"
)

// ChangeEvent is the triple published after every successful edit:
// the document as of the previous emission, the change just composed,
// and who originated it.
type ChangeEvent struct {
	Before delta.Delta
	Change delta.Delta
	Source Source
}

// Subscriber receives ChangeEvents synchronously, in the order the
// controller emits them, from inside Compose.
type Subscriber func(ChangeEvent)

// Package rules implements the heuristic rewrite pipelines that turn a
// proposed edit (insert, insert-object, format, delete) into the
// normalized change Delta the document controller composes. Each rule
// is a pure function over a Context snapshot of the document as it
// stood before the edit; rules never mutate the tree directly.
package rules

import (
	"docengine/delta"
	"docengine/object"
	"docengine/style"
)

// Context is the read-only view of document state a rule may consult:
// the document's current Delta (for inspecting ops before/after an
// edit) plus the registries needed to build attributes and resolve
// embed placement.
type Context struct {
	Doc    delta.Delta
	Styles *style.Registry
	Embeds *object.Registry
}

package document

import "fmt"

// InvariantError marks a programmer error: a call that violates the
// controller's API contract (bad index, edit on a closed document, a
// post-compose consistency failure). These are meant to be fatal —
// callers should not try to recover from one mid-edit, mirroring the
// teacher's fail-fast style for misuse versus recoverable content
// errors (unknown attribute/embed keys), which the registries return
// as plain errors instead.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("document: %s: %s", e.Op, e.Msg)
}

func invariant(op, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

package delta

// Iterator walks a Delta's ops in units of length >= 1, splitting the
// current op when a caller asks for a shorter prefix than remains.
type Iterator struct {
	ops    Delta
	index  int
	offset int // consumed length within ops[index]
}

// NewIterator returns an iterator positioned at the start of d.
func NewIterator(d Delta) *Iterator {
	return &Iterator{ops: d}
}

// HasNext reports whether any length remains to iterate.
func (it *Iterator) HasNext() bool {
	return it.PeekLength() < maxInt
}

const maxInt = int(^uint(0) >> 1)

// PeekLength returns the length remaining in the current op, or maxInt
// when the iterator is exhausted (so callers can Min() against it
// without a branch).
func (it *Iterator) PeekLength() int {
	if it.index >= len(it.ops) {
		return maxInt
	}
	return it.ops[it.index].Length() - it.offset
}

// PeekKind returns the Kind of the op the iterator currently sits on,
// or a zero Kind with ok=false when exhausted.
func (it *Iterator) PeekKind() (Kind, bool) {
	if it.index >= len(it.ops) {
		return 0, false
	}
	return it.ops[it.index].Kind, true
}

// Next consumes up to maxLen positions from the current op, splitting it
// if necessary, and returns the consumed prefix as a standalone Op. If
// maxLen <= 0, a large sentinel is used so the whole remaining op is
// consumed. Next panics if the iterator is exhausted; callers should
// guard with HasNext.
func (it *Iterator) Next(maxLen int) Op {
	if maxLen <= 0 {
		maxLen = maxInt
	}
	if it.index >= len(it.ops) {
		panic("delta: Next called on exhausted iterator")
	}
	op := it.ops[it.index]
	remaining := op.Length() - it.offset

	if maxLen >= remaining {
		start := it.offsetFor(op)
		it.index++
		it.offset = 0
		return sliceOp(op, start, remaining)
	}

	start := it.offsetFor(op)
	it.offset += maxLen
	return sliceOp(op, start, maxLen)
}

// offsetFor returns the rune offset into op.Text that corresponds to the
// iterator's current internal offset, for text ops; for non-text ops the
// internal offset already matches the semantic offset.
func (it *Iterator) offsetFor(op Op) int {
	return it.offset
}

func sliceOp(op Op, start, length int) Op {
	switch op.Kind {
	case KindInsertText:
		runes := []rune(op.Text)
		end := start + length
		if end > len(runes) {
			end = len(runes)
		}
		return InsertText(string(runes[start:end]), op.Attrs)
	case KindInsertObject:
		return op
	default:
		cp := op
		cp.Len = length
		return cp
	}
}

// Skip advances the iterator to document offset n (from its current
// position) and returns the op that ends at or straddles n — i.e. the
// op immediately preceding offset n — or a zero Op with ok=false when n
// is 0 and nothing precedes it.
func (it *Iterator) Skip(n int) (Op, bool) {
	var last Op
	ok := false
	for n > 0 && it.HasNext() {
		step := n
		if step > it.PeekLength() {
			step = it.PeekLength()
		}
		last = it.Next(step)
		ok = true
		n -= step
	}
	return last, ok
}

// Rest drains the iterator, returning all remaining ops as a Delta.
func (it *Iterator) Rest() Delta {
	var out Delta
	for it.HasNext() {
		out = out.Push(it.Next(maxInt))
	}
	return out
}

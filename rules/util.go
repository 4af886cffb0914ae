package rules

import "docengine/delta"

// flank returns the doc op ending exactly at index (prev) and the doc
// op starting exactly at index (next), splitting an op that straddles
// index into its two halves. Either may be absent at a document edge.
func flank(doc delta.Delta, index int) (prev, next delta.Op, hasPrev, hasNext bool) {
	off := 0
	for _, op := range doc {
		n := op.Length()
		switch {
		case off+n <= index:
			prev, hasPrev = op, true
			off += n
		case off >= index:
			next, hasNext = op, true
			return
		default:
			local := index - off
			left, right := splitOp(op, local)
			prev, hasPrev = left, true
			next, hasNext = right, true
			return
		}
	}
	return
}

// splitOp divides a text op into [0,at) and [at,end); non-text ops
// (length always 1) are returned unsplit on both sides, since a
// straddling split point for them is impossible in practice.
func splitOp(op delta.Op, at int) (left, right delta.Op) {
	if op.Kind != delta.KindInsertText {
		return op, op
	}
	r := []rune(op.Text)
	if at < 0 {
		at = 0
	}
	if at > len(r) {
		at = len(r)
	}
	return delta.InsertText(string(r[:at]), op.Attrs), delta.InsertText(string(r[at:]), op.Attrs)
}

// attrEqual reports whether both maps carry key with equal values. A
// key missing from either map counts as unequal.
func attrEqual(a, b map[string]any, key string) bool {
	av, aok := a[key]
	bv, bok := b[key]
	if !aok || !bok {
		return false
	}
	return av == bv
}

// nextNewline scans doc forward from absolute offset `from` and returns
// the attributes carried by the text op containing the first '\n' at or
// after `from`, along with that newline's absolute offset. A newline
// shares an op only with text carrying identical attributes (delta.Push
// merges equal attributes only; see tree.Root.ToDelta), so the returned
// attrs are exactly that line's style.
func nextNewline(doc delta.Delta, from int) (attrs map[string]any, at int, ok bool) {
	off := 0
	for _, op := range doc {
		n := op.Length()
		if off+n <= from {
			off += n
			continue
		}
		if op.Kind == delta.KindInsertText {
			runes := []rune(op.Text)
			start := from - off
			if start < 0 {
				start = 0
			}
			for i := start; i < len(runes); i++ {
				if runes[i] == '\n' {
					return op.Attrs, off + i, true
				}
			}
		}
		off += n
	}
	return nil, -1, false
}

// cloneMap returns a shallow copy of attrs, or nil.
func cloneMap(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

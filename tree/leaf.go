package tree

import "docengine/style"

// textLeaves splits a newline-free run of text into Text leaves. Rules
// never hand the tree multi-style runs in one call, so this always
// returns a single-element slice in practice; it stays a slice so
// callers can append without a special case.
func textLeaves(s string, sty style.Style) []Leaf {
	if s == "" {
		return nil
	}
	return []Leaf{&Text{Value: s, Sty: sty}}
}

// splitTextLeaf splits a Text leaf at rune offset at into two leaves
// sharing its style.
func splitTextLeaf(t *Text, at int) (*Text, *Text) {
	r := []rune(t.Value)
	left := &Text{Value: string(r[:at]), Sty: t.Sty}
	right := &Text{Value: string(r[at:]), Sty: t.Sty}
	return left, right
}

// locateLeaf returns the index of the leaf containing content offset
// pos, and the offset within that leaf. When pos lands exactly on a
// leaf boundary, the returned sub-offset is 0 and idx is the leaf that
// starts there (or len(leaves) if pos is the line's content end).
func (l *Line) locateLeaf(pos int) (idx, sub int) {
	off := 0
	for i, leaf := range l.leaves {
		n := leaf.Length()
		if pos < off+n {
			return i, pos - off
		}
		off += n
	}
	return len(l.leaves), 0
}

// insertAt splices leaves into the line's content at offset pos,
// splitting a Text leaf if pos lands inside one.
func (l *Line) insertAt(pos int, leaves []Leaf) {
	if len(leaves) == 0 {
		return
	}
	idx, sub := l.locateLeaf(pos)
	if sub == 0 {
		next := make([]Leaf, 0, len(l.leaves)+len(leaves))
		next = append(next, l.leaves[:idx]...)
		next = append(next, leaves...)
		next = append(next, l.leaves[idx:]...)
		l.leaves = next
	} else {
		t, ok := l.leaves[idx].(*Text)
		if !ok {
			// sub > 0 is impossible for an Embed (length 1); defensive only.
			sub = 0
			l.insertAt(pos, leaves)
			return
		}
		left, right := splitTextLeaf(t, sub)
		next := make([]Leaf, 0, len(l.leaves)+len(leaves)+1)
		next = append(next, l.leaves[:idx]...)
		next = append(next, left)
		next = append(next, leaves...)
		next = append(next, right)
		next = append(next, l.leaves[idx+1:]...)
		l.leaves = next
	}
	l.mergeAdjacentText()
}

// deleteRange removes n content positions starting at pos, splitting
// leaves at either edge as needed.
func (l *Line) deleteRange(pos, n int) {
	if n <= 0 {
		return
	}
	startIdx, startSub := l.locateLeaf(pos)
	endIdx, endSub := l.locateLeaf(pos + n)

	var next []Leaf
	next = append(next, l.leaves[:startIdx]...)
	if startSub > 0 {
		if t, ok := l.leaves[startIdx].(*Text); ok {
			left, _ := splitTextLeaf(t, startSub)
			next = append(next, left)
		}
	}
	if endSub > 0 && endIdx < len(l.leaves) {
		if t, ok := l.leaves[endIdx].(*Text); ok {
			_, right := splitTextLeaf(t, endSub)
			next = append(next, right)
			endIdx++
		}
	}
	next = append(next, l.leaves[endIdx:]...)
	l.leaves = next
	l.mergeAdjacentText()
}

// applyInlineStyle applies sty (inline attributes only) to the leaves
// covering content range [pos, pos+n).
func (l *Line) applyInlineStyle(pos, n int, sty style.Style) {
	if n <= 0 {
		return
	}
	startIdx, startSub := l.locateLeaf(pos)
	endIdx, endSub := l.locateLeaf(pos + n)

	// Materialize split boundaries first so the loop below can apply
	// style leaf-by-leaf without cutting across a partially-covered leaf.
	if startSub > 0 {
		if t, ok := l.leaves[startIdx].(*Text); ok {
			left, right := splitTextLeaf(t, startSub)
			l.leaves = spliceLeaf(l.leaves, startIdx, left, right)
			startIdx++
			endIdx++
		}
	}
	if endSub > 0 {
		if t, ok := l.leaves[endIdx].(*Text); ok {
			left, right := splitTextLeaf(t, endSub)
			l.leaves = spliceLeaf(l.leaves, endIdx, left, right)
			endIdx++
		}
	}
	for i := startIdx; i < endIdx && i < len(l.leaves); i++ {
		switch leaf := l.leaves[i].(type) {
		case *Text:
			leaf.Sty = leaf.Sty.MergeAll(sty)
		case *Embed:
			leaf.Sty = leaf.Sty.MergeAll(sty)
		}
	}
	l.mergeAdjacentText()
}

func spliceLeaf(leaves []Leaf, idx int, replacement ...Leaf) []Leaf {
	next := make([]Leaf, 0, len(leaves)+len(replacement)-1)
	next = append(next, leaves[:idx]...)
	next = append(next, replacement...)
	next = append(next, leaves[idx+1:]...)
	return next
}

// mergeAdjacentText folds consecutive Text leaves sharing an identical
// style into one, keeping the line's leaf sequence normalized.
func (l *Line) mergeAdjacentText() {
	if len(l.leaves) < 2 {
		return
	}
	out := l.leaves[:1]
	for _, leaf := range l.leaves[1:] {
		t, ok := leaf.(*Text)
		if ok {
			if pt, ok := out[len(out)-1].(*Text); ok && pt.Sty.Equal(t.Sty) {
				pt.Value += t.Value
				continue
			}
		}
		out = append(out, leaf)
	}
	l.leaves = out
}

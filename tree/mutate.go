package tree

import (
	"strings"

	"docengine/delta"
	"docengine/style"
)

// locate resolves a document offset to a line index and a content
// offset within that line. With inclusive, an offset landing exactly on
// a line boundary (just past a line's terminating newline) resolves to
// that preceding line, at local offset Length(), rather than spilling
// into the next line; Lookup uses this to resolve zero-length boundary
// queries the way spec.md §4.4 describes.
func (r *Root) locate(offset int, inclusive bool) (idx, local int) {
	off := 0
	for i, line := range r.lines {
		n := line.Length()
		if offset < off+n || (inclusive && offset == off+n) {
			return i, offset - off
		}
		off += n
	}
	if len(r.lines) == 0 {
		return 0, 0
	}
	last := len(r.lines) - 1
	return last, r.lines[last].Length()
}

// Lookup returns the line at offset and the offset within that line,
// for callers that need to inspect content without mutating the tree.
func (r *Root) Lookup(offset int, inclusive bool) (line *Line, localOffset int) {
	idx, local := r.locate(offset, inclusive)
	return r.lines[idx], local
}

// Insert splices text into the tree at offset under sty. Text
// containing one or more '\n' splits the containing line; each produced
// line break takes sty's line-scoped attribute when present, or
// otherwise preserves the line style of the line being split.
func (r *Root) Insert(offset int, text string, sty style.Style) {
	text = delta.StripPlaceholder(text)
	if text == "" {
		return
	}
	idx, local := r.locate(offset, false)
	line := r.lines[idx]

	if !strings.Contains(text, "\n") {
		line.insertAt(local, textLeaves(text, sty))
		return
	}

	pieces := strings.Split(text, "\n")
	head, tail := pieces[0], pieces[len(pieces)-1]
	middle := pieces[1 : len(pieces)-1]

	originalStyle := line.style
	newLineAttr, hasNewLineAttr := sty.LineStyle()

	tailLeaves := append([]Leaf{}, sliceAfter(line, local)...)
	line.leaves = sliceBefore(line, local)
	line.insertAt(line.ContentLength(), textLeaves(head, sty))
	if hasNewLineAttr {
		line.style = line.style.Put(newLineAttr)
	}

	inserted := make([]*Line, 0, len(middle)+1)
	for _, piece := range middle {
		l := NewLine(originalStyle)
		if hasNewLineAttr {
			l.style = style.New().Put(newLineAttr)
		}
		l.insertAt(0, textLeaves(piece, sty))
		inserted = append(inserted, l)
	}

	tailLine := NewLine(originalStyle)
	tailLine.insertAt(0, textLeaves(tail, sty))
	tailLine.leaves = append(tailLine.leaves, tailLeaves...)
	tailLine.mergeAdjacentText()
	inserted = append(inserted, tailLine)

	next := make([]*Line, 0, len(r.lines)+len(inserted))
	next = append(next, r.lines[:idx+1]...)
	next = append(next, inserted...)
	next = append(next, r.lines[idx+1:]...)
	r.lines = next
}

func sliceBefore(l *Line, pos int) []Leaf {
	idx, sub := l.locateLeaf(pos)
	if sub == 0 {
		out := make([]Leaf, idx)
		copy(out, l.leaves[:idx])
		return out
	}
	t := l.leaves[idx].(*Text)
	left, _ := splitTextLeaf(t, sub)
	out := make([]Leaf, 0, idx+1)
	out = append(out, l.leaves[:idx]...)
	out = append(out, left)
	return out
}

func sliceAfter(l *Line, pos int) []Leaf {
	idx, sub := l.locateLeaf(pos)
	if sub == 0 {
		out := make([]Leaf, len(l.leaves)-idx)
		copy(out, l.leaves[idx:])
		return out
	}
	t := l.leaves[idx].(*Text)
	_, right := splitTextLeaf(t, sub)
	out := make([]Leaf, 0, len(l.leaves)-idx)
	out = append(out, right)
	out = append(out, l.leaves[idx+1:]...)
	return out
}

// InsertObject splices a single embed leaf into the tree at offset.
// Placement (inline vs. line) has already been enforced by the
// insert-object rule pipeline before this is called; the tree simply
// places the leaf where asked.
func (r *Root) InsertObject(offset int, key string, value any, sty style.Style) {
	idx, local := r.locate(offset, false)
	line := r.lines[idx]
	line.insertAt(local, []Leaf{&Embed{Key: key, Value: value, Sty: sty}})
}

// Delete removes length content positions starting at offset, merging
// lines across any deleted newline. The merged line takes the style of
// the later (surviving) line, per spec.md §4.4; a delete rule wishing to
// preserve the earlier line's style (rules.PreserveLineStyleOnMerge)
// does so with a follow-up Retain.
func (r *Root) Delete(offset, length int) {
	for length > 0 {
		idx, local := r.locate(offset, false)
		line := r.lines[idx]
		contentLen := line.ContentLength()

		if local < contentLen {
			take := length
			if take > contentLen-local {
				take = contentLen - local
			}
			line.deleteRange(local, take)
			length -= take
			continue
		}

		if idx+1 >= len(r.lines) {
			// Nothing left to merge into; the trailing document newline
			// is never deleted by the tree itself.
			break
		}
		next := r.lines[idx+1]
		line.leaves = append(line.leaves, next.leaves...)
		line.style = next.style
		line.mergeAdjacentText()
		r.lines = append(r.lines[:idx+1], r.lines[idx+2:]...)
		length--
	}
}

// Retain applies sty's attributes over length content positions
// starting at offset, without altering content. A line-scoped attribute
// in sty is applied at whichever newline positions fall within range;
// inline attributes are applied to the covered leaves.
func (r *Root) Retain(offset, length int, sty style.Style) {
	if sty.IsEmpty() || length <= 0 {
		return
	}
	lineAttr, hasLine := sty.LineStyle()
	inline := sty
	if hasLine {
		inline = sty.RemoveAll(lineAttr.Key)
	}

	if hasLine {
		pos := offset
		end := offset + length
		for pos < end {
			idx, local := r.locate(pos, false)
			line := r.lines[idx]
			if local >= line.ContentLength() {
				line.style = line.style.Merge(lineAttr)
				pos++
				continue
			}
			advance := line.ContentLength() - local
			if pos+advance > end {
				advance = end - pos
			}
			pos += advance
		}
	}

	if !inline.IsEmpty() {
		r.applyInlineRange(offset, length, inline)
	}
}

func (r *Root) applyInlineRange(offset, length int, sty style.Style) {
	pos := offset
	end := offset + length
	for pos < end {
		idx, local := r.locate(pos, false)
		line := r.lines[idx]
		contentLen := line.ContentLength()
		if local >= contentLen {
			pos++
			continue
		}
		take := contentLen - local
		if pos+take > end {
			take = end - pos
		}
		line.applyInlineStyle(local, take, sty)
		pos += take
	}
}

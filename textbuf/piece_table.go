// Package textbuf implements a piece-table plain-text projection,
// applying the same Delta the document controller composes into the
// tree so the flattened text view never needs to re-walk it.
package textbuf

import "docengine/delta"

type bufferKind int

const (
	bufOriginal bufferKind = iota
	bufAdd
)

type piece struct {
	buf    bufferKind
	offset int
	length int
}

// PieceTable is an append-only text buffer: edits accumulate in a
// separate "add" rune slice while a list of pieces records how the
// original and added runs interleave into the current text.
type PieceTable struct {
	original []rune
	add      []rune
	pieces   []piece
}

// New returns a PieceTable seeded with initial content.
func New(initial string) *PieceTable {
	r := []rune(initial)
	pt := &PieceTable{original: r}
	if len(r) > 0 {
		pt.pieces = []piece{{buf: bufOriginal, offset: 0, length: len(r)}}
	}
	return pt
}

// Len returns the buffer's current length in runes.
func (pt *PieceTable) Len() int {
	n := 0
	for _, p := range pt.pieces {
		n += p.length
	}
	return n
}

// String renders the buffer's current content.
func (pt *PieceTable) String() string {
	var out []rune
	for _, p := range pt.pieces {
		switch p.buf {
		case bufOriginal:
			out = append(out, pt.original[p.offset:p.offset+p.length]...)
		case bufAdd:
			out = append(out, pt.add[p.offset:p.offset+p.length]...)
		}
	}
	return string(out)
}

// Apply walks a change Delta and updates the piece list in place.
// Object inserts count as a single placeholder rune, matching
// tree.Root.ToPlainText's convention.
func (pt *PieceTable) Apply(d delta.Delta) {
	pos := 0
	for _, op := range d {
		switch op.Kind {
		case delta.KindRetain:
			pos += op.Len

		case delta.KindInsertText, delta.KindInsertObject:
			text := op.Text
			if op.Kind == delta.KindInsertObject {
				text = string(delta.ObjectReplacementChar)
			}
			pt.insertAt(pos, text)
			pos += len([]rune(text))

		case delta.KindDelete:
			pt.deleteAt(pos, op.Len)
		}
	}
}

func (pt *PieceTable) insertAt(pos int, text string) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	start := len(pt.add)
	pt.add = append(pt.add, runes...)
	newPiece := piece{buf: bufAdd, offset: start, length: len(runes)}

	idx, offset := pt.locate(pos)
	if idx >= len(pt.pieces) {
		pt.pieces = append(pt.pieces, newPiece)
		return
	}
	cur := pt.pieces[idx]
	left := piece{buf: cur.buf, offset: cur.offset, length: offset}
	right := piece{buf: cur.buf, offset: cur.offset + offset, length: cur.length - offset}

	next := make([]piece, 0, len(pt.pieces)+2)
	next = append(next, pt.pieces[:idx]...)
	if left.length > 0 {
		next = append(next, left)
	}
	next = append(next, newPiece)
	if right.length > 0 {
		next = append(next, right)
	}
	next = append(next, pt.pieces[idx+1:]...)
	pt.pieces = next
}

func (pt *PieceTable) deleteAt(pos, length int) {
	remain := length
	idx, offset := pt.locate(pos)

	for remain > 0 && idx < len(pt.pieces) {
		cur := pt.pieces[idx]
		can := cur.length - offset
		if can <= 0 {
			idx++
			offset = 0
			continue
		}
		take := remain
		if take > can {
			take = can
		}

		if offset == 0 && take == cur.length {
			pt.pieces = append(pt.pieces[:idx], pt.pieces[idx+1:]...)
		} else {
			leftLen := offset
			rightLen := cur.length - offset - take
			next := make([]piece, 0, len(pt.pieces)+1)
			next = append(next, pt.pieces[:idx]...)
			if leftLen > 0 {
				next = append(next, piece{buf: cur.buf, offset: cur.offset, length: leftLen})
			}
			if rightLen > 0 {
				next = append(next, piece{buf: cur.buf, offset: cur.offset + offset + take, length: rightLen})
			}
			next = append(next, pt.pieces[idx+1:]...)
			pt.pieces = next
			idx++
		}
		remain -= take
		offset = 0
	}
}

func (pt *PieceTable) locate(pos int) (idx, offset int) {
	cur := 0
	for i, p := range pt.pieces {
		if pos < cur+p.length {
			return i, pos - cur
		}
		cur += p.length
	}
	return len(pt.pieces), 0
}

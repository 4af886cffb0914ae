package tree

import (
	"fmt"

	"docengine/delta"
	"docengine/style"
)

// FromDelta rebuilds a Root from a well-formed document Delta (one that
// satisfies delta.Delta.IsDocument). The document controller uses this
// once at construction time; all later mutation goes through the
// offset-based mutators so the tree and the running Delta never drift.
func FromDelta(d delta.Delta, reg *style.Registry) (*Root, error) {
	if !d.IsDocument() {
		return nil, fmt.Errorf("tree: delta is not a well-formed document")
	}
	r := &Root{}
	cur := NewLine(style.New())

	for _, op := range d {
		sty, err := style.FromRawAttributes(op.Attrs, reg)
		if err != nil {
			return nil, err
		}
		switch op.Kind {
		case delta.KindInsertObject:
			cur.leaves = append(cur.leaves, &Embed{Key: op.Key, Value: op.Value, Sty: sty})
		case delta.KindInsertText:
			pieces := splitKeepingNewlines(op.Text)
			for _, p := range pieces {
				if p.text != "" {
					cur.leaves = append(cur.leaves, &Text{Value: p.text, Sty: sty})
				}
				if p.newline {
					lineAttr, hasLine := sty.LineStyle()
					if hasLine {
						cur.style = style.New().Put(lineAttr)
					}
					cur.mergeAdjacentText()
					r.lines = append(r.lines, cur)
					cur = NewLine(style.New())
				}
			}
		}
	}
	if len(cur.leaves) > 0 {
		// Malformed trailing content with no closing newline; tolerate by
		// appending it as a final line so construction never panics.
		cur.mergeAdjacentText()
		r.lines = append(r.lines, cur)
	}
	if len(r.lines) == 0 {
		r.lines = append(r.lines, NewLine(style.New()))
	}
	return r, nil
}

type piece struct {
	text    string
	newline bool
}

// splitKeepingNewlines breaks s into runs of non-newline text paired
// with a trailing-newline flag, one piece per produced line segment.
func splitKeepingNewlines(s string) []piece {
	var out []piece
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, piece{text: s[start:i], newline: true})
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, piece{text: s[start:], newline: false})
	}
	return out
}

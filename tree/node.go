// Package tree implements the document's tree model: Root, Block, Line,
// Text and Embed nodes, mutated at character offsets in lockstep with
// the flat Delta the document controller maintains.
package tree

import "docengine/style"

// Leaf is either a Text or an Embed: the non-container content of a
// Line.
type Leaf interface {
	Length() int
	Style() style.Style
}

// Text is a leaf carrying a run of characters under a single inline
// style.
type Text struct {
	Value string
	Sty   style.Style
}

// Length returns the leaf's length in runes.
func (t *Text) Length() int { return len([]rune(t.Value)) }

// Style returns the leaf's inline style.
func (t *Text) Style() style.Style { return t.Sty }

// Embed is a leaf of length 1 carrying an opaque, typed value.
type Embed struct {
	Key   string
	Value any
	Sty   style.Style
}

// Length is always 1 for an embed.
func (e *Embed) Length() int { return 1 }

// Style returns the embed's inline style.
func (e *Embed) Style() style.Style { return e.Sty }

// Line is a run of leaves terminated by '\n'; it carries an optional
// line style. Line length includes the terminal newline.
type Line struct {
	leaves []Leaf
	style  style.Style
}

// NewLine returns an empty line with the given line style.
func NewLine(sty style.Style) *Line {
	return &Line{style: sty}
}

// Leaves returns the line's leaves in order.
func (l *Line) Leaves() []Leaf { return l.leaves }

// Style returns the line's line style.
func (l *Line) Style() style.Style { return l.style }

// SetStyle replaces the line's line style.
func (l *Line) SetStyle(sty style.Style) { l.style = sty }

// ContentLength is the sum of leaf lengths, excluding the newline.
func (l *Line) ContentLength() int {
	n := 0
	for _, leaf := range l.leaves {
		n += leaf.Length()
	}
	return n
}

// Length is ContentLength plus the terminating newline.
func (l *Line) Length() int { return l.ContentLength() + 1 }

// HasLineEmbed reports whether the line's only content is a single
// embed leaf (invariant 3: a line-placed embed's line contains exactly
// that embed and its terminating newline, nothing else). The embed's
// placement is not checked: any lone embed counts.
func (l *Line) HasLineEmbed() bool {
	if len(l.leaves) != 1 {
		return false
	}
	_, ok := l.leaves[0].(*Embed)
	return ok
}

// Block groups consecutive lines sharing the same line-scoped attribute
// key and value (invariant 4). Lines whose line style carries no
// line-scoped attribute, or carries "header" (which lives directly
// under the root per spec.md §4.4), are never wrapped in a Block.
type Block struct {
	AttrKey   string
	AttrValue any
	lines     []*Line
}

// Lines returns the block's member lines in order.
func (b *Block) Lines() []*Line { return b.lines }

// Length is the sum of the block's line lengths.
func (b *Block) Length() int {
	n := 0
	for _, l := range b.lines {
		n += l.Length()
	}
	return n
}

// Node is either a *Line or a *Block; Root.Children returns a slice of
// these, grouped per invariant 4.
type Node interface {
	Length() int
}

// blockableKeys are the line-scoped attribute keys whose semantics
// require a Block container even for a single line (list/quote/code).
// "header" is intentionally excluded: heading lines live directly under
// the root.
var blockableKeys = map[string]bool{
	"list":       true,
	"blockquote": true,
	"code-block": true,
}

// Root owns the document's tree from construction to Close. Children
// are created/split/merged by the mutators in mutate.go; nothing outside
// this package mutates the tree.
type Root struct {
	lines []*Line
}

// NewRoot returns an empty root containing a single empty, unstyled
// line (the minimal well-formed document "\n").
func NewRoot() *Root {
	return &Root{lines: []*Line{NewLine(style.New())}}
}

// Lines returns the root's flat line sequence (the authoritative
// representation; Children groups it into the block view on demand).
func (r *Root) Lines() []*Line { return r.lines }

// Length is the sum of the root's line lengths, matching the document's
// total Delta length.
func (r *Root) Length() int {
	n := 0
	for _, l := range r.lines {
		n += l.Length()
	}
	return n
}

// Children returns the grouped, invariant-4-respecting view of the
// tree's top level: consecutive lines sharing a blockable line-scoped
// attribute (key and value) are grouped under a single *Block; all
// other lines (including headings) appear as bare *Line nodes.
func (r *Root) Children() []Node {
	var out []Node
	i := 0
	for i < len(r.lines) {
		line := r.lines[i]
		attr, ok := line.style.LineStyle()
		if !ok || !blockableKeys[attr.Key] {
			out = append(out, line)
			i++
			continue
		}
		block := &Block{AttrKey: attr.Key, AttrValue: attr.Value, lines: []*Line{line}}
		j := i + 1
		for j < len(r.lines) {
			next := r.lines[j]
			nattr, ok := next.style.LineStyle()
			if !ok || nattr.Key != attr.Key || nattr.Value != attr.Value {
				break
			}
			block.lines = append(block.lines, next)
			j++
		}
		out = append(out, block)
		i = j
	}
	return out
}

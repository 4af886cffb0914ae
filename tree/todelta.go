package tree

import "docengine/delta"

// ToDelta renders the tree back into a document Delta: one insert op
// per leaf, followed by a newline insert carrying the line's style, for
// every line in document order. The document controller asserts this
// equals the Delta it composed after every mutation (spec.md §7).
func (r *Root) ToDelta() delta.Delta {
	d := delta.New()
	for _, line := range r.lines {
		for _, leaf := range line.leaves {
			switch v := leaf.(type) {
			case *Text:
				d = d.Push(delta.InsertText(v.Value, v.Sty.ToMap()))
			case *Embed:
				d = d.Push(delta.InsertObject(v.Key, v.Value, v.Sty.ToMap()))
			}
		}
		d = d.Push(delta.InsertText("\n", line.style.ToMap()))
	}
	return d
}

// ToPlainText concatenates every leaf's textual content (embeds render
// as the object replacement character) with line breaks, for callers
// that want a plain-text projection without going through delta.
func (r *Root) ToPlainText() string {
	var sb []rune
	for _, line := range r.lines {
		for _, leaf := range line.leaves {
			switch v := leaf.(type) {
			case *Text:
				sb = append(sb, []rune(v.Value)...)
			case *Embed:
				sb = append(sb, delta.ObjectReplacementChar)
			}
		}
		sb = append(sb, '\n')
	}
	return string(sb)
}

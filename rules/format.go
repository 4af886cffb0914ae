package rules

import (
	"docengine/delta"
	"docengine/style"
)

// LinkAtCaret handles formatting a zero-length link attribute at a
// caret sitting inside an existing link run: both flanking ops must
// carry the same link value, in which case the whole contiguous run is
// re-formatted to the new value rather than splitting it.
func LinkAtCaret(ctx Context, index, length int, attr style.Attribute) (delta.Delta, bool) {
	if attr.Key != "link" || length != 0 {
		return nil, false
	}
	prev, next, hasPrev, hasNext := flank(ctx.Doc, index)
	if !hasPrev || !hasNext {
		return nil, false
	}
	if !attrEqual(prev.Attrs, next.Attrs, "link") {
		return nil, false
	}
	value := prev.Attrs["link"]
	start, end := runBounds(ctx.Doc, index, "link", value)
	if start == end {
		return nil, false
	}
	d := delta.New().RetainN(start, nil).RetainN(end-start, map[string]any{"link": attr.Value})
	return d.Trim(), true
}

// runBounds returns the [start, end) offsets of the single doc op
// straddling index that carries attrs[key] == value. Document Deltas
// normalize equal-attribute adjacent text into one op (delta.Push), so
// a link run is, in practice, exactly one op.
func runBounds(doc delta.Delta, index int, key string, value any) (start, end int) {
	off := 0
	for _, op := range doc {
		n := op.Length()
		if off <= index && index <= off+n {
			if v, ok := op.Attrs[key]; ok && v == value {
				return off, off + n
			}
			return index, index
		}
		off += n
	}
	return index, index
}

// ResolveLineFormat applies a line-scoped attribute to every newline in
// [index, index+length) and, for the zero-length-caret case, continues
// past the range to the next newline so a format at any caret position
// on a line formats that whole line. It unsets any other line-scoped
// attribute already present at a target newline.
func ResolveLineFormat(ctx Context, index, length int, attr style.Attribute) (delta.Delta, bool) {
	if attr.Scope != style.Line {
		return nil, false
	}
	end := index + length
	if _, at, ok := nextNewline(ctx.Doc, end); ok {
		end = at + 1
	} else {
		end = ctx.Doc.Length()
	}

	d := delta.New().RetainN(index, nil)
	pos := index
	for pos < end {
		existing, at, ok := nextNewline(ctx.Doc, pos)
		if !ok || at >= end {
			break
		}
		if at > pos {
			d = d.RetainN(at-pos, nil)
		}
		result := map[string]any{attr.Key: attr.Value}
		for _, k := range style.LineScopedKeys {
			if k == attr.Key {
				continue
			}
			if _, present := existing[k]; present {
				result[k] = nil
			}
		}
		d = d.RetainN(1, result)
		pos = at + 1
	}
	return d.Trim(), true
}

// ResolveInlineFormat applies an inline-scoped attribute to every
// non-newline position in [index, index+length), retaining newlines
// unchanged.
func ResolveInlineFormat(ctx Context, index, length int, attr style.Attribute) (delta.Delta, bool) {
	if attr.Scope != style.Inline {
		return nil, false
	}
	d := delta.New().RetainN(index, nil)
	pos := index
	end := index + length
	for pos < end {
		_, at, ok := nextNewline(ctx.Doc, pos)
		segEnd := end
		if ok && at < end {
			segEnd = at
		}
		if segEnd > pos {
			d = d.RetainN(segEnd-pos, map[string]any{attr.Key: attr.Value})
		}
		if ok && at < end {
			d = d.RetainN(1, nil)
			pos = at + 1
		} else {
			pos = end
		}
	}
	return d.Trim(), true
}

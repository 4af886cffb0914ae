package rules

import (
	"strings"

	"docengine/delta"
	"docengine/object"
	"docengine/style"
)

// LinePlacedObject ensures a line-placed embed ends up alone on its own
// line: if index already sits on an empty line it inserts the embed as
// is; otherwise it splits the line, inserting a leading newline
// (carrying the split line's style) when the embed would not otherwise
// start a fresh line, and a plain trailing newline when it would not
// otherwise end one.
func LinePlacedObject(ctx Context, index int, et object.EmbedType, value any, sty style.Style) (delta.Delta, bool) {
	if et.Placement != object.Line {
		return nil, false
	}
	prev, next, hasPrev, hasNext := flank(ctx.Doc, index)
	prevIsNL := !hasPrev || (prev.Kind == delta.KindInsertText && strings.HasSuffix(prev.Text, "\n"))
	nextIsNL := !hasNext || (next.Kind == delta.KindInsertText && strings.HasPrefix(next.Text, "\n"))

	d := delta.New().RetainN(index, nil)
	if !prevIsNL {
		attrs, _, ok := nextNewline(ctx.Doc, index)
		if !ok {
			attrs = nil
		}
		d = d.Insert("\n", attrs)
	}
	d = d.InsertKeyed(et.Key, value, sty.ToMap())
	if !nextIsNL {
		d = d.Insert("\n", nil)
	}
	return d.Trim(), true
}

// InsertObjectCatchAll inserts the embed as is, guaranteeing the
// insert-object pipeline terminates.
func InsertObjectCatchAll(ctx Context, index int, et object.EmbedType, value any, sty style.Style) (delta.Delta, bool) {
	d := delta.New().RetainN(index, nil).InsertKeyed(et.Key, value, sty.ToMap())
	return d.Trim(), true
}

package rules

import (
	"strings"

	"docengine/delta"
	"docengine/object"
	"docengine/style"
)

// EnsureEmbedLine detects the one unambiguous case where a delete would
// strand a line-placed embed with neighboring text: deleting up to (but
// not past) an embed's leading newline while content already precedes
// it on that line. In that case a delete longer than one position is
// shortened by one so the embed's leading newline survives; a delete of
// a single position yields. Deletions that do not touch an embed's
// boundary always yield.
func EnsureEmbedLine(ctx Context, index, length int) (delta.Delta, bool) {
	end := index + length
	_, next, _, hasNext := flank(ctx.Doc, end)
	if !hasNext || next.Kind != delta.KindInsertObject {
		return nil, false
	}
	et, err := ctx.Embeds.Get(next.Key, next.Value)
	if err != nil || et.Placement != object.Line {
		return nil, false
	}
	prev, _, hasPrev, _ := flank(ctx.Doc, index)
	prevEndsNL := !hasPrev || (prev.Kind == delta.KindInsertText && strings.HasSuffix(prev.Text, "\n"))
	if prevEndsNL {
		return nil, false
	}
	// Content would land directly before the embed on its own line; the
	// tree's HasLineEmbed invariant would be violated. Constrain the
	// delete to stop short of the embed's newline so its line stays
	// untouched, and return the shortened delete.
	if length <= 1 {
		return nil, false
	}
	d := delta.New().RetainN(index, nil).DeleteN(length - 1)
	return d.Trim(), true
}

// PreserveLineStyleOnMerge: when a delete consumes the newline
// terminating a line with a line-scoped attribute, and the surviving
// (next) line does not already carry that attribute key, propagate the
// deleted line's attribute onto the surviving newline rather than
// letting it silently disappear.
func PreserveLineStyleOnMerge(ctx Context, index, length int) (delta.Delta, bool) {
	end := index + length
	deletedAttrs, at, ok := nextNewline(ctx.Doc, index)
	if !ok || at >= end {
		return nil, false
	}
	var lineKey string
	var lineVal any
	for _, k := range style.LineScopedKeys {
		if v, present := deletedAttrs[k]; present {
			lineKey, lineVal = k, v
			break
		}
	}
	if lineKey == "" {
		return nil, false
	}
	nextAttrs, nextAt, ok2 := nextNewline(ctx.Doc, end)
	if !ok2 {
		return nil, false
	}
	if _, present := nextAttrs[lineKey]; present {
		return nil, false
	}
	d := delta.New().RetainN(index, nil).DeleteN(length)
	d = d.RetainN(nextAt-end, nil)
	d = d.RetainN(1, map[string]any{lineKey: lineVal})
	return d.Trim(), true
}

// DeleteCatchAll applies the deletion literally, guaranteeing the
// delete pipeline terminates.
func DeleteCatchAll(ctx Context, index, length int) (delta.Delta, bool) {
	d := delta.New().RetainN(index, nil).DeleteN(length)
	return d.Trim(), true
}

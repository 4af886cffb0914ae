package rules

import (
	"net/url"
	"strings"

	"docengine/delta"
	"docengine/object"
	"docengine/style"
)

// PreserveBlockStyleOnPaste handles a multi-character paste containing
// at least one newline: it captures the line attributes of the first
// line the paste lands on, splits the pasted text on '\n', and
// propagates that captured style to each produced line break — except
// that a captured heading does not propagate past the first break,
// since headings are not meant to repeat across pasted lines.
func PreserveBlockStyleOnPaste(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	if !strings.Contains(text, "\n") || len([]rune(text)) <= 1 {
		return nil, false
	}
	captured, _, ok := nextNewline(ctx.Doc, index)
	_, isHeader := captured["header"]
	if !ok {
		captured = nil
	}

	pieces := strings.Split(text, "\n")
	d := delta.New().RetainN(index, nil)
	for i, piece := range pieces {
		if piece != "" {
			d = d.Insert(piece, sty.ToMap())
		}
		if i == len(pieces)-1 {
			break
		}
		lineAttrs := cloneMap(captured)
		if i > 0 && isHeader {
			lineAttrs = map[string]any{"header": nil}
		}
		d = d.Insert("\n", lineAttrs)
	}
	return d.Trim(), true
}

// ForceNewlineAroundEmbed wraps the inserted text with a leading or
// trailing '\n' when it would otherwise land adjacent to a line-placed
// embed, so the embed keeps its own line.
func ForceNewlineAroundEmbed(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	prev, next, hasPrev, hasNext := flank(ctx.Doc, index)
	prevIsLineEmbed := hasPrev && isLinePlacedEmbed(ctx, prev)
	nextIsLineEmbed := hasNext && isLinePlacedEmbed(ctx, next)
	if !prevIsLineEmbed && !nextIsLineEmbed {
		return nil, false
	}
	wrapped := text
	if prevIsLineEmbed && !strings.HasPrefix(wrapped, "\n") {
		wrapped = "\n" + wrapped
	}
	if nextIsLineEmbed && !strings.HasSuffix(wrapped, "\n") {
		wrapped = wrapped + "\n"
	}
	d := delta.New().RetainN(index, nil).Insert(wrapped, sty.ToMap())
	return d.Trim(), true
}

func isLinePlacedEmbed(ctx Context, op delta.Op) bool {
	if op.Kind != delta.KindInsertObject {
		return false
	}
	et, err := ctx.Embeds.Get(op.Key, op.Value)
	return err == nil && et.Placement == object.Line
}

// PreserveLineStyleOnSplit handles inserting a bare '\n' in the middle
// of a line (neither side already at a line edge): splitting a line
// whose upcoming newline carries a line-scoped attribute copies that
// attribute onto the freshly inserted newline, so splitting a list item
// yields two list items.
func PreserveLineStyleOnSplit(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	if text != "\n" {
		return nil, false
	}
	prev, next, hasPrev, hasNext := flank(ctx.Doc, index)
	prevEndsNL := hasPrev && prev.Kind == delta.KindInsertText && strings.HasSuffix(prev.Text, "\n")
	nextStartsNL := hasNext && next.Kind == delta.KindInsertText && strings.HasPrefix(next.Text, "\n")
	if prevEndsNL || nextStartsNL {
		return nil, false
	}
	if hasNext && next.Kind == delta.KindInsertText && strings.Contains(next.Text, "\n") {
		d := delta.New().RetainN(index, nil).Insert("\n", nil)
		return d.Trim(), true
	}
	attrs, _, ok := nextNewline(ctx.Doc, index)
	if !ok {
		attrs = nil
	}
	d := delta.New().RetainN(index, nil).Insert("\n", attrs)
	return d.Trim(), true
}

// AutoExitBlock handles pressing enter on an already-empty line inside
// a block (list/quote/code) or on an empty heading line: it unsets the
// line's line-scoped attribute on the target newline instead of
// producing another empty styled line, exiting the block.
func AutoExitBlock(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	if text != "\n" {
		return nil, false
	}
	prev, next, hasPrev, hasNext := flank(ctx.Doc, index)
	prevEndsNL := hasPrev && prev.Kind == delta.KindInsertText && strings.HasSuffix(prev.Text, "\n")
	nextStartsNL := hasNext && next.Kind == delta.KindInsertText && strings.HasPrefix(next.Text, "\n")
	if !(prevEndsNL && nextStartsNL) {
		return nil, false
	}
	attrs, at, ok := nextNewline(ctx.Doc, index)
	if !ok {
		return nil, false
	}
	var lineKey string
	for _, k := range style.LineScopedKeys {
		if _, present := attrs[k]; present {
			lineKey = k
			break
		}
	}
	if lineKey == "" {
		return nil, false
	}
	d := delta.New().RetainN(at, nil).RetainN(1, map[string]any{lineKey: nil})
	return d.Trim(), true
}

// ResetLineFormatOnNewline handles pressing enter right before a
// heading's newline (empty heading lines are handled earlier by
// AutoExitBlock): the new newline carries the heading's attributes, so
// the text before the caret stays a heading, and the original newline,
// which now ends the new line below, is reset to a plain line, since
// headers never propagate.
func ResetLineFormatOnNewline(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	if text != "\n" {
		return nil, false
	}
	_, next, _, hasNext := flank(ctx.Doc, index)
	if !hasNext || next.Kind != delta.KindInsertText || !strings.HasPrefix(next.Text, "\n") {
		return nil, false
	}
	attrs, _, ok := nextNewline(ctx.Doc, index)
	if !ok {
		return nil, false
	}
	if _, present := attrs["header"]; !present {
		return nil, false
	}
	d := delta.New().RetainN(index, nil).Insert("\n", cloneMap(attrs))
	d = d.RetainN(1, map[string]any{"header": nil})
	return d.Trim(), true
}

// AutoFormatLinks fires when the user types a space right after a bare
// http(s) URL: the URL's word is reformatted with a link attribute
// before the space is inserted.
func AutoFormatLinks(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	if text != " " {
		return nil, false
	}
	prev, _, hasPrev, _ := flank(ctx.Doc, index)
	if !hasPrev || prev.Kind != delta.KindInsertText {
		return nil, false
	}
	if _, isLink := prev.Attrs["link"]; isLink {
		return nil, false
	}
	fields := strings.Fields(prev.Text)
	if len(fields) == 0 {
		return nil, false
	}
	word := fields[len(fields)-1]
	u, err := url.Parse(word)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, false
	}
	wordLen := len([]rune(word))
	wordStart := index - wordLen
	if wordStart < 0 {
		return nil, false
	}
	linked := cloneMap(prev.Attrs)
	if linked == nil {
		linked = map[string]any{}
	}
	linked["link"] = word
	d := delta.New().RetainN(wordStart, nil).RetainN(wordLen, linked).Insert(" ", cloneMap(prev.Attrs))
	return d.Trim(), true
}

// PreserveInlineStyles copies the previous op's inline attributes onto
// a newline-free insertion, except a link attribute: that is carried
// forward only when the following op shares the same link value,
// otherwise the caret sits at the link's boundary and must not extend
// it.
func PreserveInlineStyles(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	if strings.Contains(text, "\n") {
		return nil, false
	}
	prev, next, hasPrev, hasNext := flank(ctx.Doc, index)
	if !hasPrev {
		return nil, false
	}
	attrs := cloneMap(prev.Attrs)
	if lv, ok := attrs["link"]; ok {
		if !hasNext || !attrEqual(prev.Attrs, next.Attrs, "link") || next.Attrs["link"] != lv {
			delete(attrs, "link")
		}
	}
	d := delta.New().RetainN(index, nil).Insert(text, attrs)
	return d.Trim(), true
}

// InsertCatchAll unconditionally inserts text at index carrying only
// sty's attributes (none when called from Controller.Insert, which
// passes an empty style), guaranteeing the insert pipeline terminates.
func InsertCatchAll(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool) {
	d := delta.New().RetainN(index, nil).Insert(text, sty.ToMap())
	return d.Trim(), true
}

// Package document implements the document controller: the single
// owner of a document's tree and running Delta, and the orchestration
// of validate -> rules -> compose -> assert-consistency -> publish that
// every edit goes through.
package document

import (
	"docengine/delta"
	"docengine/object"
	"docengine/rules"
	"docengine/style"
	"docengine/textbuf"
	"docengine/tree"
)

// Controller owns one document end to end. It is single-threaded and
// synchronous per spec: no method blocks, and handlers invoked from a
// Compose must not call back into the same Controller (the reentrancy
// guard below turns that programmer error into an InvariantError
// rather than silent tree corruption).
type Controller struct {
	styles *style.Registry
	embeds *object.Registry

	insertRules       []rules.InsertRule
	insertObjectRules []rules.InsertObjectRule
	formatRules       []rules.FormatRule
	deleteRules       []rules.DeleteRule

	doc  delta.Delta
	tree *tree.Root
	text *textbuf.PieceTable

	subscribers []Subscriber
	closed      bool
	composing   bool
}

// New constructs a Controller over initial, a well-formed document
// Delta (an empty Delta is treated as the minimal document "\n"). A
// nil registry argument falls back to the package's default registry.
func New(initial delta.Delta, styles *style.Registry, embeds *object.Registry) (*Controller, error) {
	if styles == nil {
		styles = style.DefaultRegistry()
	}
	if embeds == nil {
		embeds = object.DefaultRegistry()
	}
	if len(initial) == 0 {
		initial = delta.New().Insert("\n", nil)
	}
	root, err := tree.FromDelta(initial, styles)
	if err != nil {
		return nil, invariant("new", "%v", err)
	}

	c := &Controller{
		styles:            styles,
		embeds:            embeds,
		insertRules:       rules.DefaultInsertRules,
		insertObjectRules: rules.DefaultInsertObjectRules,
		formatRules:       rules.DefaultFormatRules,
		deleteRules:       rules.DefaultDeleteRules,
		doc:               initial.Clone(),
		tree:              root,
		text:              textbuf.New(""),
	}
	c.text.Apply(initial)
	return c, nil
}

// UseRules overrides one or more of the controller's rule pipelines.
// Each argument left nil keeps the current pipeline. Per spec.md §9, a
// custom list must still end in a catch-all; ApplyX panics an
// rules.Exhausted if it does not.
func (c *Controller) UseRules(insert []rules.InsertRule, insertObject []rules.InsertObjectRule, format []rules.FormatRule, del []rules.DeleteRule) {
	if insert != nil {
		c.insertRules = insert
	}
	if insertObject != nil {
		c.insertObjectRules = insertObject
	}
	if format != nil {
		c.formatRules = format
	}
	if del != nil {
		c.deleteRules = del
	}
}

// Delta returns a copy of the document's current Delta.
func (c *Controller) Delta() delta.Delta {
	return c.doc.Clone()
}

// IsClosed reports whether Close has been called.
func (c *Controller) IsClosed() bool {
	return c.closed
}

// Close marks the controller read-only; every edit method below
// rejects further calls with an InvariantError.
func (c *Controller) Close() {
	c.closed = true
}

// Subscribe registers sub to receive every future ChangeEvent,
// invoked synchronously in registration order from inside Compose.
func (c *Controller) Subscribe(sub Subscriber) {
	c.subscribers = append(c.subscribers, sub)
}

// ToPlainText returns the document's flattened plain-text projection,
// with one reserved placeholder rune per embed.
func (c *Controller) ToPlainText() string {
	return c.text.String()
}

func (c *Controller) context() rules.Context {
	return rules.Context{Doc: c.doc, Styles: c.styles, Embeds: c.embeds}
}

func (c *Controller) checkOpen(op string) error {
	if c.closed {
		return invariant(op, "edit on a closed document")
	}
	return nil
}

// Insert validates index and text, runs the insert rule pipeline, and
// composes the result.
func (c *Controller) Insert(index int, text string, source Source) (delta.Delta, error) {
	if err := c.checkOpen("insert"); err != nil {
		return nil, err
	}
	docLen := c.doc.Length()
	if index < 0 || index >= docLen {
		return nil, invariant("insert", "index %d out of range [0,%d)", index, docLen)
	}
	text = delta.StripPlaceholder(text)
	if text == "" {
		return nil, invariant("insert", "empty text")
	}
	change := rules.ApplyInsert(c.insertRules, c.context(), index, text, style.New())
	return c.Compose(change, source)
}

// InsertObject validates index and type, runs the insert-object rule
// pipeline, and composes the result. An unknown embed key is a content
// error handled by the embed registry's createMissing policy, not an
// InvariantError.
func (c *Controller) InsertObject(index int, key string, value any, sty style.Style, source Source) (delta.Delta, error) {
	if err := c.checkOpen("insertObject"); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, invariant("insertObject", "empty embed type")
	}
	docLen := c.doc.Length()
	if index < 0 || index >= docLen {
		return nil, invariant("insertObject", "index %d out of range [0,%d)", index, docLen)
	}
	et, err := c.embeds.Get(key, value)
	if err != nil {
		return nil, err
	}
	change := rules.ApplyInsertObject(c.insertObjectRules, c.context(), index, et, value, sty)
	return c.Compose(change, source)
}

// Delete validates the range, runs the delete rule pipeline, and
// composes the result. The result may be an empty Delta if a rule
// vetoes the delete.
func (c *Controller) Delete(index, length int, source Source) (delta.Delta, error) {
	if err := c.checkOpen("delete"); err != nil {
		return nil, err
	}
	docLen := c.doc.Length()
	if index < 0 || length < 0 || index+length > docLen {
		return nil, invariant("delete", "range [%d,%d) out of bounds for length %d", index, index+length, docLen)
	}
	change := rules.ApplyDelete(c.deleteRules, c.context(), index, length)
	return c.Compose(change, source)
}

// Format validates the range, runs the format rule pipeline, and
// composes the result. Format is idempotent when a no-op: the rules
// may return an empty change.
func (c *Controller) Format(index, length int, attr style.Attribute, source Source) (delta.Delta, error) {
	if err := c.checkOpen("format"); err != nil {
		return nil, err
	}
	docLen := c.doc.Length()
	if index < 0 || length < 0 || index+length > docLen {
		return nil, invariant("format", "range [%d,%d) out of bounds for length %d", index, index+length, docLen)
	}
	change := rules.ApplyFormat(c.formatRules, c.context(), index, length, attr)
	return c.Compose(change, source)
}

// Replace composes an insert and a delete into a single logical edit:
// empty text with length > 0 delegates to Delete; zero length delegates
// to Insert; otherwise the insert rules resolve against the document as
// it stands now, the delete rules resolve against the document as it
// would read right after that insert (mirroring "insert at
// index+length then delete [index, index+length)"), and the two
// resulting changes are composed into a single Delta before one
// Compose call applies and publishes it — so a Replace commits (or, on
// a rule failure, leaves the document untouched) exactly like every
// other edit method, and a subscriber sees exactly one ChangeEvent.
// Rejects when both would be empty.
func (c *Controller) Replace(index, length int, text string, source Source) (delta.Delta, error) {
	if err := c.checkOpen("replace"); err != nil {
		return nil, err
	}
	text = delta.StripPlaceholder(text)
	if text == "" && length == 0 {
		return nil, invariant("replace", "both text and length are empty")
	}
	if text == "" {
		return c.Delete(index, length, source)
	}
	if length == 0 {
		return c.Insert(index, text, source)
	}

	docLen := c.doc.Length()
	insertAt := index + length
	if index < 0 || length < 0 || insertAt >= docLen {
		return nil, invariant("replace", "range [%d,%d) out of bounds for length %d", index, insertAt, docLen)
	}

	insChange := rules.ApplyInsert(c.insertRules, c.context(), insertAt, text, style.New())
	afterInsert := rules.Context{Doc: delta.Compose(c.doc, insChange), Styles: c.styles, Embeds: c.embeds}
	delChange := rules.ApplyDelete(c.deleteRules, afterInsert, index, length)

	return c.Compose(delta.Compose(insChange, delChange), source)
}

// CollectStyle returns the intersection of inline attributes present on
// every character in [index, index+length) and the intersection of line
// styles present on every line intersecting that range.
func (c *Controller) CollectStyle(index, length int) style.Style {
	end := index + length
	if end < index {
		end = index
	}
	var inline, line style.Style
	haveInline, haveLine := false, false

	// last is the position whose line is the final one intersecting the
	// range; scanning stops after that line's newline.
	last := end - 1
	if end == index {
		last = index
	}
	off := 0
	for _, op := range c.doc {
		n := op.Length()
		start := off
		off += n
		if off <= index {
			continue
		}
		isNewline := op.Kind == delta.KindInsertText && op.Text == "\n"
		if start >= end && end > index && !isNewline {
			continue
		}
		sty, err := style.FromRawAttributes(op.Attrs, c.styles)
		if err != nil {
			sty = style.New()
		}
		if isNewline {
			if start >= index {
				if !haveLine {
					line, haveLine = sty, true
				} else {
					line = line.Intersect(sty)
				}
			}
			if start >= last {
				break
			}
			continue
		}
		if start < end || end == index {
			if !haveInline {
				inline, haveInline = sty, true
			} else {
				inline = inline.Intersect(sty)
			}
		}
	}
	return inline.MergeAll(line)
}

// Compose is the low-level primitive every edit method funnels through:
// it trims change, dispatches each op to the tree while tracking a
// running offset, composes change into the stored Delta, asserts the
// tree and Delta agree, and publishes (before, change, source) to every
// subscriber.
func (c *Controller) Compose(change delta.Delta, source Source) (delta.Delta, error) {
	if err := c.checkOpen("compose"); err != nil {
		return nil, err
	}
	if c.composing {
		return nil, invariant("compose", "reentrant compose: a subscriber must not edit the document it was notified about")
	}
	change = change.Trim()
	if len(change) == 0 {
		return change, nil
	}

	c.composing = true
	defer func() { c.composing = false }()

	before := c.doc.Clone()

	offset := 0
	for _, op := range change {
		switch op.Kind {
		case delta.KindRetain:
			if op.HasAttributes() {
				sty, err := style.FromRawAttributes(op.Attrs, c.styles)
				if err != nil {
					return nil, err
				}
				c.tree.Retain(offset, op.Len, sty)
			}
			offset += op.Len

		case delta.KindInsertText:
			sty, err := style.FromRawAttributes(op.Attrs, c.styles)
			if err != nil {
				return nil, err
			}
			c.tree.Insert(offset, op.Text, sty)
			offset += op.Length()

		case delta.KindInsertObject:
			sty, err := style.FromRawAttributes(op.Attrs, c.styles)
			if err != nil {
				return nil, err
			}
			c.tree.InsertObject(offset, op.Key, op.Value, sty)
			offset++

		case delta.KindDelete:
			c.tree.Delete(offset, op.Len)
		}
	}

	c.doc = delta.Compose(c.doc, change)
	c.text.Apply(change)

	if !delta.Equal(c.tree.ToDelta(), c.doc) {
		panic(invariant("compose", "tree and delta diverged after a %s change", source))
	}

	event := ChangeEvent{Before: before, Change: change.Clone(), Source: source}
	for _, sub := range c.subscribers {
		sub(event)
	}
	return change, nil
}

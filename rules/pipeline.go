package rules

import (
	"docengine/delta"
	"docengine/object"
	"docengine/style"
)

// FormatRule rewrites a proposed format(index, length, attr) into a
// change Delta, or yields (ok=false) to the next rule.
type FormatRule func(ctx Context, index, length int, attr style.Attribute) (delta.Delta, bool)

// InsertRule rewrites a proposed insert(index, text) under sty.
type InsertRule func(ctx Context, index int, text string, sty style.Style) (delta.Delta, bool)

// InsertObjectRule rewrites a proposed insertObject(index, type, value, sty).
type InsertObjectRule func(ctx Context, index int, et object.EmbedType, value any, sty style.Style) (delta.Delta, bool)

// DeleteRule rewrites a proposed delete(index, length).
type DeleteRule func(ctx Context, index, length int) (delta.Delta, bool)

// Exhausted is raised when every rule in a pipeline — including its
// catch-all — yields. With the default pipelines this is unreachable;
// it exists to catch a misconfigured custom pipeline missing a
// catch-all, per spec.md §9's "hosts may provide custom lists but must
// include a catch-all last."
type Exhausted struct {
	Pipeline string
}

func (e Exhausted) Error() string {
	return "rules: " + e.Pipeline + " pipeline exhausted without a match"
}

// DefaultFormatRules is the ordered pipeline for format edits.
var DefaultFormatRules = []FormatRule{
	LinkAtCaret,
	ResolveLineFormat,
	ResolveInlineFormat,
}

// DefaultInsertRules is the ordered pipeline for text inserts.
var DefaultInsertRules = []InsertRule{
	PreserveBlockStyleOnPaste,
	ForceNewlineAroundEmbed,
	PreserveLineStyleOnSplit,
	AutoExitBlock,
	ResetLineFormatOnNewline,
	AutoFormatLinks,
	PreserveInlineStyles,
	InsertCatchAll,
}

// DefaultInsertObjectRules is the ordered pipeline for embed inserts.
var DefaultInsertObjectRules = []InsertObjectRule{
	LinePlacedObject,
	InsertObjectCatchAll,
}

// DefaultDeleteRules is the ordered pipeline for deletes.
var DefaultDeleteRules = []DeleteRule{
	EnsureEmbedLine,
	PreserveLineStyleOnMerge,
	DeleteCatchAll,
}

// ApplyFormat runs pipeline in order and trims the first match.
func ApplyFormat(pipeline []FormatRule, ctx Context, index, length int, attr style.Attribute) delta.Delta {
	for _, rule := range pipeline {
		if d, ok := rule(ctx, index, length, attr); ok {
			return d.Trim()
		}
	}
	panic(Exhausted{Pipeline: "format"})
}

// ApplyInsert runs pipeline in order and trims the first match.
func ApplyInsert(pipeline []InsertRule, ctx Context, index int, text string, sty style.Style) delta.Delta {
	for _, rule := range pipeline {
		if d, ok := rule(ctx, index, text, sty); ok {
			return d.Trim()
		}
	}
	panic(Exhausted{Pipeline: "insert"})
}

// ApplyInsertObject runs pipeline in order and trims the first match.
func ApplyInsertObject(pipeline []InsertObjectRule, ctx Context, index int, et object.EmbedType, value any, sty style.Style) delta.Delta {
	for _, rule := range pipeline {
		if d, ok := rule(ctx, index, et, value, sty); ok {
			return d.Trim()
		}
	}
	panic(Exhausted{Pipeline: "insert-object"})
}

// ApplyDelete runs pipeline in order and trims the first match.
func ApplyDelete(pipeline []DeleteRule, ctx Context, index, length int) delta.Delta {
	for _, rule := range pipeline {
		if d, ok := rule(ctx, index, length); ok {
			return d.Trim()
		}
	}
	panic(Exhausted{Pipeline: "delete"})
}

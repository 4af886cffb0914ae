package rules

import (
	"testing"

	"docengine/delta"
	"docengine/object"
	"docengine/style"
)

func testContext(doc delta.Delta) Context {
	return Context{Doc: doc, Styles: style.DefaultRegistry(), Embeds: object.DefaultRegistry()}
}

func linedDoc(lines ...string) delta.Delta {
	d := delta.New()
	for _, l := range lines {
		d = d.Insert(l+"\n", nil)
	}
	return d
}

func TestScenario1LineFormatFullRange(t *testing.T) {
	doc := linedDoc("Correct", "Line", "Style", "Rule")
	ctx := testContext(doc)
	attr := style.Attribute{Key: "list", Scope: style.Line, Value: "bullet"}
	got := ApplyFormat(DefaultFormatRules, ctx, 0, 20, attr)
	want := delta.New().
		RetainN(7, nil).RetainN(1, map[string]any{"list": "bullet"}).
		RetainN(4, nil).RetainN(1, map[string]any{"list": "bullet"}).
		RetainN(5, nil).RetainN(1, map[string]any{"list": "bullet"}).
		RetainN(4, nil).RetainN(1, map[string]any{"list": "bullet"})
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScenario2LineFormatZeroLength(t *testing.T) {
	doc := linedDoc("Correct", "Line", "Style", "Rule")
	ctx := testContext(doc)
	attr := style.Attribute{Key: "list", Scope: style.Line, Value: "bullet"}
	got := ApplyFormat(DefaultFormatRules, ctx, 0, 0, attr)
	want := delta.New().RetainN(7, nil).RetainN(1, map[string]any{"list": "bullet"})
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScenario3LineStyleOverride(t *testing.T) {
	doc := delta.New().Insert("Title", nil).Insert("\n", map[string]any{"list": "bullet"})
	ctx := testContext(doc)
	attr := style.Attribute{Key: "blockquote", Scope: style.Line, Value: true}
	got := ApplyFormat(DefaultFormatRules, ctx, 0, 0, attr)
	want := delta.New().RetainN(5, nil).RetainN(1, map[string]any{"list": nil, "blockquote": true})
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScenario4InlineFormatSkipsNewlines(t *testing.T) {
	doc := linedDoc("Correct", "Line", "Style", "Rule")
	ctx := testContext(doc)
	attr := style.Attribute{Key: "bold", Scope: style.Inline, Value: true}
	got := ApplyFormat(DefaultFormatRules, ctx, 0, 20, attr)
	want := delta.New().
		RetainN(7, map[string]any{"bold": true}).RetainN(1, nil).
		RetainN(4, map[string]any{"bold": true}).RetainN(1, nil).
		RetainN(5, map[string]any{"bold": true}).RetainN(1, nil).
		RetainN(1, map[string]any{"bold": true})
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScenario5LinkAtCaret(t *testing.T) {
	doc := delta.New().
		Insert("Visit our ", nil).
		Insert("website", map[string]any{"link": "A"}).
		Insert(" for more details.\n", nil)
	ctx := testContext(doc)
	attr := style.Attribute{Key: "link", Scope: style.Inline, Value: "B"}
	got := ApplyFormat(DefaultFormatRules, ctx, 13, 0, attr)
	want := delta.New().RetainN(10, nil).RetainN(7, map[string]any{"link": "B"})
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScenario6LineMergePreservesBlockStyle(t *testing.T) {
	doc := delta.New().
		Insert("Title\nOne", nil).
		Insert("\n", map[string]any{"list": "bullet"}).
		Insert("Two\n", nil)
	ctx := testContext(doc)
	got := ApplyDelete(DefaultDeleteRules, ctx, 9, 1)
	want := delta.New().RetainN(9, nil).DeleteN(1).RetainN(3, nil).RetainN(1, map[string]any{"list": "bullet"})
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestInsertCatchAllAtDocumentStart(t *testing.T) {
	doc := delta.New().Insert("\n", nil)
	ctx := testContext(doc)
	got := ApplyInsert(DefaultInsertRules, ctx, 0, "hi", style.New())
	want := delta.New().Insert("hi", nil)
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPreserveInlineStylesCopiesPreviousRun(t *testing.T) {
	doc := delta.New().Insert("bold", map[string]any{"bold": true}).Insert("\n", nil)
	ctx := testContext(doc)
	got := ApplyInsert(DefaultInsertRules, ctx, 4, "!", style.New())
	want := delta.New().RetainN(4, nil).Insert("!", map[string]any{"bold": true})
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLinePlacedObjectSplitsLine(t *testing.T) {
	doc := delta.New().Insert("ab\n", nil)
	ctx := testContext(doc)
	hr, _ := ctx.Embeds.Get("hr", nil)
	got := ApplyInsertObject(DefaultInsertObjectRules, ctx, 1, hr, true, style.New())
	want := delta.New().RetainN(1, nil).Insert("\n", nil).InsertKeyed("hr", true, nil).Insert("\n", nil)
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDeleteCatchAllLiteral(t *testing.T) {
	doc := delta.New().Insert("abcd\n", nil)
	ctx := testContext(doc)
	got := ApplyDelete(DefaultDeleteRules, ctx, 1, 2)
	want := delta.New().RetainN(1, nil).DeleteN(2)
	if !delta.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

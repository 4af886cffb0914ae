package tree

import (
	"testing"

	"docengine/delta"
	"docengine/style"
)

func TestInsertPlainTextRoundTrips(t *testing.T) {
	r := NewRoot()
	r.Insert(0, "hello", style.New())
	got := r.ToDelta()
	want := delta.New().Insert("hello", nil).Insert("\n", nil)
	if !delta.Equal(got, want) {
		t.Fatalf("ToDelta() = %+v, want %+v", got, want)
	}
}

func TestInsertWithNewlineSplitsLine(t *testing.T) {
	r := NewRoot()
	r.Insert(0, "ab\ncd", style.New())
	if len(r.lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(r.lines))
	}
	got := r.ToDelta()
	want := delta.New().Insert("ab", nil).Insert("\n", nil).Insert("cd", nil).Insert("\n", nil)
	if !delta.Equal(got, want) {
		t.Fatalf("ToDelta() = %+v, want %+v", got, want)
	}
}

func TestInsertLineAttributeAppliesToProducedBreak(t *testing.T) {
	r := NewRoot()
	listAttr := style.Attribute{Key: "list", Scope: style.Line, Value: "bullet"}
	sty := style.New().Put(listAttr)
	r.Insert(0, "item\n", sty)
	if len(r.lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(r.lines))
	}
	ls, ok := r.lines[0].Style().LineStyle()
	if !ok || ls.Key != "list" {
		t.Fatalf("expected first line to carry list attribute, got %+v, %v", ls, ok)
	}
}

func TestDeleteAcrossNewlineMergesLines(t *testing.T) {
	r := NewRoot()
	r.Insert(0, "ab\ncd", style.New())
	// delete the "\n" between "ab" and "cd" (offset 2, length 1)
	r.Delete(2, 1)
	if len(r.lines) != 1 {
		t.Fatalf("expected lines merged into 1, got %d", len(r.lines))
	}
	if r.lines[0].ContentLength() != 4 {
		t.Fatalf("expected merged content length 4, got %d", r.lines[0].ContentLength())
	}
}

func TestRetainInlineAppliesStyleToCoveredLeaves(t *testing.T) {
	r := NewRoot()
	r.Insert(0, "hello", style.New())
	bold := style.Attribute{Key: "bold", Scope: style.Inline, Value: true}
	r.Retain(1, 3, style.New().Put(bold))
	line := r.lines[0]
	if len(line.leaves) != 3 {
		t.Fatalf("expected 3 leaves after split, got %d", len(line.leaves))
	}
	mid, ok := line.leaves[1].(*Text)
	if !ok || !mid.Sty.Contains("bold") {
		t.Fatalf("expected middle leaf to carry bold, got %+v", line.leaves[1])
	}
	if line.leaves[0].(*Text).Sty.Contains("bold") || line.leaves[2].(*Text).Sty.Contains("bold") {
		t.Fatalf("expected only the covered range to carry bold")
	}
}

func TestChildrenGroupsBlockableLines(t *testing.T) {
	r := NewRoot()
	listAttr := style.Attribute{Key: "list", Scope: style.Line, Value: "bullet"}
	sty := style.New().Put(listAttr)
	r.Insert(0, "one\ntwo\n", sty)
	children := r.Children()
	foundBlock := false
	for _, c := range children {
		if b, ok := c.(*Block); ok {
			foundBlock = true
			if len(b.Lines()) < 2 {
				t.Fatalf("expected list block to group at least 2 lines, got %d", len(b.Lines()))
			}
		}
	}
	if !foundBlock {
		t.Fatalf("expected at least one Block in Children(), got %+v", children)
	}
}

func TestHeaderLineNeverWrappedInBlock(t *testing.T) {
	r := NewRoot()
	header := style.Attribute{Key: "header", Scope: style.Line, Value: 1}
	r.Insert(0, "Title\n", style.New().Put(header))
	for _, c := range r.Children() {
		if _, ok := c.(*Block); ok {
			t.Fatalf("expected header line to remain a bare Line, found Block")
		}
	}
}

func TestInsertObjectPlacesEmbedLeaf(t *testing.T) {
	r := NewRoot()
	r.Insert(0, "ab", style.New())
	r.InsertObject(1, "image", "cat.png", style.New())
	line := r.lines[0]
	if len(line.leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(line.leaves))
	}
	if _, ok := line.leaves[1].(*Embed); !ok {
		t.Fatalf("expected embed leaf in the middle, got %+v", line.leaves[1])
	}
}

package style

import "testing"

func boldAttr(v bool) Attribute { return Attribute{Key: "bold", Scope: Inline, Value: v} }
func listAttr(v string) Attribute { return Attribute{Key: "list", Scope: Line, Value: v} }
func blockquoteAttr() Attribute { return Attribute{Key: "blockquote", Scope: Line, Value: true} }

func TestPutIsIdempotent(t *testing.T) {
	s := New().Put(boldAttr(true))
	once := s.Put(boldAttr(true))
	twice := once.Put(boldAttr(true))
	if !once.Equal(twice) {
		t.Fatalf("Put is not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestPutSecondLineAttributeUnsetsFirst(t *testing.T) {
	s := New().Put(listAttr("bullet")).Put(blockquoteAttr())
	if s.Contains("list") {
		t.Fatalf("expected list attribute to be unset after setting blockquote")
	}
	if !s.Contains("blockquote") {
		t.Fatalf("expected blockquote attribute to be set")
	}
	ls, ok := s.LineStyle()
	if !ok || ls.Key != "blockquote" {
		t.Fatalf("LineStyle() = %+v, %v; want blockquote", ls, ok)
	}
}

func TestMergeUnsetRemovesAttribute(t *testing.T) {
	s := New().Put(boldAttr(true))
	cleared := s.Merge(Attribute{Key: "bold", Scope: Inline, Value: nil})
	if cleared.Contains("bold") {
		t.Fatalf("expected bold removed after unset merge")
	}
}

func TestMergeUnsetOnAbsentKeyIsNoop(t *testing.T) {
	s := New()
	cleared := s.Merge(Attribute{Key: "bold", Scope: Inline, Value: nil})
	if !cleared.IsEmpty() {
		t.Fatalf("expected no-op, got %+v", cleared)
	}
}

func TestLineStyleAtMostOne(t *testing.T) {
	s := New().
		Put(listAttr("bullet")).
		Put(Attribute{Key: "header", Scope: Line, Value: 1}).
		Put(blockquoteAttr())
	count := 0
	for _, a := range s.Attributes() {
		if a.Scope == Line {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected at most one line-scoped attribute, got %d", count)
	}
}

func TestIsInline(t *testing.T) {
	inlineOnly := New().Put(boldAttr(true))
	if !inlineOnly.IsInline() {
		t.Fatalf("expected IsInline() true")
	}
	withLine := inlineOnly.Put(listAttr("bullet"))
	if withLine.IsInline() {
		t.Fatalf("expected IsInline() false once a line attribute is set")
	}
}

func TestContainsSame(t *testing.T) {
	s := New().Put(boldAttr(true))
	if !s.ContainsSame(boldAttr(true)) {
		t.Fatalf("expected ContainsSame true for identical attribute")
	}
	if s.ContainsSame(boldAttr(false)) {
		t.Fatalf("expected ContainsSame false for differing value")
	}
}

func TestToMapEmptyIsNil(t *testing.T) {
	if m := New().ToMap(); m != nil {
		t.Fatalf("ToMap() = %v, want nil for empty style", m)
	}
}

package delta

import "testing"

func TestPushMergesAdjacentInserts(t *testing.T) {
	d := New().Insert("Hello", nil).Insert(" world", nil)
	if len(d) != 1 {
		t.Fatalf("len(d) = %d, want 1", len(d))
	}
	if d[0].Text != "Hello world" {
		t.Fatalf("d[0].Text = %q, want %q", d[0].Text, "Hello world")
	}
}

func TestPushDoesNotMergeDifferentAttributes(t *testing.T) {
	d := New().Insert("Hello", map[string]any{"bold": true}).Insert(" world", nil)
	if len(d) != 2 {
		t.Fatalf("len(d) = %d, want 2", len(d))
	}
}

func TestTrimDropsTrailingBareRetain(t *testing.T) {
	d := New().Insert("abc", nil).RetainN(3, nil)
	trimmed := d.Trim()
	if len(trimmed) != 1 {
		t.Fatalf("len(trimmed) = %d, want 1", len(trimmed))
	}
}

func TestTrimKeepsFormattingRetain(t *testing.T) {
	d := New().Insert("abc", nil).RetainN(3, map[string]any{"bold": true})
	trimmed := d.Trim()
	if len(trimmed) != 2 {
		t.Fatalf("len(trimmed) = %d, want 2", len(trimmed))
	}
}

func TestIsDocument(t *testing.T) {
	good := New().Insert("hello\n", nil)
	if !good.IsDocument() {
		t.Fatalf("expected well-formed document delta")
	}
	noNewline := New().Insert("hello", nil)
	if noNewline.IsDocument() {
		t.Fatalf("expected non-document delta (no trailing newline)")
	}
	withRetain := New().RetainN(5, nil)
	if withRetain.IsDocument() {
		t.Fatalf("expected non-document delta (contains retain)")
	}
}

func TestLength(t *testing.T) {
	d := New().Insert("abc", nil).InsertKeyed("image", "x.png", nil)
	if got := d.Length(); got != 4 {
		t.Fatalf("Length() = %d, want 4", got)
	}
}

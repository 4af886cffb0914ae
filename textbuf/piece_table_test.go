package textbuf

import (
	"testing"

	"docengine/delta"
)

func TestApplyInsertAtStart(t *testing.T) {
	pt := New("world\n")
	pt.Apply(delta.New().Insert("hello ", nil))
	if got := pt.String(); got != "hello world\n" {
		t.Fatalf("String() = %q, want %q", got, "hello world\n")
	}
}

func TestApplyInsertMidBuffer(t *testing.T) {
	pt := New("ac\n")
	pt.Apply(delta.New().RetainN(1, nil).Insert("b", nil))
	if got := pt.String(); got != "abc\n" {
		t.Fatalf("String() = %q, want %q", got, "abc\n")
	}
}

func TestApplyDeleteAcrossPieces(t *testing.T) {
	pt := New("\n")
	pt.Apply(delta.New().Insert("hello", nil))
	pt.Apply(delta.New().RetainN(5, nil).Insert(" world", nil))
	pt.Apply(delta.New().RetainN(3, nil).DeleteN(5))
	if got := pt.String(); got != "helrld\n" {
		t.Fatalf("String() = %q, want %q", got, "helrld\n")
	}
}

func TestApplyObjectInsertCountsAsPlaceholder(t *testing.T) {
	pt := New("\n")
	pt.Apply(delta.New().InsertKeyed("hr", true, nil))
	if got := pt.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if got := pt.String(); got != string(delta.ObjectReplacementChar)+"\n" {
		t.Fatalf("String() = %q", got)
	}
}

package document

import (
	"testing"

	"docengine/delta"
	"docengine/object"
	"docengine/style"
)

func newTestController(t *testing.T, initial delta.Delta) *Controller {
	t.Helper()
	c, err := New(initial, style.DefaultRegistry(), object.DefaultRegistry())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewSeedsMinimalDocument(t *testing.T) {
	c := newTestController(t, nil)
	if got, want := c.ToPlainText(), "\n"; got != want {
		t.Fatalf("ToPlainText() = %q, want %q", got, want)
	}
}

func TestInsertAppendsTextAndUpdatesDelta(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hello\n", nil))
	if _, err := c.Insert(5, " world", SourceLocal); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got, want := c.ToPlainText(), "hello world\n"; got != want {
		t.Fatalf("ToPlainText() = %q, want %q", got, want)
	}
	want := delta.New().Insert("hello world\n", nil)
	if !delta.Equal(c.Delta(), want) {
		t.Fatalf("Delta() = %+v, want %+v", c.Delta(), want)
	}
}

func TestInsertRejectsOutOfRangeIndex(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hi\n", nil))
	if _, err := c.Insert(99, "x", SourceLocal); err == nil {
		t.Fatal("Insert with out-of-range index: want error, got nil")
	}
}

func TestDeleteMergesLinesAndUpdatesPlainText(t *testing.T) {
	c := newTestController(t, delta.New().Insert("foo\nbar\n", nil))
	if _, err := c.Delete(3, 1, SourceLocal); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, want := c.ToPlainText(), "foobar\n"; got != want {
		t.Fatalf("ToPlainText() = %q, want %q", got, want)
	}
}

func TestFormatAppliesLineAttribute(t *testing.T) {
	c := newTestController(t, delta.New().Insert("Item\n", nil))
	attr := style.Attribute{Key: "list", Scope: style.Line, Value: "bullet"}
	if _, err := c.Format(0, 4, attr, SourceLocal); err != nil {
		t.Fatalf("Format: %v", err)
	}
	got := c.CollectStyle(0, 4)
	if !got.ContainsSame(attr) {
		t.Fatalf("CollectStyle(0,4) = %+v, want to contain %+v", got, attr)
	}
}

func TestInsertObjectPlacesEmbed(t *testing.T) {
	c := newTestController(t, delta.New().Insert("ab\n", nil))
	if _, err := c.InsertObject(2, "hr", true, style.New(), SourceLocal); err != nil {
		t.Fatalf("InsertObject: %v", err)
	}
	if got, want := c.ToPlainText(), "ab\n"+string(delta.ObjectReplacementChar)+"\n"; got != want {
		t.Fatalf("ToPlainText() = %q, want %q", got, want)
	}
}

func TestInsertObjectRejectsUnknownKeyUnderRejectPolicy(t *testing.T) {
	c, err := New(delta.New().Insert("a\n", nil), style.DefaultRegistry(), object.NewRegistry(nil, object.RejectMissing))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.InsertObject(1, "widget", nil, style.New(), SourceLocal); err == nil {
		t.Fatal("InsertObject with unregistered key under RejectMissing: want error, got nil")
	}
}

func TestReplaceSubstitutesRange(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hello world\n", nil))
	if _, err := c.Replace(0, 5, "goodbye", SourceLocal); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got, want := c.ToPlainText(), "goodbye world\n"; got != want {
		t.Fatalf("ToPlainText() = %q, want %q", got, want)
	}
}

func TestReplaceWithEmptyTextDelegatesToDelete(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hello world\n", nil))
	if _, err := c.Replace(5, 6, "", SourceLocal); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got, want := c.ToPlainText(), "hello\n"; got != want {
		t.Fatalf("ToPlainText() = %q, want %q", got, want)
	}
}

func TestReplaceWithZeroLengthDelegatesToInsert(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hello\n", nil))
	if _, err := c.Replace(5, 0, "!", SourceLocal); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got, want := c.ToPlainText(), "hello!\n"; got != want {
		t.Fatalf("ToPlainText() = %q, want %q", got, want)
	}
}

func TestReplaceWithNoTextAndNoLengthIsInvariantError(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hello\n", nil))
	if _, err := c.Replace(0, 0, "", SourceLocal); err == nil {
		t.Fatal("Replace(0,0,\"\"): want error, got nil")
	}
}

func TestClosedControllerRejectsEdits(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hi\n", nil))
	c.Close()
	if !c.IsClosed() {
		t.Fatal("IsClosed() = false after Close()")
	}
	if _, err := c.Insert(0, "x", SourceLocal); err == nil {
		t.Fatal("Insert on closed controller: want error, got nil")
	}
}

func TestSubscriberReceivesChangeEventInOrder(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hi\n", nil))
	var events []ChangeEvent
	c.Subscribe(func(e ChangeEvent) { events = append(events, e) })

	if _, err := c.Insert(2, "!", SourceLocal); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Source != SourceLocal {
		t.Fatalf("events[0].Source = %v, want %v", events[0].Source, SourceLocal)
	}
	if !delta.Equal(events[0].Before, delta.New().Insert("hi\n", nil)) {
		t.Fatalf("events[0].Before = %+v, want the pre-edit document", events[0].Before)
	}
}

func TestReentrantComposeFromSubscriberIsRejected(t *testing.T) {
	c := newTestController(t, delta.New().Insert("hi\n", nil))
	var innerErr error
	c.Subscribe(func(e ChangeEvent) {
		_, innerErr = c.Insert(0, "x", SourceLocal)
	})
	if _, err := c.Insert(2, "!", SourceLocal); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if innerErr == nil {
		t.Fatal("reentrant Insert from subscriber: want error, got nil")
	}
}

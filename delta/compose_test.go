package delta

import "testing"

func TestComposeRetainOverInsertOverlaysAttributes(t *testing.T) {
	a := New().Insert("Hello", nil)
	b := New().RetainN(5, map[string]any{"bold": true})
	got := Compose(a, b)
	want := New().Insert("Hello", map[string]any{"bold": true})
	if !Equal(got, want) {
		t.Fatalf("Compose() = %+v, want %+v", got, want)
	}
}

func TestComposeDeleteAfterInsertCancels(t *testing.T) {
	a := New().Insert("Hello", nil)
	b := New().DeleteN(5)
	got := Compose(a, b)
	if len(got) != 0 {
		t.Fatalf("Compose() = %+v, want empty", got)
	}
}

func TestComposeDeleteAfterRetainRemovesInsertedTail(t *testing.T) {
	a := New().Insert("Hello world", nil)
	b := New().RetainN(5, nil).DeleteN(6)
	got := Compose(a, b)
	want := New().Insert("Hello", nil)
	if !Equal(got, want) {
		t.Fatalf("Compose() = %+v, want %+v", got, want)
	}
}

func TestComposeUnsetAttributeRemovesKey(t *testing.T) {
	a := New().Insert("Hello", map[string]any{"bold": true})
	b := New().RetainN(5, map[string]any{"bold": nil})
	got := Compose(a, b)
	want := New().Insert("Hello", nil)
	if !Equal(got, want) {
		t.Fatalf("Compose() = %+v, want %+v", got, want)
	}
}

func TestComposeAssociative(t *testing.T) {
	a := New().Insert("Hello", nil)
	b := New().RetainN(5, nil).Insert(" world", nil)
	c := New().RetainN(11, nil).Insert("!", nil)

	left := Compose(Compose(a, b), c)
	right := Compose(a, Compose(b, c))

	if !Equal(left, right) {
		t.Fatalf("composition not associative: left=%+v right=%+v", left, right)
	}
}

// An unset attribute composed through an intermediate retain-only
// change must still be associative: composing b then c onto a must
// match composing c onto (a composed with b). b.Compose(c) is a retain
// carrying only the unset, which must survive until it reaches a's
// insert.
func TestComposeAssociativeThroughUnsetAttribute(t *testing.T) {
	doc := New().Insert("Hello", map[string]any{"bold": true})
	b := New().RetainN(5, nil)
	c := New().RetainN(5, map[string]any{"bold": nil})

	left := Compose(Compose(doc, b), c)
	right := Compose(doc, Compose(b, c))

	if !Equal(left, right) {
		t.Fatalf("composition not associative: left=%+v right=%+v", left, right)
	}
	want := New().Insert("Hello", nil)
	if !Equal(left, want) {
		t.Fatalf("Compose() = %+v, want %+v", left, want)
	}
}

// The expected change of the multi-line list format scenario, built
// with RetainN: alternating plain and formatted retains stay separate
// ops. The format rule itself is exercised in rules/rules_test.go.
func TestScenarioLineFormat(t *testing.T) {
	ul := map[string]any{"list": "bullet"}
	got := New().
		RetainN(7, nil).RetainN(1, ul).
		RetainN(4, nil).RetainN(1, ul).
		RetainN(5, nil).RetainN(1, ul).
		RetainN(4, nil).RetainN(1, ul)

	want := Delta{
		Retain(7, nil),
		Retain(1, ul),
		Retain(4, nil),
		Retain(1, ul),
		Retain(5, nil),
		Retain(1, ul),
		Retain(4, nil),
		Retain(1, ul),
	}
	if !Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

package style

import "testing"

func TestDefaultRegistryBuildsKnownKeys(t *testing.T) {
	reg := DefaultRegistry()
	a, err := reg.Build("bold", true)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a.Scope != Inline {
		t.Fatalf("bold scope = %v, want Inline", a.Scope)
	}

	a2, err := reg.Build("header", 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a2.Scope != Line {
		t.Fatalf("header scope = %v, want Line", a2.Scope)
	}
}

func TestDefaultRegistryRejectsUnknownKey(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := reg.Build("color", "red"); err == nil {
		t.Fatalf("expected error for unknown attribute key")
	}
}

func TestRegistryCustomCreateMissingSynthesizes(t *testing.T) {
	reg := NewRegistry(nil, func(key string, value any) (Attribute, error) {
		return Attribute{Key: key, Scope: Inline, Value: value}, nil
	})
	a, err := reg.Build("color", "red")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a.Value != "red" {
		t.Fatalf("a.Value = %v, want red", a.Value)
	}
}

func TestFromRawAttributes(t *testing.T) {
	reg := DefaultRegistry()
	s, err := FromRawAttributes(map[string]any{"bold": true, "list": "bullet"}, reg)
	if err != nil {
		t.Fatalf("FromRawAttributes() error = %v", err)
	}
	if !s.Contains("bold") || !s.Contains("list") {
		t.Fatalf("expected both attributes present, got %+v", s)
	}
}

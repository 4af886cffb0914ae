package style

import "fmt"

// Definition describes a recognized attribute key: its scope and,
// optionally, a validator for raw wire values.
type Definition struct {
	Key     string
	Scope   Scope
	Validate func(value any) error
}

// Registry maps attribute keys to their Definition and decides what
// happens when an unrecognized key is encountered while parsing.
// Registries are read-only after construction and may be shared across
// documents without synchronization, matching spec.md §5.
type Registry struct {
	defs         map[string]Definition
	createMissing func(key string, value any) (Attribute, error)
}

// NewRegistry returns a Registry seeded with defs. createMissing governs
// unknown-key parsing; if nil, unknown keys are rejected with an error,
// matching spec.md §4.2's default policy.
func NewRegistry(defs []Definition, createMissing func(key string, value any) (Attribute, error)) *Registry {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		r.defs[d.Key] = d
	}
	if createMissing == nil {
		createMissing = rejectMissing
	}
	r.createMissing = createMissing
	return r
}

func rejectMissing(key string, value any) (Attribute, error) {
	return Attribute{}, fmt.Errorf("style: unknown attribute key %q", key)
}

// Lookup returns the Definition for key, if registered.
func (r *Registry) Lookup(key string) (Definition, bool) {
	d, ok := r.defs[key]
	return d, ok
}

// Build resolves a raw (key, value) wire pair into an Attribute, via the
// registered Definition's scope or, for unknown keys, createMissing.
func (r *Registry) Build(key string, value any) (Attribute, error) {
	if d, ok := r.defs[key]; ok {
		if value != nil && d.Validate != nil {
			if err := d.Validate(value); err != nil {
				return Attribute{}, fmt.Errorf("style: attribute %q: %w", key, err)
			}
		}
		return Attribute{Key: key, Scope: d.Scope, Value: value}, nil
	}
	return r.createMissing(key, value)
}

// FromRawAttributes parses a JSON-like map into a Style, consulting the
// registry for scope and for unknown-key policy.
func FromRawAttributes(raw map[string]any, registry *Registry) (Style, error) {
	s := New()
	for k, v := range raw {
		a, err := registry.Build(k, v)
		if err != nil {
			return Style{}, err
		}
		s = s.Put(a)
	}
	return s, nil
}

// DefaultRegistry returns the standard attribute registry described in
// spec.md §3: bold/italic/link inline, header/list/blockquote/code-block
// line-scoped, mutually exclusive. Unknown keys are rejected.
func DefaultRegistry() *Registry {
	return NewRegistry([]Definition{
		{Key: "bold", Scope: Inline},
		{Key: "italic", Scope: Inline},
		{Key: "link", Scope: Inline},
		{Key: "header", Scope: Line},
		{Key: "list", Scope: Line},
		{Key: "blockquote", Scope: Line},
		{Key: "code-block", Scope: Line},
	}, nil)
}

// LineScopedKeys lists the mutually exclusive line-scoped attribute keys
// of the default registry, used by rules that need to unset "the other"
// line attributes on a line.
var LineScopedKeys = []string{"header", "list", "blockquote", "code-block"}

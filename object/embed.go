// Package object implements the embed registry: a typed mapping from
// embed keys to placement and value parsing policy.
package object

import "fmt"

// Placement classifies where an embed may sit within the tree.
type Placement int

const (
	// Inline embeds sit alongside text within a line.
	Inline Placement = iota
	// Line embeds are the only child of their line.
	Line
)

// EmbedType describes a registered embed kind.
type EmbedType struct {
	Key       string
	Placement Placement
	Stringify func(value any) string
}

// defaultStringify renders value with fmt.Sprint, used when a registered
// EmbedType does not supply its own.
func defaultStringify(value any) string {
	return fmt.Sprint(value)
}

// Registry maps embed keys to EmbedType and decides what happens for
// unknown keys, mirroring style.Registry. Registries are read-only after
// construction and may be shared across documents.
type Registry struct {
	types        map[string]EmbedType
	createMissing func(key string, value any) (EmbedType, error)
}

// NewRegistry returns a Registry seeded with types. createMissing
// governs unknown-key lookups; if nil, the default policy synthesizes a
// line-placed embed type for the unknown key, matching spec.md §4.3.
func NewRegistry(types []EmbedType, createMissing func(key string, value any) (EmbedType, error)) *Registry {
	r := &Registry{types: make(map[string]EmbedType, len(types))}
	for _, t := range types {
		r.types[t.Key] = t
	}
	if createMissing == nil {
		createMissing = synthesizeLineEmbed
	}
	r.createMissing = createMissing
	return r
}

func synthesizeLineEmbed(key string, value any) (EmbedType, error) {
	return EmbedType{Key: key, Placement: Line, Stringify: defaultStringify}, nil
}

// RejectMissing is a createMissing policy that errors on unknown keys,
// suitable for hosts that want to fail rather than synthesize — spec.md
// §4.3 describes this as a UI-layer policy (render an error card).
func RejectMissing(key string, value any) (EmbedType, error) {
	return EmbedType{}, fmt.Errorf("object: unknown embed key %q", key)
}

// Get returns the EmbedType registered under key, or invokes
// createMissing when key is unregistered.
func (r *Registry) Get(key string, value any) (EmbedType, error) {
	if t, ok := r.types[key]; ok {
		return t, nil
	}
	return r.createMissing(key, value)
}

// StringifyValue renders value through t's Stringify hook, falling back to
// fmt.Sprint when the EmbedType has none.
func (t EmbedType) StringifyValue(value any) string {
	if t.Stringify != nil {
		return t.Stringify(value)
	}
	return defaultStringify(value)
}

// DefaultRegistry returns the standard embed registry described in
// spec.md §3: "hr" and "image", both line-placed.
func DefaultRegistry() *Registry {
	return NewRegistry([]EmbedType{
		{Key: "hr", Placement: Line, Stringify: func(value any) string { return "" }},
		{Key: "image", Placement: Line, Stringify: func(value any) string { return fmt.Sprint(value) }},
	}, nil)
}

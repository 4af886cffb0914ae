package delta

import (
	"encoding/json"
	"fmt"
)

// wireOp is the JSON shape of a single op, matching spec.md §6: a text
// insert is {"insert": "...", "attributes": {...}?}, an object insert is
// {"insert": {"<key>": <value>}, "attributes": {...}?}, a retain is
// {"retain": N, "attributes": {...}?}, and a delete is {"delete": N}.
type wireOp struct {
	Insert     json.RawMessage `json:"insert,omitempty"`
	Retain     *int            `json:"retain,omitempty"`
	Delete     *int            `json:"delete,omitempty"`
	Attributes map[string]any  `json:"attributes,omitempty"`
}

// MarshalJSON renders the Delta in Quill/Delta wire format.
func (d Delta) MarshalJSON() ([]byte, error) {
	wire := make([]wireOp, 0, len(d))
	for _, op := range d {
		w := wireOp{Attributes: op.Attrs}
		switch op.Kind {
		case KindRetain:
			n := op.Len
			w.Retain = &n
		case KindDelete:
			n := op.Len
			w.Delete = &n
		case KindInsertText:
			raw, err := json.Marshal(op.Text)
			if err != nil {
				return nil, err
			}
			w.Insert = raw
		case KindInsertObject:
			raw, err := json.Marshal(map[string]any{op.Key: op.Value})
			if err != nil {
				return nil, err
			}
			w.Insert = raw
		}
		wire = append(wire, w)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON parses the Quill/Delta wire format described in
// spec.md §6. It accepts change Deltas (retains and deletes) as well
// as documents and does not check that the result is a well-formed
// document Delta; that check happens when a Controller is built from
// it (tree.FromDelta).
func (d *Delta) UnmarshalJSON(b []byte) error {
	var wire []wireOp
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	out := New()
	for i, w := range wire {
		switch {
		case w.Retain != nil:
			out = out.Push(Retain(*w.Retain, w.Attributes))
		case w.Delete != nil:
			out = out.Push(Delete(*w.Delete))
		case len(w.Insert) > 0:
			var asString string
			if err := json.Unmarshal(w.Insert, &asString); err == nil {
				out = out.Push(InsertText(asString, w.Attributes))
				continue
			}
			var asObject map[string]any
			if err := json.Unmarshal(w.Insert, &asObject); err != nil {
				return fmt.Errorf("delta: op %d: insert is neither string nor object: %w", i, err)
			}
			if len(asObject) != 1 {
				return fmt.Errorf("delta: op %d: object insert must carry exactly one key, got %d", i, len(asObject))
			}
			for k, v := range asObject {
				out = out.Push(InsertObject(k, v, w.Attributes))
			}
		default:
			return fmt.Errorf("delta: op %d: no insert/retain/delete field set", i)
		}
	}
	*d = out
	return nil
}

// ToJSON renders d as its canonical JSON document array.
func (d Delta) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}

// FromJSON parses a JSON document array into a Delta.
func FromJSON(b []byte) (Delta, error) {
	var d Delta
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return d, nil
}

package delta

// Compose walks a and b simultaneously and emits the op implied at each
// position, returning a normalized result. Composition is associative:
// a.Compose(b).Compose(c) == a.Compose(b.Compose(c)).
func Compose(a, b Delta) Delta {
	ai := NewIterator(a)
	bi := NewIterator(b)
	result := New()

	for ai.HasNext() || bi.HasNext() {
		switch {
		case bKindIs(bi, KindInsertText) || bKindIs(bi, KindInsertObject):
			result = result.Push(bi.Next(maxInt))

		case !bKindIs(bi, KindInsertText) && !bKindIs(bi, KindInsertObject) && aKindIs(ai, KindDelete):
			result = result.Push(ai.Next(maxInt))

		default:
			length := minLen(ai.PeekLength(), bi.PeekLength())
			if length == maxInt {
				continue
			}
			aOp := nextOrZero(ai, length)
			bOp := nextOrZero(bi, length)

			switch bOp.Kind {
			case KindRetain:
				switch aOp.Kind {
				case KindRetain:
					// Both sides are still change deltas here, not the
					// persisted document, so an unset (null) attribute
					// must survive verbatim rather than being stripped:
					// it is only resolved into an actual key removal
					// once the result is later composed onto real
					// insert content. Stripping it now would let an
					// intermediate compose silently discard the unset
					// and break associativity.
					result = result.Push(Retain(length, mergeAttrs(aOp.Attrs, bOp.Attrs, true)))
				case KindInsertText, KindInsertObject:
					cp := aOp
					cp.Attrs = mergeAttrs(aOp.Attrs, bOp.Attrs, false)
					result = result.Push(cp)
				default:
					// Not reached: a delete in a is consumed by the case
					// above, and an exhausted a yields a zero Op, whose
					// Kind is KindRetain, so b's retain passes through
					// via the retain case.
				}
			case KindDelete:
				if aOp.Kind == KindRetain {
					result = result.Push(Delete(length))
				}
				// a's insert cancelled by b's delete: emit nothing.
			}
		}
	}

	return result.Trim()
}

// Compose is also exposed as a method for call-site ergonomics.
func (a Delta) Compose(b Delta) Delta {
	return Compose(a, b)
}

func nextOrZero(it *Iterator, length int) Op {
	if !it.HasNext() {
		return Op{}
	}
	return it.Next(length)
}

func bKindIs(it *Iterator, k Kind) bool {
	kk, ok := it.PeekKind()
	return ok && kk == k
}

func aKindIs(it *Iterator, k Kind) bool {
	kk, ok := it.PeekKind()
	return ok && kk == k
}

func minLen(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// mergeAttrs overlays b onto a: b wins on conflict. A nil value in b is
// an unset attribute; keepNull controls what happens to it. Composing
// two change deltas (retain over retain) must keep the null entry
// verbatim so a later compose can still resolve it into a removal —
// only composing onto real insert content (or the persisted document)
// actually deletes the key.
func mergeAttrs(a, b map[string]any, keepNull bool) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if v == nil && !keepNull {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package delta

import "strings"

// ObjectReplacementChar is the placeholder rune used to represent an
// embed of length 1 in plain-text projections. Insert strips this
// character from caller-supplied text before inserting it, since it is
// reserved for embeds the engine itself produces.
const ObjectReplacementChar = '￼'

// text returns the op's textual content: the literal text for a text
// insert, or the object placeholder for an object insert. Other kinds
// have no textual content.
func (o Op) text() (string, bool) {
	switch o.Kind {
	case KindInsertText:
		return o.Text, true
	case KindInsertObject:
		return string(ObjectReplacementChar), true
	default:
		return "", false
	}
}

// EndsWith reports whether the op's textual content ends with s.
func (o Op) EndsWith(s string) bool {
	t, ok := o.text()
	return ok && strings.HasSuffix(t, s)
}

// StartsWith reports whether the op's textual content starts with s.
func (o Op) StartsWith(s string) bool {
	t, ok := o.text()
	return ok && strings.HasPrefix(t, s)
}

// Contains reports whether the op's textual content contains s.
func (o Op) Contains(s string) bool {
	t, ok := o.text()
	return ok && strings.Contains(t, s)
}

// IndexOfNewline returns the byte index of the first '\n' in the op's
// textual content, or -1 if there is none.
func (o Op) IndexOfNewline() int {
	t, ok := o.text()
	if !ok {
		return -1
	}
	return strings.IndexByte(t, '\n')
}

// Split divides the op's textual content on sep.
func (o Op) Split(sep string) []string {
	t, ok := o.text()
	if !ok {
		return nil
	}
	return strings.Split(t, sep)
}

// StripPlaceholder removes any embed placeholder characters from s,
// matching insert's sanitization of caller-supplied text.
func StripPlaceholder(s string) string {
	if !strings.ContainsRune(s, ObjectReplacementChar) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == ObjectReplacementChar {
			return -1
		}
		return r
	}, s)
}

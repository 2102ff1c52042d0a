package koi

// This file carries the query-then-fill convention for variable-length
// text accessors: call with a nil or short buffer to learn the required
// size (terminator included), then call again with enough room. An
// insufficient buffer is never partially filled.

// SizedCopy copies text plus a NUL terminator into dst and returns the
// required size. When dst is too small nothing is written and only the
// required size is returned.
func SizedCopy(dst []byte, text string) int {
	need := len(text) + 1
	if len(dst) < need {
		return need
	}
	n := copy(dst, text)
	dst[n] = 0
	return need
}

// ReadName copies the command name under the sized-buffer convention.
func (c *Command) ReadName(dst []byte) int {
	return SizedCopy(dst, c.name)
}

// ReadStringAt copies the string or literal parameter at i. It returns 0
// when the index is out of range or the parameter has another kind.
func (c *Command) ReadStringAt(i int, dst []byte) int {
	s, err := c.StringAt(i)
	if err != nil {
		return 0
	}
	return SizedCopy(dst, s)
}

// ReadName copies the list's composite name.
func (l *CompositeList) ReadName(dst []byte) int {
	return SizedCopy(dst, l.name)
}

// ReadStringAt copies the string element at index i, or returns 0 when i
// is out of range or the element is not a string.
func (l *CompositeList) ReadStringAt(i int, dst []byte) int {
	v, err := l.At(i)
	if err != nil || (v.Kind != KindString && v.Kind != KindLiteral) {
		return 0
	}
	return SizedCopy(dst, v.Str)
}

// ReadName copies the dict's composite name.
func (d *CompositeDict) ReadName(dst []byte) int {
	return SizedCopy(dst, d.name)
}

// ReadStringKey copies the string value stored under key, or returns 0 when
// the key is unknown or its value is not a string.
func (d *CompositeDict) ReadStringKey(key string, dst []byte) int {
	v, err := d.Get(key)
	if err != nil || (v.Kind != KindString && v.Kind != KindLiteral) {
		return 0
	}
	return SizedCopy(dst, v.Str)
}

// ReadKeyAt copies the key at enumeration position i, or returns 0 when i
// is out of range.
func (d *CompositeDict) ReadKeyAt(i int, dst []byte) int {
	k, err := d.KeyAt(i)
	if err != nil {
		return 0
	}
	return SizedCopy(dst, k)
}

// ReadName copies the single's composite name.
func (s *CompositeSingle) ReadName(dst []byte) int {
	return SizedCopy(dst, s.name)
}

// ReadMessage copies the position-free message text.
func (e *ParseError) ReadMessage(dst []byte) int {
	return SizedCopy(dst, e.msg)
}

// ReadFormatted copies the combined rendering, position included when
// present.
func (e *ParseError) ReadFormatted(dst []byte) int {
	return SizedCopy(dst, e.Error())
}

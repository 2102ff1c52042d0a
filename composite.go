package koi

import "strings"

// CompositeList is a named, ordered sequence of scalar values, written as
// name(v1, v2, ...). Composites nest scalars only; a list never contains
// another composite.
type CompositeList struct {
	name  string
	items []Value
}

// NewList creates a standalone composite list. The caller owns it until it is
// transferred into a command (ListParam / Command.AddList), after which the
// command is the sole owner and the original handle must not be reused.
func NewList(name string, items ...Value) *CompositeList {
	return &CompositeList{name: name, items: append([]Value(nil), items...)}
}

// Name returns the composite's name.
func (l *CompositeList) Name() string { return l.name }

// Len returns the number of elements.
func (l *CompositeList) Len() int { return len(l.items) }

// At returns the element at index i, or an ErrIndexRange error.
func (l *CompositeList) At(i int) (Value, error) {
	if i < 0 || i >= len(l.items) {
		return Value{Kind: KindInvalid}, ErrIndexRange
	}
	return l.items[i], nil
}

// KindAt returns the element kind at index i, or KindInvalid.
func (l *CompositeList) KindAt(i int) ParamKind {
	if i < 0 || i >= len(l.items) {
		return KindInvalid
	}
	return l.items[i].Kind
}

// Append adds a value at the end.
func (l *CompositeList) Append(v Value) { l.items = append(l.items, v) }

// Set replaces the element at index i.
func (l *CompositeList) Set(i int, v Value) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexRange
	}
	l.items[i] = v
	return nil
}

// Remove deletes the element at index i, shifting later elements down.
func (l *CompositeList) Remove(i int) error {
	if i < 0 || i >= len(l.items) {
		return ErrIndexRange
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Clear removes all elements.
func (l *CompositeList) Clear() { l.items = l.items[:0] }

// Equal reports deep equality with another list.
func (l *CompositeList) Equal(o *CompositeList) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.name != o.name || len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if l.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy.
func (l *CompositeList) Clone() *CompositeList {
	return &CompositeList{name: l.name, items: append([]Value(nil), l.items...)}
}

func (l *CompositeList) String() string {
	var b strings.Builder
	b.WriteString(l.name)
	b.WriteByte('(')
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}

// CompositeDict is a named mapping from unique string keys to scalar values,
// written as name{k1: v1, k2: v2}. Enumeration order is insertion order;
// removing and re-inserting a key moves it to the end.
type CompositeDict struct {
	name string
	keys []string
	vals map[string]Value
}

// NewDict creates a standalone composite dict. Ownership follows the same
// transfer rules as NewList.
func NewDict(name string) *CompositeDict {
	return &CompositeDict{name: name, vals: make(map[string]Value)}
}

// Name returns the composite's name.
func (d *CompositeDict) Name() string { return d.name }

// Len returns the number of entries.
func (d *CompositeDict) Len() int { return len(d.keys) }

// Set inserts or overwrites the value for key. A new key is appended to the
// enumeration order; overwriting keeps the key's position.
func (d *CompositeDict) Set(key string, v Value) {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

// Get returns the value for key, or an ErrKeyNotFound error.
func (d *CompositeDict) Get(key string) (Value, error) {
	v, ok := d.vals[key]
	if !ok {
		return Value{Kind: KindInvalid}, ErrKeyNotFound
	}
	return v, nil
}

// Kind returns the kind of the value stored under key, or KindInvalid.
func (d *CompositeDict) Kind(key string) ParamKind {
	v, ok := d.vals[key]
	if !ok {
		return KindInvalid
	}
	return v.Kind
}

// KeyAt returns the key at enumeration position i, or an ErrIndexRange error.
func (d *CompositeDict) KeyAt(i int) (string, error) {
	if i < 0 || i >= len(d.keys) {
		return "", ErrIndexRange
	}
	return d.keys[i], nil
}

// At returns the value at enumeration position i, or an ErrIndexRange error.
func (d *CompositeDict) At(i int) (Value, error) {
	if i < 0 || i >= len(d.keys) {
		return Value{Kind: KindInvalid}, ErrIndexRange
	}
	return d.vals[d.keys[i]], nil
}

// Remove deletes the entry for key; subsequent Get calls for it fail.
func (d *CompositeDict) Remove(key string) error {
	if _, ok := d.vals[key]; !ok {
		return ErrKeyNotFound
	}
	delete(d.vals, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all entries.
func (d *CompositeDict) Clear() {
	d.keys = d.keys[:0]
	clear(d.vals)
}

// Equal reports deep equality, including enumeration order.
func (d *CompositeDict) Equal(o *CompositeDict) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.name != o.name || len(d.keys) != len(o.keys) {
		return false
	}
	for i, k := range d.keys {
		if o.keys[i] != k || d.vals[k] != o.vals[k] {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy.
func (d *CompositeDict) Clone() *CompositeDict {
	c := &CompositeDict{
		name: d.name,
		keys: append([]string(nil), d.keys...),
		vals: make(map[string]Value, len(d.vals)),
	}
	for k, v := range d.vals {
		c.vals[k] = v
	}
	return c
}

func (d *CompositeDict) String() string {
	var b strings.Builder
	b.WriteString(d.name)
	b.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(d.vals[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

// CompositeSingle is a named parameter carrying exactly one scalar value,
// written as name(value). It is distinct from a one-element list: name(v,)
// with a trailing comma parses as a list.
type CompositeSingle struct {
	name  string
	value Value
}

// NewSingle creates a standalone composite single. Ownership follows the same
// transfer rules as NewList.
func NewSingle(name string, v Value) *CompositeSingle {
	return &CompositeSingle{name: name, value: v}
}

// Name returns the composite's name.
func (s *CompositeSingle) Name() string { return s.name }

// Value returns the held scalar.
func (s *CompositeSingle) Value() Value { return s.value }

// SetValue replaces the held scalar.
func (s *CompositeSingle) SetValue(v Value) { s.value = v }

// Equal reports equality with another single.
func (s *CompositeSingle) Equal(o *CompositeSingle) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.name == o.name && s.value == o.value
}

// Clone returns an independent copy.
func (s *CompositeSingle) Clone() *CompositeSingle {
	return &CompositeSingle{name: s.name, value: s.value}
}

func (s *CompositeSingle) String() string {
	return s.name + "(" + s.value.String() + ")"
}

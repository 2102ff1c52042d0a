package koi

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamKind identifies the type of a parameter or composite member. The codes
// form one closed enumeration shared between basic and composite kinds so
// callers can branch on a single value.
type ParamKind int32

const (
	KindInt     ParamKind = 0
	KindFloat   ParamKind = 1
	KindString  ParamKind = 2
	KindSingle  ParamKind = 3
	KindList    ParamKind = 4
	KindDict    ParamKind = 5
	KindBool    ParamKind = 6
	KindLiteral ParamKind = 7
	// KindInvalid is reported when a query target does not exist or has a
	// different kind than the one requested.
	KindInvalid ParamKind = -1
)

func (k ParamKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSingle:
		return "single"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindBool:
		return "bool"
	case KindLiteral:
		return "literal"
	default:
		return "invalid"
	}
}

// IsComposite reports whether the kind is one of the composite kinds.
func (k ParamKind) IsComposite() bool {
	return k == KindSingle || k == KindList || k == KindDict
}

// Value is a scalar value appearing as a basic parameter or inside a
// composite. It is a closed sum over int, float, string, bool and literal.
// Build values with the constructor functions; the zero Value reads as an
// int zero.
type Value struct {
	Kind  ParamKind
	Int   int64
	Float float64
	Bool  bool
	// Str holds the text for KindString and KindLiteral values.
	Str string
}

// IntValue returns an integer Value.
func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }

// FloatValue returns a floating-point Value.
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// StringValue returns an owned-text Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// LiteralValue returns a Value holding a raw unquoted token preserved
// verbatim. Literals render without quoting regardless of content.
func LiteralValue(s string) Value { return Value{Kind: KindLiteral, Str: s} }

// String renders the value in its default textual form: decimal integers,
// shortest round-trip floats, true/false, and strings quoted only when they
// are not identifier-safe.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindLiteral:
		return v.Str
	case KindString:
		if isBareIdent(v.Str) {
			return v.Str
		}
		return quoteString(v.Str)
	default:
		return "<invalid>"
	}
}

// isBareIdent reports whether s can be written without quotes: a letter or
// underscore followed by letters, digits or underscores.
func isBareIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Parameter is one entry in a command's ordered parameter list: either a
// basic scalar or a named composite. Build parameters with BasicParam,
// ListParam, DictParam or SingleParam.
type Parameter struct {
	kind   ParamKind
	value  Value
	list   *CompositeList
	dict   *CompositeDict
	single *CompositeSingle
}

// BasicParam wraps a scalar value as a parameter.
func BasicParam(v Value) Parameter {
	if v.Kind.IsComposite() || v.Kind == KindInvalid {
		return Parameter{kind: KindInvalid}
	}
	return Parameter{kind: v.Kind, value: v}
}

// ListParam wraps a composite list as a parameter. The parameter takes
// ownership of the list.
func ListParam(l *CompositeList) Parameter { return Parameter{kind: KindList, list: l} }

// DictParam wraps a composite dict as a parameter. The parameter takes
// ownership of the dict.
func DictParam(d *CompositeDict) Parameter { return Parameter{kind: KindDict, dict: d} }

// SingleParam wraps a composite single as a parameter. The parameter takes
// ownership of the single.
func SingleParam(s *CompositeSingle) Parameter { return Parameter{kind: KindSingle, single: s} }

// Kind returns the parameter's type code.
func (p Parameter) Kind() ParamKind { return p.kind }

// Value returns the scalar for basic parameters; the zero Value otherwise.
func (p Parameter) Value() Value {
	if p.kind.IsComposite() || p.kind == KindInvalid {
		return Value{Kind: KindInvalid}
	}
	return p.value
}

// CompositeName returns the name of a composite parameter and true, or
// ("", false) for basic parameters.
func (p Parameter) CompositeName() (string, bool) {
	switch p.kind {
	case KindList:
		return p.list.name, true
	case KindDict:
		return p.dict.name, true
	case KindSingle:
		return p.single.name, true
	}
	return "", false
}

// Equal reports deep equality, comparing composites element by element.
func (p Parameter) Equal(o Parameter) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case KindList:
		return p.list.Equal(o.list)
	case KindDict:
		return p.dict.Equal(o.dict)
	case KindSingle:
		return p.single.Equal(o.single)
	default:
		return p.value == o.value
	}
}

// clone returns a fully independent deep copy.
func (p Parameter) clone() Parameter {
	switch p.kind {
	case KindList:
		return Parameter{kind: KindList, list: p.list.Clone()}
	case KindDict:
		return Parameter{kind: KindDict, dict: p.dict.Clone()}
	case KindSingle:
		return Parameter{kind: KindSingle, single: p.single.Clone()}
	default:
		return p
	}
}

// String renders the parameter as it would appear on a command line.
func (p Parameter) String() string {
	switch p.kind {
	case KindList:
		return p.list.String()
	case KindDict:
		return p.dict.String()
	case KindSingle:
		return p.single.String()
	case KindInvalid:
		return "<invalid>"
	default:
		return p.value.String()
	}
}

var _ fmt.Stringer = Parameter{}

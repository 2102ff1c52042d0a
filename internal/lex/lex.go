// Package lex tokenizes the parameter region of a KoiLang command line. It
// knows nothing about line classification or marker characters; the parser
// hands it the text after the markers together with the base column for
// diagnostics.
package lex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Error codes mirrored by the public parser diagnostics.
const (
	CodeUnterminatedString = "unterminated_string"
	CodeInvalidEscape      = "invalid_escape"
	CodeBadNumber          = "bad_number"
	CodeUnclosedComposite  = "unclosed_composite"
	CodeDuplicateKey       = "duplicate_key"
	CodeUnexpectedInput    = "unexpected_input"
	CodeEmptyCommand       = "empty_command"
)

// Error is a tokenization failure at a 1-based column.
type Error struct {
	Code string
	Msg  string
	Col  int
}

func (e *Error) Error() string { return fmt.Sprintf("%s (column %d)", e.Msg, e.Col) }

// ValueKind tags a scanned scalar.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueFloat
	ValueString
	ValueBool
	ValueLiteral
)

// Value is a scanned scalar value.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

// ParamKind tags a scanned parameter.
type ParamKind int

const (
	ParamScalar ParamKind = iota
	ParamList
	ParamDict
	ParamSingle
)

// Param is one parsed parameter: a scalar, or a named composite.
type Param struct {
	Kind   ParamKind
	Scalar Value // scalar parameters and the value of a Single
	Name   string
	Items  []Value  // list elements
	Keys   []string // dict keys, insertion order
	Vals   []Value  // dict values, parallel to Keys
}

// Line is a fully tokenized command line.
type Line struct {
	Name      string
	NameInt   int64
	NameIsInt bool
	Params    []Param
}

// ParseLine tokenizes text. baseCol is the 1-based column of text's first
// character in the physical line, used for error positions.
func ParseLine(text string, baseCol int) (*Line, *Error) {
	s := &scanner{src: []rune(text), base: baseCol}
	s.skipSpace()
	if s.eof() {
		return nil, &Error{Code: CodeEmptyCommand, Msg: "empty command line", Col: s.col()}
	}

	nameCol := s.col()
	word := s.scanWord()
	ln := &Line{}
	if isIdent(word) {
		ln.Name = word
	} else if n, kind, ok := parseNumberWord(word); ok && kind == ValueInt {
		ln.Name = word
		ln.NameInt = n.Int
		ln.NameIsInt = true
	} else if numericStart(word) {
		return nil, &Error{Code: CodeBadNumber, Msg: fmt.Sprintf("invalid numeric command name %q", word), Col: nameCol}
	} else {
		return nil, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("invalid command name %q", word), Col: nameCol}
	}

	for {
		if !s.atSpaceOrEOF() {
			return nil, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("unexpected input %q", s.rest()), Col: s.col()}
		}
		s.skipSpace()
		if s.eof() {
			return ln, nil
		}
		p, err := s.scanParam()
		if err != nil {
			return nil, err
		}
		ln.Params = append(ln.Params, p)
	}
}

type scanner struct {
	src  []rune
	pos  int
	base int
}

func (s *scanner) col() int  { return s.base + s.pos }
func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(off int) rune {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) rest() string { return string(s.src[s.pos:]) }

// skipSpace consumes spaces, tabs and line continuations. Logical lines are
// joined keeping the backslash-newline pairs, so both forms appear here.
func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n':
			s.pos++
		case '\\':
			if s.peekAt(1) == '\n' {
				s.pos += 2
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *scanner) atSpaceOrEOF() bool {
	if s.eof() {
		return true
	}
	switch s.peek() {
	case ' ', '\t', '\n':
		return true
	case '\\':
		return s.peekAt(1) == '\n'
	}
	return false
}

// scanWord consumes a run of characters up to the next unescaped whitespace.
func (s *scanner) scanWord() string {
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if c == ' ' || c == '\t' || c == '\n' {
			break
		}
		if c == '\\' && s.peekAt(1) == '\n' {
			break
		}
		s.pos++
	}
	return string(s.src[start:s.pos])
}

// scanIdentRun consumes an identifier prefix without committing past it.
func (s *scanner) scanIdentRun() string {
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (s.pos > start && c >= '0' && c <= '9') {
			s.pos++
			continue
		}
		break
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) scanParam() (Param, *Error) {
	if s.peek() == '"' {
		v, err := s.scanQuoted()
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamScalar, Scalar: v}, nil
	}

	startCol := s.col()
	startPos := s.pos
	if name := s.scanIdentRun(); name != "" {
		switch s.peek() {
		case '(':
			return s.scanParenComposite(name)
		case '{':
			return s.scanDict(name)
		}
		// Not a composite: rewind and treat the whole word as one token.
		s.pos = startPos
	}

	word := s.scanWord()
	switch {
	case word == "true":
		return Param{Kind: ParamScalar, Scalar: Value{Kind: ValueBool, Bool: true}}, nil
	case word == "false":
		return Param{Kind: ParamScalar, Scalar: Value{Kind: ValueBool}}, nil
	case numericStart(word):
		v, _, ok := parseNumberWord(word)
		if !ok {
			return Param{}, &Error{Code: CodeBadNumber, Msg: fmt.Sprintf("invalid numeric literal %q", word), Col: startCol}
		}
		return Param{Kind: ParamScalar, Scalar: v}, nil
	default:
		return Param{Kind: ParamScalar, Scalar: Value{Kind: ValueLiteral, Str: word}}, nil
	}
}

// scanParenComposite parses name(...) forms. Exactly one value with no
// trailing comma is a Single; anything else is a List.
func (s *scanner) scanParenComposite(name string) (Param, *Error) {
	openCol := s.col()
	s.pos++ // '('
	var items []Value
	trailing := false
	for {
		s.skipSpace()
		if s.eof() {
			return Param{}, &Error{Code: CodeUnclosedComposite, Msg: fmt.Sprintf("unclosed composite %q", name), Col: openCol}
		}
		if s.peek() == ')' {
			if len(items) == 0 {
				return Param{}, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("empty composite %q", name), Col: s.col()}
			}
			trailing = true // comma consumed before this close
			break
		}
		v, err := s.scanScalar()
		if err != nil {
			return Param{}, err
		}
		items = append(items, v)
		s.skipSpace()
		if s.eof() {
			return Param{}, &Error{Code: CodeUnclosedComposite, Msg: fmt.Sprintf("unclosed composite %q", name), Col: openCol}
		}
		if s.peek() == ',' {
			s.pos++
			continue
		}
		if s.peek() == ')' {
			trailing = false
			break
		}
		return Param{}, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("unexpected input %q", s.rest()), Col: s.col()}
	}
	s.pos++ // ')'
	if len(items) == 1 && !trailing {
		return Param{Kind: ParamSingle, Name: name, Scalar: items[0]}, nil
	}
	return Param{Kind: ParamList, Name: name, Items: items}, nil
}

// scanDict parses name{k: v, ...} forms. Duplicate keys within one literal
// are an error. An empty brace pair yields an empty dict.
func (s *scanner) scanDict(name string) (Param, *Error) {
	openCol := s.col()
	s.pos++ // '{'
	var keys []string
	var vals []Value
	seen := map[string]bool{}
	for {
		s.skipSpace()
		if s.eof() {
			return Param{}, &Error{Code: CodeUnclosedComposite, Msg: fmt.Sprintf("unclosed composite %q", name), Col: openCol}
		}
		if s.peek() == '}' {
			break
		}
		keyCol := s.col()
		key := s.scanIdentRun()
		if key == "" {
			return Param{}, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("expected key in composite %q", name), Col: keyCol}
		}
		if seen[key] {
			return Param{}, &Error{Code: CodeDuplicateKey, Msg: fmt.Sprintf("duplicate key %q in composite %q", key, name), Col: keyCol}
		}
		seen[key] = true
		s.skipSpace()
		if s.peek() != ':' {
			return Param{}, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("expected ':' after key %q", key), Col: s.col()}
		}
		s.pos++
		s.skipSpace()
		if s.eof() {
			return Param{}, &Error{Code: CodeUnclosedComposite, Msg: fmt.Sprintf("unclosed composite %q", name), Col: openCol}
		}
		v, err := s.scanScalar()
		if err != nil {
			return Param{}, err
		}
		keys = append(keys, key)
		vals = append(vals, v)
		s.skipSpace()
		if s.eof() {
			return Param{}, &Error{Code: CodeUnclosedComposite, Msg: fmt.Sprintf("unclosed composite %q", name), Col: openCol}
		}
		switch s.peek() {
		case ',':
			s.pos++
		case '}':
		default:
			return Param{}, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("unexpected input %q", s.rest()), Col: s.col()}
		}
	}
	s.pos++ // '}'
	return Param{Kind: ParamDict, Name: name, Keys: keys, Vals: vals}, nil
}

// scanScalar parses one value inside a composite. Bare words resolve to
// bools or strings; composites never nest.
func (s *scanner) scanScalar() (Value, *Error) {
	if s.peek() == '"' {
		return s.scanQuoted()
	}
	startCol := s.col()
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if c == ' ' || c == '\t' || c == '\n' || c == ',' || c == ':' || c == ')' || c == '}' {
			break
		}
		if c == '\\' && s.peekAt(1) == '\n' {
			break
		}
		s.pos++
	}
	word := string(s.src[start:s.pos])
	if word == "" {
		return Value{}, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("unexpected input %q", s.rest()), Col: startCol}
	}
	switch {
	case word == "true":
		return Value{Kind: ValueBool, Bool: true}, nil
	case word == "false":
		return Value{Kind: ValueBool}, nil
	case numericStart(word):
		v, _, ok := parseNumberWord(word)
		if !ok {
			return Value{}, &Error{Code: CodeBadNumber, Msg: fmt.Sprintf("invalid numeric literal %q", word), Col: startCol}
		}
		return v, nil
	case isIdent(word):
		return Value{Kind: ValueString, Str: word}, nil
	default:
		return Value{}, &Error{Code: CodeUnexpectedInput, Msg: fmt.Sprintf("invalid value %q", word), Col: startCol}
	}
}

// scanQuoted decodes a double-quoted string with escape sequences. A
// backslash-newline pair inside the quotes is a line continuation and is
// elided.
func (s *scanner) scanQuoted() (Value, *Error) {
	openCol := s.col()
	s.pos++ // '"'
	var b strings.Builder
	for {
		if s.eof() {
			return Value{}, &Error{Code: CodeUnterminatedString, Msg: "unterminated string", Col: openCol}
		}
		c := s.peek()
		if c == '"' {
			s.pos++
			return Value{Kind: ValueString, Str: b.String()}, nil
		}
		if c != '\\' {
			b.WriteRune(c)
			s.pos++
			continue
		}
		escCol := s.col()
		s.pos++
		if s.eof() {
			return Value{}, &Error{Code: CodeUnterminatedString, Msg: "unterminated string", Col: openCol}
		}
		e := s.peek()
		s.pos++
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\n':
			// line continuation inside a string: elided
		case 'x':
			r, err := s.scanHexEscape(2, escCol)
			if err != nil {
				return Value{}, err
			}
			b.WriteRune(r)
		case 'u':
			r, err := s.scanHexEscape(4, escCol)
			if err != nil {
				return Value{}, err
			}
			b.WriteRune(r)
		case 'U':
			r, err := s.scanHexEscape(8, escCol)
			if err != nil {
				return Value{}, err
			}
			b.WriteRune(r)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			s.pos-- // include the first octal digit
			r, err := s.scanOctalEscape(escCol)
			if err != nil {
				return Value{}, err
			}
			b.WriteRune(r)
		default:
			return Value{}, &Error{Code: CodeInvalidEscape, Msg: fmt.Sprintf("invalid escape sequence \\%c", e), Col: escCol}
		}
	}
}

func (s *scanner) scanHexEscape(n, escCol int) (rune, *Error) {
	if s.pos+n > len(s.src) {
		return 0, &Error{Code: CodeInvalidEscape, Msg: "truncated escape sequence", Col: escCol}
	}
	digits := string(s.src[s.pos : s.pos+n])
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > uint64(utf8.MaxRune) {
		return 0, &Error{Code: CodeInvalidEscape, Msg: fmt.Sprintf("invalid escape sequence %q", digits), Col: escCol}
	}
	s.pos += n
	return rune(v), nil
}

func (s *scanner) scanOctalEscape(escCol int) (rune, *Error) {
	start := s.pos
	for s.pos < len(s.src) && s.pos-start < 3 {
		c := s.peek()
		if c < '0' || c > '7' {
			break
		}
		s.pos++
	}
	v, err := strconv.ParseUint(string(s.src[start:s.pos]), 8, 32)
	if err != nil || v > uint64(utf8.MaxRune) {
		return 0, &Error{Code: CodeInvalidEscape, Msg: "invalid octal escape", Col: escCol}
	}
	return rune(v), nil
}

// isIdent reports whether s is a bare identifier: letter or underscore
// followed by letters, digits or underscores.
func isIdent(s string) bool {
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

// numericStart reports whether a word commits to the numeric grammar: once
// it does, a parse failure is a hard error rather than a literal fallback.
func numericStart(w string) bool {
	if w == "" {
		return false
	}
	if w[0] >= '0' && w[0] <= '9' {
		return true
	}
	if len(w) >= 2 && (w[0] == '-' || w[0] == '.') {
		c := w[1]
		if c >= '0' && c <= '9' {
			return true
		}
		if w[0] == '-' && c == '.' && len(w) >= 3 && w[2] >= '0' && w[2] <= '9' {
			return true
		}
	}
	return false
}

// parseNumberWord parses the integer forms 0x/0o/0b and decimal, then the
// float forms (decimal point or exponent). First match wins.
func parseNumberWord(w string) (Value, ValueKind, bool) {
	switch {
	case strings.HasPrefix(w, "0x"):
		if n, err := strconv.ParseInt(w[2:], 16, 64); err == nil && len(w) > 2 {
			return Value{Kind: ValueInt, Int: n}, ValueInt, true
		}
		return Value{}, 0, false
	case strings.HasPrefix(w, "0o"):
		if n, err := strconv.ParseInt(w[2:], 8, 64); err == nil && len(w) > 2 {
			return Value{Kind: ValueInt, Int: n}, ValueInt, true
		}
		return Value{}, 0, false
	case strings.HasPrefix(w, "0b"):
		if n, err := strconv.ParseInt(w[2:], 2, 64); err == nil && len(w) > 2 {
			return Value{Kind: ValueInt, Int: n}, ValueInt, true
		}
		return Value{}, 0, false
	}
	if n, err := strconv.ParseInt(w, 10, 64); err == nil {
		return Value{Kind: ValueInt, Int: n}, ValueInt, true
	}
	if !floatShape(w) {
		return Value{}, 0, false
	}
	if f, err := strconv.ParseFloat(w, 64); err == nil {
		return Value{Kind: ValueFloat, Float: f}, ValueFloat, true
	}
	return Value{}, 0, false
}

// floatShape restricts ParseFloat to the grammar's float forms, rejecting
// hex floats and Inf/NaN spellings it would otherwise accept.
func floatShape(w string) bool {
	hasDigit := false
	hasPoint := false
	hasExp := false
	i := 0
	if i < len(w) && w[i] == '-' {
		i++
	}
	for ; i < len(w); i++ {
		c := w[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.' && !hasPoint && !hasExp:
			hasPoint = true
		case (c == 'e' || c == 'E') && hasDigit && !hasExp:
			hasExp = true
			if i+1 < len(w) && (w[i+1] == '+' || w[i+1] == '-') {
				i++
			}
			if i+1 >= len(w) {
				return false
			}
		default:
			return false
		}
	}
	return hasDigit && (hasPoint || hasExp)
}

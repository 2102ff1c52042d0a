package lex

import "testing"

func TestParseLineName(t *testing.T) {
	ln, err := ParseLine("draw", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if ln.Name != "draw" || ln.NameIsInt {
		t.Fatalf("got name %q (int=%v)", ln.Name, ln.NameIsInt)
	}

	ln, err = ParseLine("12 hello", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if !ln.NameIsInt || ln.NameInt != 12 {
		t.Fatalf("got name %q int=%d", ln.Name, ln.NameInt)
	}
	if len(ln.Params) != 1 {
		t.Fatalf("got %d params", len(ln.Params))
	}
}

func TestParseLineEmpty(t *testing.T) {
	if _, err := ParseLine("   ", 1); err == nil || err.Code != CodeEmptyCommand {
		t.Fatalf("got %v", err)
	}
}

func TestScalarKinds(t *testing.T) {
	cases := []struct {
		in   string
		kind ValueKind
	}{
		{`"quoted"`, ValueString},
		{"42", ValueInt},
		{"-17", ValueInt},
		{"0xff", ValueInt},
		{"0o17", ValueInt},
		{"0b101", ValueInt},
		{"3.5", ValueFloat},
		{"-0.5", ValueFloat},
		{"1e3", ValueFloat},
		{"true", ValueBool},
		{"false", ValueBool},
		{"bareword", ValueLiteral},
	}
	for _, tc := range cases {
		ln, err := ParseLine("cmd "+tc.in, 1)
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		p := ln.Params[0]
		if p.Kind != ParamScalar || p.Scalar.Kind != tc.kind {
			t.Errorf("%s: got kind %v", tc.in, p.Scalar.Kind)
		}
	}
}

func TestScalarValues(t *testing.T) {
	ln, err := ParseLine(`cmd 0xff -17 2.5 true name`, 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if ln.Params[0].Scalar.Int != 255 {
		t.Errorf("hex: got %d", ln.Params[0].Scalar.Int)
	}
	if ln.Params[1].Scalar.Int != -17 {
		t.Errorf("negative: got %d", ln.Params[1].Scalar.Int)
	}
	if ln.Params[2].Scalar.Float != 2.5 {
		t.Errorf("float: got %g", ln.Params[2].Scalar.Float)
	}
	if !ln.Params[3].Scalar.Bool {
		t.Errorf("bool: got false")
	}
	if ln.Params[4].Scalar.Str != "name" {
		t.Errorf("literal: got %q", ln.Params[4].Scalar.Str)
	}
}

func TestBadNumberIsHardError(t *testing.T) {
	for _, in := range []string{"cmd 12abc", "cmd 0x", "cmd 0xzz", "cmd 1.2.3", "cmd 3e"} {
		if _, err := ParseLine(in, 1); err == nil || err.Code != CodeBadNumber {
			t.Errorf("%s: got %v, want bad_number", in, err)
		}
	}
}

func TestQuotedEscapes(t *testing.T) {
	cases := []struct{ in, want string }{
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"q\"uote"`, `q"uote`},
		{`"\x41"`, "A"},
		{`"é"`, "é"},
		{`"\U0001F600"`, "\U0001F600"},
		{`"\101"`, "A"},
		{`"back\\slash"`, `back\slash`},
	}
	for _, tc := range cases {
		ln, err := ParseLine("cmd "+tc.in, 1)
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if got := ln.Params[0].Scalar.Str; got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestQuotedErrors(t *testing.T) {
	if _, err := ParseLine(`cmd "open`, 1); err == nil || err.Code != CodeUnterminatedString {
		t.Fatalf("got %v", err)
	}
	if _, err := ParseLine(`cmd "\q"`, 1); err == nil || err.Code != CodeInvalidEscape {
		t.Fatalf("got %v", err)
	}
}

func TestStringContinuation(t *testing.T) {
	// A backslash-newline inside the quotes is elided; outside it is
	// whitespace.
	ln, err := ParseLine("cmd \"ab\\\ncd\"", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if got := ln.Params[0].Scalar.Str; got != "abcd" {
		t.Fatalf("got %q", got)
	}

	ln, err = ParseLine("cmd 1 \\\n 2", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if len(ln.Params) != 2 {
		t.Fatalf("got %d params", len(ln.Params))
	}
}

func TestCompositeList(t *testing.T) {
	ln, err := ParseLine("cmd pos(10, 20, 30)", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	p := ln.Params[0]
	if p.Kind != ParamList || p.Name != "pos" || len(p.Items) != 3 {
		t.Fatalf("got kind %v name %q items %d", p.Kind, p.Name, len(p.Items))
	}
	if p.Items[2].Int != 30 {
		t.Fatalf("got %d", p.Items[2].Int)
	}
}

func TestCompositeSingle(t *testing.T) {
	ln, err := ParseLine("cmd width(80)", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if p := ln.Params[0]; p.Kind != ParamSingle || p.Scalar.Int != 80 {
		t.Fatalf("got kind %v value %d", p.Kind, p.Scalar.Int)
	}

	// Trailing comma forces a one-element list.
	ln, err = ParseLine("cmd width(80,)", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if p := ln.Params[0]; p.Kind != ParamList || len(p.Items) != 1 {
		t.Fatalf("got kind %v items %d", p.Kind, len(p.Items))
	}
}

func TestCompositeDict(t *testing.T) {
	ln, err := ParseLine(`cmd style{color: "red", size: 12}`, 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	p := ln.Params[0]
	if p.Kind != ParamDict || p.Name != "style" {
		t.Fatalf("got kind %v name %q", p.Kind, p.Name)
	}
	if len(p.Keys) != 2 || p.Keys[0] != "color" || p.Keys[1] != "size" {
		t.Fatalf("got keys %v", p.Keys)
	}
	if p.Vals[0].Str != "red" || p.Vals[1].Int != 12 {
		t.Fatalf("got vals %v", p.Vals)
	}
}

func TestCompositeDictEmpty(t *testing.T) {
	ln, err := ParseLine("cmd style{}", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if p := ln.Params[0]; p.Kind != ParamDict || len(p.Keys) != 0 {
		t.Fatalf("got kind %v keys %v", p.Kind, p.Keys)
	}
}

func TestCompositeErrors(t *testing.T) {
	cases := []struct{ in, code string }{
		{"cmd pos(1, 2", CodeUnclosedComposite},
		{"cmd style{a: 1", CodeUnclosedComposite},
		{"cmd pos()", CodeUnexpectedInput},
		{"cmd style{a: 1, a: 2}", CodeDuplicateKey},
		{"cmd style{: 1}", CodeUnexpectedInput},
		{"cmd style{a 1}", CodeUnexpectedInput},
	}
	for _, tc := range cases {
		_, err := ParseLine(tc.in, 1)
		if err == nil || err.Code != tc.code {
			t.Errorf("%s: got %v, want %s", tc.in, err, tc.code)
		}
	}
}

func TestBareWordInsideComposite(t *testing.T) {
	ln, err := ParseLine("cmd font(serif, 12)", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	p := ln.Params[0]
	if p.Items[0].Kind != ValueString || p.Items[0].Str != "serif" {
		t.Fatalf("got %v %q", p.Items[0].Kind, p.Items[0].Str)
	}
}

func TestErrorColumn(t *testing.T) {
	_, err := ParseLine(`cmd "open`, 3)
	if err == nil {
		t.Fatal("expected error")
	}
	// "cmd " is 4 runes; the quote starts at base+4.
	if err.Col != 7 {
		t.Fatalf("got column %d", err.Col)
	}
}

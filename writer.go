package koi

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Writer renders commands as text under a cascading formatting policy.
// Output is buffered; call Flush before inspecting the sink.
//
// Indentation is a plain counter: IncIndent and DecIndent move the level,
// and every line the writer starts is prefixed with level indent units.
type Writer struct {
	w     *bufio.Writer
	cfg   WriterConfig
	level int
	blank bool // last emitted line was empty
}

// NewWriter returns a writer over w with the default policy.
func NewWriter(w io.Writer) *Writer {
	return NewWriterWith(w, DefaultWriterConfig())
}

// NewWriterWith returns a writer over w with an explicit policy.
func NewWriterWith(w io.Writer, cfg WriterConfig) *Writer {
	if cfg.Threshold < 1 {
		cfg.Threshold = 1
	}
	return &Writer{w: bufio.NewWriter(w), cfg: cfg}
}

// Config returns the writer's policy.
func (w *Writer) Config() WriterConfig { return w.cfg }

// IncIndent raises the indentation level by one.
func (w *Writer) IncIndent() { w.level++ }

// DecIndent lowers the indentation level by one, stopping at zero.
func (w *Writer) DecIndent() {
	if w.level > 0 {
		w.level--
	}
}

// Indent returns the current indentation level.
func (w *Writer) Indent() int { return w.level }

// Newline writes a blank line.
func (w *Writer) Newline() error {
	w.blank = true
	_, err := w.w.WriteString("\n")
	return err
}

// Flush forces buffered output to the sink.
func (w *Writer) Flush() error { return w.w.Flush() }

// WriteCommand renders one command under the writer's policy.
func (w *Writer) WriteCommand(c *Command) error {
	return w.writeCommand(c, nil)
}

// WriteCommandWith renders one command with a per-call options layer on
// top of the writer's policy, for this call only.
func (w *Writer) WriteCommandWith(c *Command, opts Options) error {
	return w.writeCommand(c, &opts)
}

func (w *Writer) writeCommand(c *Command, call *Options) error {
	r, co := w.cfg.resolveCommand(c.Name(), call)
	var b strings.Builder
	// Blank lines between commands are not doubled: a requested leading
	// blank is skipped right after a trailing one.
	if r.newlineBefore && !w.blank {
		b.WriteByte('\n')
	}
	w.renderCommand(&b, c, r, co)
	if r.newlineAfter {
		b.WriteByte('\n')
	}
	w.blank = r.newlineAfter
	if _, err := w.w.WriteString(b.String()); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteAll renders a sequence of commands in order, stopping at the first
// failure.
func (w *Writer) WriteAll(cmds []*Command) error {
	for _, c := range cmds {
		if err := w.WriteCommand(c); err != nil {
			return err
		}
	}
	return nil
}

// Format renders one command to a string with the default policy.
func Format(c *Command) string {
	return FormatWith(c, DefaultWriterConfig())
}

// FormatWith renders one command to a string with an explicit policy.
func FormatWith(c *Command, cfg WriterConfig) string {
	var sb strings.Builder
	w := NewWriterWith(&sb, cfg)
	w.WriteCommand(c)
	w.Flush()
	return sb.String()
}

// FormatAll renders a command sequence to a string with an explicit policy.
func FormatAll(cmds []*Command, cfg WriterConfig) string {
	var sb strings.Builder
	w := NewWriterWith(&sb, cfg)
	w.WriteAll(cmds)
	w.Flush()
	return sb.String()
}

func (w *Writer) renderCommand(b *strings.Builder, c *Command, r resolved, co *CommandOptions) {
	b.WriteString(w.indent(r, w.level))

	start := 0
	switch {
	case c.IsText() || c.IsAnnotation():
		// Payload is the raw line; annotations keep their own markers.
		if s, err := c.StringAt(0); err == nil {
			b.WriteString(s)
		}
		b.WriteByte('\n')
		return
	case c.IsNumber():
		b.WriteString(strings.Repeat(string(Marker), w.cfg.Threshold))
		if n, err := c.IntAt(0); err == nil {
			b.WriteString(renderInt(n, r.number))
		}
		start = 1
	default:
		b.WriteString(strings.Repeat(string(Marker), w.cfg.Threshold))
		b.WriteString(c.Name())
	}

	broke := false
	for i := start; i < c.NumParams(); i++ {
		p, _ := c.ParamAt(i)
		pr := resolveParam(r, co, i, p)
		if (pr.newlineBeforeParam || broke) && !pr.compact {
			b.WriteByte('\n')
			b.WriteString(w.indent(pr, w.level+1))
		} else {
			b.WriteByte(' ')
		}
		renderParam(b, p, pr)
		broke = pr.newlineAfterParam && !pr.compact
	}
	b.WriteByte('\n')
}

// indent returns the prefix for a line at the given level.
func (w *Writer) indent(r resolved, level int) string {
	if level <= 0 {
		return ""
	}
	if r.useTabs {
		return strings.Repeat("\t", level)
	}
	return strings.Repeat(" ", level*r.indent)
}

func renderParam(b *strings.Builder, p Parameter, r resolved) {
	switch p.Kind() {
	case KindList:
		l := p.list
		b.WriteString(l.Name())
		b.WriteByte('(')
		for i := 0; i < l.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			v, _ := l.At(i)
			renderValue(b, v, r)
		}
		b.WriteByte(')')
	case KindDict:
		d := p.dict
		b.WriteString(d.Name())
		b.WriteByte('{')
		for i := 0; i < d.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			k, _ := d.KeyAt(i)
			v, _ := d.At(i)
			b.WriteString(k)
			b.WriteString(": ")
			renderValue(b, v, r)
		}
		b.WriteByte('}')
	case KindSingle:
		s := p.single
		b.WriteString(s.Name())
		b.WriteByte('(')
		renderValue(b, s.Value(), r)
		b.WriteByte(')')
	default:
		renderValue(b, p.Value(), r)
	}
}

func renderValue(b *strings.Builder, v Value, r resolved) {
	switch v.Kind {
	case KindInt:
		b.WriteString(renderInt(v.Int, r.number))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindLiteral:
		b.WriteString(v.Str)
	default:
		if !r.forceQuotes && isBareIdent(v.Str) {
			b.WriteString(v.Str)
		} else {
			b.WriteString(quoteString(v.Str))
		}
	}
}

// renderInt formats n in the given base. Non-decimal bases use the 64-bit
// two's-complement bit pattern for negative values, matching the parser's
// unsigned prefix forms.
func renderInt(n int64, f NumberFormat) string {
	switch f {
	case Hex:
		return "0x" + strconv.FormatUint(uint64(n), 16)
	case Octal:
		return "0o" + strconv.FormatUint(uint64(n), 8)
	case Binary:
		return "0b" + strconv.FormatUint(uint64(n), 2)
	default:
		return strconv.FormatInt(n, 10)
	}
}

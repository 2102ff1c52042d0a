package koi

import (
	"errors"
	"io"
	"strings"

	"github.com/koilang/koi/internal/lex"
)

// Marker is the line-prefix character whose count classifies a line.
const Marker = '#'

// ParserConfig controls line classification and command conversion.
// The zero value is not useful; start from DefaultParserConfig.
type ParserConfig struct {
	// Threshold is the exact marker count that denotes a command line.
	// Fewer markers make a text line, more make an annotation.
	Threshold int

	// SkipAnnotations drops annotation lines instead of emitting
	// @annotation commands.
	SkipAnnotations bool

	// ConvertNumberCommand turns lines whose name token is an integer
	// literal into @number commands.
	ConvertNumberCommand bool

	// PreserveIndent keeps leading whitespace on text lines.
	PreserveIndent bool

	// PreserveEmptyLines emits an empty @text command for blank lines
	// instead of skipping them.
	PreserveEmptyLines bool
}

// DefaultParserConfig returns the standard configuration: threshold 1,
// number conversion on, annotations kept, text trimmed, blanks skipped.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{Threshold: 1, ConvertNumberCommand: true}
}

// WithThreshold returns a copy with the command threshold replaced.
func (c ParserConfig) WithThreshold(n int) ParserConfig {
	c.Threshold = n
	return c
}

// WithSkipAnnotations returns a copy with annotation skipping set.
func (c ParserConfig) WithSkipAnnotations(v bool) ParserConfig {
	c.SkipAnnotations = v
	return c
}

// WithConvertNumberCommand returns a copy with number conversion set.
func (c ParserConfig) WithConvertNumberCommand(v bool) ParserConfig {
	c.ConvertNumberCommand = v
	return c
}

// WithPreserveIndent returns a copy with indent preservation set.
func (c ParserConfig) WithPreserveIndent(v bool) ParserConfig {
	c.PreserveIndent = v
	return c
}

// WithPreserveEmptyLines returns a copy with blank-line emission set.
func (c ParserConfig) WithPreserveEmptyLines(v bool) ParserConfig {
	c.PreserveEmptyLines = v
	return c
}

type parserState int

const (
	stateReady parserState = iota
	stateError
	stateEOF
)

// Parser turns a line source into a sequence of commands. It follows the
// bufio.Scanner convention: Scan advances to the next command, Command
// returns it, and Err reports a pending failure after Scan returns false.
//
// Error and end-of-input are terminal: once Scan returns false the parser
// never produces another command. Err is single-shot: it transfers the
// pending error to the caller and clears it.
type Parser struct {
	src   Source
	cfg   ParserConfig
	state parserState
	cmd   *Command
	perr  error
	line  int // physical line of the current logical line, 1-based
	next  int // next physical line number to read
}

// NewParser returns a parser over src with the default configuration.
func NewParser(src Source) *Parser {
	return NewParserWith(src, DefaultParserConfig())
}

// NewParserWith returns a parser over src with an explicit configuration.
// A non-positive threshold is treated as 1.
func NewParserWith(src Source, cfg ParserConfig) *Parser {
	if cfg.Threshold < 1 {
		cfg.Threshold = 1
	}
	return &Parser{src: src, cfg: cfg, next: 1}
}

// Scan advances to the next command. It returns false at end of input or
// on error; call Err to distinguish the two.
func (p *Parser) Scan() bool {
	if p.state != stateReady {
		p.cmd = nil
		return false
	}
	for {
		text, first, err := p.readLogicalLine()
		if err != nil {
			p.cmd = nil
			if errors.Is(err, io.EOF) {
				p.state = stateEOF
				return false
			}
			p.state = stateError
			p.perr = p.sourceError(err, first)
			return false
		}
		p.line = first
		cmd, skip, perr := p.classify(text)
		if perr != nil {
			p.cmd = nil
			p.state = stateError
			p.perr = perr
			return false
		}
		if skip {
			continue
		}
		p.cmd = cmd
		return true
	}
}

// Command returns the command produced by the last successful Scan.
func (p *Parser) Command() *Command { return p.cmd }

// Err returns the pending error, or nil. Retrieval is single-shot: the
// pending slot is cleared and a second call returns nil.
func (p *Parser) Err() error {
	err := p.perr
	p.perr = nil
	return err
}

// Position returns the 1-based line number of the most recent logical
// line, or 0 before the first Scan.
func (p *Parser) Position() int { return p.line }

// Each drives the parser to completion, invoking fn for every command.
// fn returning false stops early without error.
func (p *Parser) Each(fn func(*Command) bool) error {
	for p.Scan() {
		if !fn(p.Command()) {
			return nil
		}
	}
	return p.Err()
}

// ParseString parses text with the default configuration and returns all
// commands.
func ParseString(text string) ([]*Command, error) {
	return ParseStringWith(text, DefaultParserConfig())
}

// ParseStringWith parses text with an explicit configuration.
func ParseStringWith(text string, cfg ParserConfig) ([]*Command, error) {
	p := NewParserWith(NewStringSource(text), cfg)
	var cmds []*Command
	for p.Scan() {
		cmds = append(cmds, p.Command())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

// readLogicalLine reads one logical line, joining physical lines that end
// with a backslash. The backslash-newline pairs are kept so the tokenizer
// can treat them as whitespace, or elide them inside quoted strings. It
// returns the joined text and the first physical line number.
func (p *Parser) readLogicalLine() (string, int, error) {
	first := p.next
	text, err := p.src.NextLine()
	if err != nil {
		return "", first, err
	}
	p.next++
	for strings.HasSuffix(text, "\\") {
		cont, err := p.src.NextLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", first, err
		}
		p.next++
		text = text + "\n" + cont
	}
	return text, first, nil
}

// classify applies the threshold rule to one logical line. It returns the
// command, skip=true when the line produces nothing, or a pending error.
func (p *Parser) classify(text string) (*Command, bool, error) {
	k := 0
	for k < len(text) && text[k] == Marker {
		k++
	}

	switch {
	case k < p.cfg.Threshold:
		// Fewer markers than the threshold, including none, make a
		// text line. The markers stay part of the content.
		content := text
		if !p.cfg.PreserveIndent {
			content = strings.TrimLeft(content, " \t")
		}
		if content == "" && !p.cfg.PreserveEmptyLines {
			return nil, true, nil
		}
		return NewTextCommand(content), false, nil

	case k > p.cfg.Threshold:
		if p.cfg.SkipAnnotations {
			return nil, true, nil
		}
		return NewAnnotationCommand(text), false, nil
	}

	ln, lerr := lex.ParseLine(text[k:], k+1)
	if lerr != nil {
		return nil, false, p.lexError(lerr)
	}

	var cmd *Command
	if ln.NameIsInt && p.cfg.ConvertNumberCommand {
		cmd = NewNumberCommand(ln.NameInt)
	} else {
		cmd = NewCommand(ln.Name)
	}
	for i := range ln.Params {
		cmd.AddParam(convertParam(&ln.Params[i]))
	}
	return cmd, false, nil
}

func (p *Parser) lexError(e *lex.Error) error {
	err := newParseError(e.Code, e.Msg, p.line, e.Col)
	return err.withSource(p.src.Name())
}

func (p *Parser) sourceError(err error, line int) error {
	code := CodeIO
	var de *DecodeError
	if errors.As(err, &de) {
		code = CodeDecode
	}
	pe := newParseError(code, err.Error(), line, 0)
	pe.cause = err
	return pe.withSource(p.src.Name())
}

func convertParam(lp *lex.Param) Parameter {
	switch lp.Kind {
	case lex.ParamList:
		list := NewList(lp.Name)
		for _, v := range lp.Items {
			list.Append(convertValue(v))
		}
		return ListParam(list)
	case lex.ParamDict:
		dict := NewDict(lp.Name)
		for i, k := range lp.Keys {
			dict.Set(k, convertValue(lp.Vals[i]))
		}
		return DictParam(dict)
	case lex.ParamSingle:
		return SingleParam(NewSingle(lp.Name, convertValue(lp.Scalar)))
	default:
		return BasicParam(convertValue(lp.Scalar))
	}
}

func convertValue(v lex.Value) Value {
	switch v.Kind {
	case lex.ValueInt:
		return IntValue(v.Int)
	case lex.ValueFloat:
		return FloatValue(v.Float)
	case lex.ValueBool:
		return BoolValue(v.Bool)
	case lex.ValueLiteral:
		return LiteralValue(v.Str)
	default:
		return StringValue(v.Str)
	}
}

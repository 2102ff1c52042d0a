package koi

import (
	"bufio"
	"io"
	"strings"
)

// Source abstracts over polymorphic line inputs. NextLine returns the next
// decoded line without its trailing newline; io.EOF signals end of input.
// Name is used only for diagnostics.
type Source interface {
	NextLine() (string, error)
	Name() string
}

// StringSource supplies lines from an in-memory string.
type StringSource struct {
	lines []string
	pos   int
}

// NewStringSource wraps a literal string as a Source.
func NewStringSource(content string) *StringSource {
	var lines []string
	if content != "" {
		lines = strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	}
	return &StringSource{lines: lines}
}

func (s *StringSource) NextLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

func (s *StringSource) Name() string { return "<string>" }

// FuncSource adapts a caller-supplied callback as a Source. The callback
// returns ok=false at end of input.
type FuncSource struct {
	next func() (line string, ok bool, err error)
	name string
}

// NewFuncSource wraps a line-by-line callback. name may be empty; it defaults
// to "<func>" in diagnostics.
func NewFuncSource(name string, next func() (line string, ok bool, err error)) *FuncSource {
	if name == "" {
		name = "<func>"
	}
	return &FuncSource{next: next, name: name}
}

func (s *FuncSource) NextLine() (string, error) {
	line, ok, err := s.next()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", io.EOF
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func (s *FuncSource) Name() string { return s.name }

// ReaderSource supplies lines from any io.Reader.
type ReaderSource struct {
	r    *bufio.Reader
	name string
	done bool
}

// NewReaderSource wraps an io.Reader as a Source. name may be empty.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	if name == "" {
		name = "<reader>"
	}
	return &ReaderSource{r: bufio.NewReader(r), name: name}
}

func (s *ReaderSource) NextLine() (string, error) {
	if s.done {
		return "", io.EOF
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		s.done = true
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func (s *ReaderSource) Name() string { return s.name }

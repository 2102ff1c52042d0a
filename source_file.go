package koi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// EncodingErrorStrategy controls how invalid byte sequences are handled when
// decoding file input.
type EncodingErrorStrategy int

const (
	// EncodingStrict fails immediately on invalid byte sequences.
	EncodingStrict EncodingErrorStrategy = iota
	// EncodingReplace substitutes the Unicode replacement character.
	EncodingReplace
	// EncodingIgnore silently drops invalid sequences.
	EncodingIgnore
)

// DecodeError reports an invalid byte sequence encountered under the strict
// strategy.
type DecodeError struct {
	Source string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid byte sequence in %s", e.Source)
}

// FileSource reads lines from a file, decoding them from a named text
// encoding. The caller must Close it when done.
type FileSource struct {
	f        *os.File
	r        *bufio.Reader
	strategy EncodingErrorStrategy
	name     string
	done     bool

	// rawUTF8 marks the undecoded UTF-8 path, where invalid input is
	// detected directly on the raw bytes.
	rawUTF8 bool
	// fffdIsData is true when the named encoding can itself represent
	// U+FFFD, in which case a replacement rune in decoded output is
	// source data, not a decode failure.
	fffdIsData bool
}

// NewFileSource opens path and decodes it as UTF-8 with the replace strategy.
func NewFileSource(path string) (*FileSource, error) {
	return NewFileSourceEncoding(path, "", EncodingReplace)
}

// NewFileSourceEncoding opens path with the given IANA encoding name (empty
// means UTF-8) and decode-error strategy.
func NewFileSourceEncoding(path, encodingName string, strategy EncodingErrorStrategy) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := &FileSource{f: f, strategy: strategy, name: path}
	if encodingName == "" || isUTF8Name(encodingName) {
		s.rawUTF8 = true
		s.r = bufio.NewReader(f)
		return s, nil
	}
	enc, err := ianaindex.IANA.Encoding(encodingName)
	if err != nil || enc == nil {
		f.Close()
		return nil, fmt.Errorf("koi: unknown encoding %q", encodingName)
	}
	// x/text decoders substitute U+FFFD for undecodable input without
	// reporting it, so a decode failure has to be told apart from a
	// legitimate replacement rune in the source. Probe once whether the
	// encoding can represent U+FFFD at all; when it cannot (every
	// charmap), any replacement rune in the output was decoder-made.
	if encoded, _, err := transform.Bytes(enc.NewEncoder(), []byte("�")); err == nil && len(encoded) > 0 {
		s.fffdIsData = true
	}
	s.r = bufio.NewReader(enc.NewDecoder().Reader(f))
	return s, nil
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

func (s *FileSource) NextLine() (string, error) {
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
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

	if s.rawUTF8 {
		// The raw bytes say directly whether the input was well formed;
		// a literal U+FFFD in valid input passes through untouched.
		if utf8.ValidString(line) {
			return line, nil
		}
		switch s.strategy {
		case EncodingStrict:
			return "", &DecodeError{Source: s.name}
		case EncodingIgnore:
			return strings.ToValidUTF8(line, ""), nil
		default:
			return strings.ToValidUTF8(line, "�"), nil
		}
	}

	if !s.fffdIsData && strings.ContainsRune(line, '�') {
		switch s.strategy {
		case EncodingStrict:
			return "", &DecodeError{Source: s.name}
		case EncodingIgnore:
			line = strings.ReplaceAll(line, "�", "")
		}
	}
	return line, nil
}

func (s *FileSource) Name() string { return s.name }

// Close releases the underlying file.
func (s *FileSource) Close() error { return s.f.Close() }

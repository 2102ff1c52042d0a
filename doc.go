// Package koi parses and renders KoiLang, a line-oriented command language
// where the number of leading marker characters classifies each line as
// text, a command, or an annotation.
//
// The package provides:
//
//   - a parser turning a line source into a stream of Command values
//   - a closed value model (scalar and composite parameters) with deep
//     equality and cloning
//   - a writer with cascading style configuration
//     (global -> per-command -> per-call -> per-parameter)
//   - pluggable line sources (string, io.Reader, file with a named text
//     encoding, caller callback)
//
// Design policy:
//
//   - keep only public APIs in the root package; the line tokenizer lives
//     under internal/
//   - the CLI lives under cmd/koi
//   - prefer black-box testing against public APIs
//
// Typical usage:
//
//	p := koi.NewParser(koi.NewStringSource("#draw line pos(0, 0)"))
//	for p.Scan() {
//		handle(p.Command())
//	}
//	if err := p.Err(); err != nil {
//		// a syntax or decode failure; end of input leaves err nil
//	}
//
//	w := koi.NewWriter(&buf)
//	err := w.WriteCommand(cmd)
package koi

package koi_test

import (
	"strings"
	"testing"

	koi "github.com/koilang/koi"
)

func smallDocument() string {
	return "#stage intro\n" +
		"Once upon a time.\n" +
		"#draw pos(10, 20) width(3) style{color: \"red\", size: 12}\n" +
		"##scene notes\n" +
		"#42 checkpoint\n"
}

func largeDocument() string {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString(smallDocument())
	}
	return b.String()
}

func benchmarkParse(b *testing.B, doc string) {
	b.ReportAllocs()
	b.SetBytes(int64(len(doc)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := koi.ParseString(doc); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}

func Benchmark_Parse_Small(b *testing.B) { benchmarkParse(b, smallDocument()) }
func Benchmark_Parse_Large(b *testing.B) { benchmarkParse(b, largeDocument()) }

func Benchmark_Parse_ScalarHeavy(b *testing.B) {
	doc := strings.Repeat("#set 1 2.5 true word \"two words\" 0xff\n", 100)
	benchmarkParse(b, doc)
}

func Benchmark_Parse_CompositeHeavy(b *testing.B) {
	doc := strings.Repeat("#draw pos(1, 2, 3) style{a: 1, b: 2, c: 3} w(9)\n", 100)
	benchmarkParse(b, doc)
}

func Benchmark_Format_Small(b *testing.B) {
	cmds, err := koi.ParseString(smallDocument())
	if err != nil {
		b.Fatalf("parse: %v", err)
	}
	cfg := koi.DefaultWriterConfig()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = koi.FormatAll(cmds, cfg)
	}
}

func Benchmark_Format_Overrides(b *testing.B) {
	cmds, err := koi.ParseString(largeDocument())
	if err != nil {
		b.Fatalf("parse: %v", err)
	}
	cfg := koi.DefaultWriterConfig()
	cfg.Global = koi.Options{}.WithIndent(2)
	cfg.Commands = []koi.CommandOptions{{
		Name:    "draw",
		Options: koi.Options{}.WithNewlineBeforeParam(true),
		Params: []koi.ParamSelector{
			koi.ByName("style", koi.Options{}.WithForceQuotes(true)),
		},
	}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = koi.FormatAll(cmds, cfg)
	}
}

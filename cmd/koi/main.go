package main

import (
	"flag"
	"fmt"
	"os"

	koi "github.com/koilang/koi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "parse":
		parseCmd(os.Args[2:])
	case "fmt":
		fmtCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "koi CLI\n\nUsage:\n  koi parse -in file.koi [-encoding name] [-errors strict|replace|ignore] [-config koi.yaml] [-json]\n  koi fmt -in file.koi [-config koi.yaml] [-o out.koi]\n\nNotes:\n  - parse prints one command per line, or a JSON array with -json.\n  - fmt re-renders the input under the configured style.")
}

func parseCmd(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	var in, enc, errStrategy, cfgPath string
	var asJSON bool
	fs.StringVar(&in, "in", "", "input file (default stdin)")
	fs.StringVar(&enc, "encoding", "", "IANA text encoding name (default UTF-8)")
	fs.StringVar(&errStrategy, "errors", "replace", "decode-error strategy: strict, replace or ignore")
	fs.StringVar(&cfgPath, "config", "", "YAML configuration file")
	fs.BoolVar(&asJSON, "json", false, "emit a JSON array instead of text")
	_ = fs.Parse(args)

	pc, _, err := loadConfig(cfgPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	src, closeSrc, err := openSource(in, enc, errStrategy)
	if err != nil {
		fatalf("open: %v", err)
	}
	defer closeSrc()

	p := koi.NewParserWith(src, pc)
	var cmds []*koi.Command
	for p.Scan() {
		cmds = append(cmds, p.Command())
	}
	if err := p.Err(); err != nil {
		fatalf("parse: %v", err)
	}

	if asJSON {
		if err := koi.EncodeJSON(os.Stdout, cmds); err != nil {
			fatalf("encode: %v", err)
		}
		return
	}
	for _, c := range cmds {
		fmt.Println(c.String())
	}
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	var in, out, enc, cfgPath string
	fs.StringVar(&in, "in", "", "input file (default stdin)")
	fs.StringVar(&out, "o", "", "output file (default stdout)")
	fs.StringVar(&enc, "encoding", "", "IANA text encoding name (default UTF-8)")
	fs.StringVar(&cfgPath, "config", "", "YAML configuration file")
	_ = fs.Parse(args)

	pc, wc, err := loadConfig(cfgPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	src, closeSrc, err := openSource(in, enc, "replace")
	if err != nil {
		fatalf("open: %v", err)
	}
	defer closeSrc()

	p := koi.NewParserWith(src, pc)
	var cmds []*koi.Command
	for p.Scan() {
		cmds = append(cmds, p.Command())
	}
	if err := p.Err(); err != nil {
		fatalf("parse: %v", err)
	}

	sink := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			fatalf("create: %v", err)
		}
		defer f.Close()
		sink = f
	}
	w := koi.NewWriterWith(sink, wc)
	if err := w.WriteAll(cmds); err != nil {
		fatalf("write: %v", err)
	}
	if err := w.Flush(); err != nil {
		fatalf("flush: %v", err)
	}
}

func loadConfig(path string) (koi.ParserConfig, koi.WriterConfig, error) {
	if path == "" {
		return koi.DefaultParserConfig(), koi.DefaultWriterConfig(), nil
	}
	return koi.LoadConfigFile(path)
}

func openSource(path, enc, errStrategy string) (koi.Source, func(), error) {
	if path == "" {
		return koi.NewReaderSource("<stdin>", os.Stdin), func() {}, nil
	}
	strategy, err := decodeStrategy(errStrategy)
	if err != nil {
		return nil, nil, err
	}
	fsrc, err := koi.NewFileSourceEncoding(path, enc, strategy)
	if err != nil {
		return nil, nil, err
	}
	return fsrc, func() { fsrc.Close() }, nil
}

func decodeStrategy(s string) (koi.EncodingErrorStrategy, error) {
	switch s {
	case "strict":
		return koi.EncodingStrict, nil
	case "replace", "":
		return koi.EncodingReplace, nil
	case "ignore":
		return koi.EncodingIgnore, nil
	}
	return koi.EncodingReplace, fmt.Errorf("unknown decode-error strategy %q", s)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "koi: "+format+"\n", args...)
	os.Exit(1)
}

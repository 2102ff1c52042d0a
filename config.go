package koi

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File configuration maps a YAML document onto parser and writer policies.
// Every field is optional; omitted fields keep their defaults. Example:
//
//	parser:
//	  threshold: 2
//	  skip_annotations: true
//	writer:
//	  threshold: 2
//	  global:
//	    indent: 2
//	  commands:
//	    - name: draw
//	      options:
//	        newline_before_param: true
//	      params:
//	        - index: 0
//	          options: {number: hex}

type configFile struct {
	Parser *parserConfigFile `yaml:"parser"`
	Writer *writerConfigFile `yaml:"writer"`
}

type parserConfigFile struct {
	Threshold            *int  `yaml:"threshold"`
	SkipAnnotations      *bool `yaml:"skip_annotations"`
	ConvertNumberCommand *bool `yaml:"convert_number_command"`
	PreserveIndent       *bool `yaml:"preserve_indent"`
	PreserveEmptyLines   *bool `yaml:"preserve_empty_lines"`
}

type writerConfigFile struct {
	Threshold *int                `yaml:"threshold"`
	Global    *optionsFile        `yaml:"global"`
	Commands  []commandConfigFile `yaml:"commands"`
}

type commandConfigFile struct {
	Name    string         `yaml:"name"`
	Options *optionsFile   `yaml:"options"`
	Params  []selectorFile `yaml:"params"`
}

type selectorFile struct {
	Index   *int         `yaml:"index"`
	Name    *string      `yaml:"name"`
	Options *optionsFile `yaml:"options"`
}

type optionsFile struct {
	Replace            bool    `yaml:"replace"`
	Indent             *int    `yaml:"indent"`
	UseTabs            *bool   `yaml:"use_tabs"`
	Compact            *bool   `yaml:"compact"`
	ForceQuotes        *bool   `yaml:"force_quotes"`
	Number             *string `yaml:"number"`
	NewlineBefore      *bool   `yaml:"newline_before"`
	NewlineAfter       *bool   `yaml:"newline_after"`
	NewlineBeforeParam *bool   `yaml:"newline_before_param"`
	NewlineAfterParam  *bool   `yaml:"newline_after_param"`
}

// LoadConfigFile reads and applies a YAML configuration file on top of the
// default parser and writer policies.
func LoadConfigFile(path string) (ParserConfig, WriterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultParserConfig(), DefaultWriterConfig(), err
	}
	return LoadConfig(data)
}

// LoadConfig applies a YAML document on top of the default parser and
// writer policies.
func LoadConfig(data []byte) (ParserConfig, WriterConfig, error) {
	pc := DefaultParserConfig()
	wc := DefaultWriterConfig()
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return pc, wc, fmt.Errorf("koi: invalid config: %w", err)
	}
	if f.Parser != nil {
		applyParserFile(&pc, f.Parser)
	}
	if f.Writer != nil {
		if err := applyWriterFile(&wc, f.Writer); err != nil {
			return pc, wc, err
		}
	}
	return pc, wc, nil
}

func applyParserFile(pc *ParserConfig, f *parserConfigFile) {
	if f.Threshold != nil {
		pc.Threshold = *f.Threshold
	}
	if f.SkipAnnotations != nil {
		pc.SkipAnnotations = *f.SkipAnnotations
	}
	if f.ConvertNumberCommand != nil {
		pc.ConvertNumberCommand = *f.ConvertNumberCommand
	}
	if f.PreserveIndent != nil {
		pc.PreserveIndent = *f.PreserveIndent
	}
	if f.PreserveEmptyLines != nil {
		pc.PreserveEmptyLines = *f.PreserveEmptyLines
	}
}

func applyWriterFile(wc *WriterConfig, f *writerConfigFile) error {
	if f.Threshold != nil {
		wc.Threshold = *f.Threshold
	}
	if f.Global != nil {
		o, err := f.Global.toOptions()
		if err != nil {
			return err
		}
		wc.Global = o
	}
	for _, cf := range f.Commands {
		if cf.Name == "" {
			return fmt.Errorf("koi: invalid config: command override without a name")
		}
		co := CommandOptions{Name: cf.Name}
		if cf.Options != nil {
			o, err := cf.Options.toOptions()
			if err != nil {
				return err
			}
			co.Options = o
		}
		for _, sf := range cf.Params {
			var o Options
			if sf.Options != nil {
				var err error
				o, err = sf.Options.toOptions()
				if err != nil {
					return err
				}
			}
			switch {
			case sf.Index != nil:
				co.Params = append(co.Params, ByIndex(*sf.Index, o))
			case sf.Name != nil:
				co.Params = append(co.Params, ByName(*sf.Name, o))
			default:
				return fmt.Errorf("koi: invalid config: parameter selector for %q needs index or name", cf.Name)
			}
		}
		wc.Commands = append(wc.Commands, co)
	}
	return nil
}

func (f *optionsFile) toOptions() (Options, error) {
	o := Options{
		Replace:            f.Replace,
		Indent:             f.Indent,
		UseTabs:            f.UseTabs,
		Compact:            f.Compact,
		ForceQuotes:        f.ForceQuotes,
		NewlineBefore:      f.NewlineBefore,
		NewlineAfter:       f.NewlineAfter,
		NewlineBeforeParam: f.NewlineBeforeParam,
		NewlineAfterParam:  f.NewlineAfterParam,
	}
	if f.Number != nil {
		n, err := ParseNumberFormat(*f.Number)
		if err != nil {
			return o, err
		}
		o.Number = &n
	}
	return o, nil
}

// ParseNumberFormat maps a base name to its NumberFormat.
func ParseNumberFormat(s string) (NumberFormat, error) {
	switch s {
	case "decimal", "dec", "":
		return Decimal, nil
	case "hex", "hexadecimal":
		return Hex, nil
	case "octal", "oct":
		return Octal, nil
	case "binary", "bin":
		return Binary, nil
	}
	return Decimal, fmt.Errorf("koi: unknown number format %q", s)
}

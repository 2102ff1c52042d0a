package koi

// NumberFormat selects the rendering base for integer values.
type NumberFormat int

const (
	Decimal NumberFormat = iota
	Hex
	Octal
	Binary
)

func (f NumberFormat) String() string {
	switch f {
	case Hex:
		return "hex"
	case Octal:
		return "octal"
	case Binary:
		return "binary"
	default:
		return "decimal"
	}
}

// Options is one layer of formatting configuration. Every field is
// individually set-or-inherit: a nil field inherits from the layer below.
// Replace discards the lower layers and resolves unset fields to defaults
// instead.
//
// Layers are applied global, then per-command, then per-call, then
// per-parameter; later layers win field-by-field.
type Options struct {
	Replace bool

	// Indent is the indent unit width in characters.
	Indent *int
	// UseTabs indents with tab characters instead of spaces.
	UseTabs *bool
	// Compact suppresses all optional line breaks.
	Compact *bool
	// ForceQuotes quotes every string value even when it could render
	// bare.
	ForceQuotes *bool
	// Number is the integer rendering base.
	Number *NumberFormat
	// NewlineBefore emits a blank line before the command.
	NewlineBefore *bool
	// NewlineAfter emits a blank line after the command.
	NewlineAfter *bool
	// NewlineBeforeParam places each parameter on its own indented line.
	NewlineBeforeParam *bool
	// NewlineAfterParam breaks the line after each parameter.
	NewlineAfterParam *bool
}

// WithIndent returns a copy with the indent unit set.
func (o Options) WithIndent(n int) Options { o.Indent = &n; return o }

// WithUseTabs returns a copy with tab indentation set.
func (o Options) WithUseTabs(v bool) Options { o.UseTabs = &v; return o }

// WithCompact returns a copy with compact mode set.
func (o Options) WithCompact(v bool) Options { o.Compact = &v; return o }

// WithForceQuotes returns a copy with forced string quoting set.
func (o Options) WithForceQuotes(v bool) Options { o.ForceQuotes = &v; return o }

// WithNumber returns a copy with the integer rendering base set.
func (o Options) WithNumber(f NumberFormat) Options { o.Number = &f; return o }

// WithNewlineBefore returns a copy with the blank-line-before flag set.
func (o Options) WithNewlineBefore(v bool) Options { o.NewlineBefore = &v; return o }

// WithNewlineAfter returns a copy with the blank-line-after flag set.
func (o Options) WithNewlineAfter(v bool) Options { o.NewlineAfter = &v; return o }

// WithNewlineBeforeParam returns a copy with per-line parameters set.
func (o Options) WithNewlineBeforeParam(v bool) Options { o.NewlineBeforeParam = &v; return o }

// WithNewlineAfterParam returns a copy with the break-after-parameter flag
// set.
func (o Options) WithNewlineAfterParam(v bool) Options { o.NewlineAfterParam = &v; return o }

// WithReplace returns a copy marked as a full override.
func (o Options) WithReplace(v bool) Options { o.Replace = v; return o }

// ParamSelector targets one parameter of a command for a per-parameter
// options layer, by position or by composite name. The first matching
// selector in a list wins.
type ParamSelector struct {
	index   int
	byIndex bool
	name    string
	opts    Options
}

// ByIndex selects the parameter at position i.
func ByIndex(i int, opts Options) ParamSelector {
	return ParamSelector{index: i, byIndex: true, opts: opts}
}

// ByName selects the first composite parameter with the given name.
func ByName(name string, opts Options) ParamSelector {
	return ParamSelector{name: name, opts: opts}
}

func (s ParamSelector) matches(i int, p Parameter) bool {
	if s.byIndex {
		return s.index == i
	}
	name, ok := p.CompositeName()
	return ok && name == s.name
}

// CommandOptions binds an options layer to commands with a given name,
// optionally refined per parameter.
type CommandOptions struct {
	Name    string
	Options Options
	Params  []ParamSelector
}

// WriterConfig is the full formatting policy for a writer.
type WriterConfig struct {
	// Threshold is the marker count written before each command name.
	// Non-positive means 1.
	Threshold int
	// Global is the base options layer.
	Global Options
	// Commands holds name-keyed overrides; the first entry matching the
	// written command's name wins.
	Commands []CommandOptions
}

// DefaultWriterConfig returns a policy with threshold 1 and all options at
// their defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{Threshold: 1}
}

// defaultIndent is the indent unit used when no layer sets one.
const defaultIndent = 4

// resolved is the flattened outcome of the options cascade for one command
// or parameter.
type resolved struct {
	indent             int
	useTabs            bool
	compact            bool
	forceQuotes        bool
	number             NumberFormat
	newlineBefore      bool
	newlineAfter       bool
	newlineBeforeParam bool
	newlineAfterParam  bool
}

func defaultResolved() resolved {
	return resolved{indent: defaultIndent, number: Decimal}
}

// apply folds one layer into the resolution. Replace restarts from the
// defaults before the layer's own fields are applied.
func (r resolved) apply(o Options) resolved {
	if o.Replace {
		r = defaultResolved()
	}
	if o.Indent != nil {
		r.indent = *o.Indent
	}
	if o.UseTabs != nil {
		r.useTabs = *o.UseTabs
	}
	if o.Compact != nil {
		r.compact = *o.Compact
	}
	if o.ForceQuotes != nil {
		r.forceQuotes = *o.ForceQuotes
	}
	if o.Number != nil {
		r.number = *o.Number
	}
	if o.NewlineBefore != nil {
		r.newlineBefore = *o.NewlineBefore
	}
	if o.NewlineAfter != nil {
		r.newlineAfter = *o.NewlineAfter
	}
	if o.NewlineBeforeParam != nil {
		r.newlineBeforeParam = *o.NewlineBeforeParam
	}
	if o.NewlineAfterParam != nil {
		r.newlineAfterParam = *o.NewlineAfterParam
	}
	return r
}

// commandFor returns the per-command overrides for name, if any.
func (c WriterConfig) commandFor(name string) *CommandOptions {
	for i := range c.Commands {
		if c.Commands[i].Name == name {
			return &c.Commands[i]
		}
	}
	return nil
}

// resolveCommand flattens global, per-command and per-call layers for one
// command.
func (c WriterConfig) resolveCommand(name string, call *Options) (resolved, *CommandOptions) {
	r := defaultResolved().apply(c.Global)
	co := c.commandFor(name)
	if co != nil {
		r = r.apply(co.Options)
	}
	if call != nil {
		r = r.apply(*call)
	}
	return r, co
}

// resolveParam refines a command-level resolution with the first matching
// per-parameter selector.
func resolveParam(base resolved, co *CommandOptions, i int, p Parameter) resolved {
	if co == nil {
		return base
	}
	for _, sel := range co.Params {
		if sel.matches(i, p) {
			return base.apply(sel.opts)
		}
	}
	return base
}

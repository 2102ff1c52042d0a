package koi

import "strings"

// Reserved synthetic command names produced by the parser for lines that are
// not ordinary commands.
const (
	TextCommandName       = "@text"
	AnnotationCommandName = "@annotation"
	NumberCommandName     = "@number"
)

// Command is a named, ordered sequence of parameters. Commands have value
// semantics for comparison and cloning: Equal compares recursively and Clone
// produces a fully independent copy.
type Command struct {
	name   string
	params []Parameter
}

// NewCommand creates a command with the given name and parameters.
func NewCommand(name string, params ...Parameter) *Command {
	return &Command{name: name, params: params}
}

// NewTextCommand creates a @text command carrying content as parameter 0.
func NewTextCommand(content string) *Command {
	return NewCommand(TextCommandName, BasicParam(StringValue(content)))
}

// NewAnnotationCommand creates an @annotation command carrying content as
// parameter 0.
func NewAnnotationCommand(content string) *Command {
	return NewCommand(AnnotationCommandName, BasicParam(StringValue(content)))
}

// NewNumberCommand creates a @number command: the integer value is parameter
// 0, followed by any further ordinary parameters.
func NewNumberCommand(value int64, params ...Parameter) *Command {
	all := make([]Parameter, 0, len(params)+1)
	all = append(all, BasicParam(IntValue(value)))
	all = append(all, params...)
	return NewCommand(NumberCommandName, all...)
}

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// SetName replaces the command name. Empty names are ignored.
func (c *Command) SetName(name string) {
	if name != "" {
		c.name = name
	}
}

// IsText reports whether this is a @text command.
func (c *Command) IsText() bool { return c.name == TextCommandName }

// IsAnnotation reports whether this is an @annotation command.
func (c *Command) IsAnnotation() bool { return c.name == AnnotationCommandName }

// IsNumber reports whether this is a @number command.
func (c *Command) IsNumber() bool { return c.name == NumberCommandName }

// NumParams returns the number of parameters.
func (c *Command) NumParams() int { return len(c.params) }

// KindAt returns the type code of the parameter at index i, or KindInvalid
// when i is out of range.
func (c *Command) KindAt(i int) ParamKind {
	if i < 0 || i >= len(c.params) {
		return KindInvalid
	}
	return c.params[i].kind
}

// ParamAt returns the parameter at index i, or an ErrIndexRange error.
func (c *Command) ParamAt(i int) (Parameter, error) {
	if i < 0 || i >= len(c.params) {
		return Parameter{kind: KindInvalid}, ErrIndexRange
	}
	return c.params[i], nil
}

func (c *Command) basicAt(i int, k ParamKind) (Value, error) {
	if i < 0 || i >= len(c.params) {
		return Value{Kind: KindInvalid}, ErrIndexRange
	}
	if c.params[i].kind != k {
		return Value{Kind: KindInvalid}, ErrTypeMismatch
	}
	return c.params[i].value, nil
}

// IntAt returns the integer parameter at index i. It fails with
// ErrTypeMismatch when the parameter has a different kind, leaving the
// command unchanged.
func (c *Command) IntAt(i int) (int64, error) {
	v, err := c.basicAt(i, KindInt)
	if err != nil {
		return 0, err
	}
	return v.Int, nil
}

// FloatAt returns the float parameter at index i.
func (c *Command) FloatAt(i int) (float64, error) {
	v, err := c.basicAt(i, KindFloat)
	if err != nil {
		return 0, err
	}
	return v.Float, nil
}

// BoolAt returns the boolean parameter at index i.
func (c *Command) BoolAt(i int) (bool, error) {
	v, err := c.basicAt(i, KindBool)
	if err != nil {
		return false, err
	}
	return v.Bool, nil
}

// StringAt returns the text of the string or literal parameter at index i.
func (c *Command) StringAt(i int) (string, error) {
	if i < 0 || i >= len(c.params) {
		return "", ErrIndexRange
	}
	p := c.params[i]
	if p.kind != KindString && p.kind != KindLiteral {
		return "", ErrTypeMismatch
	}
	return p.value.Str, nil
}

// ListAt returns the composite list at index i. The returned list is a view
// into the command's storage: it stays valid only while the command is alive
// and no parameters are added or removed.
func (c *Command) ListAt(i int) (*CompositeList, error) {
	if i < 0 || i >= len(c.params) {
		return nil, ErrIndexRange
	}
	if c.params[i].kind != KindList {
		return nil, ErrTypeMismatch
	}
	return c.params[i].list, nil
}

// DictAt returns the composite dict at index i as a view (see ListAt).
func (c *Command) DictAt(i int) (*CompositeDict, error) {
	if i < 0 || i >= len(c.params) {
		return nil, ErrIndexRange
	}
	if c.params[i].kind != KindDict {
		return nil, ErrTypeMismatch
	}
	return c.params[i].dict, nil
}

// SingleAt returns the composite single at index i as a view (see ListAt).
func (c *Command) SingleAt(i int) (*CompositeSingle, error) {
	if i < 0 || i >= len(c.params) {
		return nil, ErrIndexRange
	}
	if c.params[i].kind != KindSingle {
		return nil, ErrTypeMismatch
	}
	return c.params[i].single, nil
}

// CompositeNameAt returns the name of the composite parameter at index i, or
// an error for basic parameters and out-of-range indexes.
func (c *Command) CompositeNameAt(i int) (string, error) {
	if i < 0 || i >= len(c.params) {
		return "", ErrIndexRange
	}
	name, ok := c.params[i].CompositeName()
	if !ok {
		return "", ErrTypeMismatch
	}
	return name, nil
}

// AddParam appends a parameter. Invalid parameters are ignored.
func (c *Command) AddParam(p Parameter) {
	if p.kind == KindInvalid {
		return
	}
	c.params = append(c.params, p)
}

// AddInt appends an integer parameter.
func (c *Command) AddInt(v int64) { c.AddParam(BasicParam(IntValue(v))) }

// AddFloat appends a float parameter.
func (c *Command) AddFloat(v float64) { c.AddParam(BasicParam(FloatValue(v))) }

// AddBool appends a boolean parameter.
func (c *Command) AddBool(v bool) { c.AddParam(BasicParam(BoolValue(v))) }

// AddString appends a string parameter.
func (c *Command) AddString(s string) { c.AddParam(BasicParam(StringValue(s))) }

// AddLiteral appends a raw literal parameter.
func (c *Command) AddLiteral(s string) { c.AddParam(BasicParam(LiteralValue(s))) }

// AddList appends a composite list parameter. Ownership of the list
// transfers to the command; the caller must not reuse the handle.
func (c *Command) AddList(l *CompositeList) { c.AddParam(ListParam(l)) }

// AddDict appends a composite dict parameter, transferring ownership.
func (c *Command) AddDict(d *CompositeDict) { c.AddParam(DictParam(d)) }

// AddSingle appends a composite single parameter, transferring ownership.
func (c *Command) AddSingle(s *CompositeSingle) { c.AddParam(SingleParam(s)) }

func (c *Command) setBasicAt(i int, v Value) error {
	if i < 0 || i >= len(c.params) {
		return ErrIndexRange
	}
	if c.params[i].kind != v.Kind {
		return ErrTypeMismatch
	}
	c.params[i].value = v
	return nil
}

// SetIntAt replaces the integer parameter at index i. The existing parameter
// must already be an integer.
func (c *Command) SetIntAt(i int, v int64) error { return c.setBasicAt(i, IntValue(v)) }

// SetFloatAt replaces the float parameter at index i.
func (c *Command) SetFloatAt(i int, v float64) error { return c.setBasicAt(i, FloatValue(v)) }

// SetBoolAt replaces the boolean parameter at index i.
func (c *Command) SetBoolAt(i int, v bool) error { return c.setBasicAt(i, BoolValue(v)) }

// SetStringAt replaces the string parameter at index i.
func (c *Command) SetStringAt(i int, s string) error { return c.setBasicAt(i, StringValue(s)) }

// RemoveParam deletes the parameter at index i; later parameters are
// renumbered down by one. Views previously obtained from this command are
// invalidated.
func (c *Command) RemoveParam(i int) error {
	if i < 0 || i >= len(c.params) {
		return ErrIndexRange
	}
	c.params = append(c.params[:i], c.params[i+1:]...)
	return nil
}

// ClearParams removes all parameters.
func (c *Command) ClearParams() { c.params = c.params[:0] }

// Equal reports whether two commands have the same name and pairwise equal
// parameters, comparing composites recursively.
func (c *Command) Equal(o *Command) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.name != o.name || len(c.params) != len(o.params) {
		return false
	}
	for i := range c.params {
		if !c.params[i].Equal(o.params[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy; mutating the clone never affects the original.
func (c *Command) Clone() *Command {
	params := make([]Parameter, len(c.params))
	for i, p := range c.params {
		params[i] = p.clone()
	}
	return &Command{name: c.name, params: params}
}

// String renders the command name followed by its parameters, without the
// marker prefix. Use a Writer for full marker-prefixed output.
func (c *Command) String() string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, p := range c.params {
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	return b.String()
}

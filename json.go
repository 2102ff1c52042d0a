package koi

import (
	"io"

	json "github.com/goccy/go-json"
)

// JSON projection of the value model, used by tooling that wants the
// parsed stream in a machine-readable form. The projection is one-way:
// literal tokens keep their verbatim text under the "literal" kind, so
// nothing is lost, but the canonical exchange format stays the textual
// one.

type valueJSON struct {
	Kind  string      `json:"kind"`
	Value interface{} `json:"value"`
}

// MarshalJSON renders the value as {"kind": ..., "value": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{Kind: v.Kind.String()}
	switch v.Kind {
	case KindInt:
		out.Value = v.Int
	case KindFloat:
		out.Value = v.Float
	case KindBool:
		out.Value = v.Bool
	default:
		out.Value = v.Str
	}
	return json.Marshal(out)
}

type entryJSON struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

type paramJSON struct {
	Kind    string      `json:"kind"`
	Name    string      `json:"name,omitempty"`
	Value   *Value      `json:"value,omitempty"`
	Items   []Value     `json:"items,omitempty"`
	Entries []entryJSON `json:"entries,omitempty"`
}

// MarshalJSON renders scalars as {"kind","value"} and composites with
// their name plus items or insertion-ordered entries.
func (p Parameter) MarshalJSON() ([]byte, error) {
	out := paramJSON{Kind: p.kind.String()}
	switch p.kind {
	case KindList:
		out.Name = p.list.name
		out.Items = p.list.items
		if out.Items == nil {
			out.Items = []Value{}
		}
	case KindDict:
		out.Name = p.dict.name
		out.Entries = []entryJSON{}
		for _, k := range p.dict.keys {
			v, _ := p.dict.Get(k)
			out.Entries = append(out.Entries, entryJSON{Key: k, Value: v})
		}
	case KindSingle:
		out.Name = p.single.name
		v := p.single.value
		out.Value = &v
	default:
		v := p.value
		out.Value = &v
	}
	return json.Marshal(out)
}

type commandJSON struct {
	Name   string      `json:"name"`
	Params []Parameter `json:"params"`
}

// MarshalJSON renders the command name and its ordered parameters.
func (c *Command) MarshalJSON() ([]byte, error) {
	out := commandJSON{Name: c.name, Params: c.params}
	if out.Params == nil {
		out.Params = []Parameter{}
	}
	return json.Marshal(out)
}

// EncodeJSON writes a command stream to w as a JSON array.
func EncodeJSON(w io.Writer, cmds []*Command) error {
	if cmds == nil {
		cmds = []*Command{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(cmds)
}

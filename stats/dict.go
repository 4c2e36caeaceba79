package stats

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NamedParam is one named parameter of a ParamDict.
type NamedParam struct {
	Name  string
	Value float64
}

// ParamDict is the named-parameter view of a FitResult. Params keep a fixed
// order per family, followed by the optional min and max bounds.
type ParamDict struct {
	Type   string
	Params []NamedParam
}

// DictOption configures ToDict.
type DictOption func(*dictOptions)

type dictOptions struct {
	min, max       float64
	hasMin, hasMax bool
}

// WithMinBound attaches a lower truncation bound to normal and exponential
// dictionaries.
func WithMinBound(v float64) DictOption {
	return func(o *dictOptions) { o.min, o.hasMin = v, true }
}

// WithMaxBound attaches an upper truncation bound to normal and exponential
// dictionaries.
func WithMaxBound(v float64) DictOption {
	return func(o *dictOptions) { o.max, o.hasMax = v, true }
}

// ToDict converts a fit into named parameters:
//
//	norm:    {type: normal, mu, sigma, [min], [max]}
//	expon:   {type: exponential, lambda, [min], [max]}
//	uniform: {type: uniform, min, max}
//
// Bounds are included only when supplied. A uniform fit always reports its
// own support; bounds never override it.
func ToDict(fit FitResult, opts ...DictOption) (ParamDict, error) {
	var o dictOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if !fit.Type.valid() {
		return ParamDict{}, fmt.Errorf("stats: to dict: %w: %q", ErrUnsupportedFamily, string(fit.Type))
	}
	if len(fit.Params) != 2 {
		return ParamDict{}, fmt.Errorf("stats: to dict: %w: %s wants 2 parameters, got %d",
			ErrInvalidParams, fit.Type, len(fit.Params))
	}

	d := ParamDict{Type: dictNames[fit.Type]}
	p := fit.Params
	switch fit.Type {
	case Uniform:
		d.Params = []NamedParam{{"min", p[0]}, {"max", p[0] + p[1]}}
		return d, nil
	case Normal:
		d.Params = []NamedParam{{"mu", p[0]}, {"sigma", p[1]}}
	case Exponential:
		d.Params = []NamedParam{{"lambda", 1 / p[0]}}
	}
	if o.hasMin {
		d.Params = append(d.Params, NamedParam{"min", o.min})
	}
	if o.hasMax {
		d.Params = append(d.Params, NamedParam{"max", o.max})
	}
	return d, nil
}

// Get returns the value of the named parameter.
func (d ParamDict) Get(name string) (float64, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return 0, false
}

// MarshalJSON encodes d as a flat object, "type" first, then the parameters
// in order.
func (d ParamDict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	typ, err := json.Marshal(d.Type)
	if err != nil {
		return nil, err
	}
	buf.Write(typ)
	for _, p := range d.Params {
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("stats: parameter %s: %w", p.Name, err)
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat object produced by MarshalJSON, keeping the
// parameter order of the input.
func (d *ParamDict) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if tok != json.Delim('{') {
		return fmt.Errorf("stats: param dict: expected object, got %v", tok)
	}

	*d = ParamDict{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if key == "type" {
			if err := dec.Decode(&d.Type); err != nil {
				return fmt.Errorf("stats: param dict type: %w", err)
			}
			continue
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("stats: param dict %s: %w", key, err)
		}
		d.Params = append(d.Params, NamedParam{key, v})
	}
	_, err := dec.Token()
	return err
}

// MarshalYAML encodes d as an ordered mapping.
func (d ParamDict) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, strNode("type"), strNode(d.Type))
	for _, p := range d.Params {
		var val yaml.Node
		if err := val.Encode(p.Value); err != nil {
			return nil, fmt.Errorf("stats: parameter %s: %w", p.Name, err)
		}
		node.Content = append(node.Content, strNode(p.Name), &val)
	}
	return node, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

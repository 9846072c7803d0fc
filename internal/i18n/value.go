// Package i18n resolves user-facing strings from per-locale dictionaries and
// tracks the selected locale.
//
// Dictionaries are nested documents (JSON or YAML) decoded into Value, a
// tagged union of absent, null, scalar, mapping and list. Lookups walk a
// dotted path one segment at a time and fall back to a caller-supplied value
// as soon as a segment cannot be followed.
package i18n

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind is the tag of a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindScalar
	KindMapping
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindList:
		return "list"
	default:
		return "absent"
	}
}

// Value is a node of a decoded dictionary. The zero Value is absent.
type Value struct {
	kind   Kind
	scalar any
	fields map[string]Value
	items  []Value
}

// Null returns an explicit null value.
func Null() Value { return Value{kind: KindNull} }

// Scalar wraps a string, number or bool. A nil x yields Null.
func Scalar(x any) Value {
	if x == nil {
		return Null()
	}
	return Value{kind: KindScalar, scalar: x}
}

// Mapping wraps a set of named children.
func Mapping(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindMapping, fields: fields}
}

// List wraps an ordered set of children.
func List(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Kind returns the tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is absent or an explicit null.
func (v Value) IsNull() bool { return v.kind == KindAbsent || v.kind == KindNull }

// Len returns the number of children of a mapping or list, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.fields)
	case KindList:
		return len(v.items)
	}
	return 0
}

// Child follows one path segment. Mappings are indexed by key, lists by a
// decimal index. Scalars, nulls and absent values have no children.
func (v Value) Child(segment string) (Value, bool) {
	switch v.kind {
	case KindMapping:
		c, ok := v.fields[segment]
		return c, ok
	case KindList:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(v.items) {
			return Value{}, false
		}
		return v.items[i], true
	}
	return Value{}, false
}

// Interface converts v to plain Go values: scalars as decoded, mappings as
// map[string]any, lists as []any, null and absent as nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMapping:
		m := make(map[string]any, len(v.fields))
		for k, c := range v.fields {
			m[k] = c.Interface()
		}
		return m
	case KindList:
		l := make([]any, len(v.items))
		for i, c := range v.items {
			l[i] = c.Interface()
		}
		return l
	}
	return nil
}

// Decode parses a JSON or YAML document into a Value.
func Decode(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("failed to parse dictionary: %w", err)
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case 0:
		return Value{}, nil

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromNode(n.Content[0])

	case yaml.AliasNode:
		return fromNode(n.Alias)

	case yaml.MappingNode:
		fields := make(map[string]Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			child, err := fromNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			fields[n.Content[i].Value] = child
		}
		return Mapping(fields), nil

	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, c := range n.Content {
			child, err := fromNode(c)
			if err != nil {
				return Value{}, err
			}
			items[i] = child
		}
		return List(items...), nil

	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Scalar(x), nil
	}

	return Value{}, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

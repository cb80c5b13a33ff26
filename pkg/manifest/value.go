package manifest

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind is the shape of a manifest value.
type Kind int

const (
	// Undefined marks a value that is absent, as opposed to JSON null.
	Undefined Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "undefined"
	}
}

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed manifest node. The zero Value is Undefined.
//
// Objects keep their members in document order: rule declarations are
// evaluated in the order the author wrote them.
type Value struct {
	kind    Kind
	boolean bool
	number  string
	str     string
	items   []Value
	members []Member
}

// Str builds a string value.
func Str(s string) Value { return Value{kind: String, str: s} }

// Num builds a number value from its textual form.
func Num(text string) Value { return Value{kind: Number, number: text} }

// Boolean builds a boolean value.
func Boolean(b bool) Value { return Value{kind: Bool, boolean: b} }

// NullValue builds a JSON null.
func NullValue() Value { return Value{kind: Null} }

// List builds an array value.
func List(items ...Value) Value { return Value{kind: Array, items: items} }

// Obj builds an object value. Later duplicates replace the value of the
// first occurrence without moving it.
func Obj(members ...Member) Value {
	v := Value{kind: Object}
	for _, m := range members {
		v.set(m.Key, m.Value)
	}
	return v
}

// M is shorthand for a Member.
func M(key string, value Value) Member { return Member{Key: key, Value: value} }

func (v *Value) set(key string, value Value) {
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = value
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: value})
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether the value is absent.
func (v Value) IsUndefined() bool { return v.kind == Undefined }

// AsString returns the string payload when the value is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean payload when the value is a boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.boolean, true
}

// Items returns array elements; nil for non-arrays.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

// Members returns object members in document order; nil for non-objects.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.members
}

// Lookup finds an object member. Non-objects never contain anything.
func (v Value) Lookup(key string) (Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Get is Lookup without the presence flag; missing members are Undefined.
func (v Value) Get(key string) Value {
	found, _ := v.Lookup(key)
	return found
}

// Truthy follows JavaScript truthiness: empty strings, zero, NaN, false,
// null and undefined are falsy; every array and object is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case Bool:
		return v.boolean
	case String:
		return v.str != ""
	case Number:
		f, err := strconv.ParseFloat(v.number, 64)
		return err == nil && f != 0 && !math.IsNaN(f)
	case Array, Object:
		return true
	default:
		return false
	}
}

// Interface converts the value into plain Go data (maps lose member order).
func (v Value) Interface() interface{} {
	switch v.kind {
	case Bool:
		return v.boolean
	case String:
		return v.str
	case Number:
		if i, err := strconv.ParseInt(v.number, 10, 64); err == nil {
			return i
		}
		f, _ := strconv.ParseFloat(v.number, 64)
		return f
	case Array:
		out := make([]interface{}, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]interface{}, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// String renders the value as compact JSON; Undefined renders as "undefined".
func (v Value) String() string {
	if v.kind == Undefined {
		return "undefined"
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(data)
}

// MarshalJSON writes the value keeping object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case Undefined, Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case Number:
		buf.WriteString(v.number)
	case String:
		data, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// MarshalYAML keeps object member order in YAML output.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}
	case Number:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.number, 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.number}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				m.Value.yamlNode())
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

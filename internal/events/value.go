package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the shapes a display property can take.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindNumber
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	}
	return "invalid"
}

// Value is a normalized frontmatter value: a string, a number, or a list of
// strings and numbers. The zero Value is invalid.
type Value struct {
	kind  Kind
	str   string
	num   float64
	items []Value
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a number Value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// ListValue returns a list Value. Nested lists are not allowed and are
// dropped.
func ListValue(items ...Value) Value {
	out := make([]Value, 0, len(items))
	for _, it := range items {
		if it.kind == KindString || it.kind == KindNumber {
			out = append(out, it)
		}
	}
	return Value{kind: KindList, items: out}
}

// Kind returns the value's shape.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds anything.
func (v Value) IsValid() bool { return v.kind != 0 }

// Number returns the numeric payload of a number Value.
func (v Value) Number() float64 { return v.num }

// Text coerces the value to a string. Lists are joined with ", ".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindList:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.Text()
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// Items returns the value as a sequence: a list yields its elements, a
// scalar yields itself as the only element.
func (v Value) Items() []Value {
	switch v.kind {
	case KindList:
		return v.items
	case KindString, KindNumber:
		return []Value{v}
	}
	return nil
}

// Strings is Items coerced to strings.
func (v Value) Strings() []string {
	items := v.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text()
	}
	return out
}

// MarshalJSON encodes the value in its natural JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindList:
		if len(v.items) == 0 {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a JSON string, number or array of those.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	nv, ok := normalize(raw)
	if !ok {
		return fmt.Errorf("events: unsupported value %s", data)
	}
	*v = nv
	return nil
}

// normalize converts a decoded frontmatter value into a Value. It returns
// false for values that are falsy or have no representation (nil, false,
// zero, "", maps).
func normalize(raw any) (Value, bool) {
	switch x := raw.(type) {
	case nil:
		return Value{}, false
	case string:
		if x == "" {
			return Value{}, false
		}
		return StringValue(x), true
	case bool:
		if !x {
			return Value{}, false
		}
		return StringValue("true"), true
	case time.Time:
		if x.IsZero() {
			return Value{}, false
		}
		return StringValue(formatTime(x)), true
	case []any:
		items := make([]Value, 0, len(x))
		for _, el := range x {
			if s, ok := scalar(el); ok {
				items = append(items, s)
			}
		}
		return ListValue(items...), true
	case []string:
		items := make([]Value, 0, len(x))
		for _, el := range x {
			items = append(items, StringValue(el))
		}
		return ListValue(items...), true
	}
	if f, ok := toFloat(raw); ok {
		if f == 0 || math.IsNaN(f) {
			return Value{}, false
		}
		return NumberValue(f), true
	}
	return Value{}, false
}

// scalar converts a list element. Unlike top-level values, falsy scalars
// are kept so a list keeps its length.
func scalar(raw any) (Value, bool) {
	switch x := raw.(type) {
	case string:
		return StringValue(x), true
	case bool:
		return StringValue(strconv.FormatBool(x)), true
	case time.Time:
		return StringValue(formatTime(x)), true
	}
	if f, ok := toFloat(raw); ok {
		return NumberValue(f), true
	}
	return Value{}, false
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// Property is one display property of an event.
type Property struct {
	Key   string
	Value Value
}

// Properties keeps display properties in configuration order.
type Properties []Property

// Get returns the value stored under key.
func (p Properties) Get(key string) (Value, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the property names in order.
func (p Properties) Keys() []string {
	out := make([]string, len(p))
	for i, kv := range p {
		out[i] = kv.Key
	}
	return out
}

// MarshalJSON encodes the properties as a JSON object, keys in order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the keys in document order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("events: properties must be an object, got %v", tok)
	}
	out := Properties{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v Value
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("events: property %q: %w", key, err)
		}
		out = append(out, Property{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = out
	return nil
}

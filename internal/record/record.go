// Package record wraps a decoded feed payload so callers can walk it without
// caring whether a key exists, is spelled oddly, or holds the wrong type.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Value is one node of an untyped JSON tree. The zero Value is absent.
type Value struct {
	raw any
}

// object is a decoded JSON object that remembers the order its keys were
// written in.
type object struct {
	keys   []string
	fields map[string]any
}

// Empty is an object with no fields.
var Empty = Value{raw: &object{fields: map[string]any{}}}

// Decode parses a JSON document. Numbers keep their literal text and objects
// keep their key order.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	raw, err := decodeNode(dec)
	if err != nil {
		return Value{}, fmt.Errorf("decoding json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("decoding json: trailing data after document")
	}
	return Value{raw: raw}, nil
}

func decodeNode(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &object{fields: map[string]any{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				// A repeated key keeps its first position and its last value.
				if _, seen := obj.fields[key]; !seen {
					obj.keys = append(obj.keys, key)
				}
				obj.fields[key] = val
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return tok, nil
	}
}

// Of wraps an already-decoded tree. Keys of a map[string]any are visited in
// sorted order.
func Of(raw any) Value {
	return Value{raw: raw}
}

func (v Value) Present() bool {
	return v.raw != nil
}

func (v Value) IsObject() bool {
	_, _, ok := v.object()
	return ok
}

func (v Value) IsArray() bool {
	_, ok := v.raw.([]any)
	return ok
}

// Len is the element count of an array, or zero for anything else.
func (v Value) Len() int {
	arr, ok := v.raw.([]any)
	if !ok {
		return 0
	}
	return len(arr)
}

// Index returns the i-th array element, absent when out of range.
func (v Value) Index(i int) Value {
	arr, ok := v.raw.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Value{}
	}
	return Value{raw: arr[i]}
}

// Elements returns the array elements, or nil when v is not an array.
func (v Value) Elements() []Value {
	arr, ok := v.raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Value, len(arr))
	for i, e := range arr {
		out[i] = Value{raw: e}
	}
	return out
}

// Keys lists an object's keys in document order, nil for anything else.
func (v Value) Keys() []string {
	keys, _, ok := v.object()
	if !ok {
		return nil
	}
	return keys
}

func (v Value) object() ([]string, map[string]any, bool) {
	switch o := v.raw.(type) {
	case *object:
		return o.keys, o.fields, true
	case map[string]any:
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, o, true
	default:
		return nil, nil, false
	}
}

// Field does an exact key lookup.
func (v Value) Field(key string) Value {
	_, fields, ok := v.object()
	if !ok {
		return Value{}
	}
	return Value{raw: fields[key]}
}

// Loose finds a key ignoring case and any non-alphanumeric characters, so
// "wave_Ht!" answers for "waveHt". An exact match wins over a loose one, and
// among loose matches the first key in document order wins.
func (v Value) Loose(key string) Value {
	keys, fields, ok := v.object()
	if !ok {
		return Value{}
	}
	if exact, ok := fields[key]; ok {
		return Value{raw: exact}
	}
	want := NormalizeKey(key)
	if want == "" {
		return Value{}
	}
	for _, k := range keys {
		if NormalizeKey(k) == want {
			return Value{raw: fields[k]}
		}
	}
	return Value{}
}

// Text renders a scalar as a string. Objects, arrays and null are absent.
func (v Value) Text() (string, bool) {
	switch t := v.raw.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

// OptText is Text as a pointer, nil when absent.
func (v Value) OptText() *string {
	s, ok := v.Text()
	if !ok {
		return nil
	}
	return &s
}

// Int parses the scalar as a base-10 integer.
func (v Value) Int() (int64, bool) {
	s, ok := v.Text()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float parses the scalar as a float.
func (v Value) Float() (float64, bool) {
	s, ok := v.Text()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NormalizeKey keeps only ASCII letters and digits, lower-cased.
func NormalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if r > unicode.MaxASCII {
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

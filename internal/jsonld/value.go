// Package jsonld reads schema.org JSON-LD blocks embedded in HTML pages.
//
// JSON-LD properties such as author, publisher and @type may be a string,
// an object or an array depending on the publisher. Payloads are decoded
// into Value, a tagged union, and callers normalize them through
// NormalizeToStringOrNull and NormalizeTypeList instead of switching on
// Go types themselves.
package jsonld

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies which field of a Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value is one decoded JSON-LD node.
type Value struct {
	Kind   Kind
	String string // set for KindString and KindNumber (the literal number text)
	Bool   bool
	Object map[string]Value
	Array  []Value
}

// Null is the zero Value.
var Null = Value{}

// Parse decodes raw JSON text into a Value. Numbers keep their literal text
// so "19.99" and 19.99 normalize identically.
func Parse(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Null, err
	}
	return FromAny(v), nil
}

// FromAny converts the output of encoding/json (decoded with UseNumber or not)
// into a Value.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case string:
		return Value{Kind: KindString, String: t}
	case json.Number:
		return Value{Kind: KindNumber, String: t.String()}
	case float64:
		return Value{Kind: KindNumber, String: strconv.FormatFloat(t, 'f', -1, 64)}
	case bool:
		return Value{Kind: KindBool, Bool: t}
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, child := range t {
			obj[k] = FromAny(child)
		}
		return Value{Kind: KindObject, Object: obj}
	case []any:
		arr := make([]Value, 0, len(t))
		for _, child := range t {
			arr = append(arr, FromAny(child))
		}
		return Value{Kind: KindArray, Array: arr}
	}
	return Null
}

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Get returns the named property of an object, or Null.
func (v Value) Get(key string) Value {
	if v.Kind != KindObject {
		return Null
	}
	return v.Object[key]
}

// First returns the first element of an array, or v itself when v is not an array.
func (v Value) First() Value {
	if v.Kind != KindArray {
		return v
	}
	if len(v.Array) == 0 {
		return Null
	}
	return v.Array[0]
}

// Text returns the trimmed scalar text of a string or number value.
func (v Value) Text() (string, bool) {
	switch v.Kind {
	case KindString, KindNumber:
		s := strings.TrimSpace(v.String)
		return s, s != ""
	}
	return "", false
}

// Int returns the value as an integer when it is a whole number or a numeric string.
func (v Value) Int() (int, bool) {
	s, ok := v.Text()
	if !ok {
		return 0, false
	}
	n, err := json.Number(s).Int64()
	if err != nil {
		f, ferr := json.Number(s).Float64()
		if ferr != nil || f != float64(int64(f)) {
			return 0, false
		}
		n = int64(f)
	}
	return int(n), true
}

// Package jsontree parses JSON into an explicit tagged-union value tree
// and provides deterministic, order-preserving traversal over it.
//
// Scraped pages embed payloads whose schema drifts between site versions,
// so callers probe the tree with ordered accessor paths and structural
// predicates instead of decoding into fixed structs.
package jsontree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the Value union.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Field is one object member. Object members keep document order, which
// makes depth-first search results deterministic.
type Field struct {
	Name  string
	Value Value
}

// Value is a parsed JSON value.
type Value struct {
	Kind Kind
	B    bool
	Num  float64
	S    string
	Arr  []Value
	Obj  []Field
}

// Parse decodes a JSON document into a Value tree.
func Parse(data string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return Value{}, fmt.Errorf("jsontree: unexpected delimiter %q", t)
		}
	case string:
		return Value{Kind: String, S: t}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: Number, Num: f, S: t.String()}, nil
	case bool:
		return Value{Kind: Bool, B: t}, nil
	case nil:
		return Value{Kind: Null}, nil
	default:
		return Value{}, fmt.Errorf("jsontree: unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Object}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jsontree: object key is not a string: %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Obj = append(v.Obj, Field{Name: key, Value: val})
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Array}
	for dec.More() {
		elem, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Arr = append(v.Arr, elem)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// Get returns the named object member.
func (v Value) Get(name string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, f := range v.Obj {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// At walks a path of object member names.
func (v Value) At(path ...string) (Value, bool) {
	cur := v
	for _, name := range path {
		next, ok := cur.Get(name)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Str returns the string value, or "" for any other kind.
func (v Value) Str() string {
	if v.Kind == String {
		return v.S
	}
	return ""
}

// StrAt returns the string at the given path, or "".
func (v Value) StrAt(path ...string) string {
	got, ok := v.At(path...)
	if !ok {
		return ""
	}
	return got.Str()
}

// BoolAt returns the bool at the given path; absent or non-bool is false.
func (v Value) BoolAt(path ...string) bool {
	got, ok := v.At(path...)
	if !ok || got.Kind != Bool {
		return false
	}
	return got.B
}

// FindFirst performs a pre-order depth-first search and returns the first
// value satisfying pred. The node itself is tested before its children;
// object members are visited in document order, then array elements in
// index order.
func FindFirst(v Value, pred func(Value) bool) (Value, bool) {
	if pred(v) {
		return v, true
	}
	switch v.Kind {
	case Object:
		for _, f := range v.Obj {
			if found, ok := FindFirst(f.Value, pred); ok {
				return found, true
			}
		}
	case Array:
		for _, elem := range v.Arr {
			if found, ok := FindFirst(elem, pred); ok {
				return found, true
			}
		}
	}
	return Value{}, false
}

// FirstArray probes the given accessor paths in order and returns the
// elements of the first one that resolves to an array. Schema drift
// isolation: callers list every nesting shape they have observed and take
// whichever matches.
func FirstArray(v Value, paths ...[]string) []Value {
	for _, path := range paths {
		got, ok := v.At(path...)
		if ok && got.Kind == Array {
			return got.Arr
		}
	}
	return nil
}

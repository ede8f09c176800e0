package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueKind tags the concrete type held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value is one entry in a Document: a string, number, bool, null,
// nested object, or array of values.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Obj  *Document
	Arr  []Value
}

// String returns a string Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Object returns a nested-object Value.
func Object(d *Document) Value { return Value{Kind: KindObject, Obj: d} }

// Array returns an array Value.
func Array(vs ...Value) Value { return Value{Kind: KindArray, Arr: vs} }

// MarshalJSON encodes the value as its plain JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindObject:
		if v.Obj == nil {
			return []byte("{}"), nil
		}
		return v.Obj.MarshalJSON()
	case KindArray:
		if v.Arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Arr)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

type pair struct {
	key string
	val Value
}

// Document is a string-keyed JSON object that preserves the insertion
// order of its keys, used for the open config/conditions/actions fields.
// The zero value is an empty object.
type Document struct {
	pairs []pair
}

// Set stores val under key, replacing an existing entry in place.
func (d *Document) Set(key string, val Value) {
	for i := range d.pairs {
		if d.pairs[i].key == key {
			d.pairs[i].val = val
			return
		}
	}
	d.pairs = append(d.pairs, pair{key: key, val: val})
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (Value, bool) {
	for i := range d.pairs {
		if d.pairs[i].key == key {
			return d.pairs[i].val, true
		}
	}
	return Value{}, false
}

// Len returns the number of entries.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.pairs)
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.pairs))
	for i := range d.pairs {
		keys = append(keys, d.pairs[i].key)
	}
	return keys
}

// Clone returns a deep copy.
func (d *Document) Clone() Document {
	if d == nil || len(d.pairs) == 0 {
		return Document{}
	}
	out := Document{pairs: make([]pair, len(d.pairs))}
	for i, p := range d.pairs {
		out.pairs[i] = pair{key: p.key, val: cloneValue(p.val)}
	}
	return out
}

func cloneValue(v Value) Value {
	switch v.Kind {
	case KindObject:
		if v.Obj != nil {
			obj := v.Obj.Clone()
			v.Obj = &obj
		}
	case KindArray:
		if v.Arr != nil {
			arr := make([]Value, len(v.Arr))
			for i := range v.Arr {
				arr[i] = cloneValue(v.Arr[i])
			}
			v.Arr = arr
		}
	}
	return v
}

// MarshalJSON encodes the document as a plain JSON object in key
// insertion order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range d.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := p.val.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("document: expected object, got %v", tok)
	}
	doc, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

func decodeObject(dec *json.Decoder) (*Document, error) {
	doc := &Document{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("document: expected object key, got %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		doc.pairs = append(doc.pairs, pair{key: key, val: val})
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj, err := decodeObject(dec)
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: KindObject, Obj: obj}, nil
		case '[':
			var arr []Value
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{Kind: KindArray, Arr: arr}, nil
		}
		return Value{}, fmt.Errorf("document: unexpected delimiter %v", t)
	case string:
		return String(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(n), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Value{Kind: KindNull}, nil
	}
	return Value{}, fmt.Errorf("document: unexpected token %v", tok)
}

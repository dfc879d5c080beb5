package evaluator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/iancoleman/orderedmap"
)

// ValueToJSON marshals a CodingYok value to JSON bytes.
// Dicts preserve insertion order; non-string keys are stringified.
// A container that contains itself is a ValueError.
func ValueToJSON(v Value, indent string) ([]byte, error) {
	var enc jsonEncoder
	raw, err := enc.raw(v)
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return json.Marshal(raw)
	}
	return json.MarshalIndent(raw, "", indent)
}

// jsonEncoder converts values to encoding/json input, tracking the
// containers on the current path.
type jsonEncoder struct {
	active map[Value]bool
}

func (enc *jsonEncoder) enter(v Value) error {
	if enc.active[v] {
		return valueErrorf("Referensi melingkar terdeteksi saat serialisasi JSON")
	}
	if enc.active == nil {
		enc.active = make(map[Value]bool)
	}
	enc.active[v] = true
	return nil
}

func (enc *jsonEncoder) raw(v Value) (any, error) {
	switch val := v.(type) {
	case None, nil:
		return nil, nil
	case Bool:
		return bool(val), nil
	case Int:
		return int64(val), nil
	case Float:
		f := float64(val)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, valueErrorf("Nilai %s tidak dapat diserialisasi ke JSON", FormatFloat(f))
		}
		return f, nil
	case Str:
		return string(val), nil
	case *List:
		if err := enc.enter(val); err != nil {
			return nil, err
		}
		defer delete(enc.active, v)
		return enc.items(val.Items)
	case *Tuple:
		return enc.items(val.Items)
	case *Dict:
		if err := enc.enter(val); err != nil {
			return nil, err
		}
		defer delete(enc.active, v)
		obj := orderedmap.New()
		for _, e := range val.entries() {
			key, ok := e.key.(Str)
			if !ok {
				key = Str(ToStr(e.key))
			}
			raw, err := enc.raw(e.val)
			if err != nil {
				return nil, err
			}
			obj.Set(string(key), raw)
		}
		return obj, nil
	}
	return nil, typeErrorf("Objek '%s' tidak dapat diserialisasi ke JSON", TypeName(v))
}

func (enc *jsonEncoder) items(items []Value) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		raw, err := enc.raw(item)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

// ParseJSON converts JSON text to a CodingYok value. Objects become
// dicts in document order; integral numbers become ints.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, valueErrorf("JSON tidak valid: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, valueErrorf("JSON tidak valid: data tambahan setelah nilai")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return None{}, nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return NewList(items), nil
		case '{':
			d := NewDict()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("kunci objek bukan teks")
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				if err := d.Set(Str(key), v); err != nil {
					return nil, err
				}
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return d, nil
		}
	}
	return nil, fmt.Errorf("token tidak terduga %v", tok)
}

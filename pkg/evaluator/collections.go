package evaluator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// hashKey computes the lookup key for a hashable value. Ints and integral
// floats share a key so that 1 and 1.0 address the same entry.
func hashKey(v Value) (string, error) {
	switch val := v.(type) {
	case None:
		return "n", nil
	case Bool:
		if val {
			return "b1", nil
		}
		return "b0", nil
	case Int:
		return "i" + strconv.FormatInt(int64(val), 10), nil
	case Float:
		f := float64(val)
		if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			return "i" + strconv.FormatInt(int64(f), 10), nil
		}
		return "f" + strconv.FormatFloat(f, 'g', -1, 64), nil
	case Str:
		return "s" + string(val), nil
	case *Tuple:
		var b strings.Builder
		b.WriteString("t(")
		for _, it := range val.Items {
			k, err := hashKey(it)
			if err != nil {
				return "", err
			}
			b.WriteString(strconv.Itoa(len(k)))
			b.WriteByte(':')
			b.WriteString(k)
		}
		b.WriteByte(')')
		return b.String(), nil
	case *List, *Dict, *Set:
		return "", typeErrorf("Tipe '%s' tidak dapat di-hash", TypeName(v))
	}
	return fmt.Sprintf("p%p", v), nil
}

// Dict is an insertion-ordered kamus. Entries are stored under their
// hash key so that equal keys of different types share a slot.
type Dict struct {
	m *orderedmap.OrderedMap
}

type dictEntry struct {
	key Value
	val Value
}

func (*Dict) cyvalue() {}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{m: orderedmap.New()}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.m.Keys()) }

// entries returns a snapshot of the entries in insertion order, safe to
// hold while the dict changes.
func (d *Dict) entries() []dictEntry {
	hashes := d.m.Keys()
	out := make([]dictEntry, len(hashes))
	for i, h := range hashes {
		e, _ := d.m.Get(h)
		out[i] = e.(dictEntry)
	}
	return out
}

// Keys returns a snapshot of the keys in insertion order.
func (d *Dict) Keys() []Value {
	entries := d.entries()
	out := make([]Value, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}

// Values returns a snapshot of the values in insertion order.
func (d *Dict) Values() []Value {
	entries := d.entries()
	out := make([]Value, len(entries))
	for i, e := range entries {
		out[i] = e.val
	}
	return out
}

// Get looks up key. The error is non-nil only for unhashable keys.
func (d *Dict) Get(key Value) (Value, bool, error) {
	h, err := hashKey(key)
	if err != nil {
		return nil, false, err
	}
	e, ok := d.m.Get(h)
	if !ok {
		return nil, false, nil
	}
	return e.(dictEntry).val, true, nil
}

// Set inserts or replaces key. Replacing keeps the original key and its
// position.
func (d *Dict) Set(key, val Value) error {
	h, err := hashKey(key)
	if err != nil {
		return err
	}
	if e, ok := d.m.Get(h); ok {
		key = e.(dictEntry).key
	}
	d.m.Set(h, dictEntry{key: key, val: val})
	return nil
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key Value) (bool, error) {
	h, err := hashKey(key)
	if err != nil {
		return false, err
	}
	if _, ok := d.m.Get(h); !ok {
		return false, nil
	}
	d.m.Delete(h)
	return true, nil
}

// Clear removes all entries.
func (d *Dict) Clear() {
	d.m = orderedmap.New()
}

// Copy returns a shallow copy.
func (d *Dict) Copy() *Dict {
	out := NewDict()
	for _, e := range d.entries() {
		out.m.Set(mustHash(e.key), e)
	}
	return out
}

// mustHash is hashKey for keys already stored in a dict.
func mustHash(v Value) string {
	h, _ := hashKey(v)
	return h
}

// Set is an insertion-ordered himpunan.
type Set struct {
	d *Dict
}

func (*Set) cyvalue() {}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{d: NewDict()}
}

// Len returns the number of members.
func (s *Set) Len() int { return s.d.Len() }

// Items returns a snapshot of the members.
func (s *Set) Items() []Value { return s.d.Keys() }

// Add inserts v.
func (s *Set) Add(v Value) error {
	return s.d.Set(v, None{})
}

// Has reports membership.
func (s *Set) Has(v Value) (bool, error) {
	_, ok, err := s.d.Get(v)
	return ok, err
}

// Remove deletes v and reports whether it was present.
func (s *Set) Remove(v Value) (bool, error) {
	return s.d.Delete(v)
}

// Copy returns a shallow copy.
func (s *Set) Copy() *Set {
	return &Set{d: s.d.Copy()}
}

func sortStrings(ss []string) {
	sort.Strings(ss)
}

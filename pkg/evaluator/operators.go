package evaluator

import (
	"math"
	"math/bits"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

func unsupported(op string, a, b Value) error {
	return typeErrorf("Operator '%s' tidak didukung antara '%s' dan '%s'", op, TypeName(a), TypeName(b))
}

// BinaryOp applies a binary operator to two values with the same rules
// as CodingYok expressions.
func BinaryOp(op ast.BinaryOp, a, b Value) (Value, error) {
	return binaryOp(op, a, b)
}

func binaryOp(op ast.BinaryOp, a, b Value) (Value, error) {
	switch op {
	case ast.OpEqEq:
		return Bool(Equal(a, b)), nil
	case ast.OpNeq:
		return Bool(!Equal(a, b)), nil
	case ast.OpIs:
		return Bool(identical(a, b)), nil
	case ast.OpIsNot:
		return Bool(!identical(a, b)), nil
	case ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		c, err := compareOp(string(op), a, b)
		if err != nil {
			return nil, err
		}
		switch op {
		case ast.OpLt:
			return Bool(c < 0), nil
		case ast.OpLtEq:
			return Bool(c <= 0), nil
		case ast.OpGt:
			return Bool(c > 0), nil
		}
		return Bool(c >= 0), nil
	}
	return arith(op, a, b)
}

func arith(op ast.BinaryOp, a, b Value) (Value, error) {
	ai, aInt := a.(Int)
	bi, bInt := b.(Int)
	if aInt && bInt {
		return intArith(op, int64(ai), int64(bi))
	}
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return floatArith(op, af, bf)
	}
	switch op {
	case ast.OpAdd:
		switch av := a.(type) {
		case Str:
			if bv, ok := b.(Str); ok {
				return av + bv, nil
			}
		case *List:
			if bv, ok := b.(*List); ok {
				return NewList(concat(av.Items, bv.Items)), nil
			}
		case *Tuple:
			if bv, ok := b.(*Tuple); ok {
				return NewTuple(concat(av.Items, bv.Items)), nil
			}
		}
	case ast.OpMul:
		if bInt {
			if v, ok, err := repeat(a, int64(bi)); ok {
				return v, err
			}
		}
		if aInt {
			if v, ok, err := repeat(b, int64(ai)); ok {
				return v, err
			}
		}
	case ast.OpMod:
		if s, ok := a.(Str); ok {
			return percentFormat(string(s), b)
		}
	}
	return nil, unsupported(string(op), a, b)
}

func concat(a, b []Value) []Value {
	out := make([]Value, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// maxRepeatLen caps the element count (bytes for strings) that sequence
// repetition may produce.
const maxRepeatLen = 1 << 27

func repeat(v Value, n int64) (Value, bool, error) {
	if n < 0 {
		n = 0
	}
	var size int
	switch s := v.(type) {
	case Str:
		size = len(s)
	case *List:
		size = len(s.Items)
	case *Tuple:
		size = len(s.Items)
	default:
		return nil, false, nil
	}
	if size > 0 && n > maxRepeatLen/int64(size) {
		return nil, true, newError(diagnostics.EOverflow, "Hasil pengulangan terlalu besar (%d x %d)", size, n)
	}
	switch s := v.(type) {
	case Str:
		return Str(strings.Repeat(string(s), int(n))), true, nil
	case *List:
		return NewList(repeatItems(s.Items, int(n))), true, nil
	}
	return NewTuple(repeatItems(v.(*Tuple).Items, int(n))), true, nil
}

func repeatItems(items []Value, n int) []Value {
	out := make([]Value, 0, len(items)*n)
	for i := 0; i < n; i++ {
		out = append(out, items...)
	}
	return out
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	hi, lo := bits.Mul64(absUint(a), absUint(b))
	if hi != 0 {
		return 0, false
	}
	if (a < 0) != (b < 0) {
		if lo > 1<<63 {
			return 0, false
		}
		return -int64(lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func absUint(a int64) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for ok := true; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		if exp > 1 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func intArith(op ast.BinaryOp, a, b int64) (Value, error) {
	var (
		r  int64
		ok bool
	)
	switch op {
	case ast.OpAdd:
		r, ok = addInt(a, b)
	case ast.OpSub:
		r, ok = subInt(a, b)
	case ast.OpMul:
		r, ok = mulInt(a, b)
	case ast.OpDiv:
		if b == 0 {
			return nil, zeroDivError()
		}
		return Float(float64(a) / float64(b)), nil
	case ast.OpFloorDiv:
		if b == 0 {
			return nil, zeroDivError()
		}
		if a == math.MinInt64 && b == -1 {
			return nil, overflowError(string(op))
		}
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return Int(q), nil
	case ast.OpMod:
		if b == 0 {
			return nil, zeroDivError()
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return Int(m), nil
	case ast.OpPow:
		if b < 0 {
			if a == 0 {
				return nil, zeroDivError()
			}
			return Float(math.Pow(float64(a), float64(b))), nil
		}
		r, ok = powInt(a, b)
	default:
		return nil, unsupported(string(op), Int(a), Int(b))
	}
	if !ok {
		return nil, overflowError(string(op))
	}
	return Int(r), nil
}

func floatArith(op ast.BinaryOp, a, b float64) (Value, error) {
	switch op {
	case ast.OpAdd:
		return Float(a + b), nil
	case ast.OpSub:
		return Float(a - b), nil
	case ast.OpMul:
		return Float(a * b), nil
	case ast.OpDiv:
		if b == 0 {
			return nil, zeroDivError()
		}
		return Float(a / b), nil
	case ast.OpFloorDiv:
		if b == 0 {
			return nil, zeroDivError()
		}
		return Float(math.Floor(a / b)), nil
	case ast.OpMod:
		if b == 0 {
			return nil, zeroDivError()
		}
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return Float(r), nil
	case ast.OpPow:
		if a == 0 && b < 0 {
			return nil, zeroDivError()
		}
		return Float(math.Pow(a, b)), nil
	}
	return nil, unsupported(string(op), Float(a), Float(b))
}

func unaryOp(op ast.UnaryOp, v Value) (Value, error) {
	switch op {
	case ast.OpNot:
		return Bool(!Truthy(v)), nil
	case ast.OpNeg:
		switch n := v.(type) {
		case Int:
			if n == math.MinInt64 {
				return nil, overflowError(string(op))
			}
			return -n, nil
		case Float:
			return -n, nil
		}
	case ast.OpPos:
		switch v.(type) {
		case Int, Float:
			return v, nil
		}
	}
	return nil, typeErrorf("Operator unary '%s' tidak didukung untuk '%s'", op, TypeName(v))
}

// identical compares scalars by value and everything else by reference.
func identical(a, b Value) bool {
	return a == b
}

// Compare orders a and b: numbers numerically, strings lexicographically,
// lists and tuples element by element.
func Compare(a, b Value) (int, error) {
	return compareOp("<", a, b)
}

// maxCompareDepth bounds how deeply nested sequences are ordered, so a
// cyclic list fails with E_RECURSION instead of exhausting the Go stack.
const maxCompareDepth = 1000

func compareOp(op string, a, b Value) (int, error) {
	return compareAt(op, a, b, 0)
}

func compareAt(op string, a, b Value, depth int) (int, error) {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			ai, aInt := a.(Int)
			bi, bInt := b.(Int)
			if aInt && bInt {
				return cmp3(ai < bi, ai > bi), nil
			}
			return cmp3(af < bf, af > bf), nil
		}
	}
	switch av := a.(type) {
	case Str:
		if bv, ok := b.(Str); ok {
			return strings.Compare(string(av), string(bv)), nil
		}
	case Bool:
		if bv, ok := b.(Bool); ok {
			return cmp3(!bool(av) && bool(bv), bool(av) && !bool(bv)), nil
		}
	case *List:
		if bv, ok := b.(*List); ok {
			return compareItems(op, av.Items, bv.Items, depth)
		}
	case *Tuple:
		if bv, ok := b.(*Tuple); ok {
			return compareItems(op, av.Items, bv.Items, depth)
		}
	}
	return 0, unsupported(op, a, b)
}

func compareItems(op string, a, b []Value, depth int) (int, error) {
	if depth >= maxCompareDepth {
		return 0, newError(diagnostics.ERecursion, "Kedalaman maksimum terlampaui saat membandingkan dengan '%s'", op)
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if Equal(a[i], b[i]) {
			continue
		}
		return compareAt(op, a[i], b[i], depth+1)
	}
	return cmp3(len(a) < len(b), len(a) > len(b)), nil
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

// contains implements "needle dalam container".
func (ev *evaluator) contains(container, needle Value) (bool, error) {
	switch c := container.(type) {
	case Str:
		s, ok := needle.(Str)
		if !ok {
			return false, typeErrorf("Operand kiri 'dalam' untuk teks harus teks, bukan '%s'", TypeName(needle))
		}
		return strings.Contains(string(c), string(s)), nil
	case *List:
		return containsItem(c.Items, needle), nil
	case *Tuple:
		return containsItem(c.Items, needle), nil
	case *Dict:
		_, ok, err := c.Get(needle)
		return ok, err
	case *Set:
		return c.Has(needle)
	case *Generator:
		found := false
		err := ev.iterate(c, func(item Value) (bool, error) {
			found = Equal(item, needle)
			return !found, nil
		})
		return found, err
	}
	return false, typeErrorf("Objek '%s' tidak mendukung operator 'dalam'", TypeName(container))
}

func containsItem(items []Value, needle Value) bool {
	for _, it := range items {
		if Equal(it, needle) {
			return true
		}
	}
	return false
}

func normalizeIndex(idx Value, length int, what string) (int, error) {
	n, ok := idx.(Int)
	if !ok {
		return 0, typeErrorf("Indeks %s harus bilangan bulat, bukan '%s'", what, TypeName(idx))
	}
	i := int(n)
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, indexErrorf("Indeks %s di luar jangkauan: %d", what, int64(n))
	}
	return i, nil
}

func (ev *evaluator) index(obj, idx Value) (Value, error) {
	switch o := obj.(type) {
	case *List:
		i, err := normalizeIndex(idx, len(o.Items), "daftar")
		if err != nil {
			return nil, err
		}
		return o.Items[i], nil
	case *Tuple:
		i, err := normalizeIndex(idx, len(o.Items), "tupel")
		if err != nil {
			return nil, err
		}
		return o.Items[i], nil
	case Str:
		runes := []rune(string(o))
		i, err := normalizeIndex(idx, len(runes), "teks")
		if err != nil {
			return nil, err
		}
		return Str(string(runes[i])), nil
	case *Dict:
		v, ok, err := o.Get(idx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, keyError(idx)
		}
		return v, nil
	case *Instance:
		if m, ok := o.Class.FindMethod("__getitem__"); ok {
			return ev.call(&BoundMethod{Receiver: o, Method: m}, []Value{idx})
		}
	}
	return nil, typeErrorf("Objek '%s' tidak dapat diindeks", TypeName(obj))
}

func (ev *evaluator) setIndex(obj, idx, val Value) error {
	switch o := obj.(type) {
	case *List:
		i, err := normalizeIndex(idx, len(o.Items), "daftar")
		if err != nil {
			return err
		}
		o.Items[i] = val
		return nil
	case *Dict:
		return o.Set(idx, val)
	case *Instance:
		if m, ok := o.Class.FindMethod("__setitem__"); ok {
			_, err := ev.call(&BoundMethod{Receiver: o, Method: m}, []Value{idx, val})
			return err
		}
	}
	return typeErrorf("Objek '%s' tidak mendukung assignment item", TypeName(obj))
}

func deleteIndex(obj, idx Value) error {
	switch o := obj.(type) {
	case *List:
		i, err := normalizeIndex(idx, len(o.Items), "daftar")
		if err != nil {
			return err
		}
		o.Items = append(o.Items[:i], o.Items[i+1:]...)
		return nil
	case *Dict:
		ok, err := o.Delete(idx)
		if err != nil {
			return err
		}
		if !ok {
			return keyError(idx)
		}
		return nil
	}
	return typeErrorf("Objek '%s' tidak mendukung penghapusan item", TypeName(obj))
}

// sliceBounds resolves optional start, stop and step against length
// the way Python slices do.
func sliceBounds(length int, start, stop, step *int64) (int, int, int, error) {
	st := 1
	if step != nil {
		if *step == 0 {
			return 0, 0, 0, valueErrorf("Langkah slice tidak boleh nol")
		}
		st = int(*step)
	}
	clamp := func(p *int64, def int) int {
		if p == nil {
			return def
		}
		i := int(*p)
		if i < 0 {
			i += length
			if i < 0 {
				if st < 0 {
					return -1
				}
				return 0
			}
		}
		if i >= length {
			if st < 0 {
				return length - 1
			}
			return length
		}
		return i
	}
	if st > 0 {
		return clamp(start, 0), clamp(stop, length), st, nil
	}
	return clamp(start, length-1), clamp(stop, -1), st, nil
}

func sliceItems(items []Value, start, stop, step *int64) ([]Value, error) {
	lo, hi, st, err := sliceBounds(len(items), start, stop, step)
	if err != nil {
		return nil, err
	}
	out := []Value{}
	if st > 0 {
		for i := lo; i < hi; i += st {
			out = append(out, items[i])
		}
	} else {
		for i := lo; i > hi; i += st {
			out = append(out, items[i])
		}
	}
	return out, nil
}

func slice(obj Value, start, stop, step *int64) (Value, error) {
	switch o := obj.(type) {
	case *List:
		items, err := sliceItems(o.Items, start, stop, step)
		if err != nil {
			return nil, err
		}
		return NewList(items), nil
	case *Tuple:
		items, err := sliceItems(o.Items, start, stop, step)
		if err != nil {
			return nil, err
		}
		return NewTuple(items), nil
	case Str:
		runes := []rune(string(o))
		chars := make([]Value, len(runes))
		for i, r := range runes {
			chars[i] = Str(string(r))
		}
		items, err := sliceItems(chars, start, stop, step)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		for _, it := range items {
			b.WriteString(string(it.(Str)))
		}
		return Str(b.String()), nil
	}
	return nil, typeErrorf("Objek '%s' tidak mendukung slice", TypeName(obj))
}

func setSlice(list *List, start, stop, step *int64, items []Value) error {
	lo, hi, st, err := sliceBounds(len(list.Items), start, stop, step)
	if err != nil {
		return err
	}
	if st == 1 {
		if hi < lo {
			hi = lo
		}
		out := make([]Value, 0, len(list.Items)-(hi-lo)+len(items))
		out = append(out, list.Items[:lo]...)
		out = append(out, items...)
		list.Items = append(out, list.Items[hi:]...)
		return nil
	}
	var idx []int
	if st > 0 {
		for i := lo; i < hi; i += st {
			idx = append(idx, i)
		}
	} else {
		for i := lo; i > hi; i += st {
			idx = append(idx, i)
		}
	}
	if len(idx) != len(items) {
		return valueErrorf("Slice dengan langkah %d membutuhkan %d nilai, didapat %d", st, len(idx), len(items))
	}
	for j, i := range idx {
		list.Items[i] = items[j]
	}
	return nil
}

package evaluator

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var strMethods = map[string]methodFunc{
	"upper": func(h Host, recv Value, args []Value) (Value, error) {
		return Str(strings.ToUpper(string(recv.(Str)))), arity("upper", args, 0, 0)
	},
	"lower": func(h Host, recv Value, args []Value) (Value, error) {
		return Str(strings.ToLower(string(recv.(Str)))), arity("lower", args, 0, 0)
	},
	"title": func(h Host, recv Value, args []Value) (Value, error) {
		return Str(titleCase(string(recv.(Str)))), arity("title", args, 0, 0)
	},
	"capitalize": func(h Host, recv Value, args []Value) (Value, error) {
		s := []rune(strings.ToLower(string(recv.(Str))))
		if len(s) > 0 {
			s[0] = unicode.ToUpper(s[0])
		}
		return Str(string(s)), arity("capitalize", args, 0, 0)
	},
	"strip":  trimMethod("strip", strings.TrimSpace, strings.Trim),
	"lstrip": trimMethod("lstrip", func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }, strings.TrimLeft),
	"rstrip": trimMethod("rstrip", func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }, strings.TrimRight),
	"split": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("split", args, 0, 1); err != nil {
			return nil, err
		}
		return SplitStr(string(recv.(Str)), optArg(args, 0))
	},
	"join": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("join", args, 1, 1); err != nil {
			return nil, err
		}
		items, err := h.Collect(args[0])
		if err != nil {
			return nil, err
		}
		return JoinStr(string(recv.(Str)), items)
	},
	"replace": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("replace", args, 2, 2); err != nil {
			return nil, err
		}
		old, ok1 := args[0].(Str)
		nw, ok2 := args[1].(Str)
		if !ok1 || !ok2 {
			return nil, typeErrorf("replace() membutuhkan argumen teks")
		}
		return Str(strings.ReplaceAll(string(recv.(Str)), string(old), string(nw))), nil
	},
	"startswith": strPredicate("startswith", strings.HasPrefix),
	"endswith":   strPredicate("endswith", strings.HasSuffix),
	"find": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("find", args, 1, 1); err != nil {
			return nil, err
		}
		sub, ok := args[0].(Str)
		if !ok {
			return nil, typeErrorf("find() membutuhkan argumen teks")
		}
		s := string(recv.(Str))
		i := strings.Index(s, string(sub))
		if i < 0 {
			return Int(-1), nil
		}
		return Int(len([]rune(s[:i]))), nil
	},
	"count": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("count", args, 1, 1); err != nil {
			return nil, err
		}
		sub, ok := args[0].(Str)
		if !ok {
			return nil, typeErrorf("count() membutuhkan argumen teks")
		}
		return Int(strings.Count(string(recv.(Str)), string(sub))), nil
	},
	"isdigit": runePredicate("isdigit", unicode.IsDigit),
	"isalpha": runePredicate("isalpha", unicode.IsLetter),
	"isspace": runePredicate("isspace", unicode.IsSpace),
	"format": func(h Host, recv Value, args []Value) (Value, error) {
		return formatBraces(h, string(recv.(Str)), args)
	},
}

func trimMethod(name string, space func(string) string, cut func(string, string) string) methodFunc {
	return func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity(name, args, 0, 1); err != nil {
			return nil, err
		}
		s := string(recv.(Str))
		if len(args) == 0 {
			return Str(space(s)), nil
		}
		chars, ok := args[0].(Str)
		if !ok {
			return nil, typeErrorf("%s() membutuhkan argumen teks", name)
		}
		return Str(cut(s, string(chars))), nil
	}
}

func strPredicate(name string, pred func(string, string) bool) methodFunc {
	return func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity(name, args, 1, 1); err != nil {
			return nil, err
		}
		sub, ok := args[0].(Str)
		if !ok {
			return nil, typeErrorf("%s() membutuhkan argumen teks", name)
		}
		return Bool(pred(string(recv.(Str)), string(sub))), nil
	}
}

func runePredicate(name string, pred func(rune) bool) methodFunc {
	return func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity(name, args, 0, 0); err != nil {
			return nil, err
		}
		s := string(recv.(Str))
		if s == "" {
			return Bool(false), nil
		}
		for _, r := range s {
			if !pred(r) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	}
}

func titleCase(s string) string {
	out := []rune(s)
	start := true
	for i, r := range out {
		if unicode.IsLetter(r) {
			if start {
				out[i] = unicode.ToUpper(r)
			} else {
				out[i] = unicode.ToLower(r)
			}
			start = false
		} else {
			start = true
		}
	}
	return string(out)
}

func optArg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return None{}
}

// SplitStr splits s on sep, or on runs of whitespace when sep is kosong.
func SplitStr(s string, sep Value) (Value, error) {
	var parts []string
	switch d := sep.(type) {
	case None:
		parts = strings.Fields(s)
	case Str:
		if d == "" {
			return nil, valueErrorf("Pemisah tidak boleh kosong")
		}
		parts = strings.Split(s, string(d))
	default:
		return nil, typeErrorf("Pemisah harus teks, bukan '%s'", TypeName(sep))
	}
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = Str(p)
	}
	return NewList(items), nil
}

// JoinStr joins string items with sep.
func JoinStr(sep string, items []Value) (Value, error) {
	parts := make([]string, len(items))
	for i, it := range items {
		s, ok := it.(Str)
		if !ok {
			return nil, typeErrorf("Elemen ke-%d harus teks, bukan '%s'", i, TypeName(it))
		}
		parts[i] = string(s)
	}
	return Str(strings.Join(parts, sep)), nil
}

// formatBraces implements "{} {0} {nama}".format(...) with positional
// arguments only.
func formatBraces(h Host, tmpl string, args []Value) (Value, error) {
	var b strings.Builder
	next := 0
	runes := []rune(tmpl)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' && i+1 < len(runes) && runes[i+1] == '{' {
			b.WriteRune('{')
			i++
			continue
		}
		if r == '}' && i+1 < len(runes) && runes[i+1] == '}' {
			b.WriteRune('}')
			i++
			continue
		}
		if r != '{' {
			b.WriteRune(r)
			continue
		}
		end := i + 1
		for end < len(runes) && runes[end] != '}' {
			end++
		}
		if end == len(runes) {
			return nil, valueErrorf("Kurung kurawal tidak ditutup dalam format")
		}
		field, spec, _ := strings.Cut(string(runes[i+1:end]), ":")
		idx := next
		if field != "" {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, valueErrorf("Field format tidak didukung: '%s'", field)
			}
			idx = n
		} else {
			next++
		}
		if idx < 0 || idx >= len(args) {
			return nil, indexErrorf("Indeks format %d di luar jangkauan", idx)
		}
		var s string
		var err error
		if spec != "" {
			s, err = formatSpec(args[idx], spec)
		} else {
			s, err = h.Str(args[idx])
		}
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
		i = end
	}
	return Str(b.String()), nil
}

var listMethods = map[string]methodFunc{
	"append": listAppend,
	"tambah": listAppend,
	"extend": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("extend", args, 1, 1); err != nil {
			return nil, err
		}
		items, err := h.Collect(args[0])
		if err != nil {
			return nil, err
		}
		l := recv.(*List)
		l.Items = append(l.Items, items...)
		return None{}, nil
	},
	"insert": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("insert", args, 2, 2); err != nil {
			return nil, err
		}
		n, ok := args[0].(Int)
		if !ok {
			return nil, typeErrorf("Indeks harus bilangan bulat, bukan '%s'", TypeName(args[0]))
		}
		l := recv.(*List)
		i := int(n)
		if i < 0 {
			i += len(l.Items)
		}
		i = max(0, min(i, len(l.Items)))
		l.Items = append(l.Items, nil)
		copy(l.Items[i+1:], l.Items[i:])
		l.Items[i] = args[1]
		return None{}, nil
	},
	"remove": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("remove", args, 1, 1); err != nil {
			return nil, err
		}
		l := recv.(*List)
		for i, it := range l.Items {
			if Equal(it, args[0]) {
				l.Items = append(l.Items[:i], l.Items[i+1:]...)
				return None{}, nil
			}
		}
		return nil, valueErrorf("Nilai %s tidak ada dalam daftar", Repr(args[0]))
	},
	"pop": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("pop", args, 0, 1); err != nil {
			return nil, err
		}
		l := recv.(*List)
		if len(l.Items) == 0 {
			return nil, indexErrorf("pop dari daftar kosong")
		}
		idx := Value(Int(len(l.Items) - 1))
		if len(args) == 1 {
			idx = args[0]
		}
		i, err := normalizeIndex(idx, len(l.Items), "daftar")
		if err != nil {
			return nil, err
		}
		v := l.Items[i]
		l.Items = append(l.Items[:i], l.Items[i+1:]...)
		return v, nil
	},
	"index": func(h Host, recv Value, args []Value) (Value, error) {
		return seqIndex(recv.(*List).Items, args, "daftar")
	},
	"count": func(h Host, recv Value, args []Value) (Value, error) {
		return seqCount(recv.(*List).Items, args)
	},
	"sort": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("sort", args, 0, 1); err != nil {
			return nil, err
		}
		l := recv.(*List)
		sorted, err := SortValues(h, l.Items, optArg(args, 0), false)
		if err != nil {
			return nil, err
		}
		l.Items = sorted
		return None{}, nil
	},
	"reverse": func(h Host, recv Value, args []Value) (Value, error) {
		l := recv.(*List)
		for i, j := 0, len(l.Items)-1; i < j; i, j = i+1, j-1 {
			l.Items[i], l.Items[j] = l.Items[j], l.Items[i]
		}
		return None{}, arity("reverse", args, 0, 0)
	},
	"copy": func(h Host, recv Value, args []Value) (Value, error) {
		return NewList(append([]Value(nil), recv.(*List).Items...)), arity("copy", args, 0, 0)
	},
	"clear": func(h Host, recv Value, args []Value) (Value, error) {
		recv.(*List).Items = nil
		return None{}, arity("clear", args, 0, 0)
	},
}

func listAppend(h Host, recv Value, args []Value) (Value, error) {
	if err := arity("append", args, 1, 1); err != nil {
		return nil, err
	}
	l := recv.(*List)
	l.Items = append(l.Items, args[0])
	return None{}, nil
}

var tupleMethods = map[string]methodFunc{
	"index": func(h Host, recv Value, args []Value) (Value, error) {
		return seqIndex(recv.(*Tuple).Items, args, "tupel")
	},
	"count": func(h Host, recv Value, args []Value) (Value, error) {
		return seqCount(recv.(*Tuple).Items, args)
	},
}

func seqIndex(items []Value, args []Value, what string) (Value, error) {
	if err := arity("index", args, 1, 1); err != nil {
		return nil, err
	}
	for i, it := range items {
		if Equal(it, args[0]) {
			return Int(i), nil
		}
	}
	return nil, valueErrorf("Nilai %s tidak ada dalam %s", Repr(args[0]), what)
}

func seqCount(items []Value, args []Value) (Value, error) {
	if err := arity("count", args, 1, 1); err != nil {
		return nil, err
	}
	n := 0
	for _, it := range items {
		if Equal(it, args[0]) {
			n++
		}
	}
	return Int(n), nil
}

// SortValues returns a sorted copy of items. key, when not kosong, is
// called on each element to obtain its sort key.
func SortValues(h Host, items []Value, key Value, reverse bool) ([]Value, error) {
	keys := make([]Value, len(items))
	for i, it := range items {
		if _, ok := key.(None); ok || key == nil {
			keys[i] = it
			continue
		}
		k, err := h.Call(key, []Value{it})
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	var cmpErr error
	sort.SliceStable(idx, func(a, b int) bool {
		if cmpErr != nil {
			return false
		}
		c, err := Compare(keys[idx[a]], keys[idx[b]])
		if err != nil {
			cmpErr = err
			return false
		}
		if reverse {
			return c > 0
		}
		return c < 0
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	out := make([]Value, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out, nil
}

var dictMethods = map[string]methodFunc{
	"keys": func(h Host, recv Value, args []Value) (Value, error) {
		return NewList(recv.(*Dict).Keys()), arity("keys", args, 0, 0)
	},
	"values": func(h Host, recv Value, args []Value) (Value, error) {
		return NewList(recv.(*Dict).Values()), arity("values", args, 0, 0)
	},
	"items": func(h Host, recv Value, args []Value) (Value, error) {
		entries := recv.(*Dict).entries()
		out := make([]Value, len(entries))
		for i, e := range entries {
			out[i] = NewTuple([]Value{e.key, e.val})
		}
		return NewList(out), arity("items", args, 0, 0)
	},
	"get": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("get", args, 1, 2); err != nil {
			return nil, err
		}
		v, ok, err := recv.(*Dict).Get(args[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			return optArg(args, 1), nil
		}
		return v, nil
	},
	"pop": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("pop", args, 1, 2); err != nil {
			return nil, err
		}
		d := recv.(*Dict)
		v, ok, err := d.Get(args[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(args) == 2 {
				return args[1], nil
			}
			return nil, keyError(args[0])
		}
		_, err = d.Delete(args[0])
		return v, err
	},
	"setdefault": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("setdefault", args, 1, 2); err != nil {
			return nil, err
		}
		d := recv.(*Dict)
		v, ok, err := d.Get(args[0])
		if err != nil || ok {
			return v, err
		}
		def := optArg(args, 1)
		return def, d.Set(args[0], def)
	},
	"update": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("update", args, 1, 1); err != nil {
			return nil, err
		}
		other, ok := args[0].(*Dict)
		if !ok {
			return nil, typeErrorf("update() membutuhkan kamus, bukan '%s'", TypeName(args[0]))
		}
		d := recv.(*Dict)
		for _, e := range other.entries() {
			if err := d.Set(e.key, e.val); err != nil {
				return nil, err
			}
		}
		return None{}, nil
	},
	"copy": func(h Host, recv Value, args []Value) (Value, error) {
		return recv.(*Dict).Copy(), arity("copy", args, 0, 0)
	},
	"clear": func(h Host, recv Value, args []Value) (Value, error) {
		recv.(*Dict).Clear()
		return None{}, arity("clear", args, 0, 0)
	},
}

var setMethods = map[string]methodFunc{
	"add": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("add", args, 1, 1); err != nil {
			return nil, err
		}
		return None{}, recv.(*Set).Add(args[0])
	},
	"remove": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("remove", args, 1, 1); err != nil {
			return nil, err
		}
		ok, err := recv.(*Set).Remove(args[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, keyError(args[0])
		}
		return None{}, nil
	},
	"discard": func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity("discard", args, 1, 1); err != nil {
			return nil, err
		}
		_, err := recv.(*Set).Remove(args[0])
		return None{}, err
	},
	"union": setOp("union", func(in, other bool) bool { return in || other }),
	"intersection": setOp("intersection", func(in, other bool) bool {
		return in && other
	}),
	"difference": setOp("difference", func(in, other bool) bool { return in && !other }),
	"copy": func(h Host, recv Value, args []Value) (Value, error) {
		return recv.(*Set).Copy(), arity("copy", args, 0, 0)
	},
}

// setOp builds a set method that keeps members for which keep(inRecv,
// inOther) holds.
func setOp(name string, keep func(in, other bool) bool) methodFunc {
	return func(h Host, recv Value, args []Value) (Value, error) {
		if err := arity(name, args, 1, 1); err != nil {
			return nil, err
		}
		s := recv.(*Set)
		items, err := h.Collect(args[0])
		if err != nil {
			return nil, err
		}
		other := NewSet()
		for _, it := range items {
			if err := other.Add(it); err != nil {
				return nil, err
			}
		}
		out := NewSet()
		for _, src := range [][]Value{s.Items(), other.Items()} {
			for _, it := range src {
				inRecv, _ := s.Has(it)
				inOther, _ := other.Has(it)
				if keep(inRecv, inOther) {
					if err := out.Add(it); err != nil {
						return nil, err
					}
				}
			}
		}
		return out, nil
	}
}

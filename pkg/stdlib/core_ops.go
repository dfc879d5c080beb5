package stdlib

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// panjang(x) → bilangan_bulat
func builtinLen(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("panjang", args, 1, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case evaluator.Str:
		return evaluator.Int(utf8.RuneCountInString(string(v))), nil
	case *evaluator.List:
		return evaluator.Int(len(v.Items)), nil
	case *evaluator.Tuple:
		return evaluator.Int(len(v.Items)), nil
	case *evaluator.Dict:
		return evaluator.Int(v.Len()), nil
	case *evaluator.Set:
		return evaluator.Int(v.Len()), nil
	case *evaluator.Instance:
		if m, ok := v.Class.FindMethod("__len__"); ok {
			return h.Call(m, []evaluator.Value{v})
		}
	}
	return nil, evaluator.TypeError("Objek '%s' tidak memiliki panjang", evaluator.TypeName(args[0]))
}

// tipe(x) → teks
func builtinType(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("tipe", args, 1, 1); err != nil {
		return nil, err
	}
	return evaluator.Str(evaluator.TypeName(args[0])), nil
}

// rentang([mulai,] akhir[, langkah]) → daftar
func builtinRange(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, evaluator.ValueError("rentang() membutuhkan 1-3 argumen")
	}
	bounds := make([]int64, len(args))
	for i, a := range args {
		n, err := intArg("rentang", a)
		if err != nil {
			return nil, err
		}
		bounds[i] = n
	}
	start, stop, step := int64(0), bounds[0], int64(1)
	if len(bounds) >= 2 {
		start, stop = bounds[0], bounds[1]
	}
	if len(bounds) == 3 {
		step = bounds[2]
	}
	if step == 0 {
		return nil, evaluator.ValueError("rentang() langkah tidak boleh nol")
	}
	n := rangeLen(start, stop, step)
	if n > maxRangeLen {
		return nil, evaluator.OverflowError("rentang() terlalu panjang (%d elemen)", n)
	}
	items := make([]evaluator.Value, n)
	for k := range items {
		items[k] = evaluator.Int(start + int64(k)*step)
	}
	return evaluator.NewList(items), nil
}

const maxRangeLen = 1 << 27

// rangeLen counts the elements of rentang(start, stop, step) without
// overflowing int64.
func rangeLen(start, stop, step int64) uint64 {
	switch {
	case step > 0 && start < stop:
		return (uint64(stop)-uint64(start)-1)/uint64(step) + 1
	case step < 0 && start > stop:
		return (uint64(start)-uint64(stop)-1)/(uint64(-(step+1))+1) + 1
	}
	return 0
}

// int(x) → bilangan_bulat
func builtinInt(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("int", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return evaluator.Int(0), nil
	}
	switch v := args[0].(type) {
	case evaluator.Int:
		return v, nil
	case evaluator.Bool:
		if v {
			return evaluator.Int(1), nil
		}
		return evaluator.Int(0), nil
	case evaluator.Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, evaluator.ValueError("Tidak dapat mengkonversi '%s' ke bilangan bulat", evaluator.FormatFloat(f))
		}
		return evaluator.Int(int64(math.Trunc(f))), nil
	case evaluator.Str:
		s := strings.ReplaceAll(strings.TrimSpace(string(v)), "_", "")
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return evaluator.Int(n), nil
		}
	}
	return nil, evaluator.ValueError("Tidak dapat mengkonversi '%s' ke bilangan bulat", evaluator.ToStr(args[0]))
}

// float(x) → bilangan_desimal
func builtinFloat(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("float", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return evaluator.Float(0), nil
	}
	switch v := args[0].(type) {
	case evaluator.Float:
		return v, nil
	case evaluator.Int:
		return evaluator.Float(v), nil
	case evaluator.Bool:
		if v {
			return evaluator.Float(1), nil
		}
		return evaluator.Float(0), nil
	case evaluator.Str:
		s := strings.ToLower(strings.TrimSpace(string(v)))
		switch s {
		case "inf", "+inf", "infinity":
			return evaluator.Float(math.Inf(1)), nil
		case "-inf", "-infinity":
			return evaluator.Float(math.Inf(-1)), nil
		case "nan":
			return evaluator.Float(math.NaN()), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return evaluator.Float(f), nil
		}
	}
	return nil, evaluator.ValueError("Tidak dapat mengkonversi '%s' ke bilangan desimal", evaluator.ToStr(args[0]))
}

// str(x) → teks
func builtinStr(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("str", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return evaluator.Str(""), nil
	}
	s, err := h.Str(args[0])
	if err != nil {
		return nil, err
	}
	return evaluator.Str(s), nil
}

// bool(x) → boolean
func builtinBool(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("bool", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return evaluator.Bool(false), nil
	}
	return evaluator.Bool(evaluator.Truthy(args[0])), nil
}

// daftar([iterable]) → daftar
func builtinList(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("daftar", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return evaluator.NewList(nil), nil
	}
	items, err := h.Collect(args[0])
	if err != nil {
		return nil, err
	}
	return evaluator.NewList(items), nil
}

// tupel([iterable]) → tupel
func builtinTuple(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("tupel", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return evaluator.NewTuple(nil), nil
	}
	if t, ok := args[0].(*evaluator.Tuple); ok {
		return t, nil
	}
	items, err := h.Collect(args[0])
	if err != nil {
		return nil, err
	}
	return evaluator.NewTuple(items), nil
}

// kamus([pasangan]) → kamus
func builtinDict(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("kamus", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return evaluator.NewDict(), nil
	}
	if d, ok := args[0].(*evaluator.Dict); ok {
		return d.Copy(), nil
	}
	out := evaluator.NewDict()
	err := h.Iterate(args[0], func(item evaluator.Value) (bool, error) {
		pair, err := pairOf(item)
		if err != nil {
			return false, err
		}
		return true, out.Set(pair[0], pair[1])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pairOf(v evaluator.Value) ([]evaluator.Value, error) {
	var items []evaluator.Value
	switch p := v.(type) {
	case *evaluator.Tuple:
		items = p.Items
	case *evaluator.List:
		items = p.Items
	}
	if len(items) != 2 {
		return nil, evaluator.ValueError("kamus() membutuhkan pasangan (kunci, nilai), bukan %s", evaluator.Repr(v))
	}
	return items, nil
}

// himpunan([iterable]) → himpunan
func builtinSet(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("himpunan", args, 0, 1); err != nil {
		return nil, err
	}
	out := evaluator.NewSet()
	if len(args) == 0 {
		return out, nil
	}
	err := h.Iterate(args[0], func(item evaluator.Value) (bool, error) {
		return true, out.Add(item)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// builtinTypeNames maps conversion builtins to the type they produce, so
// isinstance(x, int) works.
var builtinTypeNames = map[string]string{
	"int":      "bilangan_bulat",
	"float":    "bilangan_desimal",
	"str":      "teks",
	"bool":     "boolean",
	"daftar":   "daftar",
	"tupel":    "tupel",
	"kamus":    "kamus",
	"himpunan": "himpunan",
}

// isinstance(objek, kelas | tupel kelas) → boolean
func builtinIsInstance(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("isinstance", args, 2, 2); err != nil {
		return nil, err
	}
	ok, err := isInstance(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return evaluator.Bool(ok), nil
}

func isInstance(obj, cls evaluator.Value) (bool, error) {
	switch c := cls.(type) {
	case *evaluator.Class:
		inst, ok := obj.(*evaluator.Instance)
		return ok && inst.Class.IsSubclassOf(c), nil
	case *evaluator.Builtin:
		want, ok := builtinTypeNames[c.Name]
		if !ok {
			break
		}
		return evaluator.TypeName(obj) == want, nil
	case *evaluator.Tuple:
		for _, item := range c.Items {
			ok, err := isInstance(obj, item)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	return false, evaluator.TypeError("isinstance() argumen kedua harus kelas, bukan '%s'", evaluator.TypeName(cls))
}

// berikutnya(generator[, bawaan]) → nilai
func builtinNext(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("berikutnya", args, 1, 2); err != nil {
		return nil, err
	}
	g, ok := args[0].(*evaluator.Generator)
	if !ok {
		return nil, evaluator.TypeError("Objek '%s' bukan generator", evaluator.TypeName(args[0]))
	}
	v, ok, err := g.Next(h.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		if len(args) == 2 {
			return args[1], nil
		}
		return nil, evaluator.ValueError("Generator '%s' sudah habis", g.Name)
	}
	return v, nil
}

// enumerasi(iterable[, mulai]) → daftar tupel (indeks, nilai)
func builtinEnumerate(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("enumerasi", args, 1, 2); err != nil {
		return nil, err
	}
	i := int64(0)
	if len(args) == 2 {
		n, err := intArg("enumerasi", args[1])
		if err != nil {
			return nil, err
		}
		i = n
	}
	var out []evaluator.Value
	err := h.Iterate(args[0], func(item evaluator.Value) (bool, error) {
		out = append(out, evaluator.NewTuple([]evaluator.Value{evaluator.Int(i), item}))
		i++
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return evaluator.NewList(out), nil
}

// zip(a, b, ...) → daftar tupel, sepanjang argumen terpendek
func builtinZip(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if len(args) == 0 {
		return evaluator.NewList(nil), nil
	}
	cols := make([][]evaluator.Value, len(args))
	n := -1
	for i, a := range args {
		items, err := h.Collect(a)
		if err != nil {
			return nil, err
		}
		cols[i] = items
		if n < 0 || len(items) < n {
			n = len(items)
		}
	}
	out := make([]evaluator.Value, n)
	for i := 0; i < n; i++ {
		row := make([]evaluator.Value, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		out[i] = evaluator.NewTuple(row)
	}
	return evaluator.NewList(out), nil
}

// masukan([prompt]) → teks
func builtinInput(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("masukan", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		prompt, err := h.Str(args[0])
		if err != nil {
			return nil, err
		}
		fmt.Fprint(h.Stdout(), prompt)
	}
	line, err := h.Stdin().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return nil, evaluator.IOError("masukan(): akhir input tercapai")
		}
		return nil, evaluator.IOError("masukan(): %v", err)
	}
	return evaluator.Str(strings.TrimRight(line, "\r\n")), nil
}

package stdlib

import (
	"math"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// peta(fungsi, iterable) → daftar
func builtinMap(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("peta", args, 2, 2); err != nil {
		return nil, err
	}
	var out []evaluator.Value
	err := h.Iterate(args[1], func(item evaluator.Value) (bool, error) {
		v, err := h.Call(args[0], []evaluator.Value{item})
		if err != nil {
			return false, err
		}
		out = append(out, v)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return evaluator.NewList(out), nil
}

// saring(fungsi | kosong, iterable) → daftar
func builtinFilter(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("saring", args, 2, 2); err != nil {
		return nil, err
	}
	pred, hasPred := optArg(args, 0)
	var out []evaluator.Value
	err := h.Iterate(args[1], func(item evaluator.Value) (bool, error) {
		keep := item
		if hasPred {
			v, err := h.Call(pred, []evaluator.Value{item})
			if err != nil {
				return false, err
			}
			keep = v
		}
		if evaluator.Truthy(keep) {
			out = append(out, item)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return evaluator.NewList(out), nil
}

// jumlah(iterable[, awal]) → angka
func builtinSum(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("jumlah", args, 1, 2); err != nil {
		return nil, err
	}
	var total evaluator.Value = evaluator.Int(0)
	if len(args) == 2 {
		total = args[1]
	}
	err := h.Iterate(args[0], func(item evaluator.Value) (bool, error) {
		v, err := evaluator.BinaryOp(ast.OpAdd, total, item)
		if err != nil {
			return false, evaluator.TypeError("Objek tidak dapat dijumlahkan: %s", err.Error())
		}
		total = v
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return total, nil
}

// maksimum(iterable) or maksimum(a, b, ...) → nilai
func builtinMax(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	return extreme(h, "maksimum", args, 1)
}

// minimum(iterable) or minimum(a, b, ...) → nilai
func builtinMin(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	return extreme(h, "minimum", args, -1)
}

func extreme(h evaluator.Host, name string, args []evaluator.Value, sign int) (evaluator.Value, error) {
	if err := checkArgs(name, args, 1, -1); err != nil {
		return nil, err
	}
	items := args
	if len(args) == 1 {
		collected, err := h.Collect(args[0])
		if err != nil {
			return nil, err
		}
		items = collected
	}
	if len(items) == 0 {
		return nil, evaluator.ValueError("%s() tidak dapat dihitung dari urutan kosong", name)
	}
	best := items[0]
	for _, it := range items[1:] {
		c, err := evaluator.Compare(it, best)
		if err != nil {
			return nil, err
		}
		if c*sign > 0 {
			best = it
		}
	}
	return best, nil
}

// urutkan(iterable[, kunci[, terbalik]]) → daftar baru
//
// A boolean second argument is taken as terbalik, matching the common
// urutkan(xs, benar) spelling.
func builtinSorted(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("urutkan", args, 1, 3); err != nil {
		return nil, err
	}
	items, err := h.Collect(args[0])
	if err != nil {
		return nil, err
	}
	var key evaluator.Value = evaluator.None{}
	reverse := false
	if len(args) >= 2 {
		if b, ok := args[1].(evaluator.Bool); ok && len(args) == 2 {
			reverse = bool(b)
		} else {
			key = args[1]
		}
	}
	if len(args) == 3 {
		reverse = evaluator.Truthy(args[2])
	}
	sorted, err := evaluator.SortValues(h, items, key, reverse)
	if err != nil {
		return nil, err
	}
	return evaluator.NewList(sorted), nil
}

// balik(urutan) → daftar terbalik
func builtinReversed(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("balik", args, 1, 1); err != nil {
		return nil, err
	}
	if s, ok := args[0].(evaluator.Str); ok {
		r := []rune(string(s))
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return evaluator.Str(r), nil
	}
	items, err := h.Collect(args[0])
	if err != nil {
		return nil, err
	}
	out := make([]evaluator.Value, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return evaluator.NewList(out), nil
}

// hitung_statistik(data) → kamus {jumlah, rata_rata, median, ...}
func builtinStats(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("hitung_statistik", args, 1, 1); err != nil {
		return nil, err
	}
	items, err := h.Collect(args[0])
	if err != nil {
		return nil, err
	}
	out := evaluator.NewDict()
	if len(items) == 0 {
		return out, nil
	}
	nums := make([]float64, len(items))
	for i, it := range items {
		f, err := numArg("hitung_statistik", it)
		if err != nil {
			return nil, err
		}
		nums[i] = f
	}
	total, err := builtinSum(h, []evaluator.Value{evaluator.NewList(items)})
	if err != nil {
		return nil, err
	}
	n := float64(len(nums))
	var sum float64
	for _, f := range nums {
		sum += f
	}
	mean := sum / n
	var variance float64
	for _, f := range nums {
		variance += (f - mean) * (f - mean)
	}
	variance /= n

	sorted, err := evaluator.SortValues(h, items, evaluator.None{}, false)
	if err != nil {
		return nil, err
	}
	mid := len(sorted) / 2
	hi, _ := numArg("hitung_statistik", sorted[mid])
	median := hi
	if len(sorted)%2 == 0 {
		lo, _ := numArg("hitung_statistik", sorted[mid-1])
		median = (lo + hi) / 2
	}

	fields := []struct {
		key string
		val evaluator.Value
	}{
		{"jumlah", total},
		{"rata_rata", evaluator.Float(mean)},
		{"median", evaluator.Float(median)},
		{"minimum", sorted[0]},
		{"maksimum", sorted[len(sorted)-1]},
		{"varians", evaluator.Float(variance)},
		{"standar_deviasi", evaluator.Float(math.Sqrt(variance))},
		{"jumlah_data", evaluator.Int(len(items))},
	}
	for _, f := range fields {
		if err := out.Set(evaluator.Str(f.key), f.val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

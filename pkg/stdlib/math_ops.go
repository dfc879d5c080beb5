package stdlib

import (
	"math"
	"math/rand"
	"time"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// abs(x) → angka
func builtinAbs(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("abs", args, 1, 1); err != nil {
		return nil, err
	}
	switch n := args[0].(type) {
	case evaluator.Int:
		if n == math.MinInt64 {
			return nil, evaluator.OverflowError("abs() melampaui batas bilangan bulat 64-bit")
		}
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case evaluator.Float:
		return evaluator.Float(math.Abs(float64(n))), nil
	}
	return nil, evaluator.TypeError("abs() membutuhkan angka")
}

// bulat(x[, digit]) → angka, pembulatan setengah ke genap
func builtinRound(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("bulat", args, 1, 2); err != nil {
		return nil, err
	}
	digits := int64(0)
	if len(args) == 2 {
		d, err := intArg("bulat", args[1])
		if err != nil {
			return nil, err
		}
		digits = d
	}
	switch n := args[0].(type) {
	case evaluator.Int:
		if digits >= 0 {
			return n, nil
		}
		p := int64(math.Pow10(int(-digits)))
		return evaluator.Int(int64(math.RoundToEven(float64(n)/float64(p))) * p), nil
	case evaluator.Float:
		p := math.Pow10(int(digits))
		return evaluator.Float(math.RoundToEven(float64(n)*p) / p), nil
	}
	return nil, evaluator.TypeError("bulat() membutuhkan angka")
}

// akar(x) → bilangan_desimal
func builtinSqrt(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("akar", args, 1, 1); err != nil {
		return nil, err
	}
	f, err := numArg("akar", args[0])
	if err != nil || f < 0 {
		return nil, evaluator.ValueError("akar() membutuhkan angka non-negatif")
	}
	return evaluator.Float(math.Sqrt(f)), nil
}

// pangkat(a, b) → bilangan_desimal
func builtinPow(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("pangkat", args, 2, 2); err != nil {
		return nil, err
	}
	base, err1 := numArg("pangkat", args[0])
	exp, err2 := numArg("pangkat", args[1])
	if err1 != nil || err2 != nil {
		return nil, evaluator.ValueError("pangkat() membutuhkan dua angka")
	}
	r := math.Pow(base, exp)
	if math.IsNaN(r) {
		return nil, evaluator.ValueError("pangkat() hasil tidak terdefinisi")
	}
	return evaluator.Float(r), nil
}

func unaryMath(name string, fn func(float64) float64) evaluator.BuiltinFunc {
	return func(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
		if err := checkArgs(name, args, 1, 1); err != nil {
			return nil, err
		}
		f, err := numArg(name, args[0])
		if err != nil {
			return nil, err
		}
		return evaluator.Float(fn(f)), nil
	}
}

// acak() → bilangan_desimal dalam [0, 1)
func builtinRandom(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("acak", args, 0, 0); err != nil {
		return nil, err
	}
	return evaluator.Float(rand.Float64()), nil
}

// acak_int(a, b) → bilangan_bulat dalam [a, b]
func builtinRandInt(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("acak_int", args, 2, 2); err != nil {
		return nil, err
	}
	lo, err := intArg("acak_int", args[0])
	if err != nil {
		return nil, err
	}
	hi, err := intArg("acak_int", args[1])
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, evaluator.ValueError("acak_int() batas bawah lebih besar dari batas atas")
	}
	return evaluator.Int(lo + rand.Int63n(hi-lo+1)), nil
}

// pilih_acak(urutan) → elemen
func builtinChoice(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("pilih_acak", args, 1, 1); err != nil {
		return nil, err
	}
	items, err := h.Collect(args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, evaluator.IndexError("pilih_acak() dari urutan kosong")
	}
	return items[rand.Intn(len(items))], nil
}

// waktu_sekarang() → detik sejak epoch
func builtinNow(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("waktu_sekarang", args, 0, 0); err != nil {
		return nil, err
	}
	return evaluator.Float(float64(time.Now().UnixNano()) / 1e9), nil
}

// tidur(detik); returns early when the run is cancelled.
func builtinSleep(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("tidur", args, 1, 1); err != nil {
		return nil, err
	}
	secs, err := numArg("tidur", args[0])
	if err != nil {
		return nil, err
	}
	if secs < 0 {
		return nil, evaluator.ValueError("tidur() membutuhkan durasi non-negatif")
	}
	t := time.NewTimer(time.Duration(secs * float64(time.Second)))
	defer t.Stop()
	select {
	case <-t.C:
	case <-h.Context().Done():
	}
	return evaluator.None{}, nil
}

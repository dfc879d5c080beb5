package stdlib

import (
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// huruf_besar(teks) → teks
func builtinUpper(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("huruf_besar", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := strArg("huruf_besar", args[0])
	if err != nil {
		return nil, err
	}
	return evaluator.Str(strings.ToUpper(s)), nil
}

// huruf_kecil(teks) → teks
func builtinLower(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("huruf_kecil", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := strArg("huruf_kecil", args[0])
	if err != nil {
		return nil, err
	}
	return evaluator.Str(strings.ToLower(s)), nil
}

// pisah(teks[, pemisah]) → daftar
func builtinSplit(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("pisah", args, 1, 2); err != nil {
		return nil, err
	}
	s, err := strArg("pisah", args[0])
	if err != nil {
		return nil, err
	}
	var sep evaluator.Value = evaluator.None{}
	if len(args) == 2 {
		sep = args[1]
	}
	return evaluator.SplitStr(s, sep)
}

// gabung(pemisah, iterable) → teks
func builtinJoin(h evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("gabung", args, 2, 2); err != nil {
		return nil, err
	}
	sep, err := strArg("gabung", args[0])
	if err != nil {
		return nil, err
	}
	items, err := h.Collect(args[1])
	if err != nil {
		return nil, err
	}
	return evaluator.JoinStr(sep, items)
}

// ganti(teks, lama, baru) → teks
func builtinReplace(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("ganti", args, 3, 3); err != nil {
		return nil, err
	}
	parts := make([]string, 3)
	for i, a := range args {
		s, err := strArg("ganti", a)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return evaluator.Str(strings.ReplaceAll(parts[0], parts[1], parts[2])), nil
}

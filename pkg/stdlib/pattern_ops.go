package stdlib

import (
	"regexp"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func compilePattern(name string, v evaluator.Value) (*regexp.Regexp, error) {
	pat, err := strArg(name, v)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, evaluator.ValueError("Pola regex tidak valid: %v", err)
	}
	return re, nil
}

func strList(items []string) *evaluator.List {
	out := make([]evaluator.Value, len(items))
	for i, s := range items {
		out[i] = evaluator.Str(s)
	}
	return evaluator.NewList(out)
}

// cari_pola(pola, teks[, semua]) → teks | kosong, or daftar when semua
func builtinFindPattern(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("cari_pola", args, 2, 3); err != nil {
		return nil, err
	}
	re, err := compilePattern("cari_pola", args[0])
	if err != nil {
		return nil, err
	}
	s, err := strArg("cari_pola", args[1])
	if err != nil {
		return nil, err
	}
	if len(args) == 3 && evaluator.Truthy(args[2]) {
		return strList(re.FindAllString(s, -1)), nil
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return evaluator.None{}, nil
	}
	return evaluator.Str(s[loc[0]:loc[1]]), nil
}

// ganti_pola(pola, pengganti, teks[, semua]) → teks
func builtinReplacePattern(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("ganti_pola", args, 3, 4); err != nil {
		return nil, err
	}
	re, err := compilePattern("ganti_pola", args[0])
	if err != nil {
		return nil, err
	}
	repl, err := strArg("ganti_pola", args[1])
	if err != nil {
		return nil, err
	}
	s, err := strArg("ganti_pola", args[2])
	if err != nil {
		return nil, err
	}
	if len(args) == 4 && !evaluator.Truthy(args[3]) {
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return evaluator.Str(s), nil
		}
		dst := re.ExpandString(nil, repl, s, loc)
		return evaluator.Str(s[:loc[0]] + string(dst) + s[loc[1]:]), nil
	}
	return evaluator.Str(re.ReplaceAllString(s, repl)), nil
}

// pisah_pola(pola, teks) → daftar
func builtinSplitPattern(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("pisah_pola", args, 2, 2); err != nil {
		return nil, err
	}
	re, err := compilePattern("pisah_pola", args[0])
	if err != nil {
		return nil, err
	}
	s, err := strArg("pisah_pola", args[1])
	if err != nil {
		return nil, err
	}
	return strList(re.Split(s, -1)), nil
}

// validasi_email(teks) → boolean
func builtinValidEmail(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("validasi_email", args, 1, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(evaluator.Str)
	return evaluator.Bool(ok && emailPattern.MatchString(string(s))), nil
}

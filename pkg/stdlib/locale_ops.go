package stdlib

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// Numbers are formatted for Indonesian unless a locale is given.
var defaultLocale = language.Indonesian

func localeArg(name string, args []evaluator.Value, i int) (language.Tag, error) {
	v, ok := optArg(args, i)
	if !ok {
		return defaultLocale, nil
	}
	s, err := strArg(name, v)
	if err != nil {
		return language.Und, err
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, evaluator.ValueError("%s(): locale tidak valid '%s'", name, s)
	}
	return tag, nil
}

func decimalsArg(name string, args []evaluator.Value, i int) (int, bool, error) {
	v, ok := optArg(args, i)
	if !ok {
		return 0, false, nil
	}
	n, err := intArg(name, v)
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, false, evaluator.ValueError("%s(): jumlah desimal tidak boleh negatif", name)
	}
	return int(n), true, nil
}

func decimal(v evaluator.Value, digits int, fixed bool) number.Formatter {
	var opts []number.Option
	if fixed {
		opts = append(opts, number.Scale(digits))
	}
	if n, ok := v.(evaluator.Int); ok {
		return number.Decimal(int64(n), opts...)
	}
	f, _ := v.(evaluator.Float)
	return number.Decimal(float64(f), opts...)
}

func numValue(name string, v evaluator.Value) error {
	switch v.(type) {
	case evaluator.Int, evaluator.Float:
		return nil
	}
	return evaluator.TypeError("%s() membutuhkan angka, bukan '%s'", name, evaluator.TypeName(v))
}

// format_angka(x[, desimal[, locale]]) → "1.234.567,89"
func builtinFormatNumber(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("format_angka", args, 1, 3); err != nil {
		return nil, err
	}
	if err := numValue("format_angka", args[0]); err != nil {
		return nil, err
	}
	digits, fixed, err := decimalsArg("format_angka", args, 1)
	if err != nil {
		return nil, err
	}
	tag, err := localeArg("format_angka", args, 2)
	if err != nil {
		return nil, err
	}
	p := message.NewPrinter(tag)
	return evaluator.Str(p.Sprintf("%v", decimal(args[0], digits, fixed))), nil
}

// format_rupiah(x[, dengan_simbol]) → "Rp 1.500.000" or "Rp 1.500,50"
func builtinFormatRupiah(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("format_rupiah", args, 1, 2); err != nil {
		return nil, err
	}
	v := args[0]
	if err := numValue("format_rupiah", v); err != nil {
		return nil, evaluator.ValueError("format_rupiah() membutuhkan angka")
	}
	digits, fixed := 0, false
	if f, ok := v.(evaluator.Float); ok {
		if float64(f) == math.Trunc(float64(f)) && !math.IsInf(float64(f), 0) {
			v = evaluator.Int(int64(f))
		} else {
			digits, fixed = 2, true
		}
	}
	p := message.NewPrinter(defaultLocale)
	s := p.Sprintf("%v", decimal(v, digits, fixed))
	if len(args) == 2 && !evaluator.Truthy(args[1]) {
		return evaluator.Str(s), nil
	}
	return evaluator.Str("Rp " + s), nil
}

// format_mata_uang(x, kode_iso[, locale]) → jumlah dengan simbol mata uang
func builtinFormatCurrency(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("format_mata_uang", args, 2, 3); err != nil {
		return nil, err
	}
	amount, err := numArg("format_mata_uang", args[0])
	if err != nil {
		return nil, err
	}
	code, err := strArg("format_mata_uang", args[1])
	if err != nil {
		return nil, err
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, evaluator.ValueError("format_mata_uang(): kode mata uang tidak valid '%s'", code)
	}
	tag, err := localeArg("format_mata_uang", args, 2)
	if err != nil {
		return nil, err
	}
	p := message.NewPrinter(tag)
	return evaluator.Str(p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))), nil
}

// format_persen(x[, desimal]) → 0.25 menjadi "25%"
func builtinFormatPercent(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("format_persen", args, 1, 2); err != nil {
		return nil, err
	}
	f, err := numArg("format_persen", args[0])
	if err != nil {
		return nil, err
	}
	digits, fixed, err := decimalsArg("format_persen", args, 1)
	if err != nil {
		return nil, err
	}
	var opts []number.Option
	if fixed {
		opts = append(opts, number.Scale(digits))
	}
	p := message.NewPrinter(defaultLocale)
	return evaluator.Str(p.Sprintf("%v", number.Percent(f, opts...))), nil
}

var angkaKata = []string{
	"nol", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan",
	"sepuluh", "sebelas",
}

var skalaKata = []struct {
	value int64
	word  string
}{
	{1_000_000_000_000, "triliun"},
	{1_000_000_000, "miliar"},
	{1_000_000, "juta"},
}

func numberToWords(n int64) string {
	switch {
	case n < 0:
		return "minus " + numberToWords(-n)
	case n < 12:
		return angkaKata[n]
	case n < 20:
		return angkaKata[n-10] + " belas"
	case n < 100:
		s := angkaKata[n/10] + " puluh"
		if n%10 != 0 {
			s += " " + angkaKata[n%10]
		}
		return s
	case n < 1000:
		return withRest(n/100, n%100, "seratus", "ratus")
	case n < 1_000_000:
		return withRest(n/1000, n%1000, "seribu", "ribu")
	}
	for _, sk := range skalaKata {
		if n >= sk.value {
			s := numberToWords(n/sk.value) + " " + sk.word
			if rest := n % sk.value; rest != 0 {
				s += " " + numberToWords(rest)
			}
			return s
		}
	}
	return fmt.Sprint(n)
}

func withRest(head, rest int64, single, unit string) string {
	s := single
	if head != 1 {
		s = numberToWords(head) + " " + unit
	}
	if rest != 0 {
		s += " " + numberToWords(rest)
	}
	return s
}

// angka_ke_kata(n) → 125 menjadi "seratus dua puluh lima"
func builtinNumberToWords(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("angka_ke_kata", args, 1, 1); err != nil {
		return nil, err
	}
	n, ok := args[0].(evaluator.Int)
	if !ok {
		return nil, evaluator.ValueError("angka_ke_kata() membutuhkan bilangan bulat")
	}
	if n == math.MinInt64 {
		return evaluator.Str(fmt.Sprint(int64(n))), nil
	}
	return evaluator.Str(numberToWords(int64(n))), nil
}

var (
	namaHari  = []string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	namaBulan = []string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
)

func formatTanggal(t time.Time, long bool) string {
	s := fmt.Sprintf("%d %s %d", t.Day(), namaBulan[t.Month()-1], t.Year())
	if long {
		return namaHari[t.Weekday()] + ", " + s
	}
	return s
}

// tanggal_indonesia([panjang[, "YYYY-MM-DD"]]) → "Senin, 17 Agustus 2026"
func builtinDate(_ evaluator.Host, args []evaluator.Value) (evaluator.Value, error) {
	if err := checkArgs("tanggal_indonesia", args, 0, 2); err != nil {
		return nil, err
	}
	long := true
	if v, ok := optArg(args, 0); ok {
		long = evaluator.Truthy(v)
	}
	t := time.Now()
	if v, ok := optArg(args, 1); ok {
		s, err := strArg("tanggal_indonesia", v)
		if err != nil {
			return nil, err
		}
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(s))
		if err != nil {
			return nil, evaluator.ValueError("tanggal_indonesia(): tanggal tidak valid '%s'", s)
		}
		t = parsed
	}
	return evaluator.Str(formatTanggal(t, long)), nil
}

package stdlib

import (
	"math"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// RegisterDefaults adds all built-in functions.
func RegisterDefaults(r *Registry) {
	// Core
	r.Register(Fn{Name: "panjang", Doc: "panjang(x) -> jumlah elemen", Execute: builtinLen})
	r.Register(Fn{Name: "tipe", Doc: "tipe(x) -> nama tipe", Execute: builtinType})
	r.Register(Fn{Name: "rentang", Doc: "rentang([mulai,] akhir[, langkah])", Execute: builtinRange})
	r.Register(Fn{Name: "int", Doc: "int(x) -> bilangan bulat", Execute: builtinInt})
	r.Register(Fn{Name: "float", Doc: "float(x) -> bilangan desimal", Execute: builtinFloat})
	r.Register(Fn{Name: "str", Doc: "str(x) -> teks", Execute: builtinStr})
	r.Register(Fn{Name: "bool", Doc: "bool(x) -> boolean", Execute: builtinBool})
	r.Register(Fn{Name: "daftar", Doc: "daftar([iterable])", Execute: builtinList})
	r.Register(Fn{Name: "tupel", Doc: "tupel([iterable])", Execute: builtinTuple})
	r.Register(Fn{Name: "kamus", Doc: "kamus([pasangan])", Execute: builtinDict})
	r.Register(Fn{Name: "himpunan", Doc: "himpunan([iterable])", Execute: builtinSet})
	r.Register(Fn{Name: "isinstance", Doc: "isinstance(objek, kelas)", Execute: builtinIsInstance})
	r.Register(Fn{Name: "berikutnya", Doc: "berikutnya(generator[, bawaan])", Execute: builtinNext})
	r.Register(Fn{Name: "enumerasi", Doc: "enumerasi(iterable[, mulai])", Execute: builtinEnumerate})
	r.Register(Fn{Name: "zip", Doc: "zip(a, b, ...)", Execute: builtinZip})
	r.Register(Fn{Name: "masukan", Doc: "masukan([prompt]) -> baris dari stdin", Execute: builtinInput})

	// Sequence ops
	r.Register(Fn{Name: "peta", Doc: "peta(fungsi, iterable)", Execute: builtinMap})
	r.Register(Fn{Name: "saring", Doc: "saring(fungsi, iterable)", Execute: builtinFilter})
	r.Register(Fn{Name: "jumlah", Doc: "jumlah(iterable[, awal])", Execute: builtinSum})
	r.Register(Fn{Name: "maksimum", Doc: "maksimum(iterable) atau maksimum(a, b, ...)", Execute: builtinMax})
	r.Register(Fn{Name: "minimum", Doc: "minimum(iterable) atau minimum(a, b, ...)", Execute: builtinMin})
	r.Register(Fn{Name: "urutkan", Doc: "urutkan(iterable[, kunci[, terbalik]])", Execute: builtinSorted})
	r.Register(Fn{Name: "balik", Doc: "balik(urutan)", Execute: builtinReversed})

	// Math
	r.Register(Fn{Name: "abs", Doc: "abs(x)", Execute: builtinAbs})
	r.Register(Fn{Name: "bulat", Doc: "bulat(x[, digit])", Execute: builtinRound})
	r.Register(Fn{Name: "akar", Doc: "akar(x) -> akar kuadrat", Execute: builtinSqrt})
	r.Register(Fn{Name: "pangkat", Doc: "pangkat(a, b)", Execute: builtinPow})
	r.Register(Fn{Name: "sin", Doc: "sin(x)", Execute: unaryMath("sin", math.Sin)})
	r.Register(Fn{Name: "cos", Doc: "cos(x)", Execute: unaryMath("cos", math.Cos)})
	r.Register(Fn{Name: "tan", Doc: "tan(x)", Execute: unaryMath("tan", math.Tan)})
	r.Register(Fn{Name: "acak", Doc: "acak() -> [0, 1)", Execute: builtinRandom})
	r.Register(Fn{Name: "acak_int", Doc: "acak_int(a, b)", Execute: builtinRandInt})
	r.Register(Fn{Name: "pilih_acak", Doc: "pilih_acak(urutan)", Execute: builtinChoice})
	r.Register(Fn{Name: "hitung_statistik", Doc: "hitung_statistik(data) -> kamus", Execute: builtinStats})

	// Time
	r.Register(Fn{Name: "waktu_sekarang", Doc: "waktu_sekarang() -> detik", Execute: builtinNow})
	r.Register(Fn{Name: "tidur", Doc: "tidur(detik)", Execute: builtinSleep})

	// String ops
	r.Register(Fn{Name: "huruf_besar", Doc: "huruf_besar(teks)", Execute: builtinUpper})
	r.Register(Fn{Name: "huruf_kecil", Doc: "huruf_kecil(teks)", Execute: builtinLower})
	r.Register(Fn{Name: "pisah", Doc: "pisah(teks[, pemisah])", Execute: builtinSplit})
	r.Register(Fn{Name: "gabung", Doc: "gabung(pemisah, iterable)", Execute: builtinJoin})
	r.Register(Fn{Name: "ganti", Doc: "ganti(teks, lama, baru)", Execute: builtinReplace})

	// Patterns
	r.Register(Fn{Name: "cari_pola", Doc: "cari_pola(pola, teks) -> daftar", Execute: builtinFindPattern})
	r.Register(Fn{Name: "ganti_pola", Doc: "ganti_pola(pola, pengganti, teks)", Execute: builtinReplacePattern})
	r.Register(Fn{Name: "pisah_pola", Doc: "pisah_pola(pola, teks)", Execute: builtinSplitPattern})
	r.Register(Fn{Name: "validasi_email", Doc: "validasi_email(teks) -> boolean", Execute: builtinValidEmail})

	// JSON
	r.Register(Fn{Name: "ke_json", Doc: "ke_json(nilai[, indentasi])", Execute: builtinToJSON})
	r.Register(Fn{Name: "dari_json", Doc: "dari_json(teks)", Execute: builtinFromJSON})

	// Files
	r.Register(Fn{Name: "baca_file", Doc: "baca_file(path) -> isi", Execute: builtinReadFile})
	r.Register(Fn{Name: "tulis_file", Doc: "tulis_file(path, isi)", Execute: builtinWriteFile})
	r.Register(Fn{Name: "tambah_ke_file", Doc: "tambah_ke_file(path, isi)", Execute: builtinAppendFile})
	r.Register(Fn{Name: "file_ada", Doc: "file_ada(path) -> boolean", Execute: builtinFileExists})
	r.Register(Fn{Name: "hapus_file", Doc: "hapus_file(path)", Execute: builtinRemoveFile})
	r.Register(Fn{Name: "daftar_file", Doc: "daftar_file([direktori])", Execute: builtinListDir})
	r.Register(Fn{Name: "baca_json", Doc: "baca_json(path) -> nilai", Execute: builtinReadJSON})
	r.Register(Fn{Name: "tulis_json", Doc: "tulis_json(path, nilai)", Execute: builtinWriteJSON})
	r.Register(Fn{Name: "baca_csv", Doc: "baca_csv(path) -> daftar baris", Execute: builtinReadCSV})
	r.Register(Fn{Name: "tulis_csv", Doc: "tulis_csv(path, baris)", Execute: builtinWriteCSV})

	// Locale
	r.Register(Fn{Name: "format_angka", Doc: "format_angka(x[, desimal])", Execute: builtinFormatNumber})
	r.Register(Fn{Name: "format_rupiah", Doc: "format_rupiah(x[, dengan_simbol])", Execute: builtinFormatRupiah})
	r.Register(Fn{Name: "format_mata_uang", Doc: "format_mata_uang(x, kode_iso[, locale])", Execute: builtinFormatCurrency})
	r.Register(Fn{Name: "format_persen", Doc: "format_persen(x[, desimal])", Execute: builtinFormatPercent})
	r.Register(Fn{Name: "angka_ke_kata", Doc: "angka_ke_kata(n)", Execute: builtinNumberToWords})
	r.Register(Fn{Name: "tanggal_indonesia", Doc: "tanggal_indonesia([panjang])", Execute: builtinDate})

	// Web
	r.Register(Fn{Name: "http_get", Doc: "http_get(url[, header])", Execute: builtinHTTPGet})
	r.Register(Fn{Name: "http_post", Doc: "http_post(url[, data[, header]])", Execute: builtinHTTPPost})
}

// checkArgs reports a TypeError unless lo <= len(args) <= hi.
func checkArgs(name string, args []evaluator.Value, lo, hi int) error {
	if len(args) >= lo && len(args) <= hi {
		return nil
	}
	if lo == hi {
		return evaluator.TypeError("%s() membutuhkan %d argumen, diberikan %d", name, lo, len(args))
	}
	if hi < 0 {
		if len(args) >= lo {
			return nil
		}
		return evaluator.TypeError("%s() membutuhkan minimal %d argumen, diberikan %d", name, lo, len(args))
	}
	return evaluator.TypeError("%s() membutuhkan %d sampai %d argumen, diberikan %d", name, lo, hi, len(args))
}

func strArg(name string, v evaluator.Value) (string, error) {
	s, ok := v.(evaluator.Str)
	if !ok {
		return "", evaluator.TypeError("%s() membutuhkan teks, bukan '%s'", name, evaluator.TypeName(v))
	}
	return string(s), nil
}

func intArg(name string, v evaluator.Value) (int64, error) {
	n, ok := v.(evaluator.Int)
	if !ok {
		return 0, evaluator.TypeError("%s() membutuhkan bilangan bulat, bukan '%s'", name, evaluator.TypeName(v))
	}
	return int64(n), nil
}

func numArg(name string, v evaluator.Value) (float64, error) {
	switch n := v.(type) {
	case evaluator.Int:
		return float64(n), nil
	case evaluator.Float:
		return float64(n), nil
	}
	return 0, evaluator.TypeError("%s() membutuhkan angka, bukan '%s'", name, evaluator.TypeName(v))
}

func optArg(args []evaluator.Value, i int) (evaluator.Value, bool) {
	if i >= len(args) {
		return nil, false
	}
	if _, ok := args[i].(evaluator.None); ok {
		return nil, false
	}
	return args[i], true
}

// Package help holds the quick reference printed by "cy help".
package help

import (
	"fmt"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/runtime"
	"github.com/MrXploisLite/CodingYok/pkg/stdlib"
)

// QUICKREF is the overview shown by "cy help" without a topic.
var QUICKREF = `CodingYok v` + runtime.Version + ` - Bahasa Pemrograman Indonesia

PENGGUNAAN:
    cy run [--trace] file.cy    Jalankan file CodingYok
    cy check file.cy ...        Periksa sintaks tanpa menjalankan
    cy fmt [-w] file.cy         Rapikan kode sumber
    cy repl                     Mode interaktif
    cy version                  Tampilkan versi
    cy help [topik]             Tampilkan bantuan

TOPIK:
    ` + strings.Join(TopicList, ", ") + `

Contoh: cy help sintaks
`

// TopicList is the display order of Topics.
var TopicList = []string{
	"sintaks", "tipe", "kontrol", "fungsi", "kelas",
	"galat", "generator", "modul", "bawaan", "diagnostik", "contoh",
}

// Topics maps a topic name to its text.
var Topics = map[string]string{
	"sintaks": `SINTAKS
Blok ditandai titik dua dan indentasi, seperti Python. Komentar diawali '#'.

    nama = "Budi"
    jika umur >= 17:
        tulis("Dewasa")
    kalau_tidak_jika umur >= 13:
        tulis("Remaja")
    kalau_tidak:
        tulis("Anak")

Kata kunci: tulis jika kalau_tidak_jika kalau_tidak selama untuk dalam fungsi
kelas kembalikan hasilkan berhenti lanjut lewati impor dari sebagai coba
kecuali akhirnya lempar dengan cocokkan kasus dan atau bukan adalah lambda
global nonlokal tegas hapus benar salah kosong
`,
	"tipe": `TIPE DATA
    int       42          float     3.14
    str       "teks"      bool      benar / salah
    kosong    (tidak ada nilai)
    daftar    [1, 2, 3]   tupel     (1, 2)
    kamus     {"a": 1}    himpunan  {1, 2}

Hanya salah dan kosong yang bernilai salah dalam kondisi.
f-string: f"Halo {nama}, total {harga:.2f}"
`,
	"kontrol": `ALUR KONTROL
    untuk i dalam rentang(5):
        jika i == 3:
            lanjut
        tulis(i)

    selama n > 0:
        n -= 1

    cocokkan nilai:
        kasus 1 atau 2:
            tulis("kecil")
        kasus (x, y) jika x > y:
            tulis("pasangan")
        kasus _:
            tulis("lainnya")
`,
	"fungsi": `FUNGSI
    fungsi sapa(nama, salam="Halo"):
        kembalikan f"{salam}, {nama}!"

    kuadrat = lambda x: x * x

Parameter default dievaluasi saat pemanggilan. Closure menangkap variabel
berdasarkan referensi; gunakan nonlokal atau global untuk mengubahnya.
`,
	"kelas": `KELAS
    kelas Hewan:
        fungsi __init__(self, nama):
            self.nama = nama
        fungsi suara(self):
            kembalikan "..."

    kelas Kucing(Hewan):
        fungsi suara(self):
            kembalikan "Meong"

Metode khusus: __init__, __str__, __getitem__, __setitem__, serta
__enter__ dan __exit__ untuk blok dengan.
`,
	"galat": `PENGECUALIAN
    coba:
        x = 10 / 0
    kecuali ZeroDivisionError sebagai e:
        tulis("Galat:", e)
    akhirnya:
        tulis("selesai")

    kelas GalatSaya(Exception):
        fungsi __str__(diri):
            kembalikan "galat saya"
    lempar GalatSaya("pesan")

Bawaan: Exception, ValueError, TypeError, NameError, IndexError, KeyError,
AttributeError, ZeroDivisionError, OverflowError, ImportError,
ModuleNotFoundError, RecursionError, AssertionError, IOError.
`,
	"generator": `GENERATOR
    fungsi hitung(n):
        i = 0
        selama i < n:
            hasilkan i
            i += 1

    g = hitung(3)
    tulis(berikutnya(g))
    untuk x dalam g:
        tulis(x)

Generator berjalan malas dan melanjutkan dari titik hasilkan terakhir.
`,
	"modul": `MODUL
    impor matematika
    impor util sebagai u
    dari geometri impor luas, keliling sebagai kel

File <nama>.cy dicari di direktori kerja, direktori skrip, search_paths
di .codingyok.yaml, CY_PATH, lalu direktori stdlib_modules. Modul
dijalankan sekali dan hasilnya di-cache.
`,
	"bawaan": `FUNGSI BAWAAN
Nama, penggunaan dan jumlah fungsi yang tersedia di setiap program.
` + "\n" + StdlibIndex(),
	"diagnostik": `DIAGNOSTIK
    E_LEX E_PARSE E_VALIDATE     kesalahan sebelum eksekusi (kode keluar 2)
    E_NAME E_TYPE E_VALUE        kesalahan saat eksekusi (kode keluar 3)
    E_ZERO_DIV E_OVERFLOW E_INDEX E_KEY E_ATTR
    E_IMPORT E_MODULE_NOT_FOUND E_RECURSION E_ASSERT E_RAISED
    E_BUDGET E_CANCELLED E_IO E_CONFIG

Kesalahan nama menyertakan saran: "Mungkin maksud Anda: ...".
`,
	"contoh": `CONTOH
    nama = masukan("Siapa nama kamu? ")
    tulis(f"Halo {nama}!")

    angka = [5, 3, 8]
    tulis(urutkan(angka), jumlah(angka), maksimum(angka))

    kuadrat = {x: x ** 2 untuk x dalam rentang(4)}
    tulis(kuadrat)
`,
}

// MatchTopic resolves query to a topic by exact name or unique prefix.
func MatchTopic(query string) (string, string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if content, ok := Topics[query]; ok {
		return query, content, nil
	}
	var matches []string
	if query != "" {
		for _, name := range TopicList {
			if strings.HasPrefix(name, query) {
				matches = append(matches, name)
			}
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], Topics[matches[0]], nil
	case 0:
		return "", "", fmt.Errorf("topik tidak dikenal '%s'. Topik: %s", query, strings.Join(TopicList, ", "))
	}
	return "", "", fmt.Errorf("topik '%s' ambigu: %s", query, strings.Join(matches, ", "))
}

// StdlibIndex lists every built-in with its usage line.
func StdlibIndex() string {
	reg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(reg)
	names := reg.Names()

	var b strings.Builder
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		doc := reg.Get(name).Doc
		fmt.Fprintf(&b, "  %-*s  %s\n", width, name, doc)
	}
	fmt.Fprintf(&b, "\nTotal: %d fungsi\n", len(names))
	return b.String()
}

package parser_test

import (
	"testing"

	"github.com/MrXploisLite/CodingYok/pkg/parser"
)

// FuzzParse feeds random inputs to the parser to catch panics.
// The parser should never panic; it returns diagnostics for invalid input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		`tulis("halo")`,
		"x = 1\nx = x + 1\ntulis(x)",
		"fungsi f(n=10):\n    tulis(n)\nf()\nf(5)",
		"kelas A:\n    fungsi m(diri):\n        kembalikan 1\nkelas B(A):\n    fungsi n(diri):\n        kembalikan 2\ntulis(B().m())",
		"impor m\nimpor m sebagai n\ndari m impor a, b sebagai c",
		"coba:\n    x = 1 / 0\nkecuali ZeroDivisionError sebagai e:\n    tulis(e)\nakhirnya:\n    lewati",
		"fungsi g():\n    untuk i dalam rentang(3):\n        hasilkan i",
		"cocokkan x:\n    kasus [a, b] jika a > b:\n        tulis(a)\n    kasus _:\n        lewati",
		"xs = [x * x untuk x dalam rentang(10) jika x % 2 == 0]",
		"d = {k: v untuk k dalam xs}\ns = {1, 2}\nt = (1,)",
		`f"{a + b:.2f} {{}} {d['k']}"`,
		"a, b = b, a\nxs[1:2] = [3]\no.x += 1",
		"lambda x=1: x jika x kalau_tidak 0",
		// Broken inputs
		"jika x\n    y",
		"kelas K:\n    x = 1",
		"x = (1 +",
		"f\"{\"",
		"f\"{}\"",
		"xs[]",
		"    indented",
		"dari impor",
		"= = =",
		"",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Parse panicked on input %q: %v", input, r)
				}
			}()
			prog, diags := parser.Parse(input, "fuzz.cy")
			if prog == nil && len(diags) == 0 {
				t.Fatalf("Parse returned neither a program nor diagnostics for %q", input)
			}
		}()
	})
}

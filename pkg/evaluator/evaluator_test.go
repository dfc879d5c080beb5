package evaluator_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
	"github.com/MrXploisLite/CodingYok/pkg/parser"
	"github.com/MrXploisLite/CodingYok/pkg/stdlib"
)

// --- helpers ---

// defaultOpts returns ExecOptions with the default builtins registered.
func defaultOpts() evaluator.ExecOptions {
	return evaluator.ExecOptions{Builtins: stdlib.Builtins()}
}

// run parses and executes source, returning what it printed.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	out, _, err := runWith(t, src, defaultOpts())
	return out, err
}

// runWith parses and executes source with custom ExecOptions.
func runWith(t *testing.T, src string, opts evaluator.ExecOptions) (string, *evaluator.ExecResult, error) {
	t.Helper()
	prog, diags := parser.Parse(src, "test.cy")
	if len(diags) > 0 {
		t.Fatalf("parse errors: %s", diagnostics.FormatDiagnostics(diags, true))
	}
	var buf bytes.Buffer
	opts.Stdout = &buf
	if opts.Stdin == nil {
		opts.Stdin = strings.NewReader("")
	}
	res, err := evaluator.Execute(context.Background(), prog, opts)
	return buf.String(), res, err
}

// mustRun is like run but also fails on runtime errors.
func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

// expectOutput runs src and compares its printed lines with want.
func expectOutput(t *testing.T, src string, want ...string) {
	t.Helper()
	got := strings.Split(strings.TrimSuffix(mustRun(t, src), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// expectRuntimeError asserts the error is a RuntimeError with the expected code.
func expectRuntimeError(t *testing.T, err error, expectedCode string) *evaluator.RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected runtime error with code %s, got nil", expectedCode)
	}
	var rtErr *evaluator.RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Code != expectedCode {
		t.Errorf("error code = %q, want %q (message: %s)", rtErr.Code, expectedCode, rtErr.Message)
	}
	return rtErr
}

func writeModule(t *testing.T, dir, rel, src string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

// --- 1. End-to-end programs ---

func TestEndToEnd_Reassign(t *testing.T) {
	expectOutput(t, "x = 1\nx = x + 1\ntulis(x)\n", "2")
}

func TestEndToEnd_DefaultParameter(t *testing.T) {
	src := `fungsi f(n=10):
    tulis(n)
f()
f(5)
`
	expectOutput(t, src, "10", "5")
}

func TestEndToEnd_InheritedMethod(t *testing.T) {
	src := `kelas A:
    fungsi m(diri):
        kembalikan 1
kelas B(A):
    fungsi n(diri):
        kembalikan 2
tulis(B().m())
`
	expectOutput(t, src, "1")
}

// --- 2. Operators ---

func TestExpressions(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2 ** 3", "8"},
		{"2 ** 3 == 8", "benar"},
		{"17 % 3", "2"},
		{"-7 // 2", "-4"},
		{"-7 % 3", "2"},
		{"7 % -3", "-2"},
		{"10 / 4", "2.5"},
		{"10 / 2", "5.0"},
		{"2 ** -1", "0.5"},
		{"1 + 2.5", "3.5"},
		{"'ab' * 3", "ababab"},
		{"[1] + [2, 3]", "[1, 2, 3]"},
		{"(1,) + (2,)", "(1, 2)"},
		{"1 == 1.0", "benar"},
		{"benar == 1", "salah"},
		{"[1, 2] < [1, 3]", "benar"},
		{"'abc' < 'abd'", "benar"},
		{"'b' dalam 'abc'", "benar"},
		{"3 bukan dalam [1, 2]", "benar"},
		{"2 dalam {1: 'a', 2: 'b'}", "benar"},
		{"1 dan 0", "benar"},
		{"kosong atau salah", "salah"},
		{"bukan kosong", "benar"},
		{"kosong adalah kosong", "benar"},
		{"7 jika salah kalau_tidak 8", "8"},
		{"f'{1 + 1} dan {2 * 3}'", "2 dan 6"},
		{"f'{3.14159:.2f}'", "3.14"},
		{"f'{42:>5}|'", "   42|"},
		{"f'{1234567:,}'", "1,234,567"},
		{"'%d-%s' % (5, 'x')", "5-x"},
		{"'%.1f' % 2.26", "2.3"},
		{"[1, 'a', kosong, benar]", "[1, 'a', kosong, benar]"},
		{"{'k': [1, 2]}", "{'k': [1, 2]}"},
		{"(1,)", "(1,)"},
		{"{3, 1, 3}", "{3, 1}"},
		{"10.0 ** 16", "1e+16"},
		{"9223372036854775806 + 1", "9223372036854775807"},
		{"-9223372036854775807 - 1", "-9223372036854775808"},
		{"2 ** 62", "4611686018427387904"},
		{"(-2) ** 63", "-9223372036854775808"},
		{"[0] * -3", "[]"},
		{"0.1 + 0.2", "0.30000000000000004"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expectOutput(t, "tulis("+tt.expr+")\n", tt.want)
		})
	}
}

func TestZeroDivision(t *testing.T) {
	for _, expr := range []string{"5 // 0", "5 / 0", "5 % 0", "5.0 / 0", "5 // 0.0"} {
		t.Run(expr, func(t *testing.T) {
			_, err := run(t, "x = "+expr+"\n")
			expectRuntimeError(t, err, diagnostics.EZeroDiv)
		})
	}
}

func TestIntegerOverflow(t *testing.T) {
	tests := []string{
		"2 ** 64",
		"9223372036854775807 + 1",
		"-9223372036854775807 - 2",
		"4611686018427387904 * 2",
		"-(-9223372036854775807 - 1)",
		"(-9223372036854775807 - 1) // -1",
		"[1, 2] * 4611686018427387904",
		"'ab' * 9223372036854775807",
		"rentang(9223372036854775807)",
		"abs(-9223372036854775807 - 1)",
	}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := run(t, "x = "+expr+"\n")
			expectRuntimeError(t, err, diagnostics.EOverflow)
		})
	}

	src := `coba:
    x = [1, 2] * 4611686018427387904
kecuali OverflowError sebagai e:
    tulis("tertangkap")
`
	expectOutput(t, src, "tertangkap")
}

func TestUnsupportedOperands(t *testing.T) {
	for _, expr := range []string{"1 + 'a'", "[1] - [1]", "1 < 'a'", "{} < {}", "-'a'"} {
		t.Run(expr, func(t *testing.T) {
			_, err := run(t, "x = "+expr+"\n")
			expectRuntimeError(t, err, diagnostics.EType)
		})
	}
}

func TestTruthiness(t *testing.T) {
	src := `untuk v dalam [0, 0.0, "", [], {}, tupel(), himpunan(), kosong, salah]:
    jika v:
        tulis("ya")
    kalau_tidak:
        tulis("tidak")
`
	expectOutput(t, src, "ya", "ya", "ya", "ya", "ya", "ya", "ya", "tidak", "tidak")
}

func TestCompoundAssignment(t *testing.T) {
	src := `x = 10
x += 5
x -= 3
x *= 2
x /= 4
tulis(x)
xs = [1, 2]
xs[0] += 10
tulis(xs)
`
	expectOutput(t, src, "6.0", "[11, 2]")
}

// --- 3. Environment ---

func TestEnv_AssignUndefined(t *testing.T) {
	global := evaluator.NewEnv(nil)
	global.Define("x", evaluator.Int(1))
	local := global.Child()

	if err := local.Assign("x", evaluator.Int(2)); err != nil {
		t.Fatalf("assign to ancestor binding: %v", err)
	}
	if v, _ := global.Get("x"); v != evaluator.Int(2) {
		t.Errorf("ancestor binding = %v, want 2", v)
	}
	if local.HasLocal("x") {
		t.Error("Assign created a local binding")
	}

	err := local.Assign("y", evaluator.Int(3))
	expectRuntimeError(t, err, diagnostics.EName)
	if global.Has("y") || local.Has("y") {
		t.Error("failed Assign created a binding")
	}
}

func TestEnv_AncestorLookup(t *testing.T) {
	root := evaluator.NewEnv(nil)
	root.Define("a", evaluator.Str("akar"))
	leaf := root.Child().Child().Child()

	v, err := leaf.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if v != evaluator.Str("akar") {
		t.Errorf("got %v", v)
	}
	if got, _ := leaf.GetAt(3, "a"); got != evaluator.Str("akar") {
		t.Errorf("GetAt(3) = %v", got)
	}
	if leaf.Ancestor(3) != root {
		t.Error("Ancestor(3) is not the root")
	}
}

func TestEnv_Suggestions(t *testing.T) {
	env := evaluator.NewEnv(nil)
	env.Define("nilai", evaluator.Int(1))
	env.Define("nama", evaluator.Int(2))
	_, err := env.Child().Get("nilia")
	rt := expectRuntimeError(t, err, diagnostics.EName)
	if !strings.Contains(rt.Hint, "nilai") {
		t.Errorf("hint = %q, want a suggestion of 'nilai'", rt.Hint)
	}
}

func TestUndefinedName(t *testing.T) {
	_, err := run(t, "tulis(tidak_ada)\n")
	rt := expectRuntimeError(t, err, diagnostics.EName)
	if rt.Span == nil || rt.Span.StartLine != 1 {
		t.Errorf("expected a span on line 1, got %+v", rt.Span)
	}
}

// --- 4. Functions and closures ---

func TestClosureCounter(t *testing.T) {
	src := `fungsi buat_penghitung():
    n = 0
    fungsi tambah():
        nonlokal n
        n += 1
        kembalikan n
    kembalikan tambah
c = buat_penghitung()
c()
c()
tulis(c())
`
	expectOutput(t, src, "3")
}

func TestClosureCapturesByReference(t *testing.T) {
	src := `x = 1
fungsi baca():
    kembalikan x
x = 2
tulis(baca())
`
	expectOutput(t, src, "2")
}

func TestGlobalDeclaration(t *testing.T) {
	src := `total = 0
fungsi tambah(x):
    global total
    total += x
tambah(5)
tambah(3)
tulis(total)
`
	expectOutput(t, src, "8")
}

func TestLocalAssignmentShadows(t *testing.T) {
	src := `x = 1
fungsi f():
    x = 2
    kembalikan x
tulis(f(), x)
`
	expectOutput(t, src, "2 1")
}

func TestNonlocalUnknown(t *testing.T) {
	src := `fungsi f():
    nonlokal tidak_ada
f()
`
	_, err := run(t, src)
	expectRuntimeError(t, err, diagnostics.EName)
}

func TestNonlocalIgnoresGlobals(t *testing.T) {
	src := `x = 1
fungsi f():
    nonlokal x
    x = 2
f()
`
	_, err := run(t, src)
	expectRuntimeError(t, err, diagnostics.EName)
}

func TestDefaultsEvaluatedAtCallTime(t *testing.T) {
	src := `fungsi f(a, b=a * 2):
    kembalikan a + b
tulis(f(3), f(3, 1))
fungsi g(xs=[]):
    xs.append(1)
    kembalikan panjang(xs)
tulis(g(), g())
`
	expectOutput(t, src, "9 4", "1 1")
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"too many", "fungsi f(a):\n    lewati\nf(1, 2)\n"},
		{"missing", "fungsi f(a, b):\n    lewati\nf(1)\n"},
		{"not callable", "x = 1\nx()\n"},
		{"class without init", "kelas K:\n    fungsi m(diri):\n        lewati\nK(1)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src)
			expectRuntimeError(t, err, diagnostics.EType)
		})
	}
}

func TestLambdaAndHigherOrder(t *testing.T) {
	src := `kuadrat = lambda x: x * x
tulis(peta(kuadrat, [1, 2, 3]))
tulis(saring(lambda x: x % 2 == 0, rentang(6)))
tulis(urutkan(["bb", "a", "ccc"], lambda s: -panjang(s)))
`
	expectOutput(t, src, "[1, 4, 9]", "[0, 2, 4]", "['ccc', 'bb', 'a']")
}

func TestRecursion(t *testing.T) {
	src := `fungsi fib(n):
    jika n < 2:
        kembalikan n
    kembalikan fib(n - 1) + fib(n - 2)
tulis(fib(15))
`
	expectOutput(t, src, "610")
}

func TestRecursionLimit(t *testing.T) {
	opts := defaultOpts()
	opts.Limits.MaxDepth = 50
	_, _, err := runWith(t, "fungsi f(n):\n    kembalikan f(n + 1)\nf(0)\n", opts)
	expectRuntimeError(t, err, diagnostics.ERecursion)
}

func TestRecursionErrorCatchable(t *testing.T) {
	opts := defaultOpts()
	opts.Limits.MaxDepth = 20
	src := `fungsi f():
    kembalikan f()
coba:
    f()
kecuali RecursionError:
    tulis("tertangkap")
`
	out, _, err := runWith(t, src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if out != "tertangkap\n" {
		t.Errorf("got %q", out)
	}
}

// --- 5. Control flow ---

func TestLoops(t *testing.T) {
	src := `hasil = []
untuk i dalam rentang(10):
    jika i == 2:
        lanjut
    jika i == 5:
        berhenti
    hasil.append(i)
tulis(hasil)
n = 0
selama benar:
    n += 1
    jika n >= 3:
        berhenti
tulis(n)
untuk k, v dalam {"a": 1, "b": 2}.items():
    tulis(k, v)
`
	expectOutput(t, src, "[0, 1, 3, 4]", "3", "a 1", "b 2")
}

func TestReturnFromLoop(t *testing.T) {
	src := `fungsi cari(xs, target):
    untuk i, x dalam enumerasi(xs):
        jika x == target:
            kembalikan i
    kembalikan -1
tulis(cari([5, 6, 7], 7), cari([], 1))
`
	expectOutput(t, src, "2 -1")
}

func TestListMutationDuringIteration(t *testing.T) {
	src := `xs = [1, 2]
untuk x dalam xs:
    jika x < 4:
        xs.append(x + 2)
tulis(xs)
`
	expectOutput(t, src, "[1, 2, 3, 4, 5]")
}

func TestUnpacking(t *testing.T) {
	expectOutput(t, "a, b = 1, 2\na, b = b, a\ntulis(a, b)\n", "2 1")

	_, err := run(t, "a, b = [1]\n")
	expectRuntimeError(t, err, diagnostics.EValue)
}

func TestDelete(t *testing.T) {
	src := `d = {"a": 1, "b": 2}
hapus d["a"]
xs = [1, 2, 3]
hapus xs[0]
tulis(d, xs)
x = 1
hapus x
`
	expectOutput(t, src, "{'b': 2} [2, 3]")

	_, err := run(t, "x = 1\nhapus x\ntulis(x)\n")
	expectRuntimeError(t, err, diagnostics.EName)
}

func TestAssert(t *testing.T) {
	_, err := run(t, "tegas 1 == 2, \"harus sama\"\n")
	rt := expectRuntimeError(t, err, diagnostics.EAssert)
	if rt.Message != "harus sama" {
		t.Errorf("message = %q", rt.Message)
	}
	expectOutput(t, "tegas benar\ntulis(\"ok\")\n", "ok")
}

// --- 6. Collections ---

func TestIndexingAndSlicing(t *testing.T) {
	src := `xs = [10, 20, 30, 40, 50]
tulis(xs[-1], xs[1:3], xs[::2], xs[::-1])
tulis("halo"[1:], "halo"[-1])
xs[1:3] = [0]
tulis(xs)
t = (1, 2, 3)
tulis(t[1:])
`
	expectOutput(t, src, "50 [20, 30] [10, 30, 50] [50, 40, 30, 20, 10]", "alo o", "[10, 0, 40, 50]", "(2, 3)")
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		src  string
		code string
	}{
		{"x = [1][5]\n", diagnostics.EIndex},
		{"x = 'ab'[-3]\n", diagnostics.EIndex},
		{"x = {'a': 1}['b']\n", diagnostics.EKey},
		{"x = {[1]: 2}\n", diagnostics.EType},
		{"x = 5[0]\n", diagnostics.EType},
		{"x = [1, 2][::0]\n", diagnostics.EValue},
		{"x = [1]['a']\n", diagnostics.EType},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := run(t, tt.src)
			expectRuntimeError(t, err, tt.code)
		})
	}
}

func TestDictOrderAndMethods(t *testing.T) {
	src := `d = {"b": 1}
d["a"] = 2
d["b"] = 3
tulis(d.keys(), d.values())
tulis(d.get("z"), d.get("z", 0), d.pop("a"), d)
d.update({"c": 4})
tulis(panjang(d), "c" dalam d)
tulis({1: "x", 1.0: "y"})
`
	expectOutput(t, src, "['b', 'a'] [3, 2]", "kosong 0 2 {'b': 3}", "2 benar", "{1: 'y'}")
}

func TestSetOperations(t *testing.T) {
	src := `s = himpunan([1, 2, 2, 3])
s.add(4)
s.discard(1)
tulis(s, panjang(s), 2 dalam s)
tulis(himpunan())
`
	expectOutput(t, src, "{2, 3, 4} 3 benar", "himpunan()")
}

func TestStringMethods(t *testing.T) {
	src := `s = "  Halo Dunia  "
tulis(s.strip().upper(), s.strip().lower())
tulis("a,b,c".split(","), "-".join(["x", "y"]))
tulis("halo".replace("l", "L"), "halo".startswith("ha"), "halo".find("z"))
tulis("{} + {} = {}".format(1, 2, 3), "{:>4}".format("x"))
tulis("123".isdigit(), "budi".title())
`
	expectOutput(t, src,
		"HALO DUNIA halo dunia",
		"['a', 'b', 'c'] x-y",
		"haLo benar -1",
		"1 + 2 = 3    x",
		"benar Budi",
	)
}

func TestListMethods(t *testing.T) {
	src := `xs = [3, 1, 2]
xs.sort()
tulis(xs)
xs.reverse()
xs.insert(0, 9)
tulis(xs, xs.pop(), xs.index(3), xs.count(9))
xs.tambah(7)
xs.extend([8])
xs.remove(9)
tulis(xs)
`
	// tulis renders each argument as soon as it is evaluated.
	expectOutput(t, src, "[1, 2, 3]", "[9, 3, 2, 1] 1 1 1", "[3, 2, 7, 8]")
}

func TestSelfReferentialList(t *testing.T) {
	src := `a = [1]
a.append(a)
tulis(a)
tulis(a == a, a < a)
`
	expectOutput(t, src, "[1, [...]]", "benar salah")
}

func TestAttributeError(t *testing.T) {
	_, err := run(t, "x = [1].tidak_ada\n")
	rt := expectRuntimeError(t, err, diagnostics.EAttr)
	if !strings.Contains(rt.Message, "Objek 'daftar' tidak memiliki atribut 'tidak_ada'") {
		t.Errorf("message = %q", rt.Message)
	}
}

// --- 7. Comprehensions ---

func TestComprehensions(t *testing.T) {
	src := `tulis([x * 2 untuk x dalam rentang(5) jika x % 2 == 0])
tulis({x: x * x untuk x dalam [1, 2]})
tulis({x % 3 untuk x dalam rentang(6)})
tulis(jumlah(x untuk x dalam [1, 2, 3]))
`
	expectOutput(t, src, "[0, 4, 8]", "{1: 1, 2: 4}", "{0, 1, 2}", "6")
}

func TestComprehensionScope(t *testing.T) {
	src := `xs = [i untuk i dalam rentang(3)]
coba:
    tulis(i)
kecuali NameError:
    tulis("tidak terlihat")
i = 99
ys = [i untuk i dalam rentang(2)]
tulis(i)
`
	expectOutput(t, src, "tidak terlihat", "99")
}

// --- 8. Classes ---

func TestClasses(t *testing.T) {
	src := `kelas Hewan:
    fungsi __init__(diri, nama):
        diri.nama = nama
    fungsi suara(diri):
        kembalikan "..."
    fungsi perkenalan(diri):
        kembalikan diri.nama + " berkata " + diri.suara()

kelas Kucing(Hewan):
    fungsi __init__(diri, nama):
        Hewan.__init__(diri, nama)
        diri.kaki = 4
    fungsi suara(diri):
        kembalikan "meong"
    fungsi __str__(diri):
        kembalikan "Kucing(" + diri.nama + ")"

k = Kucing("Tom")
tulis(k.perkenalan(), k.kaki)
tulis(k)
tulis(Hewan("x").perkenalan())
tulis(isinstance(k, Hewan), isinstance(Hewan("y"), Kucing))
m = k.suara
tulis(m())
tulis(tipe(k), Kucing)
`
	expectOutput(t, src,
		"Tom berkata meong 4",
		"Kucing(Tom)",
		"x berkata ...",
		"benar salah",
		"meong",
		"Kucing <kelas Kucing>",
	)
}

func TestClassNotASuperclass(t *testing.T) {
	_, err := run(t, "x = 1\nkelas K(x):\n    fungsi m(diri):\n        lewati\n")
	expectRuntimeError(t, err, diagnostics.EType)
}

// --- 9. Exceptions ---

func TestTryExcept(t *testing.T) {
	src := `coba:
    x = 1 / 0
kecuali ZeroDivisionError sebagai e:
    tulis("nol:", e)
akhirnya:
    tulis("selesai")

coba:
    [1][3]
kecuali (KeyError, IndexError) sebagai e:
    tulis(tipe(e))

coba:
    lempar ValueError("buruk")
kecuali Exception sebagai e:
    tulis(e.pesan)
`
	expectOutput(t, src,
		"nol: Pembagian dengan nol tidak diperbolehkan",
		"selesai",
		"IndexError",
		"buruk",
	)
}

func TestCustomException(t *testing.T) {
	src := `kelas SaldoKurang(Exception):
    fungsi __init__(diri, kurang):
        Exception.__init__(diri, "kurang " + str(kurang))
        diri.kurang = kurang

fungsi tarik(saldo, n):
    jika n > saldo:
        lempar SaldoKurang(n - saldo)
    kembalikan saldo - n

coba:
    tarik(10, 15)
kecuali SaldoKurang sebagai e:
    tulis(e, e.kurang)
`
	expectOutput(t, src, "kurang 5 5")
}

func TestUncaughtRaise(t *testing.T) {
	_, err := run(t, "lempar ValueError(\"buruk\")\n")
	rt := expectRuntimeError(t, err, diagnostics.EValue)
	if rt.Message != "ValueError: buruk" {
		t.Errorf("message = %q", rt.Message)
	}

	_, err = run(t, "kelas E(Exception):\n    fungsi kode(diri):\n        kembalikan 1\nlempar E\n")
	expectRuntimeError(t, err, diagnostics.ERaised)

	_, err = run(t, "lempar \"pesan\"\n")
	expectRuntimeError(t, err, diagnostics.ERaised)

	_, err = run(t, "lempar 5\n")
	expectRuntimeError(t, err, diagnostics.EType)
}

func TestReraise(t *testing.T) {
	src := `coba:
    coba:
        lempar KeyError("k")
    kecuali KeyError:
        tulis("dalam")
        lempar
kecuali KeyError sebagai e:
    tulis("luar", e)
`
	expectOutput(t, src, "dalam", "luar k")
}

func TestFinallyRunsOnControlFlow(t *testing.T) {
	src := `fungsi f():
    coba:
        kembalikan 1
    akhirnya:
        tulis("akhirnya")
tulis(f())
untuk i dalam rentang(3):
    coba:
        berhenti
    akhirnya:
        tulis("keluar", i)
`
	expectOutput(t, src, "akhirnya", "1", "keluar 0")
}

func TestUnmatchedExceptionPropagates(t *testing.T) {
	src := `coba:
    x = {}["a"]
kecuali ValueError:
    tulis("salah tangkap")
akhirnya:
    tulis("akhirnya")
`
	out, err := run(t, src)
	expectRuntimeError(t, err, diagnostics.EKey)
	if out != "akhirnya\n" {
		t.Errorf("output = %q", out)
	}
}

func TestOutputKeptOnError(t *testing.T) {
	out, err := run(t, "tulis(\"sebelum\")\nx = 1 / 0\ntulis(\"sesudah\")\n")
	expectRuntimeError(t, err, diagnostics.EZeroDiv)
	if out != "sebelum\n" {
		t.Errorf("output = %q", out)
	}
}

// --- 10. with / match ---

func TestWith(t *testing.T) {
	src := `kelas Sumber:
    fungsi __enter__(diri):
        tulis("masuk")
        kembalikan "sumber"
    fungsi __exit__(diri, tipe, nilai, jejak):
        tulis("keluar", tipe)
        kembalikan benar

dengan Sumber() sebagai s:
    tulis(s)

dengan Sumber():
    lempar ValueError("ditelan")
tulis("lanjut")
`
	expectOutput(t, src, "masuk", "sumber", "keluar kosong", "masuk", "keluar <kelas ValueError>", "lanjut")
}

func TestWithShortExit(t *testing.T) {
	src := `kelas K:
    fungsi __exit__(diri):
        tulis("tutup")
coba:
    dengan K():
        x = 1 / 0
kecuali ZeroDivisionError:
    tulis("tertangkap")
`
	expectOutput(t, src, "tutup", "tertangkap")
}

func TestMatch(t *testing.T) {
	src := `fungsi jenis(x):
    cocokkan x:
        kasus 1 atau 2:
            kembalikan "kecil"
        kasus [a, b]:
            kembalikan "pasangan " + str(a + b)
        kasus n jika n > 10:
            kembalikan "besar"
        kasus _:
            kembalikan "lain"
untuk v dalam [1, [3, 4], 50, 7]:
    tulis(jenis(v))
cocokkan 5:
    kasus 6:
        tulis("tidak")
tulis("tanpa kasus cocok")
`
	expectOutput(t, src, "kecil", "pasangan 7", "besar", "lain", "tanpa kasus cocok")
}

// --- 11. Generators ---

func TestGeneratorResumesLoopState(t *testing.T) {
	src := `fungsi hitung(n):
    i = 0
    selama i < n:
        hasilkan i
        i += 1
    tulis("habis")
untuk x dalam hitung(3):
    tulis(x)
`
	expectOutput(t, src, "0", "1", "2", "habis")
}

func TestGeneratorLaziness(t *testing.T) {
	src := `fungsi gen():
    tulis("mulai")
    hasilkan 1
    tulis("lanjut")
    hasilkan 2
g = gen()
tulis("dibuat")
tulis(berikutnya(g))
tulis(berikutnya(g))
tulis(berikutnya(g, "selesai"))
tulis(daftar(gen()))
`
	expectOutput(t, src, "dibuat", "mulai", "1", "lanjut", "2", "selesai", "mulai", "lanjut", "[1, 2]")
}

func TestGeneratorInfiniteWithBreak(t *testing.T) {
	src := `fungsi alami():
    n = 1
    selama benar:
        hasilkan n
        n += 1
hasil = []
untuk x dalam alami():
    jika x > 4:
        berhenti
    hasil.append(x)
tulis(hasil)
g = alami()
berikutnya(g)
tulis(berikutnya(g))
`
	expectOutput(t, src, "[1, 2, 3, 4]", "2")
}

func TestGeneratorCloseRunsFinally(t *testing.T) {
	gen := `fungsi gen():
    coba:
        hasilkan 1
        hasilkan 2
    akhirnya:
        tulis("tutup")
`
	t.Run("loop header", func(t *testing.T) {
		expectOutput(t, gen+`untuk x dalam gen():
    berhenti
tulis("setelah")
`, "tutup", "setelah")
	})
	t.Run("named", func(t *testing.T) {
		// A named generator survives the loop and is closed when the
		// program ends.
		expectOutput(t, gen+`g = gen()
untuk x dalam g:
    berhenti
tulis(berikutnya(g))
tulis("setelah")
`, "2", "setelah", "tutup")
	})
}

func TestGeneratorErrors(t *testing.T) {
	src := `fungsi g():
    hasilkan 1
    x = 1 / 0
coba:
    untuk v dalam g():
        tulis(v)
kecuali ZeroDivisionError:
    tulis("nol")
`
	expectOutput(t, src, "1", "nol")

	_, err := run(t, "fungsi g(a):\n    hasilkan a\ng()\n")
	expectRuntimeError(t, err, diagnostics.EType)

	_, err = run(t, "fungsi g():\n    hasilkan 1\nx = berikutnya(g())\nx = berikutnya(g())\ng2 = g()\nberikutnya(g2)\nberikutnya(g2)\n")
	expectRuntimeError(t, err, diagnostics.EValue)
}

func TestGeneratorClosures(t *testing.T) {
	src := `fungsi pengali(k):
    fungsi gen(xs):
        untuk x dalam xs:
            hasilkan x * k
    kembalikan gen
tulis(daftar(pengali(3)([1, 2])))
`
	expectOutput(t, src, "[3, 6]")
}

// --- 12. Modules ---

func TestModuleCachedAcrossImports(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "m.cy", "tulis(\"dimuat\")\nNILAI = 42\n")
	src := `impor m
a = m
tulis(m.NILAI)
impor m
tulis(m.NILAI)
tulis(a adalah m)
dari m impor NILAI sebagai n
tulis(n)
`
	opts := defaultOpts()
	opts.SearchPaths = []string{dir}
	out, res, err := runWith(t, src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("dimuat\n42\n42\nbenar\n42\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if _, err := res.Globals.Get("m"); err != nil {
		t.Errorf("module binding missing: %v", err)
	}
}

func TestModuleFunctionsSeeModuleGlobals(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "paket/util.cy", `hitungan = 0
fungsi naik():
    global hitungan
    hitungan += 1
    kembalikan hitungan
`)
	src := `impor paket.util
dari paket.util impor naik
naik()
tulis(naik(), util.naik())
`
	opts := defaultOpts()
	opts.SearchPaths = []string{dir}
	out, _, err := runWith(t, src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if out != "2 3\n" {
		t.Errorf("got %q", out)
	}
}

func TestModuleNamespaceIsLive(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "hitung.cy", `total = 0
fungsi tambah():
    global total
    total += 1
`)
	opts := defaultOpts()
	opts.SearchPaths = []string{dir}
	out, _, err := runWith(t, "impor hitung\nhitung.tambah()\nhitung.tambah()\ntulis(hitung.total)\n", opts)
	if err != nil {
		t.Fatal(err)
	}
	if out != "2\n" {
		t.Errorf("got %q", out)
	}
}

func TestModuleErrors(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "rusak.cy", "x = 1 / 0\n")
	writeModule(t, dir, "a.cy", "impor b\n")
	writeModule(t, dir, "b.cy", "impor a\n")
	writeModule(t, dir, "sintaks.cy", "x = = 1\n")
	writeModule(t, dir, "ok.cy", "X = 1\n")

	tests := []struct {
		name string
		src  string
		code string
		msg  string
	}{
		{"not found", "impor tidak_ada\n", diagnostics.EModuleNotFound, "Modul 'tidak_ada' tidak ditemukan"},
		{"runtime", "impor rusak\n", diagnostics.EZeroDiv, "Error saat mengeksekusi modul 'rusak'"},
		{"cycle", "impor a\n", diagnostics.EImport, "a -> b -> a"},
		{"syntax", "impor sintaks\n", diagnostics.EParse, "Error saat memuat modul 'sintaks'"},
		{"missing name", "dari ok impor Y\n", diagnostics.EImport, "Tidak dapat mengimpor 'Y'"},
		{"frozen", "impor ok\nok.X = 2\n", diagnostics.EAttr, "tidak dapat diubah"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOpts()
			opts.SearchPaths = []string{dir}
			_, _, err := runWith(t, tt.src, opts)
			rt := expectRuntimeError(t, err, tt.code)
			if !strings.Contains(rt.Message, tt.msg) {
				t.Errorf("message %q does not contain %q", rt.Message, tt.msg)
			}
		})
	}
}

func TestModuleNotFoundHintListsFiles(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOpts()
	opts.SearchPaths = []string{dir}
	_, _, err := runWith(t, "impor paket.hilang\n", opts)
	rt := expectRuntimeError(t, err, diagnostics.EModuleNotFound)
	want := "Dicari di: " + filepath.Join(dir, "paket", "hilang.cy")
	if rt.Hint != want {
		t.Errorf("hint = %q, want %q", rt.Hint, want)
	}
}

func TestModuleErrorCatchable(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "rusak.cy", "lempar ValueError(\"modul\")\n")
	src := `coba:
    impor rusak
kecuali ValueError sebagai e:
    tulis("tertangkap")
coba:
    impor hilang
kecuali ImportError:
    tulis("hilang")
`
	opts := defaultOpts()
	opts.SearchPaths = []string{dir}
	out, _, err := runWith(t, src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if out != "tertangkap\nhilang\n" {
		t.Errorf("got %q", out)
	}
}

func TestLoaderCache(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "m.cy", "X = 1\n")
	in := evaluator.NewInterpreter(evaluator.ExecOptions{SearchPaths: []string{dir}, Stdout: &bytes.Buffer{}})
	defer in.Close()
	prog, diags := parser.Parse("impor m\n", "main.cy")
	if len(diags) > 0 {
		t.Fatal(diags)
	}
	if _, ok := in.Loader().Cached("m"); ok {
		t.Fatal("module cached before import")
	}
	if err := in.Exec(context.Background(), prog); err != nil {
		t.Fatal(err)
	}
	m, ok := in.Loader().Cached("m")
	if !ok {
		t.Fatal("module not cached after import")
	}
	if diff := cmp.Diff([]string{"X"}, m.Names()); diff != "" {
		t.Errorf("namespace mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{dir}, in.Loader().SearchPaths()); diff != "" {
		t.Errorf("search paths mismatch (-want +got):\n%s", diff)
	}
}

// --- 13. Limits and tracing ---

func TestStepBudget(t *testing.T) {
	opts := defaultOpts()
	opts.Limits.MaxSteps = 500
	src := `coba:
    selama benar:
        lewati
kecuali:
    tulis("tidak boleh tertangkap")
`
	out, _, err := runWith(t, src, opts)
	expectRuntimeError(t, err, diagnostics.EBudget)
	if out != "" {
		t.Errorf("budget error was caught: %q", out)
	}
}

func TestCancellation(t *testing.T) {
	prog, diags := parser.Parse("selama benar:\n    lewati\n", "loop.cy")
	if len(diags) > 0 {
		t.Fatal(diags)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := evaluator.Execute(ctx, prog, evaluator.ExecOptions{Stdout: &bytes.Buffer{}})
	expectRuntimeError(t, err, diagnostics.ECancelled)
}

func TestTrace(t *testing.T) {
	var events []evaluator.TraceEventType
	opts := defaultOpts()
	opts.Trace = func(ev evaluator.TraceEvent) {
		events = append(events, ev.Event)
	}
	src := `fungsi f():
    kembalikan 1
f()
coba:
    lempar ValueError("x")
kecuali ValueError:
    lewati
`
	if _, _, err := runWith(t, src, opts); err != nil {
		t.Fatal(err)
	}
	want := []evaluator.TraceEventType{
		evaluator.TraceRunStart,
		evaluator.TraceCallStart,
		evaluator.TraceCallEnd,
		evaluator.TraceRaise,
		evaluator.TraceRunEnd,
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpreterKeepsGlobalsAcrossExec(t *testing.T) {
	var buf bytes.Buffer
	in := evaluator.NewInterpreter(evaluator.ExecOptions{Builtins: stdlib.Builtins(), Stdout: &buf})
	defer in.Close()
	for _, line := range []string{"x = 40\n", "fungsi f(y):\n    kembalikan x + y\n", "tulis(f(2))\n"} {
		prog, diags := parser.Parse(line, "<repl>")
		if len(diags) > 0 {
			t.Fatal(diags)
		}
		if err := in.Exec(context.Background(), prog); err != nil {
			t.Fatal(err)
		}
	}
	if buf.String() != "42\n" {
		t.Errorf("got %q", buf.String())
	}
	expr, diags := parser.ParseExpression("x * 2", "<repl>")
	if len(diags) > 0 {
		t.Fatal(diags)
	}
	v, err := in.Eval(context.Background(), expr)
	if err != nil {
		t.Fatal(err)
	}
	if v != evaluator.Int(80) {
		t.Errorf("Eval = %v", v)
	}
}

func TestRuntimeErrorDiagnostic(t *testing.T) {
	_, err := run(t, "x = 1\ny = x + \"a\"\n")
	rt := expectRuntimeError(t, err, diagnostics.EType)
	d := rt.Diagnostic()
	if d.Code != diagnostics.EType || d.Span == nil || d.Span.StartLine != 2 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if !strings.Contains(rt.Error(), "Operator '+' tidak didukung") {
		t.Errorf("Error() = %q", rt.Error())
	}
}

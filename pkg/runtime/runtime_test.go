package runtime_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrXploisLite/CodingYok/pkg/config"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
	"github.com/MrXploisLite/CodingYok/pkg/runtime"
)

func newRuntime(out *bytes.Buffer, opts ...runtime.Option) *runtime.Runtime {
	base := []runtime.Option{
		runtime.WithStdout(out),
		runtime.WithStdin(strings.NewReader("")),
	}
	return runtime.New(append(base, opts...)...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	rt := newRuntime(&out)
	err := rt.Run(context.Background(), "x = [1, 2, 3]\ntulis(jumlah(x), panjang(x))\n", "main.cy")
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "6 3\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"lex", "x = 'tidak ditutup\n", diagnostics.ELex},
		{"parse", "jika x\n", diagnostics.EParse},
		{"validate", "berhenti\n", diagnostics.EValidate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := newRuntime(&out).Run(context.Background(), tt.src, "main.cy")
			var de *runtime.DiagnosticError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DiagnosticError, got %v", err)
			}
			if de.Diagnostics[0].Code != tt.code {
				t.Errorf("code = %s, want %s", de.Diagnostics[0].Code, tt.code)
			}
			if de.Source != tt.src {
				t.Error("DiagnosticError does not carry the source")
			}
		})
	}
}

func TestRunRuntimeError(t *testing.T) {
	var out bytes.Buffer
	err := newRuntime(&out).Run(context.Background(), "tulis('a')\ntulis(1 / 0)\n", "main.cy")
	var re *evaluator.RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *evaluator.RuntimeError, got %v", err)
	}
	if re.Code != diagnostics.EZeroDiv {
		t.Errorf("code = %s", re.Code)
	}
	if out.String() != "a\n" {
		t.Errorf("output before the error was lost: %q", out.String())
	}
}

func TestCheck(t *testing.T) {
	rt := runtime.New()
	if diags := rt.Check("x = 1\n", "ok.cy"); len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	diags := rt.Check("fungsi f(a, a):\n    lanjut\n", "bad.cy")
	if len(diags) != 2 {
		t.Errorf("expected 2 diagnostics, got %d", len(diags))
	}
}

func TestFormat(t *testing.T) {
	got, err := runtime.New().Format("x=1\njika x:\n  tulis( x )\n", "f.cy")
	if err != nil {
		t.Fatal(err)
	}
	if want := "x = 1\njika x:\n    tulis(x)\n"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
	if _, err := runtime.New().Format("jika\n", "f.cy"); err == nil {
		t.Error("expected an error for unparsable source")
	}
}

func TestConfigMinVersion(t *testing.T) {
	var out bytes.Buffer
	rt := newRuntime(&out, runtime.WithConfig(&config.Config{MinVersion: "99.0.0"}))
	err := rt.Run(context.Background(), "tulis(1)\n", "main.cy")
	var ce *config.Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
	if out.Len() != 0 {
		t.Error("program ran despite the version check")
	}
}

func TestConfigLimits(t *testing.T) {
	var out bytes.Buffer
	rt := newRuntime(&out, runtime.WithConfig(&config.Config{MaxSteps: 50}))
	err := rt.Run(context.Background(), "selama benar:\n    lewati\n", "main.cy")
	var re *evaluator.RuntimeError
	if !errors.As(err, &re) || re.Code != diagnostics.EBudget {
		t.Fatalf("expected E_BUDGET, got %v", err)
	}

	rt = newRuntime(&out, runtime.WithConfig(&config.Config{MaxRecursionDepth: 5000}), runtime.WithMaxDepth(10))
	err = rt.Run(context.Background(), "fungsi f(n):\n    kembalikan f(n + 1)\nf(0)\n", "main.cy")
	if !errors.As(err, &re) || re.Code != diagnostics.ERecursion {
		t.Fatalf("expected E_RECURSION, got %v", err)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Setenv(config.PathEnv, "")
	script := t.TempDir()
	extra := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	rt := runtime.New(
		runtime.WithSearchPaths(extra, script, cwd),
		runtime.WithConfig(&config.Config{StdlibDir: extra}),
	)
	got := rt.SearchPaths(filepath.Join(script, "main.cy"))
	want := []string{cwd, script, extra}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("search paths mismatch (-want +got):\n%s", diff)
	}
}

func TestModulesFromScriptDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pembantu.cy"), "fungsi ganda(x):\n    kembalikan x * 2\n")
	writeFile(t, filepath.Join(dir, "rusak.cy"), "lanjut\n")

	var out bytes.Buffer
	rt := newRuntime(&out)
	main := filepath.Join(dir, "main.cy")
	if err := rt.Run(context.Background(), "dari pembantu impor ganda\ntulis(ganda(21))\n", main); err != nil {
		t.Fatal(err)
	}
	if out.String() != "42\n" {
		t.Errorf("output = %q", out.String())
	}

	err := rt.Run(context.Background(), "impor rusak\n", main)
	var re *evaluator.RuntimeError
	if !errors.As(err, &re) || re.Code != diagnostics.EValidate {
		t.Fatalf("expected imported module to fail validation, got %v", err)
	}
	if !strings.Contains(re.Message, "modul 'rusak'") {
		t.Errorf("message does not name the module: %s", re.Message)
	}
}

func TestTrace(t *testing.T) {
	var out bytes.Buffer
	var events []evaluator.TraceEventType
	rt := newRuntime(&out, runtime.WithTrace(func(ev evaluator.TraceEvent) {
		events = append(events, ev.Event)
	}))
	if err := rt.Run(context.Background(), "fungsi f():\n    kembalikan 1\nf()\n", "main.cy"); err != nil {
		t.Fatal(err)
	}
	want := []evaluator.TraceEventType{
		evaluator.TraceRunStart, evaluator.TraceCallStart, evaluator.TraceCallEnd, evaluator.TraceRunEnd,
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestSession(t *testing.T) {
	var out bytes.Buffer
	s := newRuntime(&out).NewSession()
	defer s.Close()
	ctx := context.Background()

	steps := []struct {
		src  string
		want string
	}{
		{"x = 2", ""},
		{"x * 3", "6"},
		{"'teks'", "'teks'"},
		{"kosong", ""},
		{"fungsi f(n):\n    kembalikan n + x\n", ""},
		{"f(40)", "42"},
		{"tulis(x)", ""},
	}
	for _, st := range steps {
		got, err := s.Eval(ctx, st.src)
		if err != nil {
			t.Fatalf("Eval(%q): %v", st.src, err)
		}
		if got != st.want {
			t.Errorf("Eval(%q) = %q, want %q", st.src, got, st.want)
		}
	}
	if out.String() != "2\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if _, ok := s.Globals().Lookup("f"); !ok {
		t.Error("f not kept in the session")
	}

	if _, err := s.Eval(ctx, "tidak_ada + 1"); err == nil {
		t.Error("expected a NameError")
	}
	if got, err := s.Eval(ctx, "x"); err != nil || got != "2" {
		t.Errorf("session state lost after an error: %q, %v", got, err)
	}
}

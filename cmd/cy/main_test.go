package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func cy(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CY_LOG_LEVEL", "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := cy(t, "version")
	if code != exitOK || !strings.Contains(out, "CodingYok v2.0.0") {
		t.Errorf("version: code=%d out=%q", code, out)
	}
}

func TestRunFile(t *testing.T) {
	path := writeScript(t, "halo.cy", "nama = 'Dunia'\ntulis(f'Halo {nama}!')\n")
	for _, args := range [][]string{{"run", path}, {path}} {
		code, out, errOut := cy(t, args...)
		if code != exitOK {
			t.Fatalf("%v: exit %d, stderr %s", args, code, errOut)
		}
		if out != "Halo Dunia!\n" {
			t.Errorf("%v: stdout = %q", args, out)
		}
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    int
		errPart string
	}{
		{"parse", "jika benar\n    tulis(1)\n", exitDiag, "E_PARSE"},
		{"validate", "berhenti\n", exitDiag, "E_VALIDATE"},
		{"runtime", "tulis('a')\nx = 1 / 0\n", exitRuntime, "E_ZERO_DIV"},
		{"name", "tulis(nilai)\n", exitRuntime, "E_NAME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, "main.cy", tt.src)
			code, _, errOut := cy(t, "run", path)
			if code != tt.code {
				t.Errorf("exit = %d, want %d", code, tt.code)
			}
			if !strings.Contains(errOut, tt.errPart) {
				t.Errorf("stderr missing %s:\n%s", tt.errPart, errOut)
			}
		})
	}

	code, _, errOut := cy(t, "run", filepath.Join(t.TempDir(), "hilang.cy"))
	if code != exitUsage || !strings.Contains(errOut, "tidak ditemukan") {
		t.Errorf("missing file: exit %d, stderr %q", code, errOut)
	}
	if code, _, _ := cy(t, "run"); code != exitUsage {
		t.Errorf("run without a file: exit %d", code)
	}
}

func TestRunTrace(t *testing.T) {
	path := writeScript(t, "main.cy", "tulis(1)\n")
	code, _, errOut := cy(t, "run", "--trace", path)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(errOut, `"event":"run_start"`) || !strings.Contains(errOut, `"event":"run_end"`) {
		t.Errorf("trace output missing run events:\n%s", errOut)
	}
}

func TestRunBadLogLevel(t *testing.T) {
	path := writeScript(t, "main.cy", "tulis(1)\n")
	if code, _, _ := cy(t, "run", "--log-level", "berisik", path); code != exitUsage {
		t.Errorf("exit = %d, want %d", code, exitUsage)
	}
}

func TestCheck(t *testing.T) {
	good := writeScript(t, "baik.cy", "x = 1\n")
	bad := writeScript(t, "buruk.cy", "fungsi f():\n    lewati\nlanjut\n")

	code, out, _ := cy(t, "check", good)
	if code != exitOK || !strings.Contains(out, "Tidak ada kesalahan") {
		t.Errorf("check good: exit %d, stdout %q", code, out)
	}

	code, _, errOut := cy(t, "check", good, bad)
	if code != exitDiag {
		t.Errorf("check bad: exit %d", code)
	}
	if !strings.Contains(errOut, "buruk.cy:3") {
		t.Errorf("diagnostic does not point at buruk.cy:3:\n%s", errOut)
	}

	code, _, errOut = cy(t, "check", "--json", bad)
	if code != exitDiag || !strings.HasPrefix(errOut, `[{"code":"E_VALIDATE"`) {
		t.Errorf("check --json: exit %d, stderr %q", code, errOut)
	}
}

func TestFmt(t *testing.T) {
	path := writeScript(t, "rapi.cy", "x=1 # satu\njika x:\n  tulis( x )\n")
	code, out, errOut := cy(t, "fmt", path)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if want := "x = 1\njika x:\n    tulis(x)\n"; out != want {
		t.Errorf("fmt = %q, want %q", out, want)
	}
	if !strings.Contains(errOut, "komentar") {
		t.Error("expected a warning about dropped comments")
	}

	if code, _, _ := cy(t, "fmt", "-w", path); code != exitOK {
		t.Fatalf("fmt -w exit %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x = 1\njika x:\n    tulis(x)\n" {
		t.Errorf("file not rewritten: %q", data)
	}
}

func TestHelp(t *testing.T) {
	code, out, _ := cy(t, "help")
	if code != exitOK || !strings.Contains(out, "PENGGUNAAN") {
		t.Errorf("help: exit %d", code)
	}
	code, out, _ = cy(t, "help", "kel")
	if code != exitOK || !strings.Contains(out, "KELAS") {
		t.Errorf("help kel: exit %d, out %q", code, out)
	}
	if code, _, _ := cy(t, "help", "tidakada"); code != exitUsage {
		t.Errorf("unknown topic: exit %d", code)
	}
}

func TestUnknownCommand(t *testing.T) {
	if code, _, _ := cy(t, "--apa"); code != exitUsage {
		t.Errorf("exit = %d", code)
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src         string
		more, block bool
	}{
		{"x = 1", false, false},
		{"jika x:", true, true},
		{"fungsi f(a,", true, false},
		{"d = {'a':", true, false},
		{"d = {'a': 1}", false, false},
		{"tulis('tidak ditutup", false, false},
		{"jika x: tulis(x)", false, false},
	}
	for _, tt := range tests {
		more, block := needsMore(tt.src)
		if more != tt.more || block != tt.block {
			t.Errorf("needsMore(%q) = %v, %v; want %v, %v", tt.src, more, block, tt.more, tt.block)
		}
	}
}

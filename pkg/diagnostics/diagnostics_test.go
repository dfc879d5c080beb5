package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

func TestMakeDiag(t *testing.T) {
	span := &ast.Span{File: "test.cy", StartLine: 2, StartCol: 7, EndLine: 2, EndCol: 9}
	d := diagnostics.MakeDiag(diagnostics.EParse, "Token tidak terduga", span, "periksa sintaks")

	if d.Code != diagnostics.EParse {
		t.Errorf("got Code = %q, want %q", d.Code, diagnostics.EParse)
	}
	if d.Line() != 2 || d.Column() != 7 {
		t.Errorf("got position %d:%d, want 2:7", d.Line(), d.Column())
	}
}

func TestPositionWithoutSpan(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.EName, "Nama 'x' tidak ditemukan", nil, "")
	if d.Line() != 0 || d.Column() != 0 {
		t.Errorf("expected zero position, got %d:%d", d.Line(), d.Column())
	}
}

func TestFormatDiagnosticPretty(t *testing.T) {
	span := &ast.Span{File: "test.cy", StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 10}
	d := diagnostics.MakeDiag(diagnostics.EName, "Nama 'nilai' tidak ditemukan", span, "Mungkin maksud Anda: nilai1")

	out := diagnostics.FormatDiagnostic(d, true)
	if !strings.Contains(out, "error[E_NAME]") {
		t.Errorf("expected error code in output, got: %s", out)
	}
	if !strings.Contains(out, "test.cy:3:5") {
		t.Errorf("expected location in output, got: %s", out)
	}
	if !strings.Contains(out, "hint:") {
		t.Errorf("expected hint in output, got: %s", out)
	}
}

func TestFormatDiagnosticJSON(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.ELex, "Karakter tidak dikenal '$'", nil, "")
	out := diagnostics.FormatDiagnostic(d, false)
	if !strings.Contains(out, `"code":"E_LEX"`) {
		t.Errorf("expected JSON code in output, got: %s", out)
	}
}

func TestFormatWithSource(t *testing.T) {
	src := "x = 1\ny = x +\n"
	span := &ast.Span{File: "t.cy", StartLine: 2, StartCol: 8}
	d := diagnostics.MakeDiag(diagnostics.EParse, "Ekspresi tidak terduga", span, "")

	out := diagnostics.FormatWithSource(d, src)
	if !strings.Contains(out, "2 | y = x +") {
		t.Errorf("expected source line in output, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "  | "+strings.Repeat(" ", 7)+"^") {
		t.Errorf("expected caret under column 8, got:\n%s", out)
	}
}

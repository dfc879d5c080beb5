// Package diagnostics defines CodingYok diagnostic types for lexical, syntax,
// validation and runtime errors.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
)

// Diagnostic code constants.
const (
	ELex            = "E_LEX"
	EParse          = "E_PARSE"
	EValidate       = "E_VALIDATE"
	EName           = "E_NAME"
	EType           = "E_TYPE"
	EValue          = "E_VALUE"
	EZeroDiv        = "E_ZERO_DIV"
	EOverflow       = "E_OVERFLOW"
	EIndex          = "E_INDEX"
	EKey            = "E_KEY"
	EAttr           = "E_ATTR"
	EImport         = "E_IMPORT"
	EModuleNotFound = "E_MODULE_NOT_FOUND"
	ERecursion      = "E_RECURSION"
	EAssert         = "E_ASSERT"
	ERaised         = "E_RAISED"
	EBudget         = "E_BUDGET"
	ECancelled      = "E_CANCELLED"
	EIO             = "E_IO"
	EConfig         = "E_CONFIG"
)

// Diagnostic represents a lexical, parse, validation, or runtime diagnostic.
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Span    *ast.Span `json:"span,omitempty"`
	Hint    string    `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *ast.Span, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// Line returns the 1-based line of the diagnostic, or 0 when unknown.
func (d Diagnostic) Line() int {
	if d.Span == nil {
		return 0
	}
	return d.Span.StartLine
}

// Column returns the 1-based column of the diagnostic, or 0 when unknown.
func (d Diagnostic) Column() int {
	if d.Span == nil {
		return 0
	}
	return d.Span.StartCol
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	loc := "<unknown>"
	if d.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", d.Span.File, d.Span.StartLine, d.Span.StartCol)
	}
	out := fmt.Sprintf("error[%s]: %s\n  --> %s", d.Code, d.Message, loc)
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatWithSource formats d like FormatDiagnostic and, when the span points
// into source, appends the offending line with a caret under the column.
func FormatWithSource(d Diagnostic, source string) string {
	out := FormatDiagnostic(d, true)
	if d.Span == nil || d.Span.StartLine <= 0 {
		return out
	}
	lines := strings.Split(source, "\n")
	if d.Span.StartLine > len(lines) {
		return out
	}
	text := strings.TrimRight(lines[d.Span.StartLine-1], "\r")
	gutter := fmt.Sprintf("%d", d.Span.StartLine)
	pad := strings.Repeat(" ", len(gutter))
	col := d.Span.StartCol
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf("%s\n%s |\n%s | %s\n%s | %s", out, pad, gutter, text, pad, caret)
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}

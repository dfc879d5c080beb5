package evaluator

import (
	"errors"
	"fmt"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

// RuntimeError represents a runtime error during CodingYok execution.
// Exception carries the raised instance once the error has been turned
// into a CodingYok exception object.
type RuntimeError struct {
	Code      string
	Message   string
	Span      *ast.Span
	Hint      string
	Exception *Instance
	cause     error
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.cause
}

// Diagnostic converts the error into a diagnostic for display.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(e.Code, e.Message, e.Span, e.Hint)
}

// errGeneratorClosed unwinds a generator body after Close. It is never
// visible to programs.
var errGeneratorClosed = errors.New("generator ditutup")

func newError(code, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) *RuntimeError {
	return newError(diagnostics.EType, format, args...)
}

func valueErrorf(format string, args ...any) *RuntimeError {
	return newError(diagnostics.EValue, format, args...)
}

func indexErrorf(format string, args ...any) *RuntimeError {
	return newError(diagnostics.EIndex, format, args...)
}

func attrErrorf(format string, args ...any) *RuntimeError {
	return newError(diagnostics.EAttr, format, args...)
}

func keyError(key Value) *RuntimeError {
	return newError(diagnostics.EKey, "Kunci %s tidak ditemukan", Repr(key))
}

func zeroDivError() *RuntimeError {
	return newError(diagnostics.EZeroDiv, "Pembagian dengan nol tidak diperbolehkan")
}

func overflowError(op string) *RuntimeError {
	return newError(diagnostics.EOverflow, "Hasil operasi '%s' melampaui batas bilangan bulat 64-bit", op)
}

// TypeError, ValueError and friends let Go-implemented builtins report
// errors that CodingYok code can catch with the matching exception class.
func TypeError(format string, args ...any) error  { return typeErrorf(format, args...) }
func ValueError(format string, args ...any) error { return valueErrorf(format, args...) }
func IndexError(format string, args ...any) error { return indexErrorf(format, args...) }
func IOError(format string, args ...any) error    { return newError(diagnostics.EIO, format, args...) }
func KeyError(key Value) error                     { return keyError(key) }

// OverflowError reports a result too large to represent.
func OverflowError(format string, args ...any) error {
	return newError(diagnostics.EOverflow, format, args...)
}

// withSpan attaches span to err when it is a RuntimeError without one.
func withSpan(err error, span ast.Span) error {
	var rt *RuntimeError
	if errors.As(err, &rt) && rt.Span == nil {
		s := span
		rt.Span = &s
	}
	return err
}

// exceptionClassFor maps diagnostic codes to the built-in exception class
// that kecuali clauses match against.
var exceptionClassFor = map[string]string{
	diagnostics.EName:           "NameError",
	diagnostics.EType:           "TypeError",
	diagnostics.EValue:          "ValueError",
	diagnostics.EZeroDiv:        "ZeroDivisionError",
	diagnostics.EOverflow:       "OverflowError",
	diagnostics.EIndex:          "IndexError",
	diagnostics.EKey:            "KeyError",
	diagnostics.EAttr:           "AttributeError",
	diagnostics.EImport:         "ImportError",
	diagnostics.EModuleNotFound: "ModuleNotFoundError",
	diagnostics.ERecursion:      "RecursionError",
	diagnostics.EAssert:         "AssertionError",
	diagnostics.EIO:             "IOError",
	diagnostics.ERaised:         "Exception",
}

// codeForClass is the inverse of exceptionClassFor, used when a program
// raises an exception object directly.
var codeForClass = map[string]string{
	"NameError":           diagnostics.EName,
	"TypeError":           diagnostics.EType,
	"ValueError":          diagnostics.EValue,
	"ZeroDivisionError":   diagnostics.EZeroDiv,
	"OverflowError":       diagnostics.EOverflow,
	"IndexError":          diagnostics.EIndex,
	"KeyError":            diagnostics.EKey,
	"AttributeError":      diagnostics.EAttr,
	"ImportError":         diagnostics.EImport,
	"ModuleNotFoundError": diagnostics.EModuleNotFound,
	"RecursionError":      diagnostics.ERecursion,
	"AssertionError":      diagnostics.EAssert,
	"IOError":             diagnostics.EIO,
}

// catchable reports whether err may be handled by a kecuali clause.
// Budget exhaustion and cancellation always propagate.
func catchable(err error) (*RuntimeError, bool) {
	var rt *RuntimeError
	if !errors.As(err, &rt) {
		return nil, false
	}
	switch rt.Code {
	case diagnostics.EBudget, diagnostics.ECancelled:
		return nil, false
	}
	return rt, true
}

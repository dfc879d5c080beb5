package evaluator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
	"github.com/MrXploisLite/CodingYok/pkg/parser"
)

// SourceExt is the file extension of CodingYok source files.
const SourceExt = ".cy"

// Loader resolves module names against the search path and caches each
// module's namespace after its first successful execution.
type Loader struct {
	in          *Interpreter
	searchPaths []string
	cache       map[string]*Module
	loading     []string
	check       func(*ast.Program) []diagnostics.Diagnostic
}

func newLoader(in *Interpreter, searchPaths []string) *Loader {
	return &Loader{in: in, searchPaths: searchPaths, cache: make(map[string]*Module)}
}

// SearchPaths returns the directories searched, in order.
func (l *Loader) SearchPaths() []string {
	return append([]string(nil), l.searchPaths...)
}

// Cached returns the cached module called name, if loaded.
func (l *Loader) Cached(name string) (*Module, bool) {
	m, ok := l.cache[name]
	return m, ok
}

// Resolve finds the source file for module name. The first search
// directory containing it wins. When none does, the hint lists every file
// path that was tried.
func (l *Loader) Resolve(name string) (string, error) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, ".", "/")) + SourceExt
	tried := make([]string, 0, len(l.searchPaths))
	for _, dir := range l.searchPaths {
		path := filepath.Join(dir, rel)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		tried = append(tried, path)
	}
	err := newError(diagnostics.EModuleNotFound, "Modul '%s' tidak ditemukan", name)
	if len(tried) > 0 {
		err.Hint = "Dicari di: " + strings.Join(tried, ", ")
	}
	return "", err
}

// Load returns the namespace of module name, executing it on first use.
// Failed loads are not cached.
func (l *Loader) Load(ev *evaluator, name string) (*Module, error) {
	log := l.in.logger.With("module", name)
	if m, ok := l.cache[name]; ok {
		log.Debug("module cache hit")
		return m, nil
	}
	for _, loading := range l.loading {
		if loading == name {
			chain := append(append([]string(nil), l.loading...), name)
			return nil, newError(diagnostics.EImport, "Siklus impor terdeteksi: %s", strings.Join(chain, " -> "))
		}
	}

	path, err := l.Resolve(name)
	if err != nil {
		log.Debug("module not found", "search_paths", l.searchPaths)
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(diagnostics.EIO, "Tidak dapat membaca modul '%s': %v", name, err)
	}
	log.Debug("loading module", "path", path)

	prog, diags := parser.Parse(string(src), path)
	if len(diags) == 0 && l.check != nil {
		diags = l.check(prog)
	}
	if len(diags) > 0 {
		d := diags[0]
		return nil, &RuntimeError{
			Code:    d.Code,
			Message: "Error saat memuat modul '" + name + "': " + d.Message,
			Span:    d.Span,
			Hint:    d.Hint,
		}
	}

	l.loading = append(l.loading, name)
	defer func() { l.loading = l.loading[:len(l.loading)-1] }()

	env := l.in.globals.Child()
	mev := l.in.newEvaluator(ev.ctx, env, ev.depth)
	span := prog.Span
	l.in.emit(TraceModuleLoad, &span, map[string]string{"module": name, "path": path})
	if _, err := mev.execBlock(prog.Statements); err != nil {
		return nil, wrapModuleError(name, err)
	}

	m := NewModule(name, path, env)
	l.cache[name] = m
	log.Debug("module loaded", "names", len(env.bindings))
	return m, nil
}

// wrapModuleError annotates err with the module name, keeping its code,
// span and exception object so kecuali clauses still match.
func wrapModuleError(name string, err error) error {
	var rt *RuntimeError
	if !errors.As(err, &rt) {
		return err
	}
	if _, ok := catchable(err); !ok {
		return err
	}
	return &RuntimeError{
		Code:      rt.Code,
		Message:   "Error saat mengeksekusi modul '" + name + "': " + rt.Message,
		Span:      rt.Span,
		Hint:      rt.Hint,
		Exception: rt.Exception,
		cause:     rt,
	}
}

// Package runtime provides the top-level CodingYok orchestrator.
package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/config"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
	"github.com/MrXploisLite/CodingYok/pkg/formatter"
	"github.com/MrXploisLite/CodingYok/pkg/parser"
	"github.com/MrXploisLite/CodingYok/pkg/stdlib"
	"github.com/MrXploisLite/CodingYok/pkg/validator"
)

// Version is the interpreter version reported by "cy version" and checked
// against a project's min_version.
const Version = "2.0.0"

// Runtime wires together all CodingYok components for program execution.
type Runtime struct {
	stdlib      *stdlib.Registry
	stdout      io.Writer
	stdin       io.Reader
	scriptDir   string
	searchPaths []string
	cfg         *config.Config
	logger      *slog.Logger
	limits      evaluator.Limits
	trace       func(event evaluator.TraceEvent)
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStdlib replaces the built-in registry.
func WithStdlib(r *stdlib.Registry) Option {
	return func(rt *Runtime) {
		rt.stdlib = r
	}
}

// WithStdout sets where tulis writes.
func WithStdout(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.stdout = w
	}
}

// WithStdin sets where masukan reads.
func WithStdin(r io.Reader) Option {
	return func(rt *Runtime) {
		rt.stdin = r
	}
}

// WithScriptDir sets the entry-script directory used for module lookup
// when the filename passed to Run has no directory of its own.
func WithScriptDir(dir string) Option {
	return func(rt *Runtime) {
		rt.scriptDir = dir
	}
}

// WithSearchPaths adds module directories searched after the script
// directory and before configured paths.
func WithSearchPaths(paths ...string) Option {
	return func(rt *Runtime) {
		rt.searchPaths = append(rt.searchPaths, paths...)
	}
}

// WithConfig applies project settings. Its limits are used unless
// overridden by WithMaxDepth or WithMaxSteps.
func WithConfig(cfg *config.Config) Option {
	return func(rt *Runtime) {
		rt.cfg = cfg
		if cfg.MaxRecursionDepth > 0 {
			rt.limits.MaxDepth = cfg.MaxRecursionDepth
		}
		if cfg.MaxSteps > 0 {
			rt.limits.MaxSteps = cfg.MaxSteps
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = l
	}
}

// WithMaxDepth sets the call depth at which RecursionError is raised.
func WithMaxDepth(n int) Option {
	return func(rt *Runtime) {
		rt.limits.MaxDepth = n
	}
}

// WithMaxSteps bounds the number of statements executed. Zero is unlimited.
func WithMaxSteps(n int64) Option {
	return func(rt *Runtime) {
		rt.limits.MaxSteps = n
	}
}

// WithTimeout bounds wall-clock execution time.
func WithTimeout(d time.Duration) Option {
	return func(rt *Runtime) {
		rt.limits.Timeout = d
	}
}

// WithTrace sets the trace callback.
func WithTrace(fn func(event evaluator.TraceEvent)) Option {
	return func(rt *Runtime) {
		rt.trace = fn
	}
}

// New creates a new Runtime with the given options.
// By default the standard built-ins are registered and no config is loaded.
func New(opts ...Option) *Runtime {
	reg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(reg)

	rt := &Runtime{
		stdlib: reg,
		stdout: os.Stdout,
		stdin:  os.Stdin,
		cfg:    config.Default(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Run parses, validates, and executes a CodingYok program.
func (rt *Runtime) Run(ctx context.Context, source, filename string) error {
	program, err := rt.prepare(source, filename)
	if err != nil {
		return err
	}
	_, err = evaluator.Execute(ctx, program, rt.execOptions(filename))
	return err
}

// Check parses and validates a program without executing it.
func (rt *Runtime) Check(source, filename string) []diagnostics.Diagnostic {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return diags
	}
	return validator.Validate(program)
}

// Format parses and formats a program.
func (rt *Runtime) Format(source, filename string) (string, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags, Source: source}
	}
	return formatter.Format(program), nil
}

// SearchPaths returns the module directories for a program stored in
// filename, in search order and without duplicates: the working directory,
// the script directory, extra and configured paths, then the bundled
// stdlib modules.
func (rt *Runtime) SearchPaths(filename string) []string {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, cwd)
	}
	scriptDir := rt.scriptDir
	if filename != "" && strings.ContainsRune(filename, filepath.Separator) {
		scriptDir = filepath.Dir(filename)
	}
	if scriptDir != "" {
		candidates = append(candidates, scriptDir)
	}
	candidates = append(candidates, rt.searchPaths...)
	candidates = append(candidates, rt.cfg.ModulePaths()...)
	if dir := rt.cfg.StdlibPath(); dir != "" {
		candidates = append(candidates, dir)
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

func (rt *Runtime) prepare(source, filename string) (*ast.Program, error) {
	if err := rt.cfg.CheckVersion(Version); err != nil {
		return nil, err
	}
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return nil, &DiagnosticError{Diagnostics: diags, Source: source}
	}
	if vDiags := validator.Validate(program); len(vDiags) > 0 {
		return nil, &DiagnosticError{Diagnostics: vDiags, Source: source}
	}
	return program, nil
}

// execOptions constructs evaluator options from the runtime's configuration.
func (rt *Runtime) execOptions(filename string) evaluator.ExecOptions {
	paths := rt.SearchPaths(filename)
	rt.logger.Debug("module search paths", "paths", paths)
	return evaluator.ExecOptions{
		Builtins:    rt.stdlib.Values(),
		Stdout:      rt.stdout,
		Stdin:       rt.stdin,
		SearchPaths: paths,
		Limits:      rt.limits,
		Logger:      rt.logger,
		Trace:       rt.trace,
		Check:       validator.Validate,
	}
}

// Session is a persistent interpreter for the REPL: each Eval sees the
// bindings left by the previous one.
type Session struct {
	rt     *Runtime
	interp *evaluator.Interpreter
	line   int
}

// NewSession starts a session whose module search starts in the working
// directory.
func (rt *Runtime) NewSession() *Session {
	return &Session{rt: rt, interp: evaluator.NewInterpreter(rt.execOptions(""))}
}

// Eval runs one REPL entry. A lone expression is evaluated and its repr
// returned; statements return "". A kosong result is also "".
func (s *Session) Eval(ctx context.Context, source string) (string, error) {
	s.line++
	filename := s.Name()
	if expr, diags := parser.ParseExpression(source, filename); len(diags) == 0 {
		v, err := s.interp.Eval(ctx, expr)
		if err != nil {
			return "", err
		}
		if _, ok := v.(evaluator.None); ok {
			return "", nil
		}
		return evaluator.Repr(v), nil
	}
	program, err := s.rt.prepare(source, filename)
	if err != nil {
		return "", err
	}
	return "", s.interp.Exec(ctx, program)
}

// Name returns the filename given to the most recent entry.
func (s *Session) Name() string {
	return fmt.Sprintf("<repl:%d>", s.line)
}

// Globals exposes the session's global environment.
func (s *Session) Globals() *evaluator.Env {
	return s.interp.Globals()
}

// Close stops any generators left suspended by the session.
func (s *Session) Close() {
	s.interp.Close()
}

// DiagnosticError wraps lex, parse or validation diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
	Source      string
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}

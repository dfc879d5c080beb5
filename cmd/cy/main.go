// Command cy is the CodingYok CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	goruntime "runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrXploisLite/CodingYok/pkg/config"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
	"github.com/MrXploisLite/CodingYok/pkg/formatter"
	"github.com/MrXploisLite/CodingYok/pkg/help"
	"github.com/MrXploisLite/CodingYok/pkg/runtime"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitDiag    = 2
	exitRuntime = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return cmdRepl(nil, stdout, stderr)
	}

	cmd := args[0]
	switch cmd {
	case "run":
		return cmdRun(args[1:], stdout, stderr)
	case "check":
		return cmdCheck(args[1:], stdout, stderr)
	case "fmt":
		return cmdFmt(args[1:], stdout, stderr)
	case "repl":
		return cmdRepl(args[1:], stdout, stderr)
	case "version", "--version", "-v":
		printVersion(stdout)
		return exitOK
	case "help", "--help", "-h":
		return cmdHelp(args[1:], stdout, stderr)
	}
	// "cy file.cy" runs the file directly.
	if !strings.HasPrefix(cmd, "-") {
		return cmdRun(args, stdout, stderr)
	}
	fmt.Fprintf(stderr, "Perintah tidak dikenal: %s\n", cmd)
	fmt.Fprintln(stderr, "perintah: run, check, fmt, repl, version, help")
	return exitUsage
}

// common holds the flags shared by commands that execute code.
type common struct {
	logLevel string
	trace    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.logLevel, "log-level", os.Getenv("CY_LOG_LEVEL"), "tingkat log: debug, info, warn, error")
	fs.BoolVar(&c.trace, "trace", false, "tulis event eksekusi sebagai JSON ke stderr")
}

// runtimeOptions loads the project config from the working directory and
// turns the shared flags into runtime options.
func (c *common) runtimeOptions(stderr io.Writer) ([]runtime.Option, error) {
	logger, err := newLogger(c.logLevel, stderr)
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}

	opts := []runtime.Option{runtime.WithConfig(cfg), runtime.WithLogger(logger)}
	if c.trace {
		opts = append(opts, runtime.WithTrace(jsonTracer(stderr)))
	}
	return opts, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	if level == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("tingkat log tidak valid %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// jsonTracer writes one JSON object per trace event.
func jsonTracer(w io.Writer) func(evaluator.TraceEvent) {
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	return func(ev evaluator.TraceEvent) {
		mu.Lock()
		defer mu.Unlock()
		_ = enc.Encode(ev)
	}
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "penggunaan: cy run [--log-level L] [--trace] <file.cy>")
		return exitUsage
	}
	file := fs.Arg(0)
	if !strings.HasSuffix(file, ".cy") && file != "-" {
		fmt.Fprintln(stderr, "Peringatan: file tidak memiliki ekstensi .cy")
	}

	source, filename, code := readSource(file, stderr)
	if code != exitOK {
		return code
	}
	opts, err := c.runtimeOptions(stderr)
	if err != nil {
		return report(stderr, err, "", "")
	}
	rt := runtime.New(append(opts, runtime.WithStdout(stdout))...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rt.Run(ctx, source, filename); err != nil {
		return report(stderr, err, source, filename)
	}
	return exitOK
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	jsonOut := fs.Bool("json", false, "tulis diagnostik sebagai JSON")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "penggunaan: cy check [--json] <file.cy>...")
		return exitUsage
	}

	type result struct {
		source string
		diags  []diagnostics.Diagnostic
		err    error
	}
	results := make([]result, len(files))
	rt := runtime.New()

	var g errgroup.Group
	g.SetLimit(goruntime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].source = string(data)
			results[i].diags = rt.Check(string(data), file)
			return nil
		})
	}
	_ = g.Wait()

	code := exitOK
	for i, r := range results {
		switch {
		case r.err != nil:
			d := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("tidak dapat membaca file: %s", files[i]), nil, "")
			fmt.Fprintln(stderr, diagnostics.FormatDiagnostic(d, !*jsonOut))
			code = max(code, exitUsage)
		case len(r.diags) > 0:
			if *jsonOut {
				fmt.Fprintln(stderr, diagnostics.FormatDiagnostics(r.diags, false))
			} else {
				for _, d := range r.diags {
					fmt.Fprintln(stderr, diagnostics.FormatWithSource(d, r.source))
				}
			}
			code = exitDiag
		}
	}
	if code == exitOK {
		if *jsonOut {
			fmt.Fprintln(stdout, "[]")
		} else {
			fmt.Fprintln(stdout, "Tidak ada kesalahan.")
		}
	}
	return code
}

func cmdFmt(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	write := fs.Bool("w", false, "tulis hasil ke file sumber")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "penggunaan: cy fmt [-w] <file.cy>")
		return exitUsage
	}
	file := fs.Arg(0)

	source, filename, code := readSource(file, stderr)
	if code != exitOK {
		return code
	}
	formatted, err := runtime.New().Format(source, filename)
	if err != nil {
		return report(stderr, err, source, filename)
	}
	if formatter.HasComments(source) {
		fmt.Fprintln(stderr, "Peringatan: komentar tidak dipertahankan oleh formatter")
	}

	if *write && file != "-" {
		if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
			fmt.Fprintf(stderr, "gagal menulis file: %s\n", err)
			return exitUsage
		}
		return exitOK
	}
	fmt.Fprint(stdout, formatted)
	return exitOK
}

func cmdHelp(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stdout, help.QUICKREF)
		return exitOK
	}
	_, content, err := help.MatchTopic(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	fmt.Fprint(stdout, content)
	return exitOK
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "CodingYok v%s\n", runtime.Version)
	fmt.Fprintln(w, "Bahasa pemrograman modern dengan keyword bahasa Indonesia")
	fmt.Fprintln(w, "Dibuat oleh MrXploisLite")
}

func readSource(file string, stderr io.Writer) (string, string, int) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(stderr, "gagal membaca stdin: %s\n", err)
			return "", "", exitUsage
		}
		return string(data), "<stdin>", exitOK
	}

	source, err := os.ReadFile(file)
	if err != nil {
		msg := fmt.Sprintf("tidak dapat membaca file: %s", file)
		if errors.Is(err, os.ErrNotExist) {
			msg = fmt.Sprintf("File '%s' tidak ditemukan", file)
		}
		d := diagnostics.MakeDiag(diagnostics.EIO, msg, nil, "")
		fmt.Fprintln(stderr, diagnostics.FormatDiagnostic(d, true))
		return "", "", exitUsage
	}
	return string(source), file, exitOK
}

// report prints err with a source excerpt where possible and returns the
// matching exit code. Runtime errors raised inside an imported module are
// printed without an excerpt since only the entry file's source is known.
func report(stderr io.Writer, err error, source, filename string) int {
	var diagErr *runtime.DiagnosticError
	var rtErr *evaluator.RuntimeError
	var cfgErr *config.Error
	switch {
	case errors.As(err, &diagErr):
		for _, d := range diagErr.Diagnostics {
			fmt.Fprintln(stderr, diagnostics.FormatWithSource(d, diagErr.Source))
		}
		return exitDiag
	case errors.As(err, &rtErr):
		d := diagnostics.MakeDiag(rtErr.Code, rtErr.Message, rtErr.Span, rtErr.Hint)
		if d.Span != nil && d.Span.File != filename {
			fmt.Fprintln(stderr, diagnostics.FormatDiagnostic(d, true))
		} else {
			fmt.Fprintln(stderr, diagnostics.FormatWithSource(d, source))
		}
		return exitRuntime
	case errors.As(err, &cfgErr):
		fmt.Fprintln(stderr, diagnostics.FormatDiagnostic(cfgErr.Diagnostic(), true))
		return exitUsage
	}
	fmt.Fprintln(stderr, err)
	return exitUsage
}

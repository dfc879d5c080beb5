package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/MrXploisLite/CodingYok/pkg/lexer"
	"github.com/MrXploisLite/CodingYok/pkg/runtime"
)

const (
	promptMain = ">>> "
	promptCont = "... "
	goodbye    = "Sampai jumpa!"
)

var exitCommands = map[string]bool{"keluar()": true, "exit()": true, "quit()": true}

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	opts, err := c.runtimeOptions(stderr)
	if err != nil {
		return report(stderr, err, "", "")
	}
	session := runtime.New(append(opts, runtime.WithStdout(stdout))...).NewSession()
	defer session.Close()

	fmt.Fprintf(stdout, "CodingYok v%s - Bahasa Pemrograman Indonesia\n", runtime.Version)
	fmt.Fprintln(stdout, "Ketik 'keluar()' atau tekan Ctrl+D untuk keluar.")
	fmt.Fprintln(stdout, strings.Repeat("=", 50))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		src, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, goodbye)
			break
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if exitCommands[trimmed] {
			fmt.Fprintln(stdout, goodbye)
			break
		}

		out, err := evalEntry(session, src)
		if err != nil {
			report(stderr, err, src, session.Name())
			continue
		}
		if out != "" {
			fmt.Fprintln(stdout, out)
		}
	}

	if histPath != "" {
		if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err == nil {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}
	}
	return exitOK
}

// evalEntry runs one entry; Ctrl+C cancels it without leaving the REPL.
func evalEntry(session *runtime.Session, src string) (string, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return session.Eval(ctx, src)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".codingyok", "history")
}

// readEntry reads lines until they form a complete entry. A line ending in
// ':' opens a block that runs until an empty line. It returns false on EOF.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	block := false
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()

		if block {
			if strings.TrimSpace(line) == "" {
				return src, true
			}
			continue
		}
		more, opensBlock := needsMore(src)
		if !more {
			return src, true
		}
		block = opensBlock
	}
}

// needsMore reports whether src is unfinished: brackets are still open or
// the last token is a block-opening ':'. Lex errors count as finished so
// the error reaches the user.
func needsMore(src string) (more, block bool) {
	tokens, err := lexer.Tokenize(src, "<repl>")
	if err != nil {
		return false, false
	}
	depth := 0
	var last lexer.TokenType = lexer.TokEOF
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.TokLParen, lexer.TokLBracket, lexer.TokLBrace:
			depth++
		case lexer.TokRParen, lexer.TokRBracket, lexer.TokRBrace:
			depth--
		case lexer.TokNewline, lexer.TokIndent, lexer.TokDedent, lexer.TokEOF:
			continue
		}
		last = tok.Type
	}
	if depth > 0 {
		return true, false
	}
	if last == lexer.TokColon {
		return true, true
	}
	return false, false
}

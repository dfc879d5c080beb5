// Package testutil provides shared test helpers for CodingYok Go tests.
package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ScenariosDir is the scenario root relative to the module root.
const ScenariosDir = "testdata/scenarios"

// Scenario files.
const (
	MainFile     = "main.cy"
	StdinFile    = "stdin.txt"
	ExpectedOut  = "expected.out"
	ExpectedErr  = "expected.err"
	ScenarioExt  = ".cy"
	maxScenarios = 8
)

// Scenario is one program under testdata/scenarios/<name>/. Other .cy
// files in the directory are importable modules.
type Scenario struct {
	Name    string
	Dir     string // absolute
	Source  string
	Stdin   string
	WantOut string
	// WantErr lists substrings the error must contain. Empty means the
	// program must succeed.
	WantErr []string
	Modules []string
}

// MainPath is the entry file path passed to the runtime.
func (s *Scenario) MainPath() string {
	return filepath.Join(s.Dir, MainFile)
}

// LoadScenario reads a scenario directory.
func LoadScenario(dir string) (*Scenario, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(filepath.Join(abs, MainFile))
	if err != nil {
		return nil, err
	}
	out, err := os.ReadFile(filepath.Join(abs, ExpectedOut))
	if err != nil {
		return nil, err
	}
	s := &Scenario{
		Name:    filepath.Base(abs),
		Dir:     abs,
		Source:  string(source),
		WantOut: string(out),
	}
	if s.Stdin, err = readOptional(filepath.Join(abs, StdinFile)); err != nil {
		return nil, err
	}
	wantErr, err := readOptional(filepath.Join(abs, ExpectedErr))
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(wantErr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			s.WantErr = append(s.WantErr, line)
		}
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() && e.Name() != MainFile && filepath.Ext(e.Name()) == ScenarioExt {
			s.Modules = append(s.Modules, strings.TrimSuffix(e.Name(), ScenarioExt))
		}
	}
	return s, nil
}

// ListScenarios returns all scenario directories under root, sorted.
func ListScenarios(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), MainFile)); err == nil {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// LoadAll loads every scenario under root concurrently. The first load
// error cancels the rest.
func LoadAll(ctx context.Context, root string) ([]*Scenario, error) {
	dirs, err := ListScenarios(root)
	if err != nil {
		return nil, err
	}
	out := make([]*Scenario, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxScenarios)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := LoadScenario(dir)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	return string(data), err
}

package codingyok

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/MrXploisLite/CodingYok/internal/testutil"
	"github.com/MrXploisLite/CodingYok/pkg/config"
	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
	"github.com/MrXploisLite/CodingYok/pkg/runtime"
)

func loadScenarios(t *testing.T) []*testutil.Scenario {
	t.Helper()
	scenarios, err := testutil.LoadAll(context.Background(), testutil.ScenariosDir)
	if err != nil {
		t.Fatalf("failed to load scenarios: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatalf("no scenarios under %s", testutil.ScenariosDir)
	}
	return scenarios
}

// runScenario executes source as the scenario's main.cy so that sibling
// modules resolve from the scenario directory.
func runScenario(t *testing.T, sc *testutil.Scenario, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rt := runtime.New(
		runtime.WithStdout(&out),
		runtime.WithStdin(strings.NewReader(sc.Stdin)),
		runtime.WithConfig(config.Default()),
		runtime.WithTimeout(10*time.Second),
	)
	err := rt.Run(context.Background(), source, sc.MainPath())
	return out.String(), err
}

func errorText(err error) string {
	var re *evaluator.RuntimeError
	if errors.As(err, &re) {
		return fmt.Sprintf("%s: %s", re.Code, re.Message)
	}
	return err.Error()
}

func TestConformance(t *testing.T) {
	t.Setenv(config.PathEnv, "")
	for _, sc := range loadScenarios(t) {
		t.Run(sc.Name, func(t *testing.T) {
			out, err := runScenario(t, sc, sc.Source)

			if diff := cmp.Diff(sc.WantOut, out); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}

			if len(sc.WantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %s", errorText(err))
				}
				return
			}
			if err == nil {
				t.Fatalf("expected an error containing %q", sc.WantErr)
			}
			text := errorText(err)
			for _, want := range sc.WantErr {
				if !strings.Contains(text, want) {
					t.Errorf("error %q does not contain %q", text, want)
				}
			}
		})
	}
}

func TestConformanceModulesCheck(t *testing.T) {
	rt := runtime.New()
	for _, sc := range loadScenarios(t) {
		for _, mod := range sc.Modules {
			path := filepath.Join(sc.Dir, mod+testutil.ScenarioExt)
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if diags := rt.Check(string(src), path); len(diags) > 0 {
				t.Errorf("%s: module %s has diagnostics: %v", sc.Name, mod, diags)
			}
		}
	}
}

// Formatting a passing scenario must not change what it prints.
func TestConformanceFormatted(t *testing.T) {
	t.Setenv(config.PathEnv, "")
	rt := runtime.New()
	for _, sc := range loadScenarios(t) {
		if len(sc.WantErr) > 0 {
			continue
		}
		t.Run(sc.Name, func(t *testing.T) {
			formatted, err := rt.Format(sc.Source, sc.MainPath())
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			out, err := runScenario(t, sc, formatted)
			if err != nil {
				t.Fatalf("formatted program failed: %s\n%s", errorText(err), formatted)
			}
			if diff := cmp.Diff(sc.WantOut, out); diff != "" {
				t.Errorf("formatted program output mismatch (-want +got):\n%s\nsource:\n%s", diff, formatted)
			}
		})
	}
}

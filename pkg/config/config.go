// Package config loads CodingYok project and user settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

const (
	// ProjectFile is looked up in the project directory.
	ProjectFile = ".codingyok.yaml"
	// UserFile is looked up under ~/.codingyok.
	UserFile = "config.yaml"
	// PathEnv lists extra module directories, separated like PATH.
	PathEnv = "CY_PATH"
	// StdlibDirName is the bundled module directory next to the executable.
	StdlibDirName = "stdlib_modules"
)

// Config holds the settings that shape program execution.
type Config struct {
	SearchPaths       []string `yaml:"search_paths"`
	StdlibDir         string   `yaml:"stdlib_dir"`
	MaxRecursionDepth int      `yaml:"max_recursion_depth"`
	MaxSteps          int64    `yaml:"max_steps"`
	MinVersion        string   `yaml:"min_version"`

	// Path is the file the settings were read from; empty for defaults.
	Path string `yaml:"-"`
}

// Error reports an unreadable or invalid configuration file.
type Error struct {
	Path   string
	Issues []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("konfigurasi %s: %v", e.Path, e.Err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "konfigurasi %s tidak valid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Diagnostic converts the error for display.
func (e *Error) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(diagnostics.EConfig, e.Error(), nil, "")
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{}
}

// Load reads settings for projectDir.
// Precedence: project (.codingyok.yaml) → user (~/.codingyok/config.yaml) → defaults.
// A file that exists but cannot be parsed is an error rather than skipped.
func Load(projectDir string) (*Config, error) {
	candidates := []string{filepath.Join(projectDir, ProjectFile)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".codingyok", UserFile))
	}
	for _, path := range candidates {
		cfg, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

// LoadFile reads and validates a single configuration file. A missing
// file yields an error matching os.ErrNotExist.
func LoadFile(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	file, err := os.Open(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &Error{Path: absPath, Err: err}
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Path: absPath, Err: err}
	}
	cfg.Path = absPath
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var issues []string
	if c.MaxRecursionDepth < 0 {
		issues = append(issues, "max_recursion_depth tidak boleh negatif")
	}
	if c.MaxSteps < 0 {
		issues = append(issues, "max_steps tidak boleh negatif")
	}
	if c.MinVersion != "" && !semver.IsValid(canonical(c.MinVersion)) {
		issues = append(issues, fmt.Sprintf("min_version %q bukan versi semver", c.MinVersion))
	}
	for i, p := range c.SearchPaths {
		if strings.TrimSpace(p) == "" {
			issues = append(issues, fmt.Sprintf("search_paths[%d] kosong", i))
		}
	}
	if len(issues) > 0 {
		return &Error{Path: c.Path, Issues: issues}
	}
	return nil
}

// CheckVersion fails when the interpreter version is older than
// min_version.
func (c *Config) CheckVersion(version string) error {
	if c.MinVersion == "" {
		return nil
	}
	if semver.Compare(canonical(version), canonical(c.MinVersion)) < 0 {
		return &Error{
			Path:   c.Path,
			Issues: []string{fmt.Sprintf("membutuhkan CodingYok %s atau lebih baru (versi ini %s)", c.MinVersion, version)},
		}
	}
	return nil
}

// ModulePaths returns the configured search directories followed by those
// in CY_PATH. Relative entries are resolved against the config file.
func (c *Config) ModulePaths() []string {
	base := ""
	if c.Path != "" {
		base = filepath.Dir(c.Path)
	}
	var out []string
	for _, p := range c.SearchPaths {
		if !filepath.IsAbs(p) && base != "" {
			p = filepath.Join(base, p)
		}
		out = append(out, p)
	}
	for _, p := range filepath.SplitList(os.Getenv(PathEnv)) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StdlibPath returns stdlib_dir, or the stdlib_modules directory beside
// the running executable when that exists. It is empty when neither is
// available.
func (c *Config) StdlibPath() string {
	if c.StdlibDir != "" {
		if !filepath.IsAbs(c.StdlibDir) && c.Path != "" {
			return filepath.Join(filepath.Dir(c.Path), c.StdlibDir)
		}
		return c.StdlibDir
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	dir := filepath.Join(filepath.Dir(exe), StdlibDirName)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// FileName is the optional project configuration file.
const FileName = "provide.yaml"

// Config represents the optional provide.yaml configuration.
type Config struct {
	Debug  *bool     `yaml:"debug,omitempty"`
	Strict *bool     `yaml:"strict,omitempty"`
	Log    LogConfig `yaml:"log"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	ProjectName string
	Debug       bool
	Strict      bool
	LogLevel    string
	LogFormat   string
}

// LoadOptional reads provide.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// LoadFile reads a configuration file at an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Resolve loads configuration for dir and fills in defaults. When path is
// non-empty it names the configuration file explicitly and must exist.
func Resolve(dir, path string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}

	// Running outside a Go module is fine; the name falls back to dir.
	modPath, _ := modulePath(dir)

	res := &Resolved{
		Root:        dir,
		ModulePath:  modPath,
		ProjectName: defaultProjectName(modPath, dir),
		Debug:       true,
		Strict:      true,
		LogLevel:    strings.ToLower(strings.TrimSpace(cfg.Log.Level)),
		LogFormat:   strings.ToLower(strings.TrimSpace(cfg.Log.Format)),
	}
	if cfg.Debug != nil {
		res.Debug = *cfg.Debug
	}
	if cfg.Strict != nil {
		res.Strict = *cfg.Strict
	}
	if res.LogLevel == "" {
		res.LogLevel = "info"
	}
	if res.LogFormat == "" {
		res.LogFormat = "console"
	}
	if err := validateLogFormat(res.LogFormat); err != nil {
		return nil, err
	}
	return res, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRootFrom(dir)
}

// FindProjectRootFrom walks up from dir to find go.mod.
func FindProjectRootFrom(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultProjectName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "provide"
	}
	return base
}

func validateLogFormat(format string) error {
	switch format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("log.format must be console or json (got %q)", format)
	}
}

// Package config loads danube project settings from danube.yaml, danube.yml
// or danube.toml, searching upward from a starting directory.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Find when no config file exists between the
// start directory and the project boundary.
var ErrNotFound = errors.New("config: no danube config file found")

// FileNames are searched in order in every directory.
var FileNames = []string{"danube.yaml", "danube.yml", "danube.toml"}

var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// Environment overrides.
const (
	EnvLogLevel = "DANUBE_LOG_LEVEL"
	EnvColor    = "DANUBE_COLOR"
)

// Config holds the settings shared by the danube commands.
type Config struct {
	Log   LogConfig   `yaml:"log" toml:"log"`
	Color string      `yaml:"color" toml:"color"`
	Check CheckConfig `yaml:"check" toml:"check"`
	Lower LowerConfig `yaml:"lower" toml:"lower"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// CheckConfig controls `danube check` and the workspace scan.
type CheckConfig struct {
	// Context prints the offending source line under each diagnostic.
	Context bool     `yaml:"context" toml:"context"`
	Include []string `yaml:"include" toml:"include"`
	Exclude []string `yaml:"exclude" toml:"exclude"`
	Jobs    int      `yaml:"jobs" toml:"jobs"`
}

type LowerConfig struct {
	Format string `yaml:"format" toml:"format"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "warning"},
		Color: "auto",
		Check: CheckConfig{
			Context: true,
			Include: []string{"**/*.dn"},
		},
		Lower: LowerConfig{Format: "sexpr"},
	}
}

// Find searches dir and its parents for a config file. The search stops at a
// VCS root, the user's home directory or the filesystem root.
func Find(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for current := abs; ; {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find config: %w", err)
		}
		for _, name := range FileNames {
			path := filepath.Join(current, name)
			if fileExists(path) {
				return path, nil
			}
		}
		if isVCSRoot(current) || (home != "" && current == home) {
			return "", ErrNotFound
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotFound
		}
		current = parent
	}
}

// Discover finds and loads the config for dir. A missing file is not an
// error: the defaults are returned with environment overrides applied.
func Discover(ctx context.Context, dir string) (*Config, error) {
	path, err := Find(ctx, dir)
	if errors.Is(err, ErrNotFound) {
		cfg := Default()
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads a single config file over the defaults. The format follows the
// file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	cfg.Path = path
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// ApplyEnv overrides settings from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvColor); ok && v != "" {
		c.Color = strings.ToLower(v)
		if err := validColor(c.Color); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvColor, err)
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := validColor(c.Color); err != nil {
		return err
	}
	switch c.Lower.Format {
	case "sexpr", "json", "yaml":
	default:
		return fmt.Errorf("lower.format must be sexpr, json or yaml, got %q", c.Lower.Format)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("check.jobs must not be negative, got %d", c.Check.Jobs)
	}
	for _, pattern := range append(append([]string{}, c.Check.Include...), c.Check.Exclude...) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func validColor(mode string) error {
	switch mode {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("color must be auto, always or never, got %q", mode)
}

// Root is the directory holding the config file, or "" for defaults.
func (c *Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

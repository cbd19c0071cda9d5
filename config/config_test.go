package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project creates a temporary repository root with a nested directory and
// returns both.
func project(t *testing.T) (root, nested string) {
	t.Helper()
	root = t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested = filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	return root, nested
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindWalksUpward(t *testing.T) {
	root, nested := project(t)
	write(t, filepath.Join(root, "danube.toml"), "color = \"never\"\n")

	path, err := Find(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "danube.toml"), path)
}

func TestFindPrefersYAML(t *testing.T) {
	root, _ := project(t)
	write(t, filepath.Join(root, "danube.toml"), "")
	write(t, filepath.Join(root, "danube.yaml"), "")

	path, err := Find(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "danube.yaml", filepath.Base(path))
}

func TestFindStopsAtVCSRoot(t *testing.T) {
	_, nested := project(t)

	_, err := Find(context.Background(), nested)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindCancelled(t *testing.T) {
	_, nested := project(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Find(ctx, nested)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvColor, "")
	_, nested := project(t)

	cfg, err := Discover(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Root())
}

func TestLoadYAMLMergesOverDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvColor, "")
	root, nested := project(t)
	write(t, filepath.Join(root, "danube.yml"), `
log:
  level: debug
check:
  exclude: ["vendor/*"]
  jobs: 4
`)

	cfg, err := Discover(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Color)
	assert.True(t, cfg.Check.Context)
	assert.Equal(t, []string{"**/*.dn"}, cfg.Check.Include)
	assert.Equal(t, []string{"vendor/*"}, cfg.Check.Exclude)
	assert.Equal(t, 4, cfg.Check.Jobs)
	assert.Equal(t, "sexpr", cfg.Lower.Format)
	assert.Equal(t, root, cfg.Root())
}

func TestLoadTOML(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvColor, "")
	root, _ := project(t)
	path := filepath.Join(root, "danube.toml")
	write(t, path, `
color = "always"

[lower]
format = "yaml"

[check]
context = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "always", cfg.Color)
	assert.Equal(t, "yaml", cfg.Lower.Format)
	assert.False(t, cfg.Check.Context)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadEmptyYAML(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvColor, "")
	root, _ := project(t)
	path := filepath.Join(root, "danube.yaml")
	write(t, path, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	root, _ := project(t)

	yml := filepath.Join(root, "danube.yaml")
	write(t, yml, "colour: never\n")
	_, err := Load(yml)
	assert.Error(t, err)

	toml := filepath.Join(root, "danube.toml")
	write(t, toml, "colour = \"never\"\n")
	_, err = Load(toml)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadValidates(t *testing.T) {
	t.Setenv(EnvColor, "")
	root, _ := project(t)
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"color", "color: sometimes\n", "color must be"},
		{"format", "lower:\n  format: xml\n", "lower.format"},
		{"jobs", "check:\n  jobs: -1\n", "check.jobs"},
		{"pattern", "check:\n  include: [\"[\"]\n", "bad pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(root, "danube.yaml")
			write(t, path, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvLogLevel: "info", EnvColor: "NEVER"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "never", cfg.Color)

	env[EnvColor] = "rainbow"
	assert.Error(t, Default().ApplyEnv(lookup))
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvColor, "")
	root, _ := project(t)
	path := filepath.Join(root, "danube.yaml")
	write(t, path, "log:\n  level: info\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	root, _ := project(t)
	path := filepath.Join(root, "danube.json")
	write(t, path, "{}")

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported config format")
}

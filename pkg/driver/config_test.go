package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Empty(t, cfg.Path())
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lox.yml", `
interpreter:
  max_call_depth: 200
repl:
  prompt: "lox> "
  check_unused: true
output:
  color: never
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 200, cfg.Interpreter.MaxCallDepth)
	require.Equal(t, "lox> ", cfg.REPL.Prompt)
	require.True(t, cfg.REPL.CheckUnused)
	require.Equal(t, "~/.lox_history", cfg.REPL.HistoryFile, "unset keys keep their defaults")
	require.Equal(t, ColorNever, cfg.Output.Color)
	require.Equal(t, path, cfg.Path())
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lox.toml", `
[interpreter]
max_call_depth = 64

[repl]
history_file = ""

[output]
color = "always"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Interpreter.MaxCallDepth)
	require.Equal(t, "> ", cfg.REPL.Prompt)
	require.Empty(t, cfg.HistoryPath())
	require.Equal(t, ColorAlways, cfg.Output.Color)
}

func TestLoadConfigEmptyYAMLFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lox.yml", "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ColorAuto, cfg.Output.Color)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	yml := writeFile(t, dir, "lox.yml", "repl:\n  promt: \"> \"\n")
	_, err := LoadConfig(yml)
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: parse")

	tml := writeFile(t, dir, "lox.toml", "[repl]\npromt = \"> \"\n")
	_, err = LoadConfig(tml)
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: parse")
}

func TestLoadConfigUnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lox.json", "{}")
	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported format")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "config: open")
}

func TestLoadConfigValidationCollectsIssues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lox.yml", `
interpreter:
  max_call_depth: -1
repl:
  prompt: ""
output:
  color: sometimes
`)
	_, err := LoadConfig(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 3)
	require.Contains(t, verr.Error(), "interpreter.max_call_depth must not be negative")
	require.Contains(t, verr.Error(), `output.color must be one of auto, always, never (got "sometimes")`)
}

func TestFindConfigOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigEnvVar, "")
	require.Empty(t, FindConfig("", dir))

	tomlPath := writeFile(t, dir, "lox.toml", "")
	require.Equal(t, tomlPath, FindConfig("", dir))

	yml := writeFile(t, dir, "lox.yml", "")
	require.Equal(t, yml, FindConfig("", dir), "yaml is probed before toml")

	t.Setenv(ConfigEnvVar, "/from/env.yml")
	require.Equal(t, "/from/env.yml", FindConfig("", dir))
	require.Equal(t, "explicit.toml", FindConfig("explicit.toml", dir))
}

func TestHistoryPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := DefaultConfig()
	require.Equal(t, filepath.Join(home, ".lox_history"), cfg.HistoryPath())

	cfg.REPL.HistoryFile = "/tmp/hist"
	require.Equal(t, "/tmp/hist", cfg.HistoryPath())
}

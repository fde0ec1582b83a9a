package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"
)

// ConfigEnvVar names the environment variable consulted when no explicit
// config path is given.
const ConfigEnvVar = "LOX_CONFIG"

// defaultConfigFiles are probed in the working directory, in order.
var defaultConfigFiles = []string{"lox.yml", "lox.yaml", "lox.toml"}

// ColorMode controls colored diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config holds the settings read from lox.yml or lox.toml.
type Config struct {
	Interpreter InterpreterConfig `yaml:"interpreter" toml:"interpreter"`
	REPL        REPLConfig        `yaml:"repl" toml:"repl"`
	Output      OutputConfig      `yaml:"output" toml:"output"`

	path string
}

type InterpreterConfig struct {
	// MaxCallDepth bounds active calls; 0 leaves recursion unbounded.
	MaxCallDepth int `yaml:"max_call_depth" toml:"max_call_depth"`
}

type REPLConfig struct {
	Prompt      string `yaml:"prompt" toml:"prompt"`
	HistoryFile string `yaml:"history_file" toml:"history_file"`
	CheckUnused bool   `yaml:"check_unused" toml:"check_unused"`
}

type OutputConfig struct {
	Color ColorMode `yaml:"color" toml:"color"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:      "> ",
			HistoryFile: "~/.lox_history",
		},
		Output: OutputConfig{Color: ColorAuto},
	}
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// HistoryPath expands a leading "~" in the REPL history file. An empty result
// disables history.
func (c *Config) HistoryPath() string {
	p := c.REPL.HistoryFile
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteByte(':')
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	errs := ValidationError{Path: c.path}
	if c.Interpreter.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("interpreter.max_call_depth must not be negative (got %d)", c.Interpreter.MaxCallDepth))
	}
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}
	if !c.Output.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("output.color must be one of auto, always, never (got %q)", c.Output.Color))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindConfig picks the config file to load: explicit wins, then $LOX_CONFIG,
// then the first default file present in dir. It returns "" when none applies.
func FindConfig(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env
	}
	for _, name := range defaultConfigFiles {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// LoadConfig decodes path over the defaults and validates the result. An empty
// path yields the defaults. The format follows the file extension.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(absPath)); ext {
	case ".yml", ".yaml":
		err = decodeYAML(file, cfg)
	case ".toml":
		err = decodeTOML(file, cfg)
	default:
		return nil, fmt.Errorf("config: %s: unsupported format %q", absPath, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg.path = absPath
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// tomlSettings keep the library's key normalisation but reject unknown keys,
// matching the YAML decoder.
var tomlSettings = toml.Config{
	NormFieldName: toml.DefaultConfig.NormFieldName,
	FieldToKey:    toml.DefaultConfig.FieldToKey,
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

func decodeTOML(r io.Reader, cfg *Config) error {
	return tomlSettings.NewDecoder(bufio.NewReader(r)).Decode(cfg)
}

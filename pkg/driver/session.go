// Package driver connects the Lox pipeline to its callers. A Session owns one
// interpreter and runs files, whole sources or single REPL lines through
// scanning, parsing, resolution and evaluation, reporting each result as an
// Outcome.
package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// Exit codes follow sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
	ExitConfig   = 78
)

// Outcome is the result of one execution unit.
type Outcome struct {
	// Diagnostics holds every lexical and syntax error of the unit, or the
	// single resolution or runtime error that stopped it.
	Diagnostics diag.List
	// Value is the trailing expression's value of a REPL line, if any.
	Value runtime.Value
	// Err is set when the unit could not be read at all.
	Err      error
	ExitCode int
}

// OK reports whether the unit ran to completion.
func (o Outcome) OK() bool {
	return o.ExitCode == ExitOK
}

type SessionOption func(*Session)

// WithStdout redirects `print`. The default is os.Stdout.
func WithStdout(w io.Writer) SessionOption {
	return func(s *Session) { s.stdout = w }
}

// WithLogger traces pipeline stages at debug level.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// Session keeps the global environment and resolver depths alive between
// units, so definitions from one REPL line are visible to the next.
type Session struct {
	cfg    *Config
	interp *interpreter.Interpreter
	stdout io.Writer
	logger *slog.Logger
}

// NewSession builds a session from cfg; a nil cfg means DefaultConfig.
func NewSession(cfg *Config, opts ...SessionOption) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Session{
		cfg:    cfg,
		stdout: os.Stdout,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.interp = interpreter.New(
		interpreter.WithOutput(s.stdout),
		interpreter.WithMaxCallDepth(cfg.Interpreter.MaxCallDepth),
	)
	return s
}

// Globals exposes the session's global environment.
func (s *Session) Globals() *runtime.Environment {
	return s.interp.GlobalEnvironment()
}

// RunFile reads path and runs it as a whole program.
func (s *Session) RunFile(path string) Outcome {
	source, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Err: fmt.Errorf("read %s: %w", path, err), ExitCode: ExitIOErr}
	}
	s.logger.Debug("loaded script", "path", path, "bytes", len(source))
	return s.RunSource(string(source))
}

// RunReader runs everything readable from r as a single program.
func (s *Session) RunReader(r io.Reader) Outcome {
	source, err := io.ReadAll(r)
	if err != nil {
		return Outcome{Err: fmt.Errorf("read input: %w", err), ExitCode: ExitIOErr}
	}
	return s.RunSource(string(source))
}

// RunSource runs source as a program with the unused variable check enabled.
func (s *Session) RunSource(source string) Outcome {
	return s.run(source, nil, resolver.WithUnusedCheck(true))
}

// RunLine runs one REPL line. The line may end in a bare expression whose
// value is returned in the outcome. The unused check follows the config.
func (s *Session) RunLine(line string) Outcome {
	return s.run(line, []parser.Option{parser.WithREPL()}, resolver.WithUnusedCheck(s.cfg.REPL.CheckUnused))
}

func (s *Session) run(source string, parseOpts []parser.Option, resolveOpts ...resolver.Option) Outcome {
	program, errs := parser.ParseSource(source, parseOpts...)
	s.logger.Debug("parsed", "statements", len(program.Statements), "trailing", program.Expression != nil, "errors", len(errs))
	if len(errs) > 0 {
		return Outcome{Diagnostics: errs, ExitCode: ExitDataErr}
	}

	locals, err := resolver.ResolveProgram(program, resolveOpts...)
	if err != nil {
		return failure(err, ExitDataErr)
	}
	s.logger.Debug("resolved", "locals", len(locals))

	value, err := s.interp.Execute(program, locals)
	if err != nil {
		s.logger.Debug("runtime error", "err", err)
		return failure(err, ExitSoftware)
	}
	return Outcome{Value: value, ExitCode: ExitOK}
}

// failure wraps a pipeline error. Anything that is not a diagnostic is an
// internal fault and is kept in Err.
func failure(err error, code int) Outcome {
	var d *diag.Error
	if errors.As(err, &d) {
		return Outcome{Diagnostics: diag.List{d}, ExitCode: code}
	}
	return Outcome{Err: err, ExitCode: ExitSoftware}
}

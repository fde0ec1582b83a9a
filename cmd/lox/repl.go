package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/runtime"
)

// prompter reads REPL input one line at a time. Prompt returns io.EOF at end
// of input and liner.ErrPromptAborted when the line is cancelled.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// linePrompter wraps liner and persists history on Close.
type linePrompter struct {
	state       *liner.State
	historyPath string
}

func newLinePrompter(cfg *driver.Config) (prompter, error) {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	p := &linePrompter{state: state, historyPath: cfg.HistoryPath()}
	if p.historyPath != "" {
		if f, err := os.Open(p.historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return p, nil
}

func (p *linePrompter) Prompt(prompt string) (string, error) {
	return p.state.Prompt(prompt)
}

func (p *linePrompter) AppendHistory(line string) {
	p.state.AppendHistory(line)
}

func (p *linePrompter) Close() error {
	if p.historyPath != "" {
		if f, err := os.Create(p.historyPath); err == nil {
			_, _ = p.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return p.state.Close()
}

func (l *lox) replCommand(*cli.Context) error {
	open := l.newPrompter
	if open == nil {
		open = newLinePrompter
	}
	p, err := open(l.cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	session := l.newSession()
	l.code = driver.ExitOK
	for {
		line, err := p.Prompt(l.cfg.REPL.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(l.stdout)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			l.code = driver.ExitIOErr
			return fmt.Errorf("read line: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return nil
		}
		p.AppendHistory(line)
		if strings.HasPrefix(trimmed, ":") {
			if quit := l.replDirective(session, trimmed); quit {
				return nil
			}
			continue
		}

		outcome := session.RunLine(line)
		l.printFailures(outcome)
		if outcome.OK() && outcome.Value != nil {
			fmt.Fprintln(l.stdout, runtime.Stringify(outcome.Value))
		}
	}
}

// replDirective handles ":"-prefixed commands and reports whether the REPL
// should exit.
func (l *lox) replDirective(session *driver.Session, directive string) bool {
	switch strings.ToLower(directive) {
	case ":quit", ":q":
		return true
	case ":env":
		globals := session.Globals()
		for _, name := range globals.Keys() {
			if v, ok := globals.Lookup(name); ok {
				fmt.Fprintf(l.stdout, "%s = %s\n", name, runtime.Stringify(v))
			} else {
				fmt.Fprintf(l.stdout, "%s (uninitialized)\n", name)
			}
		}
	default:
		fmt.Fprintf(l.stderr, "unknown command %s. Type :quit to exit.\n", directive)
	}
	return false
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/driver"
)

const cliToolVersion = "0.1.0-dev"

var errUsage = errors.New("Usage: lox [script]")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return newCLI(os.Stdin, os.Stdout, os.Stderr).run(args)
}

// lox holds the streams and state shared by every command of one invocation.
type lox struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *driver.Config
	logger *slog.Logger
	red    func(a ...any) string
	code   int

	// newPrompter is swapped in tests; nil selects liner.
	newPrompter func(cfg *driver.Config) (prompter, error)
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *lox {
	return &lox{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (l *lox) run(args []string) int {
	app := cli.NewApp()
	app.Name = "lox"
	app.Usage = "run Lox scripts or start an interactive prompt"
	app.UsageText = "lox [global options] [script]\n   lox [global options] command [arguments...]"
	app.Version = cliToolVersion
	app.Writer = l.stdout
	app.ErrWriter = l.stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from `FILE` (defaults to $" + driver.ConfigEnvVar + ", then ./lox.yml, ./lox.toml)",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "trace pipeline stages on stderr",
		},
	}
	app.Action = l.action(l.defaultAction)
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "run a script file",
			ArgsUsage: "<script>",
			Action:    l.action(l.runCommand),
		},
		{
			Name:   "repl",
			Usage:  "start the interactive prompt",
			Action: l.action(l.replCommand),
		},
		{
			Name:      "tokens",
			Usage:     "print the token table of a script",
			ArgsUsage: "<script>",
			Action:    l.action(l.tokensCommand),
		},
		{
			Name:      "ast",
			Usage:     "print the parenthesized syntax tree of a script",
			ArgsUsage: "<script>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "rpn",
					Usage: "print expressions in reverse Polish notation",
				},
			},
			Action: l.action(l.astCommand),
		},
	}

	if err := app.Run(append([]string{"lox"}, args...)); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(l.stderr, err)
			return driver.ExitUsage
		}
		fmt.Fprintln(l.stderr, l.paint(err.Error()))
		if l.code == driver.ExitOK {
			return driver.ExitUsage
		}
	}
	return l.code
}

// action wraps a command so that config, logging and color are ready before
// it runs.
func (l *lox) action(fn func(*cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		if err := l.setup(c); err != nil {
			return err
		}
		return fn(c)
	}
}

func (l *lox) setup(c *cli.Context) error {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	path := driver.FindConfig(c.GlobalString("config"), wd)
	cfg, err := driver.LoadConfig(path)
	if err != nil {
		l.code = driver.ExitConfig
		return err
	}
	l.cfg = cfg

	level := slog.LevelWarn
	if c.GlobalBool("verbose") {
		level = slog.LevelDebug
	}
	l.logger = slog.New(slog.NewTextHandler(l.stderr, &slog.HandlerOptions{Level: level}))
	if path != "" {
		l.logger.Debug("loaded config", "path", cfg.Path())
	}

	painter := color.New(color.FgRed, color.Bold)
	if colorEnabled(cfg.Output.Color, l.stderr) {
		painter.EnableColor()
	} else {
		painter.DisableColor()
	}
	l.red = painter.SprintFunc()
	return nil
}

func colorEnabled(mode driver.ColorMode, w io.Writer) bool {
	switch mode {
	case driver.ColorAlways:
		return true
	case driver.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l *lox) paint(msg string) string {
	if l.red == nil {
		return msg
	}
	return l.red(msg)
}

func (l *lox) newSession() *driver.Session {
	return driver.NewSession(l.cfg, driver.WithStdout(l.stdout), driver.WithLogger(l.logger))
}

// defaultAction mirrors the classic entry point: no argument starts the
// prompt (or runs piped stdin), one argument runs that script.
func (l *lox) defaultAction(c *cli.Context) error {
	switch c.NArg() {
	case 0:
		if stdinIsTerminal(l.stdin) {
			return l.replCommand(c)
		}
		l.report(l.newSession().RunReader(l.stdin))
		return nil
	case 1:
		return l.runScript(c.Args().First())
	default:
		return errUsage
	}
}

func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l *lox) runCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errUsage
	}
	return l.runScript(c.Args().First())
}

func (l *lox) runScript(path string) error {
	l.report(l.newSession().RunFile(path))
	return nil
}

// report prints the outcome's diagnostics and records its exit code.
func (l *lox) report(outcome driver.Outcome) {
	l.printFailures(outcome)
	l.code = outcome.ExitCode
}

func (l *lox) printFailures(outcome driver.Outcome) {
	for _, d := range outcome.Diagnostics {
		fmt.Fprintln(l.stderr, l.paint(d.Error()))
	}
	if outcome.Err != nil {
		fmt.Fprintln(l.stderr, l.paint(outcome.Err.Error()))
	}
}

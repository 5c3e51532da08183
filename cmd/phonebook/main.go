package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/smileynet/phonebook"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/contacts"
	"github.com/smileynet/phonebook/internal/export"
	"github.com/smileynet/phonebook/internal/repl"
	"github.com/smileynet/phonebook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for phonebook.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Extra config file, applied after user and project config." type:"path"`
	REPL    REPLCmd          `cmd:"" name:"repl" default:"1" help:"Start an interactive contact book session."`
	Run     RunCmd           `cmd:"" help:"Execute commands from a script file."`
	Init    InitCmd          `cmd:"" help:"Write an annotated project config file."`
}

// REPLCmd starts an interactive session.
type REPLCmd struct {
	NoTUI bool `help:"Force plain line-based input even if attached to a TTY." default:"false"`
}

// RunCmd replays a script of commands, one per line.
type RunCmd struct {
	Script string `arg:"" help:"File of commands to execute ('-' for stdin)."`
}

// ErrInput indicates the command input stream could not be read.
var ErrInput = errors.New("input")

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/phonebook/config.yaml"),
		".phonebook.yaml",
	}
	if extra != "" {
		paths = append(paths, extra)
	}

	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession builds a session with an empty store and the configured exporter.
func newSession(cfg *config.Config) *repl.Session {
	return repl.NewSession(contacts.NewStore(),
		repl.WithExporter(export.NewWriter(export.WithIndent(cfg.Export.Indent))),
	)
}

// Run executes the repl command.
func (r *REPLCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f := tui.NewFrontend(tui.FrontendOptions{
		Session:    newSession(cfg),
		Reader:     os.Stdin,
		Writer:     os.Stdout,
		ForcePlain: r.NoTUI,
		Prompt:     cfg.REPL.Prompt,
		History:    cfg.TUI.History,
	})
	return r.run(ctx, f)
}

// run drives the frontend, enabling testable wiring.
func (r *REPLCmd) run(ctx context.Context, f tui.Frontend) error {
	if err := f.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("repl: %w: %w", ErrInput, err)
	}
	return nil
}

// Run executes the run command.
func (c *RunCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	var in io.Reader = os.Stdin
	if c.Script != "-" {
		f, err := os.Open(c.Script)
		if err != nil {
			return fmt.Errorf("run: %w: %w", ErrInput, err)
		}
		defer f.Close()
		in = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.run(ctx, os.Stdout, in, newSession(cfg))
}

// run replays in through a prompt-less loop, enabling testable wiring.
func (c *RunCmd) run(ctx context.Context, w io.Writer, in io.Reader, s *repl.Session) error {
	if err := repl.NewLoop(s, w, "").Run(ctx, in); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("run: %w: %w", ErrInput, err)
	}
	return nil
}

// InitCmd writes the default config template.
type InitCmd struct {
	Path  string `arg:"" optional:"" default:".phonebook.yaml" help:"Destination file."`
	Force bool   `help:"Overwrite an existing file."`
}

// Run executes the init command.
func (c *InitCmd) Run() error {
	return c.run(os.Stdout)
}

// run writes the template, enabling testable wiring.
func (c *InitCmd) run(w io.Writer) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(c.Path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("init: %s already exists (use --force to overwrite)", c.Path)
		}
		return fmt.Errorf("init: %w", err)
	}
	if _, err := f.Write(phonebook.ConfigTemplate); err != nil {
		_ = f.Close()
		return fmt.Errorf("init: writing %s: %w", c.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("init: writing %s: %w", c.Path, err)
	}

	_, _ = fmt.Fprintf(w, "Wrote %s\n", c.Path)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInput   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, ErrInput) {
		return exitInput
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("phonebook"),
		kong.Description("An interactive contact book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

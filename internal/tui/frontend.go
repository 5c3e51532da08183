package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/phonebook/internal/repl"
)

// Frontend drives a session from user input until the user exits.
type Frontend interface {
	Run(ctx context.Context) error
}

// FrontendOptions configures frontend creation.
type FrontendOptions struct {
	Session    *repl.Session // Required.
	Reader     io.Reader     // Input source (default: os.Stdin).
	Writer     io.Writer     // Output destination (default: os.Stdout).
	ForcePlain bool          // Force the line loop even on a TTY.
	Prompt     string        // Prompt text for both frontends.
	History    int           // Transcript bound for the TUI.
}

// NewFrontend returns a TUI frontend when both input and output are
// terminals, or a plain line loop otherwise. ForcePlain overrides TTY detection.
func NewFrontend(opts FrontendOptions) Frontend {
	if opts.Reader == nil {
		opts.Reader = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Reader) || !isTTY(opts.Writer) {
		return &PlainFrontend{loop: repl.NewLoop(opts.Session, opts.Writer, opts.Prompt), in: opts.Reader}
	}

	return &TUIFrontend{
		model: NewModel(opts.Session, WithPrompt(opts.Prompt), WithHistory(opts.History)),
		in:    opts.Reader,
		out:   opts.Writer,
	}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainFrontend runs the line-based loop.
type PlainFrontend struct {
	loop *repl.Loop
	in   io.Reader
}

// Run reads commands until exit or end of input.
func (f *PlainFrontend) Run(ctx context.Context) error {
	return f.loop.Run(ctx, f.in)
}

// TUIFrontend runs the session inside a Bubble Tea program.
// A failed program is reported as an error, never retried on the plain loop.
type TUIFrontend struct {
	model Model
	in    io.Reader
	out   io.Writer
}

// Run starts the Bubble Tea program and blocks until the user exits.
func (f *TUIFrontend) Run(ctx context.Context) error {
	p := tea.NewProgram(f.model,
		tea.WithContext(ctx),
		tea.WithInput(f.in),
		tea.WithOutput(f.out),
	)

	if _, err := p.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

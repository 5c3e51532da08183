// Package repl executes contact-book commands against an owned store and
// drives the line-based read-eval-print loop.
package repl

import (
	"fmt"
	"strings"

	"github.com/smileynet/phonebook/internal/command"
	"github.com/smileynet/phonebook/internal/contacts"
	"github.com/smileynet/phonebook/internal/export"
)

// Exporter writes a snapshot of people to path and returns the path written.
type Exporter interface {
	Write(path string, people []contacts.Person) (string, error)
}

// Result is the outcome of a successfully executed command.
type Result struct {
	Text string // Human-readable output, possibly multi-line.
	Exit bool   // The session should end.
}

// Session owns a contact store and applies commands to it.
type Session struct {
	store    *contacts.Store
	exporter Exporter
}

// Option configures a Session.
type Option func(*Session)

// WithExporter sets the exporter used by export commands.
func WithExporter(e Exporter) Option {
	return func(s *Session) { s.exporter = e }
}

// NewSession creates a Session operating on store.
// Without WithExporter, exports use an indented JSON export.Writer.
func NewSession(store *contacts.Store, opts ...Option) *Session {
	s := &Session{store: store}
	for _, o := range opts {
		o(s)
	}
	if s.exporter == nil {
		s.exporter = export.NewWriter()
	}
	return s
}

// Store returns the store the session operates on.
func (s *Session) Store() *contacts.Store {
	return s.store
}

// Handle parses, validates and executes a single input line.
// Parse failures return a *command.ParseError and validation failures a
// *command.ValidationError; in both cases the store is unchanged.
func (s *Session) Handle(line string) (Result, error) {
	cmd, err := command.Parse(line)
	if err != nil {
		return Result{}, err
	}
	return s.Execute(cmd)
}

// Execute validates cmd and applies it to the store.
func (s *Session) Execute(cmd command.Command) (Result, error) {
	if err := command.Validate(cmd); err != nil {
		return Result{}, err
	}

	switch c := cmd.(type) {
	case command.AddPhone:
		s.store.AddPhone(c.Name, c.Phone)
		return Result{Text: fmt.Sprintf("Contact %s: phone %s", c.Name, c.Phone)}, nil

	case command.AddEmail:
		s.store.AddEmail(c.Name, c.Email)
		return Result{Text: fmt.Sprintf("Contact %s: email %s", c.Name, c.Email)}, nil

	case command.Show:
		p, ok := s.store.Show(c.Name)
		if !ok {
			return Result{Text: fmt.Sprintf("Contact %s not found", c.Name)}, nil
		}
		return Result{Text: formatPerson(p)}, nil

	case command.Find:
		names := s.store.Find(c.Value)
		if len(names) == 0 {
			return Result{Text: fmt.Sprintf("No contacts found for %s", c.Value)}, nil
		}
		return Result{Text: "Found: " + strings.Join(names, ", ")}, nil

	case command.Export:
		people := s.store.Snapshot()
		path, err := s.exporter.Write(c.Path, people)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: fmt.Sprintf("Exported %d contacts to %s", len(people), path)}, nil

	case command.Help:
		return Result{Text: helpText()}, nil

	case command.Exit:
		return Result{Exit: true}, nil
	}

	return Result{}, fmt.Errorf("repl: unhandled command %T", cmd)
}

// formatPerson renders a person's phones and emails, one list per line.
func formatPerson(p contacts.Person) string {
	var b strings.Builder
	b.WriteString(p.Name)
	fmt.Fprintf(&b, "\n  phones: %s", joinOrDash(p.Phones))
	fmt.Fprintf(&b, "\n  emails: %s", joinOrDash(p.Emails))
	return b.String()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, u := range command.Usage {
		b.WriteString("\n  ")
		b.WriteString(u)
	}
	return b.String()
}

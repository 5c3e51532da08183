// Package tui provides the interactive terminal front end for a contact-book session.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/phonebook/internal/repl"
)

// Handler executes one input line. Implemented by *repl.Session.
type Handler interface {
	Handle(line string) (repl.Result, error)
}

type entryKind int

const (
	entryInput entryKind = iota
	entryOutput
	entryError
)

// entry is one rendered transcript line.
type entry struct {
	kind entryKind
	text string
}

// Model is the Bubble Tea model for the command prompt and its transcript.
type Model struct {
	handler    Handler
	input      textinput.Model
	help       help.Model
	keys       keyMap
	prompt     string
	transcript []entry
	history    int // Maximum transcript entries kept.
	done       bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPrompt sets the text shown before the input field.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) { m.prompt = prompt }
}

// WithHistory bounds the number of transcript lines kept on screen.
func WithHistory(n int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.history = n
		}
	}
}

// NewModel creates a Model that sends submitted lines to h.
func NewModel(h Handler, opts ...ModelOption) Model {
	m := Model{
		handler: h,
		help:    help.New(),
		keys:    defaultKeyMap(),
		prompt:  "> ",
		history: 200,
	}
	for _, o := range opts {
		o(&m)
	}

	ti := textinput.New()
	ti.Prompt = promptStyle.Render(m.prompt)
	ti.Placeholder = "help"
	ti.Focus()
	m.input = ti

	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current input line and records it with its outcome.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.appendEntry(entryInput, m.prompt+line)

	res, err := m.handler.Handle(line)
	if err != nil {
		m.appendEntry(entryError, "error: "+err.Error())
		return m, nil
	}
	if res.Exit {
		m.done = true
		return m, tea.Quit
	}
	for _, l := range strings.Split(res.Text, "\n") {
		if l != "" {
			m.appendEntry(entryOutput, l)
		}
	}
	return m, nil
}

// appendEntry records a transcript line, dropping the oldest past the history bound.
func (m *Model) appendEntry(kind entryKind, text string) {
	m.transcript = append(m.transcript, entry{kind: kind, text: text})
	if over := len(m.transcript) - m.history; over > 0 {
		m.transcript = append([]entry(nil), m.transcript[over:]...)
	}
}

// View renders the transcript followed by the prompt and help bar.
func (m Model) View() string {
	var b strings.Builder
	for _, e := range m.transcript {
		b.WriteString(styleFor(e.kind).Render(e.text))
		b.WriteString("\n")
	}
	if m.done {
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

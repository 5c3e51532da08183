package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/phonebook/internal/contacts"
	"github.com/smileynet/phonebook/internal/repl"
)

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

// submitLine types line into the model and presses enter.
func submitLine(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	updated, _ := m.Update(enter())
	return updated.(Model)
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(repl.NewSession(contacts.NewStore()))

	if m.prompt != "> " {
		t.Errorf("prompt = %q, want %q", m.prompt, "> ")
	}
	if m.history != 200 {
		t.Errorf("history = %d, want 200", m.history)
	}
	if len(m.transcript) != 0 {
		t.Errorf("transcript = %v, want empty", m.transcript)
	}
	if !m.input.Focused() {
		t.Error("input should be focused")
	}
}

func TestModel_SubmitRecordsResult(t *testing.T) {
	// Given a model over a fresh session
	s := repl.NewSession(contacts.NewStore())
	m := NewModel(s, WithPrompt("pb> "))

	// When a valid add command is submitted
	m = submitLine(t, m, "add Alice phone +15551234")

	// Then the store holds the contact and the transcript shows input and result
	if _, ok := s.Store().Show("Alice"); !ok {
		t.Fatal("Alice not added to store")
	}
	if len(m.transcript) != 2 {
		t.Fatalf("transcript len = %d, want 2: %v", len(m.transcript), m.transcript)
	}
	if m.transcript[0].kind != entryInput || m.transcript[0].text != "pb> add Alice phone +15551234" {
		t.Errorf("transcript[0] = %+v", m.transcript[0])
	}
	if m.transcript[1].kind != entryOutput || m.transcript[1].text != "Contact Alice: phone +15551234" {
		t.Errorf("transcript[1] = %+v", m.transcript[1])
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestModel_SubmitErrorIsRecorded(t *testing.T) {
	m := NewModel(repl.NewSession(contacts.NewStore()))

	m = submitLine(t, m, "add Bob phone 12345")

	last := m.transcript[len(m.transcript)-1]
	if last.kind != entryError {
		t.Errorf("last entry kind = %v, want entryError", last.kind)
	}
	if !strings.HasPrefix(last.text, "error: ") {
		t.Errorf("last entry = %q, want error prefix", last.text)
	}
	if m.done {
		t.Error("errors must not end the session")
	}
}

func TestModel_MultiLineResultSplit(t *testing.T) {
	s := repl.NewSession(contacts.NewStore())
	m := NewModel(s)
	m = submitLine(t, m, "add Alice email alice@example.com")

	m = submitLine(t, m, "show Alice")

	// input + result from add, input + three lines from show
	if len(m.transcript) != 6 {
		t.Fatalf("transcript len = %d, want 6: %v", len(m.transcript), m.transcript)
	}
	if m.transcript[5].text != "  emails: alice@example.com" {
		t.Errorf("last line = %q", m.transcript[5].text)
	}
}

func TestModel_HistoryBound(t *testing.T) {
	m := NewModel(repl.NewSession(contacts.NewStore()), WithHistory(3))

	for i := 0; i < 4; i++ {
		m = submitLine(t, m, "find +1")
	}

	if len(m.transcript) != 3 {
		t.Fatalf("transcript len = %d, want 3", len(m.transcript))
	}
	if m.transcript[2].text != "No contacts found for +1" {
		t.Errorf("newest entry = %q", m.transcript[2].text)
	}
}

func TestModel_ExitCommandQuits(t *testing.T) {
	m := NewModel(repl.NewSession(contacts.NewStore()))
	m.input.SetValue("exit")

	updated, cmd := m.Update(enter())

	if !updated.(Model).done {
		t.Error("model should be done after exit")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run(msg.String(), func(t *testing.T) {
			m := NewModel(repl.NewSession(contacts.NewStore()))
			updated, cmd := m.Update(msg)
			if !updated.(Model).done {
				t.Error("model should be done")
			}
			if cmd == nil {
				t.Fatal("expected quit command")
			}
		})
	}
}

func TestModel_ViewShowsTranscriptAndHelp(t *testing.T) {
	m := NewModel(repl.NewSession(contacts.NewStore()))
	m = submitLine(t, m, "find nope@nowhere.com")

	view := m.View()
	if !strings.Contains(view, "No contacts found for nope@nowhere.com") {
		t.Errorf("view missing result:\n%s", view)
	}
	if !strings.Contains(view, "run command") {
		t.Errorf("view missing help bar:\n%s", view)
	}
}

// TestModel_Teatest_Session drives the model through teatest with typed input.
func TestModel_Teatest_Session(t *testing.T) {
	s := repl.NewSession(contacts.NewStore())
	m := NewModel(s)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Type("add Alice phone +15551234")
	tm.Send(enter())
	tm.Type("add Alice email alice@example.com")
	tm.Send(enter())
	tm.Type("exit")
	tm.Send(enter())

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.done {
		t.Error("final model should be done")
	}
	p, ok := s.Store().Show("Alice")
	if !ok {
		t.Fatal("Alice not in store")
	}
	if len(p.Phones) != 1 || len(p.Emails) != 1 {
		t.Errorf("Alice = %+v, want one phone and one email", p)
	}
}

func TestNewFrontend_PlainForNonTTY(t *testing.T) {
	var out bytes.Buffer
	f := NewFrontend(FrontendOptions{
		Session: repl.NewSession(contacts.NewStore()),
		Reader:  strings.NewReader("add Alice phone +1\nshow Alice\n"),
		Writer:  &out,
	})

	if _, ok := f.(*PlainFrontend); !ok {
		t.Fatalf("NewFrontend() = %T, want *PlainFrontend", f)
	}
	if err := f.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "phones: +1") {
		t.Errorf("output = %q", out.String())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestTUIFrontend_RunErrorIsReported(t *testing.T) {
	// Given a TUI frontend whose input fails once the program is running
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var out bytes.Buffer
	f := &TUIFrontend{
		model: NewModel(repl.NewSession(contacts.NewStore())),
		in:    failingReader{},
		out:   &out,
	}

	// When it runs
	err := f.Run(ctx)

	// Then the read failure surfaces instead of a plain-loop rerun on the same input
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Fatalf("Run() error = %v, want input failure", err)
	}
	if !strings.HasPrefix(err.Error(), "tui: ") {
		t.Errorf("Run() error = %v, want it from the TUI program, not the plain loop", err)
	}
}

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
	"github.com/mechmind-dwv/mcalc/internal/styles"
)

func submit(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestEvaluateLines(t *testing.T) {
	m := New(calculator.Calculator{}, calculator.ModeAuto, true)

	m = submit(t, m, "2 + 3")
	m = submit(t, m, "5 sub 2")
	m = submit(t, m, "1 + x")
	m = submit(t, m, "   ")

	h := m.History()
	if len(h) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(h))
	}
	if h[0].Output != "5" || h[0].Err {
		t.Errorf("unexpected first entry: %+v", h[0])
	}
	if h[1].Output != "3" {
		t.Errorf("unexpected second entry: %+v", h[1])
	}
	if !h[2].Err {
		t.Errorf("expected error entry, got %+v", h[2])
	}
	if m.input.Value() != "" {
		t.Errorf("expected input reset, got %q", m.input.Value())
	}

	view := styles.Plain(m.View())
	if !strings.Contains(view, "2 + 3 = 5") {
		t.Errorf("view missing result line:\n%s", view)
	}
}

func TestHistoryBounded(t *testing.T) {
	m := New(calculator.Calculator{}, calculator.ModeAuto, true)
	for i := 0; i < MaxHistory+5; i++ {
		m = submit(t, m, "1 + 1")
	}
	if len(m.History()) != MaxHistory {
		t.Fatalf("expected %d entries, got %d", MaxHistory, len(m.History()))
	}
}

func TestClearAndQuit(t *testing.T) {
	m := New(calculator.Calculator{}, calculator.ModeAuto, true)
	m = submit(t, m, "1 + 1")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	if len(m.History()) != 0 {
		t.Fatalf("expected history cleared")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestBlankInputIgnoredAndCleared(t *testing.T) {
	m := New(calculator.Calculator{}, calculator.ModeAuto, true)
	m = submit(t, m, "  \t ")

	if len(m.History()) != 0 {
		t.Fatalf("expected blank input to be ignored, got %d entries", len(m.History()))
	}
	if m.input.Value() != "" {
		t.Fatalf("expected blank input cleared, got %q", m.input.Value())
	}
}

func TestViewWithoutColor(t *testing.T) {
	m := New(calculator.Calculator{}, calculator.ModeAuto, false)
	m = submit(t, m, "2 + 3")
	m = submit(t, m, "2 + x")

	view := m.View()
	if strings.Contains(view, "\x1b[") {
		t.Errorf("expected no ANSI escapes, got %q", view)
	}
	if !strings.Contains(view, "2 + 3 = 5") {
		t.Errorf("view missing result line:\n%s", view)
	}
}

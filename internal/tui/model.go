// Package tui implements the interactive calculator prompt.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
	"github.com/mechmind-dwv/mcalc/internal/styles"
)

// MaxHistory bounds the number of evaluated lines kept on screen.
const MaxHistory = 50

// Entry is one evaluated line.
type Entry struct {
	Input  string
	Output string
	Err    bool
}

// Model is the bubbletea model for the prompt.
type Model struct {
	input   textinput.Model
	calc    calculator.Calculator
	mode    calculator.Mode
	history []Entry
	width   int
	color   bool
}

// New returns a prompt evaluating with calc and parsing operands with mode.
// When color is false the view carries no ANSI styling.
func New(calc calculator.Calculator, mode calculator.Mode, color bool) Model {
	ti := textinput.New()
	ti.Placeholder = "2 + 3"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return Model{
		input: ti,
		calc:  calc,
		mode:  mode,
		color: color,
	}
}

// History returns the evaluated lines, oldest first.
func (m Model) History() []Entry {
	return m.history
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+l":
			m.history = nil
			return m, nil
		case "enter":
			m.evaluate()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 4
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) evaluate() {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return
	}

	entry := Entry{Input: line}
	expr, err := calculator.ParseExpression(line, m.mode)
	if err == nil {
		var v calculator.Operand
		v, err = m.calc.Eval(expr)
		if err == nil {
			entry.Output = v.String()
		}
	}
	if err != nil {
		entry.Output = err.Error()
		entry.Err = true
	}

	m.history = append(m.history, entry)
	if len(m.history) > MaxHistory {
		m.history = m.history[len(m.history)-MaxHistory:]
	}
}

// View renders the history above the input line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.RenderLabel("mcalc"))
	b.WriteString(" ")
	b.WriteString(styles.RenderDim("mode " + string(m.mode) + " · enter to evaluate · ctrl+l clear · esc quit"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(styles.RenderDim(e.Input))
		b.WriteString(" ")
		if e.Err {
			b.WriteString(styles.RenderError("! " + e.Output))
		} else {
			b.WriteString(styles.RenderOp("="))
			b.WriteString(" ")
			b.WriteString(styles.RenderResult(e.Output))
		}
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if !m.color {
		return styles.Plain(b.String())
	}
	return b.String()
}

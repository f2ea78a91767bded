// Package styles holds the lipgloss styles shared by the CLI and the
// interactive prompt.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	ColorGray   = lipgloss.Color("245")
	ColorBlue   = lipgloss.Color("39")
	ColorGreen  = lipgloss.Color("42")
	ColorRed    = lipgloss.Color("196")
	ColorYellow = lipgloss.Color("214")
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorGray)
	resultStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(ColorRed)
	opStyle     = lipgloss.NewStyle().Foreground(ColorYellow)
)

// RenderLabel renders a field label.
func RenderLabel(s string) string { return labelStyle.Render(s) }

// RenderDim renders secondary text.
func RenderDim(s string) string { return dimStyle.Render(s) }

// RenderResult renders a computed value.
func RenderResult(s string) string { return resultStyle.Render(s) }

// RenderError renders an error message.
func RenderError(s string) string { return errorStyle.Render(s) }

// RenderOp renders an operator symbol.
func RenderOp(s string) string { return opStyle.Render(s) }

// Plain strips ANSI escape sequences from s.
func Plain(s string) string { return ansi.Strip(s) }

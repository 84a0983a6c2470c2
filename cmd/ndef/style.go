package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/go-ndef/inspect"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#B69CFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#F0C674"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// colorStyler renders the inspection tree with the lipgloss palette.
type colorStyler struct{}

func (colorStyler) Heading(s string) string { return headingStyle.Render(s) }
func (colorStyler) Label(s string) string   { return labelStyle.Render(s) }
func (colorStyler) Value(s string) string   { return valueStyle.Render(s) }
func (colorStyler) Hex(s string) string     { return helpStyle.Render(s) }
func (colorStyler) Note(s string) string    { return noteStyle.Render(s) }

// stylerFor picks the styler for output written to w under the configured
// color mode.
func stylerFor(w io.Writer, mode string) inspect.Styler {
	if useColor(w, mode) {
		return colorStyler{}
	}
	return inspect.Plain{}
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

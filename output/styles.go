// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	green   = lipgloss.AdaptiveColor{Light: "#00AF5F", Dark: "#00D787"}
	red     = lipgloss.AdaptiveColor{Light: "#D7005F", Dark: "#FF5F87"}
	blue    = lipgloss.AdaptiveColor{Light: "#005FD7", Dark: "#5FAFFF"}
	cyan    = lipgloss.AdaptiveColor{Light: "#008787", Dark: "#00D7D7"}
	yellow  = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"}
	magenta = lipgloss.AdaptiveColor{Light: "#8700AF", Dark: "#D787FF"}
)

// Styles provides styled output helpers for the CLI. Color support is detected
// per writer, so styling a string for a pipe or a buffer yields plain text.
type Styles struct {
	renderer *lipgloss.Renderer

	success lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	path    lipgloss.Style
	account lipgloss.Style
	amount  lipgloss.Style
	keyword lipgloss.Style
	dim     lipgloss.Style
	warning lipgloss.Style
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		renderer: r,
		success:  r.NewStyle().Foreground(green).Bold(true),
		err:      r.NewStyle().Foreground(red).Bold(true),
		info:     r.NewStyle().Foreground(blue),
		path:     r.NewStyle().Foreground(cyan),
		account:  r.NewStyle().Foreground(yellow),
		amount:   r.NewStyle().Foreground(magenta),
		keyword:  r.NewStyle().Bold(true),
		dim:      r.NewStyle().Faint(true),
		warning:  r.NewStyle().Foreground(yellow).Bold(true),
	}
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string { return s.success.Render(text) }

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string { return s.err.Render(text) }

func (s *Styles) Info(text string) string { return s.info.Render(text) }

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string { return s.path.Render(text) }

// Account returns a styled account name (yellow).
func (s *Styles) Account(text string) string { return s.account.Render(text) }

// Amount returns a styled amount (magenta).
func (s *Styles) Amount(text string) string { return s.amount.Render(text) }

func (s *Styles) Keyword(text string) string { return s.keyword.Render(text) }

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string { return s.dim.Render(text) }

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string { return s.warning.Render(text) }

// Timing returns a timing string, red when the operation was slow and dimmed otherwise.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.renderer.NewStyle().Foreground(red).Render(text)
	}
	return s.Dim(text)
}

// Renderer returns the underlying lipgloss renderer for advanced usage.
func (s *Styles) Renderer() *lipgloss.Renderer {
	return s.renderer
}

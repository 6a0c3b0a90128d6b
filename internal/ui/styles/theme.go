// Package styles holds the console palette used for step output.
package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha accents
var (
	Surface1 = lipgloss.Color("#45475a")
	Overlay1 = lipgloss.Color("#7f849c")
	Blue     = lipgloss.Color("#89b4fa")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")
)

// Theme groups the styles bound to one output renderer.
type Theme struct {
	Step    lipgloss.Style // "==> Build (wifi)"
	Command lipgloss.Style // "$ pio run -e wifi"
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Hint    lipgloss.Style
	Prompt  lipgloss.Style
}

// New builds a Theme for r. Styles from a renderer bound to a non-terminal
// writer render as plain text.
func New(r *lipgloss.Renderer) Theme {
	return Theme{
		Step:    r.NewStyle().Bold(true).Foreground(Blue),
		Command: r.NewStyle().Foreground(Overlay1),
		Success: r.NewStyle().Bold(true).Foreground(Green),
		Error:   r.NewStyle().Bold(true).Foreground(Red),
		Warning: r.NewStyle().Foreground(Yellow),
		Hint:    r.NewStyle().Italic(true).Foreground(Overlay1),
		Prompt:  r.NewStyle().Bold(true).Foreground(Mauve),
	}
}

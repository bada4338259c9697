package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style

	Pass lipgloss.Style
	Fail lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("63")),
		Header2: r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Path:    r.NewStyle().Foreground(lipgloss.Color("45")),

		Pass: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Fail: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),

		Error:   r.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("39")),
		Hint:    r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

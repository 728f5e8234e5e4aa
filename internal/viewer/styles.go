package viewer

import "github.com/charmbracelet/lipgloss"

// Theme bundles the lipgloss styles of the viewer chrome.
type Theme struct {
	TitleBar  lipgloss.Style
	StatusBar lipgloss.Style
	StatusErr lipgloss.Style
	Help      lipgloss.Style
	Prompt    lipgloss.Style

	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

// ThemeByName returns the named theme, falling back to the default one.
func ThemeByName(name string) Theme {
	switch name {
	case "dark":
		return newTheme(lipgloss.Color("39"), lipgloss.Color("235"), lipgloss.Color("252"))
	case "light":
		return newTheme(lipgloss.Color("25"), lipgloss.Color("254"), lipgloss.Color("235"))
	default:
		return newTheme(lipgloss.Color("62"), lipgloss.Color("236"), lipgloss.Color("250"))
	}
}

func newTheme(accent, chrome, text lipgloss.Color) Theme {
	return Theme{
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			Background(chrome).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(text).
			Background(chrome).
			Padding(0, 1),
		StatusErr: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Background(chrome).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(1, 2),
		Prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(accent),
		TableSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(accent),
	}
}

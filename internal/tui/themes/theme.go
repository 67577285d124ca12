// Package themes holds the color schemes of the rule browser.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	Header      lipgloss.Style
	BorderedBox lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Error       lipgloss.Color
}

func build(primary, muted, border, fg, selectedFg, errColor lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Foreground: fg,
		Error:      errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(selectedFg).
			Bold(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(18),
		Value: lipgloss.NewStyle().
			Foreground(fg),
		StatusInfo: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#ef4444"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#1e1e2e"),
	lipgloss.Color("#f38ba8"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

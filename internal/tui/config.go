package tui

import "github.com/Veraticus/armine/internal/tui/themes"

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Title      string
	Width      int
	Height     int
	Tabular    bool
	ShowDetail bool
	AltScreen  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		Title:      "Rules",
		Width:      100,
		Height:     30,
		ShowDetail: true,
		AltScreen:  true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithTitle sets the header line.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTabular strips column prefixes from displayed items.
func WithTabular(tabular bool) Option {
	return func(c *Config) {
		c.Tabular = tabular
	}
}

// WithDetail toggles the statistics pane at start.
func WithDetail(show bool) Option {
	return func(c *Config) {
		c.ShowDetail = show
	}
}

// WithAltScreen controls whether the browser takes over the terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

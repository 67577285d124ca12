// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	// OreColor is the accent used for titles and prompts.
	OreColor = lipgloss.Color("#F4A261")
	// SubtleColor is used for table borders and labels.
	SubtleColor = lipgloss.Color("#666666")

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1D3"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(OreColor).MarginBottom(1)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(OreColor)
	keyStyle     = lipgloss.NewStyle().Foreground(SubtleColor).Width(18)
)

// Icons.
const (
	SuccessIcon = "✓"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	MineIcon    = "⛏️"
	RuleIcon    = "📜"
	ChartIcon   = "📊"
	FolderIcon  = "🗄️"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return successStyle.Render(SuccessIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a section title with the pickaxe icon.
func FormatTitle(title string) string {
	return titleStyle.Render(MineIcon + "  " + title)
}

// FormatPrompt formats a question waiting for input.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// FormatKeyValue renders an aligned "key value" summary line.
func FormatKeyValue(key, value string) string {
	return keyStyle.Render(key) + value
}

// RuleTitle is the heading printed above a rule table, e.g.
// "📜 baskets: 39 rules".
func RuleTitle(dataset string, count int, noun string) string {
	return fmt.Sprintf("%s %s: %d %s", RuleIcon, dataset, count, noun)
}

// FormatThresholds summarizes the thresholds a rule set was learned at.
func FormatThresholds(support, confidence float64, coverage int) string {
	return FormatKeyValue("Thresholds", fmt.Sprintf("support %s, confidence %s, coverage %d",
		strconv.FormatFloat(support, 'g', -1, 64),
		strconv.FormatFloat(confidence, 'g', -1, 64),
		coverage))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/armine/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(m.config.Title),
		m.table.View(),
		m.renderStatus(),
	}
	if m.showDetail {
		sections = append(sections, m.renderDetail())
	}
	if m.state == StateFilter {
		sections = append(sections, m.filter.View())
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatus() string {
	status := fmt.Sprintf("%d of %d rules", len(m.visible), len(m.records))
	if m.query != "" {
		status += fmt.Sprintf(" · filter: %s", m.query)
	}
	if m.filterErr != nil {
		return m.theme.StatusInfo.Render(status) + "  " + m.theme.StatusError.Render(m.filterErr.Error())
	}
	return m.theme.StatusInfo.Render(status)
}

// renderDetail shows every statistic of the selected rule.
func (m Model) renderDetail() string {
	rec, ok := m.SelectedRecord()
	if !ok {
		return m.theme.BorderedBox.Render(m.theme.StatusInfo.Render("No rule selected"))
	}

	consequentLabel := "Consequent"
	if rec.Class != "" {
		consequentLabel = "Class"
	}

	left := []string{
		m.field("Kind", rec.Kind),
		m.field("Antecedent", rec.AntecedentText()),
		m.field(consequentLabel, rec.ConsequentText()),
		m.field("Counts", fmt.Sprintf("%d both, %d antecedent, %d consequent of %d",
			rec.CountBoth, rec.CountAntecedent, rec.CountConsequent, rec.DatasetSize)),
	}
	right := []string{
		m.field("Support", report.Decimal(rec.Support)),
		m.field("Coverage", report.Decimal(rec.Coverage)),
		m.field("Confidence", report.Decimal(rec.Confidence)),
		m.field("Lift", report.Decimal(rec.Lift)),
		m.field("Conviction", report.Decimal(rec.Conviction)),
		m.field("Leverage", report.Decimal(rec.Leverage)),
		m.field("Cosine", report.Decimal(rec.Cosine)),
		m.field("Added value", report.Decimal(rec.AddedValue)),
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"),
		"    ",
		strings.Join(right, "\n"),
	)
	return m.theme.BorderedBox.Render(body)
}

func (m Model) field(label, value string) string {
	return m.theme.Label.Render(label) + m.theme.Value.Render(value)
}

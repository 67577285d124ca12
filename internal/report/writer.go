package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/armine/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Options control how a rule set is rendered.
type Options struct {
	Title   string // Printed above the table; ignored by other formats
	Tabular bool   // Strip column prefixes from tabular items
}

// Write renders rules in the requested format.
func Write(w io.Writer, format Format, rules model.RuleSet, opts Options) error {
	switch format {
	case FormatTable:
		return WriteTable(w, rules, opts)
	case FormatCSV:
		return WriteCSV(w, rules, opts)
	case FormatJSON:
		return WriteJSON(w, rules, opts)
	case FormatYAML:
		return WriteYAML(w, rules, opts)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
)

// RenderTable returns the rules as a bordered table with the antecedent,
// consequent, confidence, lift, conviction and support of every rule.
func RenderTable(rules model.RuleSet, tabular bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(Headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for _, rec := range Records(rules, tabular) {
		t.Row(rec.Row()...)
	}
	return t.String()
}

// WriteTable prints an optional title and the rule table.
func WriteTable(w io.Writer, rules model.RuleSet, opts Options) error {
	if opts.Title != "" {
		if _, err := fmt.Fprintln(w, titleStyle.Render(opts.Title)); err != nil {
			return err
		}
	}
	if len(rules) == 0 {
		_, err := fmt.Fprintln(w, "No rules.")
		return err
	}
	_, err := fmt.Fprintln(w, RenderTable(rules, opts.Tabular))
	return err
}

var csvHeader = []string{
	"kind", "antecedent", "consequent",
	"support", "coverage", "confidence", "lift", "conviction",
	"leverage", "cosine", "added_value",
	"count_both", "count_antecedent", "count_consequent", "dataset_size",
}

// WriteCSV writes one row per rule with every count and statistic.
// Items of a multi-item side are separated by "; ".
func WriteCSV(w io.Writer, rules model.RuleSet, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range Records(rules, opts.Tabular) {
		consequent := joinItems(rec.Consequent)
		if rec.Class != "" {
			consequent = rec.Class
		}
		row := []string{
			rec.Kind,
			joinItems(rec.Antecedent),
			consequent,
			formatFloat(rec.Support),
			formatFloat(rec.Coverage),
			formatFloat(rec.Confidence),
			formatFloat(rec.Lift),
			formatFloat(rec.Conviction),
			formatFloat(rec.Leverage),
			formatFloat(rec.Cosine),
			formatFloat(rec.AddedValue),
			strconv.Itoa(rec.CountBoth),
			strconv.Itoa(rec.CountAntecedent),
			strconv.Itoa(rec.CountConsequent),
			strconv.Itoa(rec.DatasetSize),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rules as an indented JSON array.
func WriteJSON(w io.Writer, rules model.RuleSet, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(rules, opts.Tabular)); err != nil {
		return fmt.Errorf("failed to encode rules as json: %w", err)
	}
	return nil
}

// WriteYAML writes the rules as a YAML sequence.
func WriteYAML(w io.Writer, rules model.RuleSet, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Records(rules, opts.Tabular)); err != nil {
		return fmt.Errorf("failed to encode rules as yaml: %w", err)
	}
	return enc.Close()
}

func joinItems(items []string) string {
	return strings.Join(items, "; ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Package report renders rule sets for people and other programs.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/armine/internal/model"
)

// Record is the flat, lossless form of a rule used by every exporter.
type Record struct {
	Kind            string   `json:"kind" yaml:"kind"`
	Antecedent      []string `json:"antecedent" yaml:"antecedent"`
	Consequent      []string `json:"consequent,omitempty" yaml:"consequent,omitempty"`
	Class           string   `json:"class,omitempty" yaml:"class,omitempty"`
	Support         float64  `json:"support" yaml:"support"`
	Coverage        float64  `json:"coverage" yaml:"coverage"`
	Confidence      float64  `json:"confidence" yaml:"confidence"`
	Lift            float64  `json:"lift" yaml:"lift"`
	Conviction      float64  `json:"conviction" yaml:"conviction"`
	Leverage        float64  `json:"leverage" yaml:"leverage"`
	Cosine          float64  `json:"cosine" yaml:"cosine"`
	AddedValue      float64  `json:"added_value" yaml:"added_value"`
	CountBoth       int      `json:"count_both" yaml:"count_both"`
	CountAntecedent int      `json:"count_antecedent" yaml:"count_antecedent"`
	CountConsequent int      `json:"count_consequent" yaml:"count_consequent"`
	DatasetSize     int      `json:"dataset_size" yaml:"dataset_size"`
}

// NewRecord flattens a rule. Tabular items are shown without their column
// prefix.
func NewRecord(rule model.Rule, tabular bool) Record {
	rec := Record{
		Kind:            rule.Kind.String(),
		Antecedent:      model.DisplayItems(rule.Antecedent, tabular),
		Support:         rule.Support(),
		Coverage:        rule.Coverage(),
		Confidence:      rule.Confidence(),
		Lift:            rule.Lift(),
		Conviction:      rule.Conviction(),
		Leverage:        rule.Leverage(),
		Cosine:          rule.Cosine(),
		AddedValue:      rule.AddedValue(),
		CountBoth:       rule.CountBoth,
		CountAntecedent: rule.CountAntecedent,
		CountConsequent: rule.CountConsequent,
		DatasetSize:     rule.DatasetSize,
	}
	if rule.Kind == model.KindClassification {
		rec.Class = string(rule.Class)
	} else {
		rec.Consequent = model.DisplayItems(rule.Consequent, tabular)
	}
	return rec
}

// Records flattens every rule of rules, keeping their order.
func Records(rules model.RuleSet, tabular bool) []Record {
	out := make([]Record, 0, len(rules))
	for _, rule := range rules {
		out = append(out, NewRecord(rule, tabular))
	}
	return out
}

// AntecedentText joins the antecedent items for display.
func (r Record) AntecedentText() string {
	return strings.Join(r.Antecedent, ", ")
}

// ConsequentText returns the class or the joined consequent items.
func (r Record) ConsequentText() string {
	if r.Class != "" {
		return r.Class
	}
	return strings.Join(r.Consequent, ", ")
}

// Headers are the columns of the human readable rule table.
var Headers = []string{"Antecedent", "Consequent", "Confidence", "Lift", "Conviction", "Support"}

// Row renders the table columns of r with three decimals.
func (r Record) Row() []string {
	return []string{
		r.AntecedentText(),
		r.ConsequentText(),
		Decimal(r.Confidence),
		Decimal(r.Lift),
		Decimal(r.Conviction),
		Decimal(r.Support),
	}
}

// Decimal formats a statistic with three decimals.
func Decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Format selects an output encoding.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatTable, FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, csv, json or yaml)", name)
	}
}

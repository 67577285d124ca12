package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/armine/internal/report"
)

var statTermRegex = regexp.MustCompile(`^(lift|confidence|conf|support|conviction)(>=|<=|>|<|=)(-?[0-9]*\.?[0-9]+)$`)

// term is one word of a filter query.
type term struct {
	stat  string
	op    string
	text  string
	value float64
}

// parseQuery splits a filter query into terms. Words like "lift>1.5"
// compare a statistic; every other word matches item text.
func parseQuery(query string) ([]term, error) {
	var terms []term
	for _, word := range strings.Fields(strings.ToLower(query)) {
		m := statTermRegex.FindStringSubmatch(word)
		if m == nil {
			if strings.ContainsAny(word, "<>") {
				return nil, fmt.Errorf("cannot parse filter term %q", word)
			}
			terms = append(terms, term{text: word})
			continue
		}
		value, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse filter value %q: %w", m[3], err)
		}
		stat := m[1]
		if stat == "conf" {
			stat = "confidence"
		}
		terms = append(terms, term{stat: stat, op: m[2], value: value})
	}
	return terms, nil
}

func (t term) matches(rec report.Record) bool {
	if t.stat == "" {
		return strings.Contains(strings.ToLower(rec.AntecedentText()), t.text) ||
			strings.Contains(strings.ToLower(rec.ConsequentText()), t.text)
	}

	var v float64
	switch t.stat {
	case "lift":
		v = rec.Lift
	case "confidence":
		v = rec.Confidence
	case "support":
		v = rec.Support
	case "conviction":
		v = rec.Conviction
	}

	switch t.op {
	case ">":
		return v > t.value
	case ">=":
		return v >= t.value
	case "<":
		return v < t.value
	case "<=":
		return v <= t.value
	default:
		return v == t.value
	}
}

// filterRecords returns the indices of records matching every term.
func filterRecords(records []report.Record, query string) ([]int, error) {
	terms, err := parseQuery(query)
	if err != nil {
		return nil, err
	}

	visible := make([]int, 0, len(records))
	for i, rec := range records {
		ok := true
		for _, t := range terms {
			if !t.matches(rec) {
				ok = false
				break
			}
		}
		if ok {
			visible = append(visible, i)
		}
	}
	return visible, nil
}

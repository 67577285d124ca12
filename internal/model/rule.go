package model

import (
	"fmt"
	"math"
)

// RuleKind distinguishes association rules from classification rules.
type RuleKind int

// Rule kinds.
const (
	// KindAssociation rules imply an itemset.
	KindAssociation RuleKind = iota
	// KindClassification rules imply a single class label.
	KindClassification
)

// String returns the kind name used in exports.
func (k RuleKind) String() string {
	switch k {
	case KindAssociation:
		return "association"
	case KindClassification:
		return "classification"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// Rule is an implication antecedent ==> consequent together with the four
// counts every statistic is derived from. Rules are values; statistics are
// computed on demand and never stored.
type Rule struct {
	Antecedent      Itemset
	Consequent      Itemset // Set for KindAssociation
	Class           Label   // Set for KindClassification
	Kind            RuleKind
	CountBoth       int // Records matching antecedent and consequent
	CountAntecedent int // Records matching the antecedent
	CountConsequent int // Records matching the consequent
	DatasetSize     int
}

// NewAssociationRule creates a rule whose consequent is an itemset.
func NewAssociationRule(antecedent, consequent Itemset, both, countAntecedent, countConsequent, size int) Rule {
	return Rule{
		Kind:            KindAssociation,
		Antecedent:      antecedent,
		Consequent:      consequent,
		CountBoth:       both,
		CountAntecedent: countAntecedent,
		CountConsequent: countConsequent,
		DatasetSize:     size,
	}
}

// NewClassificationRule creates a rule whose consequent is a class label.
func NewClassificationRule(antecedent Itemset, class Label, both, countAntecedent, countConsequent, size int) Rule {
	return Rule{
		Kind:            KindClassification,
		Antecedent:      antecedent,
		Class:           class,
		CountBoth:       both,
		CountAntecedent: countAntecedent,
		CountConsequent: countConsequent,
		DatasetSize:     size,
	}
}

// Support is the fraction of records matching the whole rule.
func (r Rule) Support() float64 {
	return ratio(r.CountBoth, r.DatasetSize, 0)
}

// Coverage is the fraction of records matching the antecedent.
func (r Rule) Coverage() float64 {
	return ratio(r.CountAntecedent, r.DatasetSize, 0)
}

// Confidence estimates P(consequent | antecedent); 0 without evidence.
func (r Rule) Confidence() float64 {
	return ratio(r.CountBoth, r.CountAntecedent, 0)
}

// ExpectedConfidence is the confidence expected under independence,
// that is the fraction of records matching the consequent.
func (r Rule) ExpectedConfidence() float64 {
	return ratio(r.CountConsequent, r.DatasetSize, 0)
}

// Lift compares observed co-occurrence with independence; 1 without evidence.
func (r Rule) Lift() float64 {
	if r.CountAntecedent == 0 || r.CountConsequent == 0 {
		return 1
	}
	return float64(r.DatasetSize*r.CountBoth) / float64(r.CountAntecedent*r.CountConsequent)
}

// Conviction measures how often the rule would be wrong if the antecedent
// and consequent were independent; 1 for rules that are never wrong.
func (r Rule) Conviction() float64 {
	confidence := r.Confidence()
	if confidence == 1 {
		return 1
	}
	return (1 - r.ExpectedConfidence()) / (1 - confidence)
}

// Leverage is n*count_both - count_antecedent*count_consequent.
func (r Rule) Leverage() float64 {
	return float64(r.DatasetSize*r.CountBoth - r.CountAntecedent*r.CountConsequent)
}

// Cosine is count_both / sqrt(count_antecedent * count_consequent); 0 without evidence.
func (r Rule) Cosine() float64 {
	denominator := math.Sqrt(float64(r.CountAntecedent) * float64(r.CountConsequent))
	if denominator == 0 {
		return 0
	}
	return float64(r.CountBoth) / denominator
}

// AddedValue is n * confidence / count_consequent; 1 without evidence.
func (r Rule) AddedValue() float64 {
	if r.CountConsequent == 0 {
		return 1
	}
	return float64(r.DatasetSize) * r.Confidence() / float64(r.CountConsequent)
}

// MatchAntecedent reports whether the antecedent is contained in items.
func (r Rule) MatchAntecedent(items Itemset) bool {
	return r.Antecedent.SubsetOf(items)
}

// MatchConsequent reports whether a record with the given items and label
// satisfies the consequent. Association rules test set inclusion,
// classification rules test label equality.
func (r Rule) MatchConsequent(items Itemset, label Label) bool {
	if r.Kind == KindClassification {
		return r.Class == label
	}
	return r.Consequent.SubsetOf(items)
}

// Covers reports whether the rule claims a training record during coverage
// pruning. A classification rule only claims records of its own class.
func (r Rule) Covers(items Itemset, label Label) bool {
	if !r.MatchAntecedent(items) {
		return false
	}
	return r.Kind != KindClassification || r.Class == label
}

// ConsequentString renders the consequent for display.
func (r Rule) ConsequentString() string {
	if r.Kind == KindClassification {
		return string(r.Class)
	}
	return r.Consequent.String()
}

// String renders the rule as "a, b ==> c".
func (r Rule) String() string {
	return fmt.Sprintf("%s ==> %s", r.Antecedent, r.ConsequentString())
}

// RuleKey is the comparable identity of a rule: both endpoints and all
// counts. Two rules are equal exactly when their keys are equal.
type RuleKey struct {
	Antecedent      string
	Consequent      string
	Kind            RuleKind
	CountBoth       int
	CountAntecedent int
	CountConsequent int
	DatasetSize     int
}

// Key returns the identity of the rule for set-based deduplication.
func (r Rule) Key() RuleKey {
	consequent := r.Consequent.Key()
	if r.Kind == KindClassification {
		consequent = string(r.Class)
	}
	return RuleKey{
		Kind:            r.Kind,
		Antecedent:      r.Antecedent.Key(),
		Consequent:      consequent,
		CountBoth:       r.CountBoth,
		CountAntecedent: r.CountAntecedent,
		CountConsequent: r.CountConsequent,
		DatasetSize:     r.DatasetSize,
	}
}

// Equal reports whether two rules have the same endpoints and counts.
func (r Rule) Equal(other Rule) bool {
	return r.Key() == other.Key()
}

func ratio(numerator, denominator int, fallback float64) float64 {
	if denominator == 0 {
		return fallback
	}
	return float64(numerator) / float64(denominator)
}

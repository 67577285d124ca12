package model

import (
	"cmp"
	"slices"
)

// RuleOrder compares two rules for ranking. It returns a negative number
// when a ranks before b, a positive number when b ranks first and zero
// when they tie.
type RuleOrder func(a, b Rule) int

// ByQuality ranks rules by descending lift, then confidence, then
// antecedent length, so more specific rules win at equal quality.
// Remaining ties are broken by the antecedent and consequent keys to keep
// the order reproducible.
func ByQuality(a, b Rule) int {
	if c := cmp.Compare(b.Lift(), a.Lift()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Confidence(), a.Confidence()); c != 0 {
		return c
	}
	if c := cmp.Compare(len(b.Antecedent), len(a.Antecedent)); c != 0 {
		return c
	}
	return CompareIdentity(a, b)
}

// CompareIdentity orders rules by antecedent, then consequent.
func CompareIdentity(a, b Rule) int {
	if c := a.Antecedent.Compare(b.Antecedent); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if a.Kind == KindClassification {
		return cmp.Compare(a.Class, b.Class)
	}
	return a.Consequent.Compare(b.Consequent)
}

// RuleSet is an ordered list of rules.
type RuleSet []Rule

// Sort orders the rules in place. A nil order means ByQuality.
func (rs RuleSet) Sort(order RuleOrder) {
	if order == nil {
		order = ByQuality
	}
	slices.SortStableFunc(rs, order)
}

// Dedup returns the rules with duplicates removed, keeping the first
// occurrence of every RuleKey.
func (rs RuleSet) Dedup() RuleSet {
	seen := make(map[RuleKey]struct{}, len(rs))
	out := make(RuleSet, 0, len(rs))
	for _, rule := range rs {
		key := rule.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rule)
	}
	return out
}

// Filter returns the rules for which keep reports true, in order.
func (rs RuleSet) Filter(keep func(Rule) bool) RuleSet {
	var out RuleSet
	for _, rule := range rs {
		if keep(rule) {
			out = append(out, rule)
		}
	}
	return out
}

// TopN returns at most n rules from the front of the set.
func (rs RuleSet) TopN(n int) RuleSet {
	if n <= 0 {
		return RuleSet{}
	}
	if n > len(rs) {
		n = len(rs)
	}
	out := make(RuleSet, n)
	copy(out, rs[:n])
	return out
}

// Find returns the first rule with the given antecedent and association
// consequent.
func (rs RuleSet) Find(antecedent, consequent Itemset) (Rule, bool) {
	for _, rule := range rs {
		if rule.Kind == KindAssociation && rule.Antecedent.Equal(antecedent) && rule.Consequent.Equal(consequent) {
			return rule, true
		}
	}
	return Rule{}, false
}

// FindClass returns the first classification rule with the given
// antecedent and label.
func (rs RuleSet) FindClass(antecedent Itemset, class Label) (Rule, bool) {
	for _, rule := range rs {
		if rule.Kind == KindClassification && rule.Antecedent.Equal(antecedent) && rule.Class == class {
			return rule, true
		}
	}
	return Rule{}, false
}

// Clone returns a copy of the rule set that shares no backing array.
func (rs RuleSet) Clone() RuleSet {
	if rs == nil {
		return nil
	}
	out := make(RuleSet, len(rs))
	copy(out, rs)
	return out
}

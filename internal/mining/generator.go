package mining

import (
	"slices"

	"github.com/Veraticus/armine/internal/model"
)

// RuleGenerator turns frequent itemsets into rules.
type RuleGenerator interface {
	// Generate returns the rules derived from one frequent itemset that
	// pass Admits at the given thresholds.
	Generate(itemset model.Itemset, support, confidence float64) []model.Rule
	// Admits reports whether a rule passes the support and confidence
	// tests of this strategy.
	Admits(rule model.Rule, support, confidence float64) bool
}

// AssociationRules enumerates every antecedent/consequent split of an
// itemset.
type AssociationRules struct {
	counter Counter
	size    int
}

// NewAssociationRules creates the association rule strategy.
func NewAssociationRules(counter Counter, size int) *AssociationRules {
	return &AssociationRules{counter: counter, size: size}
}

// Generate builds a rule for every non-empty proper subset of itemset used
// as antecedent, with the remaining items as consequent.
func (g *AssociationRules) Generate(itemset model.Itemset, support, confidence float64) []model.Rule {
	if len(itemset) < 2 {
		return nil
	}

	both := g.counter.Count(itemset)
	var rules []model.Rule
	for _, antecedent := range properSubsets(itemset) {
		consequent := itemset.Difference(antecedent)
		rule := model.NewAssociationRule(antecedent, consequent,
			both,
			g.counter.Count(antecedent),
			g.counter.Count(consequent),
			g.size)
		if g.Admits(rule, support, confidence) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Admits applies absolute support and confidence thresholds.
func (g *AssociationRules) Admits(rule model.Rule, support, confidence float64) bool {
	return rule.Confidence() >= confidence && rule.Support() >= support
}

// ClassificationRules keeps, for each itemset, the single best rule over
// all class labels with the whole itemset as antecedent.
type ClassificationRules struct {
	counter *ClassCounter
	labels  []model.Label
	order   model.RuleOrder
	size    int
}

// NewClassificationRules creates the classification rule strategy. Labels
// are tried in sorted order so ties resolve the same way on every run.
func NewClassificationRules(counter *ClassCounter, size int, order model.RuleOrder) *ClassificationRules {
	labels := slices.Clone(counter.Labels())
	slices.Sort(labels)
	if order == nil {
		order = model.ByQuality
	}
	return &ClassificationRules{
		counter: counter,
		labels:  labels,
		order:   order,
		size:    size,
	}
}

// Generate returns at most one rule: the best ranked admitted rule among
// itemset ==> label for every known label.
func (g *ClassificationRules) Generate(itemset model.Itemset, support, confidence float64) []model.Rule {
	if len(itemset) == 0 {
		return nil
	}

	counts := g.counter.Classwise(itemset)
	antecedentCount := counts.Matched()

	var best *model.Rule
	for _, label := range g.labels {
		count := counts[label]
		rule := model.NewClassificationRule(itemset, label, count.Matched, antecedentCount, count.Total, g.size)
		if !g.Admits(rule, support, confidence) {
			continue
		}
		if best == nil || g.order(rule, *best) < 0 {
			best = &rule
		}
	}

	if best == nil {
		return nil
	}
	return []model.Rule{*best}
}

// Admits applies the relative support test: a rule must reach the support
// threshold scaled by the frequency of its class, so rare classes still
// produce rules.
func (g *ClassificationRules) Admits(rule model.Rule, support, confidence float64) bool {
	return rule.Confidence() >= confidence && rule.Support() >= support*rule.ExpectedConfidence()
}

// properSubsets returns every non-empty proper subset of itemset, shortest
// first, each in canonical order.
func properSubsets(itemset model.Itemset) []model.Itemset {
	var subsets []model.Itemset
	for size := 1; size < len(itemset); size++ {
		combinations(itemset, size, func(subset model.Itemset) {
			subsets = append(subsets, subset)
		})
	}
	return subsets
}

// combinations calls emit with every size-k combination of items, in
// lexicographic order.
func combinations(items model.Itemset, k int, emit func(model.Itemset)) {
	chosen := make(model.Itemset, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(chosen) == k {
			emit(slices.Clone(chosen))
			return
		}
		for i := start; i <= len(items)-(k-len(chosen)); i++ {
			chosen = append(chosen, items[i])
			walk(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	walk(0)
}

package mining

import (
	"testing"

	"github.com/Veraticus/armine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCounter(t *testing.T) {
	data := model.NewDataset(marketBaskets())
	counter := NewItemCounter(&data)

	assert.Equal(t, 3, counter.Count(itemset("Beer")))
	assert.Equal(t, 2, counter.Count(itemset("Beer", "Bread")))
	assert.Equal(t, 2, counter.Count(itemset("Bread", "Beer")), "order must not matter")
	assert.Equal(t, 0, counter.Count(itemset("Beer", "Cola", "Eggs")))
	assert.Equal(t, 5, counter.Count(model.Itemset{}))
	assert.Equal(t, 4, counter.Cached())

	counter.Reset()
	assert.Zero(t, counter.Cached())
}

func TestClassCounter(t *testing.T) {
	data, err := model.NewLabeledDataset(
		[][]string{{"a", "b"}, {"a"}, {"b"}, {"a", "b"}},
		[]string{"x", "y", "x", "y"},
		true,
	)
	require.NoError(t, err)
	counter := NewClassCounter(&data)

	counts := counter.Classwise(itemset("a"))
	assert.Equal(t, ClassCount{Matched: 1, Total: 2}, counts["x"])
	assert.Equal(t, ClassCount{Matched: 2, Total: 2}, counts["y"])
	assert.Equal(t, 3, counter.Count(itemset("a")))
	assert.Equal(t, 2, counter.Count(itemset("b", "a")))
	assert.Equal(t, []model.Label{"x", "y"}, counter.Labels())

	total := 0
	for _, c := range counter.Classwise(itemset("zzz")) {
		assert.Zero(t, c.Matched)
		total += c.Total
	}
	assert.Equal(t, data.Len(), total)
}

func TestJoinPredicates(t *testing.T) {
	tests := []struct {
		name     string
		join     JoinPredicate
		a, b     model.Itemset
		expected bool
	}{
		{name: "singletons", join: PrefixJoin, a: itemset("a"), b: itemset("b"), expected: true},
		{name: "same singleton", join: PrefixJoin, a: itemset("a"), b: itemset("a"), expected: false},
		{name: "shared prefix", join: PrefixJoin, a: itemset("a", "b"), b: itemset("a", "c"), expected: true},
		{name: "different prefix", join: PrefixJoin, a: itemset("a", "b"), b: itemset("c", "d"), expected: false},
		{name: "different lengths", join: PrefixJoin, a: itemset("a"), b: itemset("a", "b"), expected: false},
		{name: "empty", join: PrefixJoin, a: model.Itemset{}, b: model.Itemset{}, expected: false},
		{
			name:     "distinct columns",
			join:     DistinctFeatureJoin,
			a:        model.EncodeTabularRow([]string{"sunny"}),
			b:        model.Itemset{model.TabularItem(2, "hot")},
			expected: true,
		},
		{
			name:     "same column",
			join:     DistinctFeatureJoin,
			a:        model.Itemset{model.TabularItem(1, "sunny")},
			b:        model.Itemset{model.TabularItem(1, "rainy")},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.join(tt.a, tt.b))
		})
	}
}

func TestJoinCandidates(t *testing.T) {
	frequent := []model.Itemset{
		itemset("a", "b"),
		itemset("a", "c"),
		itemset("a", "d"),
		itemset("b", "c"),
	}

	next := joinCandidates(frequent, PrefixJoin)
	assert.Equal(t, []model.Itemset{
		itemset("a", "b", "c"),
		itemset("a", "b", "d"),
		itemset("a", "c", "d"),
	}, next)
	for _, candidate := range next {
		assert.Len(t, candidate, 3)
	}

	assert.Empty(t, joinCandidates(nil, PrefixJoin))
}

func TestSeedAndPruneCandidates(t *testing.T) {
	data := model.NewDataset(marketBaskets())
	counter := NewItemCounter(&data)

	seeds := seedCandidates(&data)
	assert.Equal(t, []model.Itemset{
		itemset("Beer"), itemset("Bread"), itemset("Cola"),
		itemset("Diapers"), itemset("Eggs"), itemset("Milk"),
	}, seeds)

	frequent := pruneCandidates(seeds, counter, data.Len(), 0.6)
	assert.Equal(t, []model.Itemset{
		itemset("Beer"), itemset("Bread"), itemset("Diapers"), itemset("Milk"),
	}, frequent)
}

func TestRoundSupport(t *testing.T) {
	assert.InDelta(t, 0.333, roundSupport(1, 3), 1e-12)
	assert.InDelta(t, 0.667, roundSupport(2, 3), 1e-12)
	assert.InDelta(t, 1.0, roundSupport(7, 7), 1e-12)
	// 0.3334 rounds down, so it does not reach a 0.334 threshold.
	assert.Less(t, roundSupport(3334, 10000), 0.334)
}

func TestGenerator_AssociationRules(t *testing.T) {
	data := model.NewDataset(marketBaskets())
	counter := NewItemCounter(&data)
	gen := NewAssociationRules(counter, data.Len())

	assert.Empty(t, gen.Generate(itemset("Beer"), 0, 0))

	rules := gen.Generate(itemset("Beer", "Bread", "Diapers"), 0, 0)
	assert.Len(t, rules, 6)
	for _, rule := range rules {
		assert.Equal(t, itemset("Beer", "Bread", "Diapers"), rule.Antecedent.Union(rule.Consequent))
		assert.Equal(t, 2, rule.CountBoth)
	}

	strict := gen.Generate(itemset("Beer", "Bread", "Diapers"), 0.4, 1.0)
	require.Len(t, strict, 1)
	assert.Equal(t, itemset("Beer", "Bread"), strict[0].Antecedent)
	assert.Equal(t, itemset("Diapers"), strict[0].Consequent)
}

func TestGenerator_ClassificationRules(t *testing.T) {
	data, err := model.NewLabeledDataset(
		[][]string{{"a"}, {"a"}, {"a", "b"}, {"b"}},
		[]string{"x", "x", "y", "y"},
		true,
	)
	require.NoError(t, err)
	counter := NewClassCounter(&data)
	gen := NewClassificationRules(counter, data.Len(), nil)

	rules := gen.Generate(itemset("a"), 0.1, 0.1)
	require.Len(t, rules, 1)
	assert.Equal(t, model.Label("x"), rules[0].Class)
	assert.InDelta(t, 2.0/3.0, rules[0].Confidence(), 1e-9)

	// a ==> x needs support 0.5 >= 0.9 * 0.5 but fails confidence 0.9.
	assert.Empty(t, gen.Generate(itemset("a"), 0.9, 0.9))

	rule := model.NewClassificationRule(itemset("b"), "y", 1, 1, 2, 4)
	assert.True(t, gen.Admits(rule, 0.5, 1), "relative support 0.25 >= 0.5 * 0.5")
	assert.False(t, gen.Admits(rule, 0.6, 1))
}

func TestProperSubsets(t *testing.T) {
	subsets := properSubsets(itemset("a", "b", "c"))
	assert.Equal(t, []model.Itemset{
		itemset("a"), itemset("b"), itemset("c"),
		itemset("a", "b"), itemset("a", "c"), itemset("b", "c"),
	}, subsets)
	assert.Empty(t, properSubsets(itemset("a")))
}

func TestPruneByCoverage(t *testing.T) {
	data := model.NewDataset([][]string{
		{"a", "b"},
		{"a"},
		{"b"},
	})
	rule := func(antecedent string) model.Rule {
		return model.NewAssociationRule(itemset(antecedent), itemset("z"), 0, 0, 0, 3)
	}

	rules := model.RuleSet{rule("a"), rule("b"), rule("a"), rule("c")}

	t.Run("threshold one", func(t *testing.T) {
		kept := pruneByCoverage(rules, &data, 1)
		// The second a-rule finds every a-record saturated; c matches nothing.
		assert.Equal(t, model.RuleSet{rule("a"), rule("b")}, kept)
	})

	t.Run("threshold two", func(t *testing.T) {
		kept := pruneByCoverage(rules, &data, 2)
		assert.Equal(t, model.RuleSet{rule("a"), rule("b"), rule("a")}, kept)
	})

	t.Run("class rules claim own label only", func(t *testing.T) {
		labeled, err := model.NewLabeledDataset([][]string{{"a"}, {"a"}}, []string{"x", "y"}, true)
		require.NoError(t, err)
		toY := model.NewClassificationRule(itemset("a"), "y", 1, 2, 1, 2)
		toX := model.NewClassificationRule(itemset("a"), "x", 1, 2, 1, 2)

		kept := pruneByCoverage(model.RuleSet{toY, toX, toY}, &labeled, 1)
		assert.Equal(t, model.RuleSet{toY, toX}, kept)
	})
}

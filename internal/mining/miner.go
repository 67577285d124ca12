package mining

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/armine/internal/model"
)

// Strategy is the set of behaviours that specializes the lattice search.
type Strategy struct {
	Counter Counter
	Join    JoinPredicate
	Rules   RuleGenerator
}

// LevelStats summarizes one generation of the lattice search.
type LevelStats struct {
	Level      int // Itemset length of this generation
	Candidates int // Candidates before support pruning
	Frequent   int // Candidates that reached the support threshold
	Rules      int // New distinct rules generated from this generation
}

// Observer receives progress after every lattice generation.
type Observer func(LevelStats)

// Miner runs the level-wise frequent itemset search and rule pipeline.
type Miner struct {
	strategy Strategy
	order    model.RuleOrder
	observer Observer
}

// NewMiner creates a miner from a strategy set.
func NewMiner(strategy Strategy, opts ...Option) *Miner {
	o := newOptions(opts)
	return &Miner{
		strategy: strategy,
		order:    o.order,
		observer: o.observer,
	}
}

// Mine searches data for frequent itemsets, builds the admitted rules,
// prunes them by coverage and ranks the survivors. The counter cache is
// reset first, so the result only reflects the current dataset.
//
// Pruning walks rules in generation order: lattice level, then itemset,
// then antecedent subset. That order depends only on the distinct items,
// never on the order of the records.
func (m *Miner) Mine(data *model.Dataset, th Thresholds) (model.RuleSet, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	m.strategy.Counter.Reset()

	seen := make(map[model.RuleKey]struct{})
	var rules model.RuleSet

	candidates := seedCandidates(data)
	for level := 1; len(candidates) > 0; level++ {
		frequent := pruneCandidates(candidates, m.strategy.Counter, data.Len(), th.Support)

		generated := 0
		for _, itemset := range frequent {
			for _, rule := range m.strategy.Rules.Generate(itemset, th.Support, th.Confidence) {
				key := rule.Key()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				rules = append(rules, rule)
				generated++
			}
		}

		stats := LevelStats{
			Level:      level,
			Candidates: len(candidates),
			Frequent:   len(frequent),
			Rules:      generated,
		}
		slog.Debug("Mined lattice level",
			"level", stats.Level,
			"candidates", stats.Candidates,
			"frequent", stats.Frequent,
			"rules", stats.Rules)
		if m.observer != nil {
			m.observer(stats)
		}

		candidates = joinCandidates(frequent, m.strategy.Join)
	}

	pruned := pruneByCoverage(rules, data, th.Coverage)
	pruned.Sort(m.order)

	slog.Debug("Pruned rules by coverage",
		"generated", len(rules),
		"kept", len(pruned),
		"coverage", th.Coverage,
		"cached_counts", m.strategy.Counter.Cached())

	return pruned, nil
}

// Admits reports whether rule passes the strategy's threshold tests.
func (m *Miner) Admits(rule model.Rule, support, confidence float64) bool {
	return m.strategy.Rules.Admits(rule, support, confidence)
}

// String describes the miner for logs.
func (m *Miner) String() string {
	return fmt.Sprintf("Miner(%T)", m.strategy.Rules)
}

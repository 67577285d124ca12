package mining

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/armine/internal/model"
)

// Engine mines association rules from a transactional dataset.
//
// An Engine owns its dataset, counting cache and rules. It is not safe for
// concurrent use; rules must not be read while Learn is running.
type Engine struct {
	opts    []Option
	data    model.Dataset
	counter *ItemCounter
	miner   *Miner
	rules   model.RuleSet
	learned bool
}

// NewEngine creates an empty association engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{opts: opts}
	e.LoadDataset(model.Dataset{})
	return e
}

// Load replaces the dataset with one transaction per row.
func (e *Engine) Load(rows [][]string) {
	e.LoadDataset(model.NewDataset(rows))
}

// LoadDataset replaces the dataset wholesale and clears the counting
// cache and any learned rules. Labels, if present, are ignored.
func (e *Engine) LoadDataset(data model.Dataset) {
	data.Labels = nil
	e.data = data
	e.counter = NewItemCounter(&e.data)

	join := PrefixJoin
	if data.Tabular {
		join = DistinctFeatureJoin
	}
	e.miner = NewMiner(Strategy{
		Counter: e.counter,
		Join:    join,
		Rules:   NewAssociationRules(e.counter, data.Len()),
	}, e.opts...)

	e.rules = nil
	e.learned = false
}

// Learn rebuilds the rule set from scratch. Thresholds are validated
// before any mining work starts; on error the previous rules are kept.
func (e *Engine) Learn(support, confidence float64, coverage int) error {
	th := Thresholds{Support: support, Confidence: confidence, Coverage: coverage}
	rules, err := e.miner.Mine(&e.data, th)
	if err != nil {
		return fmt.Errorf("failed to learn association rules: %w", err)
	}

	e.rules = rules
	e.learned = true

	slog.Info("Learned association rules",
		"transactions", e.data.Len(),
		"support", support,
		"confidence", confidence,
		"coverage", coverage,
		"rules", len(rules))
	return nil
}

// Rules returns the ranked rule set of the last successful Learn.
func (e *Engine) Rules() model.RuleSet {
	return e.rules
}

// Learned reports whether Learn has succeeded since the last load.
func (e *Engine) Learned() bool {
	return e.learned
}

// Admits reports whether rule passes the association thresholds s and c.
func (e *Engine) Admits(rule model.Rule, support, confidence float64) bool {
	return e.miner.Admits(rule, support, confidence)
}

// View returns the learned rules that pass stricter thresholds, keeping
// their order. Rules learned at a lower threshold are a superset, so this
// is cheaper than learning again.
func (e *Engine) View(support, confidence float64) (model.RuleSet, error) {
	if !e.learned {
		return nil, ErrNotLearned
	}
	if err := validateFraction("support", support); err != nil {
		return nil, err
	}
	if err := validateFraction("confidence", confidence); err != nil {
		return nil, err
	}
	return e.rules.Filter(func(r model.Rule) bool {
		return e.Admits(r, support, confidence)
	}), nil
}

// ItemCount returns how many transactions contain every given item.
func (e *Engine) ItemCount(items ...string) (int, error) {
	if e.data.Len() == 0 {
		return 0, ErrEmptyDataset
	}
	return e.counter.Count(model.ItemsFromStrings(items)), nil
}

// Dataset returns the loaded dataset.
func (e *Engine) Dataset() *model.Dataset {
	return &e.data
}

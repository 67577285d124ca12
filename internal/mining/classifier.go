package mining

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/armine/internal/model"
)

// Classifier learns class association rules from a labeled dataset and
// predicts labels for unseen instances.
//
// Like Engine it owns all of its state and is not safe for concurrent use.
type Classifier struct {
	opts    []Option
	order   model.RuleOrder
	data    model.Dataset
	counter *ClassCounter
	miner   *Miner

	rules        model.RuleSet
	defaultClass model.Label
	thresholds   Thresholds
	learned      bool
}

// NewClassifier creates an empty classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		opts:  opts,
		order: newOptions(opts).order,
	}
	c.reset(model.Dataset{Labels: []model.Label{}})
	return c
}

// Load replaces the training data. When transactional is false each row
// is a tabular record and its values are encoded per column.
func (c *Classifier) Load(rows [][]string, labels []string, transactional bool) error {
	data, err := model.NewLabeledDataset(rows, labels, transactional)
	if err != nil {
		return fmt.Errorf("failed to load training data: %w", err)
	}
	c.reset(data)
	return nil
}

// LoadDataset replaces the training data with an already built dataset.
func (c *Classifier) LoadDataset(data model.Dataset) error {
	if !data.Labeled() {
		return ErrUnlabeledDataset
	}
	if err := data.Validate(); err != nil {
		return err
	}
	c.reset(data)
	return nil
}

func (c *Classifier) reset(data model.Dataset) {
	c.data = data
	c.counter = NewClassCounter(&c.data)

	join := PrefixJoin
	if data.Tabular {
		join = DistinctFeatureJoin
	}
	c.miner = NewMiner(Strategy{
		Counter: c.counter,
		Join:    join,
		Rules:   NewClassificationRules(c.counter, data.Len(), c.order),
	}, c.opts...)

	c.rules = nil
	c.defaultClass = ""
	c.thresholds = Thresholds{}
	c.learned = false
}

// Learn rebuilds the class rules and the default class from scratch.
func (c *Classifier) Learn(support, confidence float64, coverage int) error {
	th := Thresholds{Support: support, Confidence: confidence, Coverage: coverage}
	rules, err := c.miner.Mine(&c.data, th)
	if err != nil {
		return fmt.Errorf("failed to learn classification rules: %w", err)
	}

	c.rules = rules
	c.thresholds = th
	c.defaultClass = c.deriveDefaultClass(rules, support, confidence)
	c.learned = true

	slog.Info("Learned classification rules",
		"records", c.data.Len(),
		"classes", len(c.counter.Labels()),
		"support", support,
		"confidence", confidence,
		"coverage", coverage,
		"rules", len(rules),
		"default_class", c.defaultClass)
	return nil
}

// deriveDefaultClass tallies the labels of training records that no
// admitted rule matches and returns the most frequent one. Ties go to the
// label seen first in the training data.
func (c *Classifier) deriveDefaultClass(rules model.RuleSet, support, confidence float64) model.Label {
	admitted := rules.Filter(func(r model.Rule) bool {
		return c.miner.Admits(r, support, confidence)
	})

	unmatched := make(map[model.Label]int)
	for i, txn := range c.data.Transactions {
		label := c.data.Labels[i]
		matched := false
		for _, rule := range admitted {
			if rule.MatchAntecedent(txn.Items) && rule.MatchConsequent(txn.Items, label) {
				matched = true
				break
			}
		}
		if !matched {
			unmatched[label]++
		}
	}

	var best model.Label
	bestCount := -1
	for _, label := range c.counter.Labels() {
		if unmatched[label] > bestCount {
			best = label
			bestCount = unmatched[label]
		}
	}
	return best
}

// Classify predicts the label of instance. Learned rules are scanned in
// ranked order; rules failing the given thresholds are skipped and at most
// TopK rules whose antecedent occurs in the instance vote with their lift.
// With no matching rule the default class is returned.
func (c *Classifier) Classify(instance []string, opts ClassifyOptions) (model.Label, error) {
	if !c.learned {
		return "", ErrNotLearned
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	return c.predict(c.encode(instance), opts), nil
}

// predict scores an encoded instance against the learned rules.
func (c *Classifier) predict(items model.Itemset, opts ClassifyOptions) model.Label {
	var (
		labels []model.Label
		scores = make(map[model.Label]float64)
		used   int
	)
	for _, rule := range c.rules {
		if used >= opts.TopK {
			break
		}
		if !c.miner.Admits(rule, opts.Support, opts.Confidence) {
			continue
		}
		if !rule.MatchAntecedent(items) {
			continue
		}
		if _, seen := scores[rule.Class]; !seen {
			labels = append(labels, rule.Class)
		}
		scores[rule.Class] += rule.Lift()
		used++
	}

	if used == 0 {
		return c.defaultClass
	}

	best := labels[0]
	for _, label := range labels[1:] {
		if scores[label] > scores[best] {
			best = label
		}
	}
	return best
}

// Accuracy classifies every record of data and returns the fraction whose
// prediction equals its label.
func (c *Classifier) Accuracy(data model.Dataset, opts ClassifyOptions) (float64, error) {
	if !c.learned {
		return 0, ErrNotLearned
	}
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	if !data.Labeled() {
		return 0, ErrUnlabeledDataset
	}
	if data.Len() == 0 {
		return 0, ErrEmptyDataset
	}

	correct := 0
	for i, txn := range data.Transactions {
		if c.predict(txn.Items, opts) == data.Labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(data.Len()), nil
}

// encode turns an instance into items the way training rows were encoded.
func (c *Classifier) encode(instance []string) model.Itemset {
	if !c.data.Tabular {
		return model.ItemsFromStrings(instance)
	}
	return model.EncodeTabularRow(instance)
}

// Rules returns the ranked class rules of the last successful Learn.
func (c *Classifier) Rules() model.RuleSet {
	return c.rules
}

// DefaultClass returns the fallback label. ok is false before Learn.
func (c *Classifier) DefaultClass() (model.Label, bool) {
	return c.defaultClass, c.learned
}

// Thresholds returns the thresholds of the last successful Learn.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Admits reports whether rule passes the relative support test at s and c.
func (c *Classifier) Admits(rule model.Rule, support, confidence float64) bool {
	return c.miner.Admits(rule, support, confidence)
}

// ClassCounts returns the per-label tally of records containing items.
// Tabular items must already be encoded with model.TabularItem.
func (c *Classifier) ClassCounts(items ...string) (ClassCounts, error) {
	if c.data.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	return c.counter.Classwise(model.ItemsFromStrings(items)), nil
}

// Dataset returns the training dataset.
func (c *Classifier) Dataset() *model.Dataset {
	return &c.data
}

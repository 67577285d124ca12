package mining

import (
	"github.com/Veraticus/armine/internal/model"
)

// Option configures an Engine, Classifier or Miner.
type Option func(*options)

type options struct {
	order    model.RuleOrder
	observer Observer
}

func newOptions(opts []Option) options {
	o := options{order: model.ByQuality}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithRuleOrder replaces the default (lift, confidence, |antecedent|)
// ranking. The order drives the final rule sorting and the classifier's
// choice of the best rule per itemset.
func WithRuleOrder(order model.RuleOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// WithObserver registers a callback invoked after every lattice level.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

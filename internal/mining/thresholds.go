package mining

import (
	"errors"
	"fmt"
)

// Mining errors.
var (
	// ErrEmptyDataset is returned when mining or counting is attempted
	// without any loaded transactions.
	ErrEmptyDataset = errors.New("dataset is empty")
	// ErrInvalidThreshold is returned for thresholds outside their domain.
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrNotLearned is returned when rules are used before Learn succeeded.
	ErrNotLearned = errors.New("no rules learned yet")
	// ErrUnlabeledDataset is returned when a classifier is given data
	// without class labels.
	ErrUnlabeledDataset = errors.New("dataset has no class labels")
)

// Defaults used when callers do not override them.
const (
	// DefaultCoverage is how many retained rules may claim one record.
	DefaultCoverage = 20
	// DefaultTopK is how many matching rules vote in Classify.
	DefaultTopK = 25
)

// Thresholds bound which itemsets and rules survive a Learn call.
type Thresholds struct {
	Support    float64 // Minimum support, in [0, 1]
	Confidence float64 // Minimum confidence, in [0, 1]
	Coverage   int     // Maximum rules claiming one record, positive
}

// Validate rejects thresholds outside their domain.
func (t Thresholds) Validate() error {
	if err := validateFraction("support", t.Support); err != nil {
		return err
	}
	if err := validateFraction("confidence", t.Confidence); err != nil {
		return err
	}
	if t.Coverage <= 0 {
		return fmt.Errorf("%w: coverage must be positive, got %d", ErrInvalidThreshold, t.Coverage)
	}
	return nil
}

// ClassifyOptions selects which learned rules vote when classifying.
type ClassifyOptions struct {
	Support    float64 // Ignore rules below this support test
	Confidence float64 // Ignore rules below this confidence
	TopK       int     // Maximum number of matching rules to use
}

// Validate rejects options outside their domain.
func (o ClassifyOptions) Validate() error {
	if err := validateFraction("support", o.Support); err != nil {
		return err
	}
	if err := validateFraction("confidence", o.Confidence); err != nil {
		return err
	}
	if o.TopK <= 0 {
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidThreshold, o.TopK)
	}
	return nil
}

func validateFraction(name string, value float64) error {
	// NaN fails both comparisons, so it is rejected too.
	if !(value >= 0 && value <= 1) {
		return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidThreshold, name, value)
	}
	return nil
}

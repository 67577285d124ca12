// Package service defines the interfaces shared between application packages.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/armine/internal/model"
)

// Mining modes recorded in the run log.
const (
	ModeAssociation    = "association"
	ModeClassification = "classification"
)

// DatasetInfo describes a stored dataset without its records.
type DatasetInfo struct {
	CreatedAt time.Time
	Name      string
	Source    string // File the dataset was imported from
	Records   int
	Items     int // Distinct items
	Labeled   bool
	Tabular   bool
}

// MiningRun is one entry of the learn log.
type MiningRun struct {
	CreatedAt    time.Time
	ID           string
	Dataset      string
	Mode         string
	DefaultClass string
	Support      float64
	Confidence   float64
	Coverage     int
	Rules        int
	Duration     time.Duration
}

// DatasetStore persists imported datasets and the mining run log.
// Learned rules are never stored.
type DatasetStore interface {
	SaveDataset(ctx context.Context, name, source string, data model.Dataset) error
	LoadDataset(ctx context.Context, name string) (model.Dataset, error)
	ListDatasets(ctx context.Context) ([]DatasetInfo, error)
	DeleteDataset(ctx context.Context, name string) error

	RecordRun(ctx context.Context, run *MiningRun) error
	ListRuns(ctx context.Context, dataset string, limit int) ([]MiningRun, error)

	Migrate(ctx context.Context) error
	Close() error
}

// RuleWriter publishes a rule set to an external destination.
type RuleWriter interface {
	WriteRules(ctx context.Context, title string, rules model.RuleSet, tabular bool) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

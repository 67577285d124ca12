package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/service"
)

// Storage errors.
var (
	ErrNotFound       = common.ErrNotFound
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrInvalidRun     = errors.New("invalid mining run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDataset checks that a dataset can be stored and read back intact.
func validateDataset(data model.Dataset) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	if data.Len() == 0 {
		return fmt.Errorf("%w: no records", ErrInvalidDataset)
	}
	for i, label := range data.Labels {
		if strings.TrimSpace(string(label)) == "" {
			return fmt.Errorf("%w: record %d has an empty label", ErrInvalidDataset, i+1)
		}
	}
	return nil
}

// validateRun validates a mining run entry.
func validateRun(run *service.MiningRun) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.Dataset) == "" {
		return fmt.Errorf("%w: missing dataset", ErrInvalidRun)
	}
	switch run.Mode {
	case service.ModeAssociation, service.ModeClassification:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRun, run.Mode)
	}
	if run.Support < 0 || run.Support > 1 || run.Confidence < 0 || run.Confidence > 1 {
		return fmt.Errorf("%w: thresholds must be between 0 and 1", ErrInvalidRun)
	}
	if run.Coverage <= 0 {
		return fmt.Errorf("%w: coverage must be positive", ErrInvalidRun)
	}
	if run.Rules < 0 {
		return fmt.Errorf("%w: negative rule count", ErrInvalidRun)
	}
	return nil
}

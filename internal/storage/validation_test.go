package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/service"
)

func TestValidateContext(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	//nolint:staticcheck // nil context is the case under test
	if err := validateContext(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("validateContext(nil) = %v, want ErrNilContext", err)
	}
	if err := validateContext(canceled); err != nil {
		t.Errorf("canceled context should still be valid, got %v", err)
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "baskets", wantErr: false},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: " \t ", wantErr: true},
		{name: "padded string", str: "  baskets  ", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "name")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "name") {
				t.Errorf("validateString() error should contain param name, got %v", err)
			}
		})
	}
}

func TestValidateDataset(t *testing.T) {
	labeled, err := model.NewLabeledDataset([][]string{{"a"}}, []string{"x"}, true)
	if err != nil {
		t.Fatalf("Failed to build dataset: %v", err)
	}

	tests := []struct {
		name    string
		data    model.Dataset
		wantErr bool
	}{
		{name: "transactions", data: model.NewDataset([][]string{{"a", "b"}}), wantErr: false},
		{name: "labeled", data: labeled, wantErr: false},
		{name: "empty", data: model.Dataset{}, wantErr: true},
		{
			name: "label count mismatch",
			data: model.Dataset{
				Transactions: []model.Transaction{model.NewTransaction("a")},
				Labels:       []model.Label{"x", "y"},
			},
			wantErr: true,
		},
		{
			name: "blank label",
			data: model.Dataset{
				Transactions: []model.Transaction{model.NewTransaction("a")},
				Labels:       []model.Label{" "},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDataset(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDataset() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("validateDataset() error should wrap ErrInvalidDataset, got %v", err)
			}
		})
	}
}

func TestValidateRun(t *testing.T) {
	valid := func() *service.MiningRun {
		return &service.MiningRun{
			Dataset:    "baskets",
			Mode:       service.ModeAssociation,
			Support:    0.2,
			Confidence: 0.1,
			Coverage:   20,
			Rules:      70,
		}
	}

	tests := []struct {
		mutate  func(*service.MiningRun)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*service.MiningRun) {}, wantErr: false},
		{name: "missing dataset", mutate: func(r *service.MiningRun) { r.Dataset = "" }, wantErr: true},
		{name: "unknown mode", mutate: func(r *service.MiningRun) { r.Mode = "clustering" }, wantErr: true},
		{name: "support above one", mutate: func(r *service.MiningRun) { r.Support = 1.2 }, wantErr: true},
		{name: "negative confidence", mutate: func(r *service.MiningRun) { r.Confidence = -0.1 }, wantErr: true},
		{name: "zero coverage", mutate: func(r *service.MiningRun) { r.Coverage = 0 }, wantErr: true},
		{name: "negative rules", mutate: func(r *service.MiningRun) { r.Rules = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := valid()
			tt.mutate(run)
			err := validateRun(run)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRun() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := validateRun(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateRun(nil) = %v, want ErrNilParameter", err)
	}
}

//go:build integration
// +build integration

package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Veraticus/armine/internal/model"
	"github.com/stretchr/testify/require"
)

func integrationConfig(t *testing.T) Config {
	t.Helper()
	config := DefaultConfig()
	config.SpreadsheetName = "armine rules - integration"
	config.BatchSize = 100
	config.RetryDelay = time.Second
	config.LoadFromEnv()
	if err := config.Validate(); err != nil {
		t.Skipf("Google Sheets credentials not available: %v", err)
	}
	return config
}

func TestWriter_Integration_WriteRules(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	writer, err := NewWriter(ctx, integrationConfig(t), logger)
	require.NoError(t, err)

	require.NoError(t, writer.WriteRules(ctx, "Integration", testRules(), false))
}

func TestWriter_Integration_LargeRuleSet(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	writer, err := NewWriter(ctx, integrationConfig(t), logger)
	require.NoError(t, err)

	rules := make(model.RuleSet, 0, 2500)
	for i := range 2500 {
		rules = append(rules, model.NewAssociationRule(
			model.ItemsFromStrings([]string{fmt.Sprintf("item-%04d", i)}),
			model.ItemsFromStrings([]string{"target"}),
			i%50+1, 60, 80, 100))
	}

	require.NoError(t, writer.WriteRules(ctx, "Large", rules, false))
}

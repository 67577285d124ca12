package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/armine/internal/cli"
	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/config"
	"github.com/Veraticus/armine/internal/mining"
	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/service"
	"github.com/Veraticus/armine/internal/sheets"
	"github.com/spf13/cobra"
)

// newRuleWriter creates the Sheets writer used by export sheets.
var newRuleWriter = func(ctx context.Context, cfg sheets.Config) (service.RuleWriter, error) {
	return sheets.NewWriter(ctx, cfg, slog.Default())
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish learned rules",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets <file|dataset>",
		Short: "Learn rules and write them to Google Sheets",
		Long: `Learn rules and write them to a tab of a Google spreadsheet.

The tab is named after --title (default: the dataset name) and is replaced on
every export. Credentials come from the sheets section of the config file or
GOOGLE_SHEETS_* environment variables; run 'armine auth sheets' once to set up
OAuth2.`,
		Args: cobra.ExactArgs(1),
		RunE: runExportSheets,
	}

	addThresholdFlags(cmd)
	addSourceFlags(cmd, false)
	cmd.Flags().String("title", "", "spreadsheet tab title (default: dataset name)")
	cmd.Flags().Bool("classify", false, "export class rules from a labeled dataset instead of association rules")

	return cmd
}

func runExportSheets(cmd *cobra.Command, args []string) error {
	interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Sheets export")
	ctx := interruptHandler.HandleInterrupts(cmd.Context())
	defer interruptHandler.Stop()

	m, err := miningConfig(cmd)
	if err != nil {
		return err
	}
	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return common.NewUserError("Google Sheets is not configured; run 'armine auth sheets' or set sheets.service_account_path", err)
	}

	classify, _ := cmd.Flags().GetBool("classify")
	data, name, err := loadDataset(ctx, args[0], sourceOptions(cmd, classify))
	if err != nil {
		return err
	}

	rules, err := learnRules(data, m, classify)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = name
	}

	writer, err := newRuleWriter(ctx, *sheetsConfig)
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.WriteRules(ctx, title, rules, data.Tabular); err != nil {
		if interruptHandler.WasInterrupted() {
			return common.NewUserError("export interrupted", err)
		}
		return fmt.Errorf("failed to export rules: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d rules to tab %q", len(rules), title))) //nolint:forbidigo // User-facing output
	return nil
}

// learnRules learns association rules, or class rules when classify is set.
func learnRules(data model.Dataset, m config.Mining, classify bool) (model.RuleSet, error) {
	if classify {
		classifier := mining.NewClassifier()
		if err := classifier.LoadDataset(data); err != nil {
			return nil, err
		}
		if err := classifier.Learn(m.Support, m.Confidence, m.Coverage); err != nil {
			return nil, err
		}
		return classifier.Rules(), nil
	}

	engine := mining.NewEngine()
	engine.LoadDataset(data)
	if err := engine.Learn(m.Support, m.Confidence, m.Coverage); err != nil {
		return nil, err
	}
	return engine.Rules(), nil
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/armine/internal/cli"
	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/mining"
	"github.com/Veraticus/armine/internal/report"
	"github.com/Veraticus/armine/internal/service"
	"github.com/spf13/cobra"
)

func mineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine <file|dataset>",
		Short: "Mine association rules from a dataset",
		Long: `Mine association rules from a CSV or OFX file, or from a stored dataset.

Rules are learned once at --support and --confidence, pruned by coverage and
ranked by lift, confidence and antecedent size. --view-support and
--view-confidence show only the learned rules passing stricter thresholds
without learning again.

Examples:
  armine mine baskets.csv --support 0.4
  armine mine groceries --format json > rules.json
  armine mine statement.qfx --support 0.1 --view-confidence 0.8`,
		Args: cobra.ExactArgs(1),
		RunE: runMine,
	}

	addThresholdFlags(cmd)
	addSourceFlags(cmd, false)
	cmd.Flags().StringP("format", "f", string(report.FormatTable), "output format (table, csv, json, yaml)")
	cmd.Flags().Float64("view-support", 0, "only show rules with at least this support")
	cmd.Flags().Float64("view-confidence", 0, "only show rules with at least this confidence")
	cmd.Flags().IntP("limit", "n", 0, "show at most this many rules (0 shows all)")

	return cmd
}

func runMine(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := miningConfig(cmd)
	if err != nil {
		return err
	}
	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return common.NewUserError("invalid --format", err)
	}

	data, name, err := loadDataset(ctx, args[0], sourceOptions(cmd, false))
	if err != nil {
		return err
	}

	progress := cli.NewLearnProgress(cmd.ErrOrStderr(), "Mining "+name, format == report.FormatTable)
	engine := mining.NewEngine(mining.WithObserver(func(s mining.LevelStats) {
		progress.Observe(s)
		slog.Debug("Finished lattice level",
			"level", s.Level,
			"candidates", s.Candidates,
			"frequent", s.Frequent,
			"rules", s.Rules)
	}))
	engine.LoadDataset(data)

	start := time.Now()
	err = engine.Learn(m.Support, m.Confidence, m.Coverage)
	progress.Finish()
	if err != nil {
		return err
	}
	duration := elapsed(start)

	rules := engine.Rules()
	if cmd.Flags().Changed("view-support") || cmd.Flags().Changed("view-confidence") {
		viewSupport := m.Support
		viewConfidence := m.Confidence
		if cmd.Flags().Changed("view-support") {
			viewSupport, _ = cmd.Flags().GetFloat64("view-support")
		}
		if cmd.Flags().Changed("view-confidence") {
			viewConfidence, _ = cmd.Flags().GetFloat64("view-confidence")
		}
		if rules, err = engine.View(viewSupport, viewConfidence); err != nil {
			return common.NewUserError("invalid view thresholds", err)
		}
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		rules = rules.TopN(limit)
	}

	recordRun(ctx, &service.MiningRun{
		Dataset:    name,
		Mode:       service.ModeAssociation,
		Support:    m.Support,
		Confidence: m.Confidence,
		Coverage:   m.Coverage,
		Rules:      len(engine.Rules()),
		Duration:   duration,
	})

	opts := report.Options{
		Title:   cli.RuleTitle(name, len(rules), "rules"),
		Tabular: data.Tabular,
	}
	if err := report.Write(cmd.OutOrStdout(), format, rules, opts); err != nil {
		return fmt.Errorf("failed to write rules: %w", err)
	}

	if format == report.FormatTable {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatThresholds(m.Support, m.Confidence, m.Coverage))                 //nolint:forbidigo // User-facing output
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("%s in %s", progress.Summary(), duration))) //nolint:forbidigo // User-facing output
	}
	return nil
}

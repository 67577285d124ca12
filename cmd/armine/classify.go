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

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <train-file|dataset>",
		Short: "Learn classification rules and predict labels",
		Long: `Learn class association rules from a labeled dataset, then classify an
instance or measure accuracy on the training records.

Labeled CSV files are tabular by default: every row has the same columns and
the label sits in --label-index. With --transactional each row is a list of
items plus its label. OFX statements use the transaction type as the label.

Without --instance or --evaluate the learned rules are printed.

Examples:
  armine classify weather.csv --instance sunny,hot,high,weak
  armine classify groceries.csv --transactional --label-index 0 --instance Milk,Spinach
  armine classify statements --evaluate`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	addThresholdFlags(cmd)
	addSourceFlags(cmd, true)
	cmd.Flags().StringP("instance", "i", "", "comma separated instance to classify")
	cmd.Flags().Int("top-k", mining.DefaultTopK, "matching rules that vote (default from mining.top_k)")
	cmd.Flags().Bool("evaluate", false, "classify every training record and print the accuracy")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	m, err := miningConfig(cmd)
	if err != nil {
		return err
	}
	opts := m.ClassifyOptions()
	if err := opts.Validate(); err != nil {
		return common.NewUserError("invalid --top-k", err)
	}

	data, name, err := loadDataset(ctx, args[0], sourceOptions(cmd, true))
	if err != nil {
		return err
	}

	progress := cli.NewLearnProgress(cmd.ErrOrStderr(), "Learning "+name, true)
	classifier := mining.NewClassifier(mining.WithObserver(progress.Observe))
	if err := classifier.LoadDataset(data); err != nil {
		progress.Finish()
		return err
	}

	start := time.Now()
	err = classifier.Learn(m.Support, m.Confidence, m.Coverage)
	progress.Finish()
	if err != nil {
		return err
	}
	duration := elapsed(start)
	defaultClass, _ := classifier.DefaultClass()
	slog.Debug("Classifier ready", "summary", progress.Summary(), "duration", duration)

	recordRun(ctx, &service.MiningRun{
		Dataset:      name,
		Mode:         service.ModeClassification,
		Support:      m.Support,
		Confidence:   m.Confidence,
		Coverage:     m.Coverage,
		Rules:        len(classifier.Rules()),
		DefaultClass: string(defaultClass),
		Duration:     duration,
	})

	instance, _ := cmd.Flags().GetString("instance")
	evaluate, _ := cmd.Flags().GetBool("evaluate")

	if instance != "" {
		label, err := classifier.Classify(splitInstance(instance, data.Tabular), opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Predicted class: %s", label))) //nolint:forbidigo // User-facing output
	}

	if evaluate {
		accuracy, err := classifier.Accuracy(*classifier.Dataset(), opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatKeyValue("Training accuracy", fmt.Sprintf("%.1f%% of %d records", accuracy*100, data.Len()))) //nolint:forbidigo // User-facing output
	}

	if instance == "" && !evaluate {
		title := cli.RuleTitle(name, len(classifier.Rules()), "class rules")
		if err := report.WriteTable(out, classifier.Rules(), report.Options{Title: title, Tabular: data.Tabular}); err != nil {
			return fmt.Errorf("failed to write rules: %w", err)
		}
		fmt.Fprintln(out, cli.FormatThresholds(m.Support, m.Confidence, m.Coverage)) //nolint:forbidigo // User-facing output
		fmt.Fprintln(out, cli.FormatKeyValue("Default class", string(defaultClass)))  //nolint:forbidigo // User-facing output
	}

	return nil
}

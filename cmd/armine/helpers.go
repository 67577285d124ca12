package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/config"
	"github.com/Veraticus/armine/internal/dataset"
	"github.com/Veraticus/armine/internal/mining"
	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/service"
	"github.com/Veraticus/armine/internal/storage"
	"github.com/spf13/cobra"
)

// initStorage opens the dataset store and brings its schema up to date.
func initStorage(ctx context.Context) (service.DatasetStore, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// addSourceFlags registers the flags describing how a dataset file is read.
func addSourceFlags(cmd *cobra.Command, labeled bool) {
	if !labeled {
		cmd.Flags().Bool("labeled", false, "file carries a class label column")
	}
	cmd.Flags().Int("label-index", -1, "label column of a labeled CSV; negative counts from the end")
	cmd.Flags().Bool("transactional", false, "labeled CSV rows are item lists rather than tabular records")
	cmd.Flags().Bool("ofx", false, "read the file as an OFX/QFX statement regardless of its extension")
}

// sourceOptions builds dataset options from the flags added by
// addSourceFlags. Commands that always need labels pass labeled=true.
func sourceOptions(cmd *cobra.Command, labeled bool) dataset.Options {
	opts := dataset.Options{Labeled: labeled}
	if !labeled {
		opts.Labeled, _ = cmd.Flags().GetBool("labeled")
	}
	opts.LabelIndex, _ = cmd.Flags().GetInt("label-index")
	opts.Transactional, _ = cmd.Flags().GetBool("transactional")
	if ofx, _ := cmd.Flags().GetBool("ofx"); ofx {
		opts.Format = dataset.FormatOFX
	}
	return opts
}

// loadDataset resolves arg to a dataset. An existing file is read with
// opts; anything else is looked up by name in the dataset store. The
// returned name is the file's base name or the stored dataset name.
func loadDataset(ctx context.Context, arg string, opts dataset.Options) (model.Dataset, string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := dataset.ReadFile(arg, opts)
		if err != nil {
			return model.Dataset{}, "", err
		}
		slog.Debug("Loaded dataset from file", "path", arg, "records", data.Len())
		return data, filepath.Base(arg), nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return model.Dataset{}, "", fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	data, err := store.LoadDataset(ctx, arg)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.Dataset{}, "", common.NewUserError(
				fmt.Sprintf("%q is neither a readable file nor a stored dataset", arg), err)
		}
		return model.Dataset{}, "", err
	}
	if opts.Labeled && !data.Labeled() {
		return model.Dataset{}, "", common.NewUserError(
			fmt.Sprintf("dataset %q was imported without labels", arg), common.ErrInvalidInput)
	}
	slog.Debug("Loaded stored dataset", "name", arg, "records", data.Len())
	return data, arg, nil
}

// miningConfig reads the configured thresholds and applies any threshold
// flags the user set explicitly.
func miningConfig(cmd *cobra.Command) (config.Mining, error) {
	m, err := config.LoadMining()
	if err != nil {
		return config.Mining{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("support") {
		m.Support, _ = flags.GetFloat64("support")
	}
	if flags.Changed("confidence") {
		m.Confidence, _ = flags.GetFloat64("confidence")
	}
	if flags.Changed("coverage") {
		m.Coverage, _ = flags.GetInt("coverage")
	}
	if flags.Changed("top-k") {
		m.TopK, _ = flags.GetInt("top-k")
	}

	if err := m.Thresholds().Validate(); err != nil {
		return config.Mining{}, common.NewUserError("invalid thresholds", err)
	}
	return m, nil
}

// addThresholdFlags registers the learn threshold flags.
func addThresholdFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("support", config.DefaultSupport, "minimum support (default from mining.support)")
	cmd.Flags().Float64("confidence", config.DefaultConfidence, "minimum confidence (default from mining.confidence)")
	cmd.Flags().Int("coverage", mining.DefaultCoverage, "records a rule may claim before it stops earning coverage (default from mining.coverage)")
}

// recordRun appends a run to the log. Failures only warn: the run itself
// already succeeded.
func recordRun(ctx context.Context, run *service.MiningRun) {
	store, err := initStorage(ctx)
	if err != nil {
		slog.Warn("Failed to open run log", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.RecordRun(ctx, run); err != nil {
		slog.Warn("Failed to record mining run", "error", err)
		return
	}
	slog.Debug("Recorded mining run", "id", run.ID, "dataset", run.Dataset)
}

// splitInstance parses a comma separated instance and trims each value.
// Tabular instances are positional, so their empty values are kept.
func splitInstance(s string, tabular bool) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" || tabular {
			out = append(out, part)
		}
	}
	return out
}

func elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}

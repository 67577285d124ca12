package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/armine/internal/cli"
	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/dataset"
	"github.com/Veraticus/armine/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func datasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ds"},
		Short:   "Manage stored datasets",
		Long:    `Import CSV and OFX files into the local dataset store, list them with their recent mining runs, and delete them.`,
	}

	cmd.AddCommand(datasetsImportCmd())
	cmd.AddCommand(datasetsListCmd())
	cmd.AddCommand(datasetsDeleteCmd())

	return cmd
}

func datasetsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV or OFX file as a named dataset",
		Long: `Import a CSV or OFX/QFX file into the dataset store.

Examples:
  armine datasets import baskets.csv --name groceries
  armine datasets import weather.csv --labeled --label-index -1
  armine datasets import ~/Downloads/checking.qfx --name checking --labeled`,
		Args: cobra.ExactArgs(1),
		RunE: runDatasetsImport,
	}

	addSourceFlags(cmd, false)
	cmd.Flags().String("name", "", "dataset name (default: file name without extension)")
	cmd.Flags().Bool("replace", false, "replace a dataset with the same name")

	return cmd
}

func runDatasetsImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	replace, _ := cmd.Flags().GetBool("replace")

	data, err := dataset.ReadFile(path, sourceOptions(cmd, false))
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if replace {
		if err := store.DeleteDataset(ctx, name); err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to replace dataset: %w", err)
		}
	}

	if err := store.SaveDataset(ctx, name, path, data); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return common.NewUserError(fmt.Sprintf("dataset %q already exists; use --replace to overwrite it", name), err)
		}
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	kind := "transactions"
	if data.Labeled() {
		kind = fmt.Sprintf("labeled records, %d classes", len(data.ClassLabels()))
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess( //nolint:forbidigo // User-facing output
		fmt.Sprintf("Imported %q: %d %s, %d distinct items", name, data.Len(), kind, len(data.Items()))))
	return nil
}

func datasetsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored datasets and recent mining runs",
		Args:  cobra.NoArgs,
		RunE:  runDatasetsList,
	}

	cmd.Flags().String("match", "", "only list datasets whose name or source matches this regular expression")
	cmd.Flags().Int("runs", 5, "recent mining runs to show (0 hides them)")

	return cmd
}

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	listCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func runDatasetsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	pattern, _ := cmd.Flags().GetString("match")
	runLimit, _ := cmd.Flags().GetInt("runs")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	infos, err := store.ListDatasets(ctx)
	if err != nil {
		return err
	}

	var shown []service.DatasetInfo
	for _, info := range infos {
		if pattern != "" {
			ok, err := common.MatchRegex(pattern, info.Name, info.Source)
			if err != nil {
				return common.NewUserError("invalid --match pattern", err)
			}
			if !ok {
				continue
			}
		}
		shown = append(shown, info)
	}

	if len(shown) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No datasets stored. Import one with 'armine datasets import'.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s Datasets", cli.FolderIcon))) //nolint:forbidigo // User-facing output
	fmt.Fprintln(out, renderDatasets(shown))                                       //nolint:forbidigo // User-facing output

	if runLimit <= 0 {
		return nil
	}
	for _, info := range shown {
		runs, err := store.ListRuns(ctx, info.Name, runLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			continue
		}
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s Recent runs: %s", cli.ChartIcon, info.Name))) //nolint:forbidigo // User-facing output
		fmt.Fprintln(out, renderRuns(runs))                                                              //nolint:forbidigo // User-facing output
	}
	return nil
}

func renderDatasets(infos []service.DatasetInfo) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(cli.SubtleColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return listCellStyle
		}).
		Headers("Name", "Records", "Items", "Kind", "Source", "Imported")

	for _, info := range infos {
		kind := "transactions"
		switch {
		case info.Labeled && info.Tabular:
			kind = "labeled, tabular"
		case info.Labeled:
			kind = "labeled"
		}
		t.Row(
			info.Name,
			strconv.Itoa(info.Records),
			strconv.Itoa(info.Items),
			kind,
			info.Source,
			info.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}

func renderRuns(runs []service.MiningRun) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(cli.SubtleColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return listCellStyle
		}).
		Headers("When", "Mode", "Support", "Confidence", "Coverage", "Rules", "Default", "Took")

	for _, run := range runs {
		t.Row(
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Mode,
			strconv.FormatFloat(run.Support, 'g', -1, 64),
			strconv.FormatFloat(run.Confidence, 'g', -1, 64),
			strconv.Itoa(run.Coverage),
			strconv.Itoa(run.Rules),
			run.DefaultClass,
			run.Duration.String(),
		)
	}
	return t.String()
}

func datasetsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasetsDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runDatasetsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	name := args[0]

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := cli.Confirm(ctx, cmd.InOrStdin(), out, fmt.Sprintf("Delete dataset %q?", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Nothing deleted")) //nolint:forbidigo // User-facing output
			return nil
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteDataset(ctx, name); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("dataset %q does not exist", name), err)
		}
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted dataset %q", name))) //nolint:forbidigo // User-facing output
	return nil
}

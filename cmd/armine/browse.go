package main

import (
	"fmt"

	"github.com/Veraticus/armine/internal/tui"
	"github.com/Veraticus/armine/internal/tui/themes"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <file|dataset>",
		Short: "Explore learned rules interactively",
		Long: `Learn rules and open them in an interactive table.

Type / to filter by item text or by statistic (lift>1.5 conf>=0.8 support>0.2),
press d to toggle the detail pane and ? for help.`,
		Args: cobra.ExactArgs(1),
		RunE: runBrowse,
	}

	addThresholdFlags(cmd)
	addSourceFlags(cmd, false)
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("classify", false, "learn class rules from a labeled dataset instead of association rules")

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := miningConfig(cmd)
	if err != nil {
		return err
	}
	classify, _ := cmd.Flags().GetBool("classify")
	opts := sourceOptions(cmd, classify)

	data, name, err := loadDataset(ctx, args[0], opts)
	if err != nil {
		return err
	}

	rules, err := learnRules(data, m, classify)
	if err != nil {
		return err
	}

	kind := "association rules"
	if classify {
		kind = "class rules"
	}
	return tui.Run(ctx, rules, browseOptions(cmd, fmt.Sprintf("%s: %s", name, kind), data.Tabular)...)
}

func browseOptions(cmd *cobra.Command, title string, tabular bool) []tui.Option {
	themeName, _ := cmd.Flags().GetString("theme")
	return []tui.Option{
		tui.WithTitle(title),
		tui.WithTabular(tabular),
		tui.WithTheme(themes.GetTheme(themeName)),
		tui.WithAltScreen(true),
	}
}

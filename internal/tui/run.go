package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/armine/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the rule browser and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, rules model.RuleSet, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(newModel(rules, cfg), programOpts...).Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("failed to run rule browser: %w", err)
	}
	return nil
}

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Veraticus/armine/internal/mining"
	"github.com/schollz/progressbar/v3"
)

// LearnProgress shows a spinner while the miner walks the itemset lattice.
// Its Observe method is a mining.Observer.
type LearnProgress struct {
	bar    *progressbar.ProgressBar
	levels []mining.LevelStats
	mu     sync.Mutex
}

// NewLearnProgress creates a spinner on w. With visible false nothing is
// drawn but level statistics are still collected.
func NewLearnProgress(w io.Writer, description string, visible bool) *LearnProgress {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("candidates"),
		progressbar.OptionShowIts(),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionClearOnFinish(),
	)
	return &LearnProgress{bar: bar}
}

// Observe records one finished lattice level.
func (p *LearnProgress) Observe(s mining.LevelStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.levels = append(p.levels, s)
	p.bar.Describe(fmt.Sprintf("[cyan]level %d[reset]: %d frequent, %d rules", s.Level, s.Frequent, s.Rules))
	if err := p.bar.Add(s.Candidates); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish clears the spinner.
func (p *LearnProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}

// Levels returns the statistics observed so far.
func (p *LearnProgress) Levels() []mining.LevelStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]mining.LevelStats, len(p.levels))
	copy(out, p.levels)
	return out
}

// Summary describes the whole search in one line.
func (p *LearnProgress) Summary() string {
	var candidates, frequent, rules int
	levels := p.Levels()
	for _, s := range levels {
		candidates += s.Candidates
		frequent += s.Frequent
		rules += s.Rules
	}
	return fmt.Sprintf("%d levels, %d candidates, %d frequent itemsets, %d rules before coverage pruning",
		len(levels), candidates, frequent, rules)
}

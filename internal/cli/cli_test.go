package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/armine/internal/mining"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		format func(string) string
		name   string
		icon   string
	}{
		{name: "success", format: FormatSuccess, icon: SuccessIcon},
		{name: "warning", format: FormatWarning, icon: WarningIcon},
		{name: "info", format: FormatInfo, icon: InfoIcon},
		{name: "title", format: FormatTitle, icon: MineIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("70 rules")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "70 rules")
		})
	}

	assert.Contains(t, FormatKeyValue("Support", "0.2"), "0.2")
	assert.Contains(t, FormatPrompt("Delete dataset?"), "Delete dataset?")
	assert.Equal(t, RuleIcon+" baskets: 39 rules", RuleTitle("baskets", 39, "rules"))

	thresholds := FormatThresholds(0.2, 0.1, 20)
	assert.Contains(t, thresholds, "Thresholds")
	assert.Contains(t, thresholds, "support 0.2, confidence 0.1, coverage 20")
}

func TestInterruptHandler(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Sheets export")
	assert.False(t, handler.WasInterrupted())

	ctx := handler.HandleInterrupts(context.Background())
	handler.interrupt()
	handler.interrupt()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}

	assert.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(output.String(), "Sheets export interrupted!"))
}

func TestInterruptHandler_Stop(t *testing.T) {
	handler := NewInterruptHandler(nil, "Mining")
	ctx := handler.HandleInterrupts(context.Background())
	handler.Stop()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "yes", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(context.Background(), strings.NewReader(tt.input), &out, "Delete dataset baskets?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete dataset baskets? [y/N]")
		})
	}
}

func TestConfirm_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader, writer := io.Pipe()
	defer func() { _ = writer.Close() }()

	_, err := Confirm(ctx, reader, io.Discard, "Delete?")
	require.ErrorIs(t, err, ErrInputCancelled)
}

func TestLearnProgress(t *testing.T) {
	var out syncBuffer
	p := NewLearnProgress(&out, "Mining rules", false)

	e := mining.NewEngine(mining.WithObserver(p.Observe))
	e.Load([][]string{{"a", "b"}, {"a", "b"}, {"a", "c"}})
	require.NoError(t, e.Learn(0.5, 0.1, mining.DefaultCoverage))
	p.Finish()

	levels := p.Levels()
	require.NotEmpty(t, levels)
	assert.Equal(t, 1, levels[0].Level)
	assert.Equal(t, 3, levels[0].Candidates)
	assert.Contains(t, p.Summary(), "candidates")
}

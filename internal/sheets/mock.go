package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/armine/internal/model"
)

// MockWriter is a mock implementation of service.RuleWriter for testing.
type MockWriter struct {
	WriteFunc  func(ctx context.Context, title string, rules model.RuleSet, tabular bool) error
	WriteCalls []WriteCall
	mu         sync.Mutex
}

// WriteCall represents a single call to WriteRules.
type WriteCall struct {
	Error   error
	Title   string
	Rules   model.RuleSet
	Tabular bool
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// WriteRules records the call and returns the configured error, if any.
func (m *MockWriter) WriteRules(ctx context.Context, title string, rules model.RuleSet, tabular bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, title, rules, tabular)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Title:   title,
		Rules:   rules,
		Tabular: tabular,
		Error:   err,
	})

	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to fail every WriteRules call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, string, model.RuleSet, bool) error {
		return err
	}
}

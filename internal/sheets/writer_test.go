package sheets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func testRules() model.RuleSet {
	return model.RuleSet{
		model.NewAssociationRule(
			model.ItemsFromStrings([]string{"Beer"}),
			model.ItemsFromStrings([]string{"Bread"}),
			2, 3, 4, 5),
		model.NewClassificationRule(
			model.ItemsFromStrings([]string{"feature1-sunny"}),
			"no", 2, 2, 2, 4),
	}
}

func TestRuleRows(t *testing.T) {
	rows := ruleRows("Baskets", testRules(), true)
	require.Len(t, rows, headerRows+2)

	assert.Equal(t, []any{"Baskets", "2 rules"}, rows[0])
	assert.Empty(t, rows[1])
	assert.Equal(t, sheetHeaders, rows[2])

	first := rows[3]
	require.Len(t, first, len(sheetHeaders))
	assert.Equal(t, "Beer", first[0])
	assert.Equal(t, "Bread", first[1])
	assert.InDelta(t, 2.0/3.0, first[2].(float64), 1e-9)
	assert.Equal(t, 2, first[len(first)-1])

	second := rows[4]
	assert.Equal(t, "sunny", second[0])
	assert.Equal(t, "no", second[1])
}

// fakeSheets is a minimal Sheets API that records the calls it receives.
type fakeSheets struct {
	calls []string
	mu    sync.Mutex
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet:
		f.calls = append(f.calls, "get")
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-123","sheets":[{"properties":{"sheetId":0,"title":"Sheet1"}}]}`)
	case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		f.calls = append(f.calls, "batchUpdate")
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-123","replies":[{"addSheet":{"properties":{"sheetId":42,"title":"Rules"}}}]}`)
	case strings.HasSuffix(r.URL.Path, ":clear"):
		f.calls = append(f.calls, "clear")
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-123"}`)
	case r.Method == http.MethodPut:
		f.calls = append(f.calls, "update")
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-123"}`)
	default:
		http.Error(w, "unexpected call", http.StatusNotFound)
	}
}

func (f *fakeSheets) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestWriter_WriteRules(t *testing.T) {
	fake := &fakeSheets{}
	server := httptest.NewServer(fake)
	defer server.Close()

	ctx := context.Background()
	srv, err := sheets.NewService(ctx,
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)

	config := DefaultConfig()
	config.SpreadsheetID = "sheet-123"
	config.BatchSize = 2
	config.RetryAttempts = 1
	config.RetryDelay = time.Millisecond

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var writer service.RuleWriter = NewWriterWithService(config, srv, logger)

	require.NoError(t, writer.WriteRules(ctx, "Rules", testRules(), false))

	// Five rows in batches of two, then the formatting batch update.
	assert.Equal(t, []string{
		"get", "batchUpdate", "clear",
		"update", "update", "update",
		"batchUpdate",
	}, fake.Calls())
}

func TestMockWriter(t *testing.T) {
	mock := NewMockWriter()
	ctx := context.Background()

	require.NoError(t, mock.WriteRules(ctx, "first", testRules(), false))

	boom := errors.New("quota exceeded")
	mock.SetWriteError(boom)
	require.ErrorIs(t, mock.WriteRules(ctx, "second", nil, true), boom)

	calls := mock.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "first", calls[0].Title)
	assert.Len(t, calls[0].Rules, 2)
	assert.NoError(t, calls[0].Error)
	assert.True(t, calls[1].Tabular)
	assert.ErrorIs(t, calls[1].Error, boom)
}

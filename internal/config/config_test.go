package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/armine/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ARMINE_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/rules.db", want: filepath.Join(home, "rules.db")},
		{in: "$ARMINE_TEST_DIR/rules.db", want: "/data/rules.db"},
		{in: "/abs/path", want: "/abs/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}

	assert.Equal(t, filepath.Join(home, ".local", "share", "armine", "armine.db"), DefaultDatabasePath())
	assert.Equal(t, filepath.Join(home, ".config", "armine", "sheets-token.json"), DefaultTokenPath())
}

func TestLoadMining(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	m, err := LoadMining()
	require.NoError(t, err)
	assert.InDelta(t, DefaultSupport, m.Support, 1e-12)
	assert.InDelta(t, DefaultConfidence, m.Confidence, 1e-12)
	assert.Equal(t, 20, m.Coverage)
	assert.Equal(t, 25, m.TopK)
	assert.Equal(t, m.Coverage, m.Thresholds().Coverage)
	assert.Equal(t, m.TopK, m.ClassifyOptions().TopK)

	viper.Set("mining.support", 1.5)
	_, err = LoadMining()
	require.ErrorIs(t, err, common.ErrInvalidConfig)

	viper.Set("mining.support", 0.3)
	viper.Set("mining.top_k", 0)
	_, err = LoadMining()
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDatabasePath(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	assert.Equal(t, DefaultDatabasePath(), DatabasePath())

	viper.Set("database.path", "/tmp/armine-test.db")
	assert.Equal(t, "/tmp/armine-test.db", DatabasePath())
}

func TestLoadSheetsConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	for _, key := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	_, err := LoadSheetsConfig()
	require.Error(t, err)

	viper.Set("sheets.client_id", "id")
	viper.Set("sheets.client_secret", "secret")
	viper.Set("sheets.refresh_token", "refresh")
	viper.Set("sheets.spreadsheet_id", "abc")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "abc", cfg.SpreadsheetID)
	assert.Empty(t, cfg.ServiceAccountPath)
}

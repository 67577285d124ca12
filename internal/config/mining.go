package config

import (
	"fmt"

	"github.com/Veraticus/armine/internal/common"
	"github.com/Veraticus/armine/internal/mining"
	"github.com/spf13/viper"
)

// Mining defaults used when neither flags nor the config file set them.
const (
	DefaultSupport    = 0.2
	DefaultConfidence = 0.1
)

// Mining holds the thresholds used by the mine and classify commands.
type Mining struct {
	Support    float64
	Confidence float64
	Coverage   int
	TopK       int
}

// SetDefaults registers the mining and storage defaults with viper.
func SetDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("database.path", DefaultDatabasePath())
	viper.SetDefault("mining.support", DefaultSupport)
	viper.SetDefault("mining.confidence", DefaultConfidence)
	viper.SetDefault("mining.coverage", mining.DefaultCoverage)
	viper.SetDefault("mining.top_k", mining.DefaultTopK)
}

// LoadMining reads the mining keys and validates them.
func LoadMining() (Mining, error) {
	m := Mining{
		Support:    viper.GetFloat64("mining.support"),
		Confidence: viper.GetFloat64("mining.confidence"),
		Coverage:   viper.GetInt("mining.coverage"),
		TopK:       viper.GetInt("mining.top_k"),
	}

	th := mining.Thresholds{Support: m.Support, Confidence: m.Confidence, Coverage: m.Coverage}
	if err := th.Validate(); err != nil {
		return Mining{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if m.TopK <= 0 {
		return Mining{}, fmt.Errorf("%w: mining.top_k must be positive, got %d", common.ErrInvalidConfig, m.TopK)
	}
	return m, nil
}

// Thresholds returns the learn thresholds.
func (m Mining) Thresholds() mining.Thresholds {
	return mining.Thresholds{Support: m.Support, Confidence: m.Confidence, Coverage: m.Coverage}
}

// ClassifyOptions returns the classify options using the learn thresholds.
func (m Mining) ClassifyOptions() mining.ClassifyOptions {
	return mining.ClassifyOptions{Support: m.Support, Confidence: m.Confidence, TopK: m.TopK}
}

// DatabasePath returns the configured SQLite path with ~ expanded.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath()
	}
	return ExpandPath(path)
}

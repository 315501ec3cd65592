package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Bridge    BridgeConfig    `toml:"bridge"`
	API       APIConfig       `toml:"api"`
	Collector CollectorConfig `toml:"collector"`
	Pacing    PacingConfig    `toml:"pacing"`
	Export    ExportConfig    `toml:"export"`
	Database  DatabaseConfig  `toml:"database"`
}

// BridgeConfig points at the local page bridge that exposes the browser tab.
type BridgeConfig struct {
	URL string `toml:"url"`
}

// APIConfig contains the remote API root settings.
type APIConfig struct {
	Root string `toml:"root"`
}

// CollectorConfig bounds the scroll-collection loop.
type CollectorConfig struct {
	MaxRounds          int `toml:"max_rounds"`
	StabilityThreshold int `toml:"stability_threshold"`
	HardCap            int `toml:"hard_cap"`
	SettleMillis       int `toml:"settle_millis"`
}

// PacingConfig contains fixed delays between remote mutation calls, in milliseconds.
type PacingConfig struct {
	CloneChunkMillis  int `toml:"clone_chunk_millis"`
	UnlikeItemMillis  int `toml:"unlike_item_millis"`
	RestoreItemMillis int `toml:"restore_item_millis"`
}

// ExportConfig controls where backup artifacts are written.
type ExportConfig struct {
	Dir     string   `toml:"dir"`
	Formats []string `toml:"formats"`
}

// DatabaseConfig contains run ledger database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

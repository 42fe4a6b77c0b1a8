package drivelane

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads and decodes the TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	DB     DBConfig     `toml:"db"`
	Redis  RedisConfig  `toml:"redis"`
	Media  MediaConfig  `toml:"media"`
	Market MarketConfig `toml:"market"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Addr          string   `toml:"addr"`
	SessionSecret string   `toml:"session_secret"`
	CORSOrigins   []string `toml:"cors_origins"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// RedisConfig is optional: an empty Addr keeps the comparison cache
// purely in-process.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MediaConfig points at the S3-compatible bucket holding listing photos.
type MediaConfig struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	PhotoRoot string `toml:"photoroot"`
}

// MarketConfig tunes the analytics recompute loop.
type MarketConfig struct {
	SnapshotIntervalMinutes int `toml:"snapshot_interval_minutes"`
	SoldWindowDays          int `toml:"sold_window_days"`
}

// SnapshotInterval returns the configured interval, or 0 so the
// monitor falls back to its default.
func (m MarketConfig) SnapshotInterval() time.Duration {
	return time.Duration(m.SnapshotIntervalMinutes) * time.Minute
}

// SoldWindow returns the configured sold lookback, or 0 so the monitor
// falls back to its default.
func (m MarketConfig) SoldWindow() time.Duration {
	return time.Duration(m.SoldWindowDays) * 24 * time.Hour
}

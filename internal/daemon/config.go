// Package daemon manages the moodtrail service lifecycle and configuration.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// ConfigFile is the config file name inside the home directory.
const ConfigFile = "config.toml"

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig          `toml:"api"`
	Storage       StorageConfig      `toml:"storage"`
	Calendar      CalendarConfig     `toml:"calendar"`
	Engagement    EngagementConfig   `toml:"engagement"`
	Notifications NotificationConfig `toml:"notifications"`
	Logging       LoggingConfig      `toml:"logging"`
	Telemetry     TelemetryConfig    `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StorageConfig controls where the database lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// CalendarConfig sets the zone all day boundaries are computed in.
type CalendarConfig struct {
	Timezone string `toml:"timezone"` // IANA name or "Local"
}

// EngagementConfig controls the achievement catalog and recommendations.
type EngagementConfig struct {
	CatalogFile          string `toml:"catalog_file"` // empty = built-in catalog
	MinRecommendProgress int    `toml:"min_recommend_progress"`
	RecommendLimit       int    `toml:"recommend_limit"`
}

// NotificationConfig controls notification throttling.
type NotificationConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"` // "HH:MM"
	QuietEnd   string `toml:"quiet_end"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	Mode  string `toml:"mode"`  // development or production
}

// TelemetryConfig controls the metrics endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	policy := domain.DefaultNotificationPolicy()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8742,
			CORSOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Dir: moodtrailHome(),
		},
		Calendar: CalendarConfig{
			Timezone: "Local",
		},
		Engagement: EngagementConfig{
			MinRecommendProgress: 50,
			RecommendLimit:       3,
		},
		Notifications: NotificationConfig{
			MaxPerDay:  policy.MaxPerDay,
			QuietStart: policy.QuietStart,
			QuietEnd:   policy.QuietEnd,
		},
		Logging: LoggingConfig{
			Level: "info",
			Mode:  "production",
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
	}
}

// LoadConfig reads $MOODTRAIL_HOME/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	return LoadConfigFile(filepath.Join(moodtrailHome(), ConfigFile))
}

// LoadConfigFile reads config from path. A missing file yields defaults;
// keys absent from the file keep their default values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	if c.Storage.Dir == "" {
		return errors.New("storage.dir is required")
	}
	if c.Engagement.MinRecommendProgress < 0 || c.Engagement.MinRecommendProgress > 100 {
		return fmt.Errorf("engagement.min_recommend_progress %d out of range", c.Engagement.MinRecommendProgress)
	}
	if c.Notifications.MaxPerDay < 0 {
		return fmt.Errorf("notifications.max_per_day %d is negative", c.Notifications.MaxPerDay)
	}
	return nil
}

// Policy returns the notification policy the config describes.
func (c Config) Policy() domain.NotificationPolicy {
	return domain.NotificationPolicy{
		MaxPerDay:  c.Notifications.MaxPerDay,
		QuietStart: c.Notifications.QuietStart,
		QuietEnd:   c.Notifications.QuietEnd,
	}
}

// SaveConfig writes the config to $MOODTRAIL_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(moodtrailHome(), ConfigFile)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// moodtrailHome returns the moodtrail data directory.
func moodtrailHome() string {
	if env := os.Getenv("MOODTRAIL_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".moodtrail")
}

// Home is exported for use by other packages.
func Home() string {
	return moodtrailHome()
}

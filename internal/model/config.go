package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultDatabasePath     = "todo.sqlite"
	DefaultSeedPath         = "fakedata.csv"
	DefaultTopicWidth       = 20
	DefaultDescriptionWidth = 70
	DefaultLogLevel         = "info"
)

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// SeedConfig locates the CSV file loaded on every run.
type SeedConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds console rendering preferences.
type DisplayConfig struct {
	// TopicWidth is the maximum rendered length of a topic.
	TopicWidth int `mapstructure:"topic_width" yaml:"topic_width"`

	// DescriptionWidth is the maximum rendered length of a description.
	DescriptionWidth int `mapstructure:"description_width" yaml:"description_width"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Seed     SeedConfig     `mapstructure:"seed" yaml:"seed"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todo", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Seed:     SeedConfig{Path: DefaultSeedPath},
		Display: DisplayConfig{
			TopicWidth:       DefaultTopicWidth,
			DescriptionWidth: DefaultDescriptionWidth,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"db":        "database.path",
	"seed":      "seed.path",
	"log-level": "log.level",
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Values are resolved in order: defaults, file, TODO_* environment
// variables, then any flags in fs that were set explicitly. A missing file
// is not an error.
func LoadConfig(path string, fs *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("todo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("seed.path", DefaultSeedPath)
	v.SetDefault("display.topic_width", DefaultTopicWidth)
	v.SetDefault("display.description_width", DefaultDescriptionWidth)
	v.SetDefault("log.level", DefaultLogLevel)

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.TopicWidth < 4 {
		return nil, fmt.Errorf("display.topic_width must be at least 4, got %d", cfg.Display.TopicWidth)
	}
	if cfg.Display.DescriptionWidth < 4 {
		return nil, fmt.Errorf("display.description_width must be at least 4, got %d", cfg.Display.DescriptionWidth)
	}

	return cfg, nil
}

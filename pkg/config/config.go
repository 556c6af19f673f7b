package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Steam data collector.
type Config struct {
	// Steam API settings
	Steam SteamConfig `yaml:"steam" json:"steam"`

	// Collector pacing and checkpoint settings
	Collector CollectorConfig `yaml:"collector" json:"collector"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SteamConfig holds Steam Web API configuration. The API key is optional:
// without it the legacy ISteamApps app list is used.
type SteamConfig struct {
	APIKey         string        `yaml:"api_key" json:"api_key"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	Language       string        `yaml:"language" json:"language"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// CollectorConfig holds the bulk-collection loop configuration.
type CollectorConfig struct {
	// RequestDelay is the pause after each processed identifier.
	RequestDelay time.Duration `yaml:"request_delay" json:"request_delay"`
	// SubRequestPause is the pause between dependent sub-requests for the
	// same title.
	SubRequestPause time.Duration `yaml:"sub_request_pause" json:"sub_request_pause"`
	// CheckpointInterval is the number of processed items between
	// checkpoint snapshots.
	CheckpointInterval int    `yaml:"checkpoint_interval" json:"checkpoint_interval"`
	CheckpointDir      string `yaml:"checkpoint_dir" json:"checkpoint_dir"`
}

// OutputConfig holds final-result file configuration.
type OutputConfig struct {
	Directory  string `yaml:"directory" json:"directory"`
	FilePrefix string `yaml:"file_prefix" json:"file_prefix"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults. Delay and
// interval defaults match the pacing the Steam endpoints tolerate.
func DefaultConfig() *Config {
	return &Config{
		Steam: SteamConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Language:       "japanese",
			RequestTimeout: 10 * time.Second,
		},
		Collector: CollectorConfig{
			RequestDelay:       600 * time.Millisecond,
			SubRequestPause:    200 * time.Millisecond,
			CheckpointInterval: 100,
			CheckpointDir:      "./checkpoints",
		},
		Output: OutputConfig{
			Directory:  "./data",
			FilePrefix: "steam_random",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	if key := os.Getenv("STEAMDEX_API_KEY"); key != "" {
		c.Steam.APIKey = key
	}
	// STEAM_API_KEY is the conventional name; keep accepting it.
	if key := os.Getenv("STEAM_API_KEY"); key != "" && c.Steam.APIKey == "" {
		c.Steam.APIKey = key
	}
	if ua := os.Getenv("STEAMDEX_USER_AGENT"); ua != "" {
		c.Steam.UserAgent = ua
	}
	if delay := os.Getenv("STEAMDEX_REQUEST_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			c.Collector.RequestDelay = d
		}
	}
	if interval := os.Getenv("STEAMDEX_CHECKPOINT_INTERVAL"); interval != "" {
		if v, err := strconv.Atoi(interval); err == nil && v > 0 {
			c.Collector.CheckpointInterval = v
		}
	}
	if dir := os.Getenv("STEAMDEX_OUTPUT_DIR"); dir != "" {
		c.Output.Directory = dir
	}
	if level := os.Getenv("STEAMDEX_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".steamdex.yaml",
		".steamdex.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "steamdex", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "steamdex", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".steamdex.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Steam.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.Collector.RequestDelay < 0 {
		errs = append(errs, errors.New("request delay cannot be negative"))
	}
	if c.Collector.SubRequestPause < 0 {
		errs = append(errs, errors.New("sub-request pause cannot be negative"))
	}
	if c.Collector.CheckpointInterval <= 0 {
		errs = append(errs, errors.New("checkpoint interval must be positive"))
	}
	if c.Collector.CheckpointDir == "" {
		errs = append(errs, errors.New("checkpoint directory is required"))
	}
	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.FilePrefix == "" {
		errs = append(errs, errors.New("output file prefix is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if key, ok := flags["api-key"].(string); ok && key != "" {
		c.Steam.APIKey = key
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if delay, ok := flags["delay"].(time.Duration); ok && delay >= 0 {
		c.Collector.RequestDelay = delay
	}
	if interval, ok := flags["checkpoint-interval"].(int); ok && interval > 0 {
		c.Collector.CheckpointInterval = interval
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".steamdex.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

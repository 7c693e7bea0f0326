package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds Soundry API configuration
type ServerConfig struct {
	URL      string `mapstructure:"url"`      // API base URL
	Token    string `mapstructure:"token"`    // Bearer token
	UserID   string `mapstructure:"user_id"`  // Account id the library belongs to
	Username string `mapstructure:"username"` // Display only
}

// ArchiveConfig holds download run configuration
type ArchiveConfig struct {
	OutputDir      string        `mapstructure:"output_dir"`       // Where media files land
	StateFile      string        `mapstructure:"state_file"`       // Progress record path
	Format         string        `mapstructure:"format"`           // Preferred download format
	PageSize       int           `mapstructure:"page_size"`        // Tracks per page fetch
	MaxRetries     int           `mapstructure:"max_retries"`      // Extra attempts per track
	PageRetryDelay time.Duration `mapstructure:"page_retry_delay"` // Wait between page fetch attempts
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "https://api.soundry.app",
		},
		Archive: ArchiveConfig{
			OutputDir:      "soundry-archive",
			StateFile:      "reel-state.json",
			Format:         "mp3",
			PageSize:       20,
			MaxRetries:     2,
			PageRetryDelay: 5 * time.Second,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel", "reel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "reel.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("REEL")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.token", cfg.Server.Token)
	viper.Set("server.user_id", cfg.Server.UserID)
	viper.Set("server.username", cfg.Server.Username)

	viper.Set("archive.output_dir", cfg.Archive.OutputDir)
	viper.Set("archive.state_file", cfg.Archive.StateFile)
	viper.Set("archive.format", cfg.Archive.Format)
	viper.Set("archive.page_size", cfg.Archive.PageSize)
	viper.Set("archive.max_retries", cfg.Archive.MaxRetries)
	viper.Set("archive.page_retry_delay", cfg.Archive.PageRetryDelay)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the server URL, token, and user id are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Token != "" && c.Server.UserID != ""
}

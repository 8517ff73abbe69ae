package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	SourceDirectory string           `mapstructure:"source_directory"`
	Conversion      ConversionConfig `mapstructure:"conversion"`
	Logging         LoggingConfig    `mapstructure:"logging"`
}

// ConversionConfig contains WebP encoding settings
type ConversionConfig struct {
	Quality  int  `mapstructure:"quality"`
	Lossless bool `mapstructure:"lossless"`
	MaxWidth int  `mapstructure:"max_width"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		SourceDirectory: "./official-artwork",
		Conversion: ConversionConfig{
			Quality:  85,
			Lossless: false,
			MaxWidth: 0, // 0 means no downscaling
		},
		Logging: LoggingConfig{
			Level:      "info",
			FilePath:   "",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Look for config file in current directory and home directory
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.png2webp")
	}

	// Enable environment variable support
	viper.SetEnvPrefix("PNG2WEBP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Unmarshal config
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate and normalize config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SourceDirectory == "" {
		return fmt.Errorf("source_directory is required")
	}

	// Quality must be in range regardless of the lossless flag; an invalid
	// value is a configuration error, not a per-file one.
	if c.Conversion.Quality < 0 || c.Conversion.Quality > 100 {
		return fmt.Errorf("quality must be between 0 and 100, got %d", c.Conversion.Quality)
	}

	if c.Conversion.MaxWidth < 0 {
		return fmt.Errorf("max_width must not be negative, got %d", c.Conversion.MaxWidth)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	return nil
}

// ValidateSourceDirectory checks that the configured source directory exists
// and is a directory. Kept separate from Validate so option validation can
// run without touching the filesystem.
func (c *Config) ValidateSourceDirectory() error {
	if !isValidDir(c.SourceDirectory) {
		return fmt.Errorf("source_directory does not exist or is not a directory: %s", c.SourceDirectory)
	}
	return nil
}

// Helper functions

func isValidDir(path string) bool {
	if path == "" {
		return false
	}

	expandedPath := os.ExpandEnv(path)
	if strings.HasPrefix(expandedPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return false
		}
		expandedPath = filepath.Join(home, expandedPath[1:])
	}

	stat, err := os.Stat(expandedPath)
	return err == nil && stat.IsDir()
}

package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	YouTube YouTubeConfig `mapstructure:"youtube"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// YouTubeConfig holds API keys and request tuning
type YouTubeConfig struct {
	// APIKeys is a single key or a comma-separated list
	APIKeys         string        `mapstructure:"api_keys"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxAttempts     int           `mapstructure:"max_attempts"`
	BackoffUnit     time.Duration `mapstructure:"backoff_unit"`
	MaxCommentPages int           `mapstructure:"max_comment_pages"`
}

// OutputConfig contains rendering defaults
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

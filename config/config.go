package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. YTCHANNEL_LOGGING_LEVEL
const EnvPrefix = "YTCHANNEL"

var (
	// ErrNoAPIKeys is returned when no key was found in flags, env or file
	ErrNoAPIKeys = errors.New("no API key provided: use --keys or set YOUTUBE_API_KEYS / YOUTUBE_API_KEY")

	httpURLPattern = regexp.MustCompile(`^https?://`)
)

// Load loads the configuration. An explicit configPath must exist; otherwise
// the standard locations are searched and a missing file is not an error.
// Overrides are applied last, keyed by dotted config path.
func Load(configPath string, overrides map[string]any) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("youtube.api_keys", EnvPrefix+"_YOUTUBE_API_KEYS", "YOUTUBE_API_KEYS", "YOUTUBE_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".ytchannel"))
		}

		// Check /etc
		v.AddConfigPath("/etc/ytchannel/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// YouTube defaults
	v.SetDefault("youtube.api_keys", "")
	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.timeout", 20*time.Second)
	v.SetDefault("youtube.max_attempts", 5)
	v.SetDefault("youtube.backoff_unit", time.Second)
	v.SetDefault("youtube.max_comment_pages", 0)

	// Output defaults
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", false)

	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if strings.TrimSpace(strings.ReplaceAll(cfg.YouTube.APIKeys, ",", "")) == "" {
		return ErrNoAPIKeys
	}

	err := validation.Errors{
		"youtube": validation.ValidateStruct(&cfg.YouTube,
			validation.Field(&cfg.YouTube.BaseURL, validation.Required, validation.Match(httpURLPattern)),
			validation.Field(&cfg.YouTube.Timeout, validation.Required, validation.Min(time.Millisecond)),
			validation.Field(&cfg.YouTube.MaxAttempts, validation.Required, validation.Min(1), validation.Max(10)),
			validation.Field(&cfg.YouTube.BackoffUnit, validation.Required, validation.Min(time.Millisecond)),
			validation.Field(&cfg.YouTube.MaxCommentPages, validation.Min(0)),
		),
		"output": validation.ValidateStruct(&cfg.Output,
			validation.Field(&cfg.Output.Format, validation.In("json", "tree", "table", "human")),
		),
		"logging": validation.ValidateStruct(&cfg.Logging,
			validation.Field(&cfg.Logging.Level, validation.In("debug", "info", "warn", "error")),
			validation.Field(&cfg.Logging.Format, validation.In("console", "json")),
		),
	}.Filter()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

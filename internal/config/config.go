// Package config loads SaveKit settings from savekit.yaml and SAVEKIT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mrjoshuak/savekit/types"
	"github.com/spf13/viper"
)

// Fetcher names.
const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

// Config holds all configuration for the CLI and capture service.
type Config struct {
	Engine        string        `mapstructure:"engine"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Retries       int           `mapstructure:"retries"`
	CharThreshold int           `mapstructure:"char_threshold"`
	MaxBodyChars  int           `mapstructure:"max_body_chars"`

	Fetcher       string `mapstructure:"fetcher"`
	UserAgent     string `mapstructure:"user_agent"`
	MaxFetchBytes int64  `mapstructure:"max_fetch_bytes"`

	StorePath string `mapstructure:"store_path"`
	UserID    string `mapstructure:"user_id"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := types.DefaultOptions()
	return Config{
		Engine:        opts.Engine,
		Timeout:       opts.Timeout,
		Retries:       1,
		CharThreshold: opts.CharThreshold,
		MaxBodyChars:  opts.MaxBodyChars,
		Fetcher:       FetcherHTTP,
		UserAgent:     "SaveKit/" + types.Version,
		MaxFetchBytes: 10 << 20,
		StorePath:     "./savekit_data",
		UserID:        "local",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads savekit.yaml from the given directories (the working directory
// when none are given) and overlays SAVEKIT_* environment variables. A
// missing config file is not an error.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigName("savekit")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("SAVEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Fetcher {
	case FetcherHTTP, FetcherBrowser:
	default:
		return fmt.Errorf("invalid fetcher %q (available: %s, %s)", c.Fetcher, FetcherHTTP, FetcherBrowser)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.StorePath == "" {
		return errors.New("store_path is not set")
	}
	return nil
}

// ExtractionOptions converts the extraction settings.
func (c Config) ExtractionOptions() types.ExtractionOptions {
	opts := types.DefaultOptions()
	opts.Engine = c.Engine
	opts.Timeout = c.Timeout
	if c.CharThreshold > 0 {
		opts.CharThreshold = c.CharThreshold
	}
	if c.MaxBodyChars > 0 {
		opts.MaxBodyChars = c.MaxBodyChars
	}
	return opts
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("engine", d.Engine)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("retries", d.Retries)
	v.SetDefault("char_threshold", d.CharThreshold)
	v.SetDefault("max_body_chars", d.MaxBodyChars)
	v.SetDefault("fetcher", d.Fetcher)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("max_fetch_bytes", d.MaxFetchBytes)
	v.SetDefault("store_path", d.StorePath)
	v.SetDefault("user_id", d.UserID)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

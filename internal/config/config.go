package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// CITYWEATHER_LANGUAGE=en.
const envPrefix = "CITYWEATHER_"

// Config holds all application settings.
type Config struct {
	GeocodingBaseURL string        `koanf:"geocoding_base_url"`
	ForecastBaseURL  string        `koanf:"forecast_base_url"`
	Language         string        `koanf:"language"`
	SuggestionCount  int           `koanf:"suggestion_count"`
	HourlyHours      int           `koanf:"hourly_hours"`
	FavoritesCap     int           `koanf:"favorites_cap"`
	DebounceDelay    time.Duration `koanf:"debounce_delay"`
	HTTPTimeout      time.Duration `koanf:"http_timeout"`
	DataDir          string        `koanf:"data_dir"`
	LogLevel         string        `koanf:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GeocodingBaseURL: "https://geocoding-api.open-meteo.com",
		ForecastBaseURL:  "https://api.open-meteo.com",
		Language:         "zh",
		SuggestionCount:  6,
		HourlyHours:      24,
		FavoritesCap:     20,
		DebounceDelay:    300 * time.Millisecond,
		HTTPTimeout:      10 * time.Second,
		DataDir:          defaultDataDir(),
		LogLevel:         "info",
	}
}

// Load builds the configuration in layers: defaults, then an optional
// config file, then .env / environment variables, then command-line
// flags (highest precedence).
func Load(flagSet *pflag.FlagSet, configFile string) (*Config, error) {
	k := koanf.New(".")

	// Load from config file if provided
	if configFile != "" {
		parser, err := parserForFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// A .env in the working directory feeds the environment layer.
	_ = godotenv.Load()

	// Load from environment variables: CITYWEATHER_FOO_BAR -> foo_bar
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// Load from command-line flags (highest precedence)
	if flagSet != nil {
		if err := k.Load(posflag.Provider(flagSet, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

func parserForFile(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".env":
		return dotenv.Parser(), nil
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", filepath.Ext(path))
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(base, "cityweather")
}

// EnsureDataDir creates the data directory if it does not exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// DBPath returns the path of the sqlite state database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "cityweather.db")
}

// LogPath returns the path of the log file. The TUI owns the
// terminal, so logs never go to stdout.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "cityweather.log")
}

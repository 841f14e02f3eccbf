package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wxterm/cityweather/internal/config"
	"github.com/wxterm/cityweather/internal/logging"
	"github.com/wxterm/cityweather/internal/openmeteo"
	"github.com/wxterm/cityweather/internal/state"
	"github.com/wxterm/cityweather/internal/ui"
)

var (
	cfgFile  string
	debug    bool
	cityFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cityweather",
	Short: "City weather in your terminal",
	Long: `Search for a city, pick a match and see current conditions plus the
next 24 hours. Favorites and the last-viewed city persist across runs.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	defaults := config.Default()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or .env)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "enable debug logging")
	rootCmd.Flags().StringVar(&cityFlag, "city", "", "load weather for this city at startup")

	// Overrides picked up by the config layer via posflag. Flag
	// defaults mirror config defaults so an untouched flag never
	// masks a file or environment value.
	rootCmd.Flags().String("language", defaults.Language, "language for city names")
	rootCmd.Flags().String("data_dir", defaults.DataDir, "directory for the state database and log file")
	rootCmd.Flags().String("log_level", defaults.LogLevel, "log level (debug, info, warn, error)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), cfgFile)
	if err != nil {
		return err
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store := state.NewStore(cfg.DBPath(), logger)

	geocoder := openmeteo.NewGeocoder(
		openmeteo.WithGeocoderBaseURL(cfg.GeocodingBaseURL),
		openmeteo.WithLanguage(cfg.Language),
		openmeteo.WithSuggestionCount(cfg.SuggestionCount),
		openmeteo.WithGeocoderTimeout(cfg.HTTPTimeout),
	)
	forecaster := openmeteo.NewForecaster(
		openmeteo.WithForecasterBaseURL(cfg.ForecastBaseURL),
		openmeteo.WithHourlyHours(cfg.HourlyHours),
		openmeteo.WithForecasterTimeout(cfg.HTTPTimeout),
	)

	model := ui.NewModel(ui.Options{
		Geocoder:      geocoder,
		Forecaster:    forecaster,
		Store:         store,
		Logger:        logger,
		DebounceDelay: cfg.DebounceDelay,
		FavoritesCap:  cfg.FavoritesCap,
		InitialCity:   cityFlag,
	})

	logger.Info("starting", zap.String("data_dir", cfg.DataDir), zap.String("language", cfg.Language))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pv-battery-estimator/internal/config"
	"pv-battery-estimator/internal/data"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/logger"

	"github.com/spf13/cobra"
)

var (
	forecastDir string
	forecastURL string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:           "pv-cli",
	Short:         "Estimate a day of PV + battery dispatch from the command line",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.SetLevel(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&forecastDir, "forecast-dir", "data/forecasts", "directory of typical-year forecast files")
	rootCmd.PersistentFlags().StringVar(&forecastURL, "forecast-url", "", "forecasting service base URL (overrides --forecast-dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(simulateCmd, compareCmd, citiesCmd)
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func newProvider() (forecast.Provider, error) {
	cfg := config.ForecastConfig{Source: "file", Dir: forecastDir}
	if forecastURL != "" {
		cfg = config.ForecastConfig{Source: "http", BaseURL: forecastURL, TimeoutSeconds: 30}
	}
	// compare asks for the same day once per system
	cfg.Cache = config.CacheConfig{Enabled: true}
	p, _, err := data.NewProvider(cfg, logger.New("forecast"))
	return p, err
}

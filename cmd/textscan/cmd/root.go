package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/textscan/internal/app"
	"github.com/corey/textscan/internal/config"
)

var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "textscan",
	Short:         "textscan — multi-keyword text scanner",
	Long:          "Scans files for literal keywords from configured dictionaries in a single pass.",
	SilenceUsage: true,
	// Errors are printed by main so quiet-mode exit codes stay silent.
	SilenceErrors: true,
}

// loadConfig reads the configured YAML file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// newScanner builds the scanner service, opening the bbolt store when
// one is configured.
func newScanner(cfg *config.Config) (*app.Scanner, func(), error) {
	log := app.NewLogger(cfg.LogLevel)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	s, err := app.NewScanner(cfg, store, log)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return s, closeStore, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to textscan config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override configured log level")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(watchCmd)
}

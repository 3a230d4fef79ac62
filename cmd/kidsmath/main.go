package main

import (
	"fmt"
	"os"

	"kidsmath/internal/config"
	"kidsmath/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kidsmath",
	Short: "kidsmath - arithmetic worksheets for kids",
	Long: `kidsmath generates arithmetic practice problems whose answers stay
inside a chosen range, checks them, runs practice quizzes in the terminal,
exports printable spreadsheets and serves the same over HTTP.

Every problem is built backwards from its answer, so a worksheet for
"answers between 1 and 10" never asks for anything bigger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.For(logger, cfg.Logging, logging.CategoryBoot).Debug("config loaded", zap.String("path", path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.kidsmath/config.yaml)")

	// Add commands to root
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// categoryLogger returns the logger for one subsystem.
func categoryLogger(cat logging.Category) *zap.Logger {
	if cfg == nil {
		return logging.For(logger, config.LoggingConfig{}, cat)
	}
	return logging.For(logger, cfg.Logging, cat)
}

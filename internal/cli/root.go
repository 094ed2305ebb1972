package cli

import (
	"fmt"

	"github.com/existflow/catalyst/internal/config"
	"github.com/existflow/catalyst/internal/db"
	"github.com/existflow/catalyst/internal/diagram"
	"github.com/existflow/catalyst/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool

	// cfg is loaded once per invocation by the root command
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "catalyst",
	Short: "Catalyst - project tracker backend",
	Long: `Catalyst serves the project tracker API: projects, labels, cycles,
modules, users and tickets, plus text-to-Mermaid diagram generation.

Run 'catalyst serve' to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// CLI flags override the file and the environment
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Debug("Catalyst started", logger.F("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Debug("Catalyst exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", true, "Enable console logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(ticketsCmd)
	rootCmd.AddCommand(browseCmd)
}

func openStore() (*db.DB, error) {
	database, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database", logger.F("error", err))
		return nil, err
	}
	return database, nil
}

func newGenerator() (diagram.Generator, error) {
	return diagram.New(diagram.Options{
		Provider: cfg.Diagram.Provider,
		BaseURL:  cfg.Diagram.BaseURL,
		Model:    cfg.Diagram.Model,
		APIKey:   cfg.Diagram.APIKey,
	})
}

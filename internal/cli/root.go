package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-analyzer/internal/config"
	"options-analyzer/internal/logging"
	"options-analyzer/internal/marketdata"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies. Quotes is the injected market-data
// collaborator; the analysis core never touches it.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Quotes marketdata.Provider
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger, quotes marketdata.Provider) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Quotes: quotes,
	}

	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Options strategy payoff and probability analyzer",
		Long: `Analyzer computes profit/loss curves, risk metrics, break-even prices,
and profit probabilities for option strategies.

Supported strategies: long-call, long-put, short-call, short-put,
bull-put-spread, bear-call-spread. Arbitrary leg combinations are handled
by the generic break-even scan and payoff curve.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			SetColorEnabled(app.Config.UI.ColorEnabled)
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-analyzer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addAnalysisCommands(rootCmd, app)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("options-analyzer v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Analysis Configuration")
			output.Printf("  Risk-Free Rate:      %.2f%%\n", app.Config.Analysis.RiskFreeRate*100)
			output.Printf("  Curve Range:         ±%.0f%%\n", app.Config.Analysis.CurveRange*100)
			output.Printf("  Shares Per Contract: %d\n", app.Config.Analysis.SharesPerContract)
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:   %s\n", app.Config.Logging.Level)
			output.Printf("  Console: %v\n", app.Config.Logging.Console)
			output.Printf("  File:    %v\n", app.Config.Logging.File)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

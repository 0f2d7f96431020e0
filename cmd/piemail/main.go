// piemail: daily Trading 212 pie digest by email.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/piemail/internal/config"
	"github.com/seenimoa/piemail/internal/logger"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set up by PersistentPreRunE.
var (
	cfg *config.Config
	log *slog.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "piemail",
	Short: "piemail: daily Trading 212 pie digest by email",
	Long: `piemail reads a Trading 212 pie, looks up the price and one-day change
of every holding on Financial Modeling Prep and emails the result as an
HTML summary. Without a subcommand it runs "send".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		log = logger.New(cfg.Logging, os.Stderr)
		return nil
	},
	RunE: runSend,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	addRunFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statusCmd)
}

// addRunFlags registers the flags shared by the commands that fetch a pie.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("pie", 0, "pie id (default: portfolio.pie_id)")
	cmd.Flags().String("symbols", "", "symbol map file (default: symbols.path)")
}

// applyRunFlags copies flag overrides into cfg.
func applyRunFlags(cmd *cobra.Command) {
	if pie, _ := cmd.Flags().GetInt64("pie"); pie != 0 {
		cfg.Portfolio.PieID = pie
	}
	if path, _ := cmd.Flags().GetString("symbols"); path != "" {
		cfg.Symbols.Path = path
	}
}

func httpTimeout() time.Duration {
	return time.Duration(cfg.HTTP.TimeoutSec) * time.Second
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("piemail %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

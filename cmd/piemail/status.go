package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seenimoa/piemail/internal/broker"
	"github.com/seenimoa/piemail/internal/config"
	"github.com/seenimoa/piemail/internal/infra"
	"github.com/seenimoa/piemail/internal/providers/fmp"
)

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and API key status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  piemail: Status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Configuration:")
		fmt.Fprintf(out, "    Pie:           %d\n", cfg.Portfolio.PieID)
		fmt.Fprintf(out, "    Symbols:       %s\n", cfg.Symbols.Path)
		fmt.Fprintf(out, "    SMTP:          %s:%d\n", cfg.Mail.Host, cfg.Mail.Port)
		fmt.Fprintf(out, "    Recipient:     %s\n", cfg.Mail.To)
		fmt.Fprintf(out, "    Currency:      %s\n", cfg.Report.Currency)
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Fprintf(out, "    %-25s %s\n", k.Name+":", status)
		}

		if ping, _ := cmd.Flags().GetBool("ping"); ping {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  Connectivity:")
			for _, c := range pingAll(cmd.Context()) {
				status := "✅ ok"
				if c.err != nil {
					status = "❌ " + infra.RedactError(c.err).Error()
				}
				fmt.Fprintf(out, "    %-25s %s\n", c.name+":", status)
			}
		}

		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("ping", false, "check that both APIs accept the configured keys")
}

type pingResult struct {
	name string
	err  error
}

// pingAll checks each remote API in turn.
func pingAll(ctx context.Context) []pingResult {
	client := infra.NewClient(httpTimeout(), log)
	t212 := broker.NewTrading212(broker.Trading212Config{
		APIKey:  cfg.Portfolio.APIKey,
		BaseURL: cfg.Portfolio.BaseURL,
		Client:  client,
	})
	market := fmp.New(fmp.Config{
		APIKey:  cfg.MarketData.APIKey,
		BaseURL: cfg.MarketData.BaseURL,
		Client:  client,
	})
	return []pingResult{
		{name: "Trading 212", err: t212.Ping(ctx)},
		{name: "Financial Modeling Prep", err: market.Ping(ctx)},
	}
}

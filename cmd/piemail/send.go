package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/piemail/internal/broker"
	"github.com/seenimoa/piemail/internal/digest"
	"github.com/seenimoa/piemail/internal/infra"
	"github.com/seenimoa/piemail/internal/notify"
	"github.com/seenimoa/piemail/internal/providers/fmp"
	"github.com/seenimoa/piemail/internal/report"
	"github.com/seenimoa/piemail/internal/symbols"
)

// --- Send Command ---

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build the pie digest and email it",
	Long: `Fetch the configured pie, look up every holding and email the HTML report.
With --no-email the report is printed to stdout instead.`,
	RunE: runSend,
}

func init() {
	addRunFlags(sendCmd)
	sendCmd.Flags().Bool("no-email", false, "print the HTML report instead of sending it")
	rootCmd.Flags().Bool("no-email", false, "print the HTML report instead of sending it")
}

func runSend(cmd *cobra.Command, args []string) error {
	applyRunFlags(cmd)
	dryRun, _ := cmd.Flags().GetBool("no-email")

	validate := cfg.Validate
	if dryRun {
		validate = cfg.ValidateSources
	}
	if err := validate(); err != nil {
		return err
	}

	var sender digest.Sender
	if !dryRun {
		sender = notify.NewMailer(notify.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Timeout:  time.Duration(cfg.Mail.TimeoutSec) * time.Second,
		}, log)
	}

	o, err := newOrchestrator(sender)
	if err != nil {
		return err
	}

	// A *notify.SendError still exits 1; the orchestrator has already
	// logged it and saved the fallback copy.
	res, err := o.Run(cmd.Context())
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Email sent successfully.")
	return nil
}

// newOrchestrator wires the configured clients into a digest run.
// sender may be nil for runs that only render.
func newOrchestrator(sender digest.Sender) (*digest.Orchestrator, error) {
	symbolMap, err := symbols.Load(cfg.Symbols.Path)
	if err != nil {
		return nil, err
	}
	log.Debug("symbol map loaded", "path", cfg.Symbols.Path, "entries", len(symbolMap))

	client := infra.NewClient(httpTimeout(), log)

	return digest.NewOrchestrator(digest.OrchestratorConfig{
		Pies: broker.NewTrading212(broker.Trading212Config{
			APIKey:  cfg.Portfolio.APIKey,
			BaseURL: cfg.Portfolio.BaseURL,
			Client:  client,
		}),
		Stocks: fmp.New(fmp.Config{
			APIKey:  cfg.MarketData.APIKey,
			BaseURL: cfg.MarketData.BaseURL,
			Client:  client,
		}),
		Sender:  sender,
		Symbols: symbolMap,
		Report:  report.Builder{Currency: cfg.Report.Currency},
		PieID:   cfg.Portfolio.PieID,
		Mail: digest.MailSettings{
			From:     cfg.Mail.From,
			Password: cfg.Mail.Password,
			To:       cfg.Mail.To,
			Subject:  cfg.Mail.Subject,
		},
		FallbackDir: cfg.Report.FallbackDir,
		Logger:      log,
	}), nil
}

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/seenimoa/piemail/internal/report"
)

// --- Preview Command ---

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the pie digest in the terminal without sending it",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRunFlags(cmd)
		if err := cfg.ValidateSources(); err != nil {
			return err
		}

		o, err := newOrchestrator(nil)
		if err != nil {
			return err
		}
		res, err := o.Prepare(cmd.Context())
		if err != nil {
			return err
		}

		if raw, _ := cmd.Flags().GetBool("html"); raw {
			fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
			return nil
		}

		md := report.Builder{Currency: cfg.Report.Currency}.Markdown(res.Stocks, res.Failed)
		width, _ := cmd.Flags().GetInt("width")
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("terminal renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	addRunFlags(previewCmd)
	previewCmd.Flags().Bool("html", false, "print the raw HTML fragment")
	previewCmd.Flags().Int("width", 80, "word wrap width")
}

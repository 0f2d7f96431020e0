// Package digest wires the pie, market data, report and mail steps into
// the daily run.
package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/seenimoa/piemail/internal/broker"
	"github.com/seenimoa/piemail/internal/infra"
	"github.com/seenimoa/piemail/internal/notify"
	"github.com/seenimoa/piemail/internal/report"
	"github.com/seenimoa/piemail/internal/symbols"
	"github.com/seenimoa/piemail/pkg/models"
)

// StockFetcher looks up one ticker. *fmp.Provider implements it.
type StockFetcher interface {
	FetchStockInfo(ctx context.Context, ticker string) (*models.StockInfo, error)
}

// Sender delivers one message. *notify.Mailer implements it.
type Sender interface {
	Send(ctx context.Context, msg notify.Message) error
}

// MailSettings are the envelope fields of the digest email.
type MailSettings struct {
	From     string
	Password string
	To       string
	Subject  string
}

// Orchestrator runs the digest pipeline. Steps run strictly one after
// another; nothing is fetched concurrently.
type Orchestrator struct {
	pies        broker.PieSource
	stocks      StockFetcher
	sender      Sender
	symbols     symbols.Map
	builder     report.Builder
	pieID       int64
	mail        MailSettings
	fallbackDir string
	logger      *slog.Logger
	now         func() time.Time
}

// OrchestratorConfig holds configuration for creating an Orchestrator.
type OrchestratorConfig struct {
	Pies        broker.PieSource
	Stocks      StockFetcher
	Sender      Sender // nil disables delivery (dry run)
	Symbols     symbols.Map
	Report      report.Builder
	PieID       int64
	Mail        MailSettings
	FallbackDir string // where undelivered reports are saved; empty disables
	Logger      *slog.Logger
	Now         func() time.Time
}

// Result is what one run produced.
type Result struct {
	Pie          *models.Pie
	Tickers      []string // resolved market-data tickers, in pie order
	Stocks       []models.StockInfo
	Failed       []string
	HTML         string
	Sent         bool
	FallbackPath string // set when an undelivered report was saved
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		pies:        cfg.Pies,
		stocks:      cfg.Stocks,
		sender:      cfg.Sender,
		symbols:     cfg.Symbols,
		builder:     cfg.Report,
		pieID:       cfg.PieID,
		mail:        cfg.Mail,
		fallbackDir: cfg.FallbackDir,
		logger:      logger,
		now:         now,
	}
}

// Prepare fetches the pie, looks up every holding and renders the report.
// Only a pie failure is returned as an error; per-ticker failures end up
// in Result.Failed.
func (o *Orchestrator) Prepare(ctx context.Context) (*Result, error) {
	pie, err := o.pies.GetPie(ctx, o.pieID)
	if err != nil {
		return nil, fmt.Errorf("fetch pie: %w", err)
	}
	o.logger.Info("pie fetched",
		"pie_id", pie.Settings.ID,
		"name", pie.Settings.Name,
		"created", pie.Settings.Created().Format(time.DateOnly),
		"instruments", len(pie.Instruments),
	)

	tickers := ResolveTickers(pie, o.symbols)
	stocks, failed, err := Collect(ctx, o.stocks, tickers, o.logger)
	if err != nil {
		return nil, err
	}

	return &Result{
		Pie:     pie,
		Tickers: tickers,
		Stocks:  stocks,
		Failed:  failed,
		HTML:    o.builder.Build(stocks, failed),
	}, nil
}

// Run prepares the report and emails it. A delivery failure is logged,
// the report is saved to the fallback directory when one is configured,
// and a *notify.SendError is returned together with the result.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	res, err := o.Prepare(ctx)
	if err != nil {
		return nil, err
	}
	if o.sender == nil {
		o.logger.Info("delivery disabled, report not sent")
		return res, nil
	}

	err = o.sender.Send(ctx, notify.Message{
		From:     o.mail.From,
		Password: o.mail.Password,
		To:       o.mail.To,
		Subject:  o.mail.Subject,
		HTMLBody: res.HTML,
	})
	if err == nil {
		res.Sent = true
		return res, nil
	}

	o.logger.Error("failed to send email", "err", err)
	if o.fallbackDir != "" {
		path, ferr := report.SaveFallback(o.fallbackDir, res.HTML, o.now())
		if ferr != nil {
			o.logger.Error("failed to save fallback report", "err", ferr)
		} else {
			res.FallbackPath = path
			o.logger.Info("report saved", "path", path)
		}
	}

	var se *notify.SendError
	if !errors.As(err, &se) {
		err = &notify.SendError{Err: err}
	}
	return res, err
}

// ResolveTickers maps every holding to its market-data ticker, keeping
// pie order: the suffix from the first "_" is dropped, then the symbol
// map is applied with identity fallback.
func ResolveTickers(pie *models.Pie, m symbols.Map) []string {
	tickers := make([]string, 0, len(pie.Instruments))
	for _, t := range pie.Tickers() {
		tickers = append(tickers, m.Resolve(t))
	}
	return tickers
}

// Collect fetches every ticker in order. A failed lookup is logged and
// recorded in failed; it never aborts the batch. stocks and failed keep
// the input order and together hold every ticker exactly once.
// The only error returned is the context's, when it is cancelled.
func Collect(ctx context.Context, f StockFetcher, tickers []string, logger *slog.Logger) (stocks []models.StockInfo, failed []string, err error) {
	stocks = make([]models.StockInfo, 0, len(tickers))
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		info, err := f.FetchStockInfo(ctx, ticker)
		if err != nil {
			logger.Warn("failed to fetch stock info",
				"ticker", ticker,
				"status", infra.StatusCode(err),
				"err", err,
			)
			failed = append(failed, ticker)
			continue
		}
		stocks = append(stocks, *info)
	}
	return stocks, failed, nil
}

// Package report renders the daily pie digest.
//
// Build produces the HTML fragment used as the email body. Output is a pure
// function of its inputs: the same stocks and failures always yield the same
// bytes.
package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/seenimoa/piemail/pkg/models"
	"github.com/seenimoa/piemail/pkg/utils"
)

// Section headings.
const (
	TitleStocks = "Stock Information"
	TitleFailed = "Failed to Fetch Stock Information"
)

// Inline colours for the one-day change; mail clients drop <style> blocks.
const (
	ColorPositive = "green"
	ColorNegative = "red"
)

// Builder renders reports. The zero value formats prices in USD.
type Builder struct {
	Currency string // ISO 4217 code used to display prices
}

// Build renders stocks and failed with the default Builder.
func Build(stocks []models.StockInfo, failed []string) string {
	return Builder{}.Build(stocks, failed)
}

// Markdown renders stocks and failed with the default Builder.
func Markdown(stocks []models.StockInfo, failed []string) string {
	return Builder{}.Markdown(stocks, failed)
}

// Build renders the HTML fragment:
//
//	<h1>Stock Information</h1><ul><li>…</li></ul>
//	<h3>Failed to Fetch Stock Information</h3><ul><li>FAKE</li></ul>
//
// The failure section is omitted entirely when failed is empty.
func (b Builder) Build(stocks []models.StockInfo, failed []string) string {
	var sb strings.Builder
	sb.WriteString("<h1>" + TitleStocks + "</h1><ul>")

	for _, s := range stocks {
		fmt.Fprintf(&sb,
			`<li><strong>%s</strong>: Price: %s <span style="color:%s">(%s%%)</span></li>`,
			html.EscapeString(s.Symbol),
			html.EscapeString(b.price(s)),
			ChangeColor(s.Change),
			utils.FormatSigned(s.Change.OneDay),
		)
	}
	sb.WriteString("</ul>")

	if len(failed) > 0 {
		sb.WriteString("<h3>" + TitleFailed + "</h3><ul>")
		for _, ticker := range failed {
			sb.WriteString("<li>" + html.EscapeString(ticker) + "</li>")
		}
		sb.WriteString("</ul>")
	}
	return sb.String()
}

// Markdown renders the same content as Markdown, for terminal previews.
func (b Builder) Markdown(stocks []models.StockInfo, failed []string) string {
	var sb strings.Builder
	sb.WriteString("# " + TitleStocks + "\n\n")

	if len(stocks) == 0 {
		sb.WriteString("_No quotes._\n")
	}
	for _, s := range stocks {
		arrow := "▲"
		if s.Change.IsNegative() {
			arrow = "▼"
		}
		fmt.Fprintf(&sb, "- **%s**: Price: %s %s (%s%%)\n",
			s.Symbol, b.price(s), arrow, utils.FormatSigned(s.Change.OneDay))
	}

	if len(failed) > 0 {
		sb.WriteString("\n### " + TitleFailed + "\n\n")
		for _, ticker := range failed {
			sb.WriteString("- " + ticker + "\n")
		}
	}
	return sb.String()
}

func (b Builder) price(s models.StockInfo) string {
	return utils.FormatMoney(s.Quote.Price, b.Currency)
}

// ChangeColor returns the inline colour for a one-day change.
// Exactly zero counts as positive.
func ChangeColor(c models.PriceChange) string {
	if c.IsNegative() {
		return ColorNegative
	}
	return ColorPositive
}

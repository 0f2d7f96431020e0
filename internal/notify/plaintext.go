package notify

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText flattens the digest HTML into text: headings on their own
// line, list items as "- " bullets, sections separated by a blank line.
func PlainText(htmlBody string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return "", err
	}

	var lines []string
	doc.Find("h1, h2, h3, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if goquery.NodeName(s) == "li" {
			lines = append(lines, "- "+text)
			return
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, text)
	})

	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text()) + "\n", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

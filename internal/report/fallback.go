package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveFallback writes an undelivered report to dir so that it is not lost
// when mail submission fails. It returns the path of the written file.
func SaveFallback(dir, htmlBody string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create fallback dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("pie_digest_%s.html", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(htmlBody), 0o644); err != nil {
		return "", fmt.Errorf("write fallback: %w", err)
	}
	return path, nil
}

// Package symbols loads the mapping from broker-native base tickers to
// market-data tickers.
//
// The file holds one "native,marketdata" pair per line:
//
//	AAPL,AAPL.US
//	RR, RR.L
//
// Whitespace around both sides is ignored. Lines without a comma are skipped.
// When a key repeats, the last occurrence wins.
package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seenimoa/piemail/internal/config"
	"github.com/seenimoa/piemail/pkg/utils"
)

// Map maps a base ticker ("AAPL") to the market-data symbol ("AAPL.US").
type Map map[string]string

// Load reads the mapping file at path. A file that cannot be opened or read
// is reported as *config.ConfigError.
func Load(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &config.ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, &config.ConfigError{Path: path, Err: err}
	}
	return m, nil
}

// Parse reads mapping lines from r.
func Parse(r io.Reader) (Map, error) {
	m := make(Map)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ",")
		if !ok {
			continue
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}
	return m, nil
}

// Resolve returns the market-data ticker for a broker-native ticker:
// the suffix from the first "_" is dropped and the base looked up,
// falling back to the base itself.
func (m Map) Resolve(ticker string) string {
	return utils.ResolveTicker(ticker, m)
}

package config

import (
	"fmt"
	"strings"
)

// ConfigError reports missing or unreadable configuration. It is always
// fatal and raised before any network call.
type ConfigError struct {
	Missing []string // environment variables that must be set
	Path    string   // file involved, if any
	Err     error
}

func (e *ConfigError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return "missing required configuration: " + strings.Join(e.Missing, ", ")
	case e.Path != "":
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("config: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

package config

import "os"

// APIKeySource represents where an API key comes from.
type APIKeySource string

const (
	KeySourceEnv    APIKeySource = "env"
	KeySourceConfig APIKeySource = "config"
	KeySourceNone   APIKeySource = "none"
)

// KeyStatus represents the status of an API key.
type KeyStatus struct {
	Name   string       `json:"name"`
	EnvVar string       `json:"env_var"`
	Source APIKeySource `json:"source"`
	IsSet  bool         `json:"is_set"`
	Masked string       `json:"masked,omitempty"` // e.g., "abc...xyz"
}

// CheckAPIKeys returns the status of all required secrets.
func CheckAPIKeys(cfg *Config) []KeyStatus {
	return []KeyStatus{
		checkKey("Email sender", cfg.Mail.From, EnvEmail, "PIEMAIL_MAIL_FROM"),
		checkKey("Email password", cfg.Mail.Password, EnvEmailPassword, "PIEMAIL_MAIL_PASSWORD"),
		checkKey("Trading 212 API key", cfg.Portfolio.APIKey, EnvTradingToken, "PIEMAIL_PORTFOLIO_API_KEY"),
		checkKey("FMP API key", cfg.MarketData.APIKey, EnvFMPToken, "PIEMAIL_MARKET_DATA_API_KEY"),
	}
}

// checkKey checks if a key is set and where it came from.
func checkKey(name, value string, envVars ...string) KeyStatus {
	status := KeyStatus{
		Name:   name,
		EnvVar: envVars[0],
		IsSet:  value != "",
	}

	if value == "" {
		status.Source = KeySourceNone
		return status
	}

	status.Source = KeySourceConfig
	for _, env := range envVars {
		if os.Getenv(env) != "" {
			status.Source = KeySourceEnv
			break
		}
	}
	status.Masked = maskKey(value)
	return status
}

// maskKey masks an API key for display, showing only first 3 and last 3 chars.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}

// Package config handles configuration loading for piemail.
// It supports an optional YAML config file, a .env file and environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables holding the required secrets.
const (
	EnvEmail         = "EMAIL"
	EnvEmailPassword = "EMAIL_PASSWORD"
	EnvTradingToken  = "TRADING_API_TOKEN"
	EnvFMPToken      = "FINANCIALMODELINGPREP_API_TOKEN"
)

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// Config represents the complete application configuration.
type Config struct {
	Portfolio  PortfolioConfig  `mapstructure:"portfolio"   yaml:"portfolio"`
	MarketData MarketDataConfig `mapstructure:"market_data" yaml:"market_data"`
	Mail       MailConfig       `mapstructure:"mail"        yaml:"mail"`
	Symbols    SymbolsConfig    `mapstructure:"symbols"     yaml:"symbols"`
	Report     ReportConfig     `mapstructure:"report"      yaml:"report"`
	HTTP       HTTPConfig       `mapstructure:"http"        yaml:"http"`
	Logging    LoggingConfig    `mapstructure:"logging"     yaml:"logging"`
}

// PortfolioConfig holds the Trading 212 API settings.
type PortfolioConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key"  yaml:"api_key"`
	PieID   int64  `mapstructure:"pie_id"   yaml:"pie_id"`
}

// MarketDataConfig holds the Financial Modeling Prep API settings.
type MarketDataConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key"  yaml:"api_key"`
}

// MailConfig holds the SMTP submission settings.
type MailConfig struct {
	Host       string `mapstructure:"host"        yaml:"host"`
	Port       int    `mapstructure:"port"        yaml:"port"`
	Username   string `mapstructure:"username"    yaml:"username"` // defaults to From
	Password   string `mapstructure:"password"    yaml:"password"`
	From       string `mapstructure:"from"        yaml:"from"`
	To         string `mapstructure:"to"          yaml:"to"` // defaults to From
	Subject    string `mapstructure:"subject"     yaml:"subject"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// SymbolsConfig points at the broker → market-data symbol mapping file.
type SymbolsConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Currency    string `mapstructure:"currency"     yaml:"currency"`     // ISO 4217, e.g. "USD"
	FallbackDir string `mapstructure:"fallback_dir" yaml:"fallback_dir"` // empty disables the fallback file
}

// HTTPConfig holds outbound HTTP settings.
type HTTPConfig struct {
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml
//  2. ~/.piemail/config.yaml
//  3. /etc/piemail/config.yaml
//
// Environment variables override config file values.
// Format: PIEMAIL_<SECTION>_<KEY>, e.g. PIEMAIL_PORTFOLIO_PIE_ID.
// The secrets also answer to EMAIL, EMAIL_PASSWORD, TRADING_API_TOKEN and
// FINANCIALMODELINGPREP_API_TOKEN.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".piemail"))
	v.AddConfigPath("/etc/piemail")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{Path: v.ConfigFileUsed(), Err: err}
		}
	}
	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return unmarshal(v)
}

// Validate checks that every required secret is present. The returned
// *ConfigError names the environment variables to set.
func (c *Config) Validate() error {
	if err := c.validate(true); err != nil {
		return err
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return &ConfigError{Err: fmt.Errorf("mail.port out of range: %d", c.Mail.Port)}
	}
	return nil
}

// ValidateSources checks only what fetching the pie and its quotes needs.
// It is used by runs that never send mail.
func (c *Config) ValidateSources() error {
	return c.validate(false)
}

func (c *Config) validate(withMail bool) error {
	var missing []string
	if withMail && c.Mail.From == "" {
		missing = append(missing, EnvEmail)
	}
	if withMail && c.Mail.Password == "" {
		missing = append(missing, EnvEmailPassword)
	}
	if c.Portfolio.APIKey == "" {
		missing = append(missing, EnvTradingToken)
	}
	if c.MarketData.APIKey == "" {
		missing = append(missing, EnvFMPToken)
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	if c.Portfolio.PieID <= 0 {
		return &ConfigError{Err: fmt.Errorf("portfolio.pie_id must be positive, got %d", c.Portfolio.PieID)}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PIEMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The prefixed name wins over the historical one when both are set.
	_ = v.BindEnv("mail.from", "PIEMAIL_MAIL_FROM", EnvEmail)
	_ = v.BindEnv("mail.password", "PIEMAIL_MAIL_PASSWORD", EnvEmailPassword)
	_ = v.BindEnv("portfolio.api_key", "PIEMAIL_PORTFOLIO_API_KEY", EnvTradingToken)
	_ = v.BindEnv("market_data.api_key", "PIEMAIL_MARKET_DATA_API_KEY", EnvFMPToken)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("unmarshal config: %w", err)}
	}
	if cfg.Mail.Username == "" {
		cfg.Mail.Username = cfg.Mail.From
	}
	if cfg.Mail.To == "" {
		cfg.Mail.To = cfg.Mail.From
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("portfolio.base_url", "https://live.trading212.com/api/v0")
	v.SetDefault("portfolio.api_key", "")
	v.SetDefault("portfolio.pie_id", 4667358)

	v.SetDefault("market_data.base_url", "https://financialmodelingprep.com/api/v3")
	v.SetDefault("market_data.api_key", "")

	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.subject", "Daily Pie Email!")
	v.SetDefault("mail.timeout_sec", 30)

	v.SetDefault("symbols.path", "./symbols.txt")

	v.SetDefault("report.currency", "USD")
	v.SetDefault("report.fallback_dir", "")

	v.SetDefault("http.timeout_sec", 30)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return &ConfigError{Path: path, Err: err}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

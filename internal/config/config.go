package config

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"exchange-sdk/internal/core"
)

// Exchange names accepted by the config and the CLIs.
const (
	Binance   = "binance"
	Okx       = "okx"
	Upbit     = "upbit"
	Bithumb   = "bithumb"
	Cryptocom = "cryptocom"
)

var knownExchanges = map[string]bool{
	Binance:   true,
	Okx:       true,
	Upbit:     true,
	Bithumb:   true,
	Cryptocom: true,
}

type ExchangeConfig struct {
	APIKey     string `yaml:"api_key"`
	APISecret  string `yaml:"api_secret"`
	Passphrase string `yaml:"passphrase"`
	BaseURL    string `yaml:"base_url"`
}

func (e ExchangeConfig) Credential() core.Credential {
	return core.Credential{Key: e.APIKey, Secret: e.APISecret, Passphrase: e.Passphrase}
}

type Config struct {
	DefaultExchange string                    `yaml:"default_exchange"`
	HTTPTimeoutSec  int64                     `yaml:"http_timeout_sec"`
	Exchanges       map[string]ExchangeConfig `yaml:"exchanges"`
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("config must contain a single YAML document")
		}
		return Config{}, err
	}
	cfg.normalize()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize trims whitespace and expands ${VAR} references so credentials
// can live in the environment instead of the file.
func (c *Config) normalize() {
	c.DefaultExchange = strings.ToLower(strings.TrimSpace(c.DefaultExchange))
	for name, ex := range c.Exchanges {
		ex.APIKey = os.ExpandEnv(strings.TrimSpace(ex.APIKey))
		ex.APISecret = os.ExpandEnv(strings.TrimSpace(ex.APISecret))
		ex.Passphrase = os.ExpandEnv(strings.TrimSpace(ex.Passphrase))
		ex.BaseURL = strings.TrimRight(strings.TrimSpace(ex.BaseURL), "/")
		c.Exchanges[name] = ex
	}
}

func (c *Config) applyDefaults() {
	if c.HTTPTimeoutSec == 0 {
		c.HTTPTimeoutSec = 15
	}
	if c.DefaultExchange == "" {
		c.DefaultExchange = Binance
	}
}

func (c Config) Validate() error {
	if !knownExchanges[c.DefaultExchange] {
		return fmt.Errorf("default_exchange %q is not a known exchange", c.DefaultExchange)
	}
	if c.HTTPTimeoutSec < 1 || c.HTTPTimeoutSec > 120 {
		return fmt.Errorf("http_timeout_sec must be between 1 and 120")
	}
	for name, ex := range c.Exchanges {
		if !knownExchanges[name] {
			return fmt.Errorf("exchanges.%s is not a known exchange", name)
		}
		if ex.BaseURL != "" {
			if err := validateURL(ex.BaseURL); err != nil {
				return fmt.Errorf("exchanges.%s.base_url %v", name, err)
			}
		}
		if name == Okx && ex.APIKey != "" && ex.Passphrase == "" {
			return fmt.Errorf("exchanges.okx.passphrase is required alongside api_key")
		}
		if (ex.APIKey == "") != (ex.APISecret == "") {
			return fmt.Errorf("exchanges.%s: api_key and api_secret must be set together", name)
		}
	}
	return nil
}

// Exchange returns the named exchange section, or a zero value when the
// section is absent (public-only usage needs no config at all).
func (c Config) Exchange(name string) ExchangeConfig {
	return c.Exchanges[strings.ToLower(strings.TrimSpace(name))]
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("must include scheme and host")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("must not carry a query component")
	}
	return nil
}

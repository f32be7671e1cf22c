// Package config reads the INI configuration shared by the covidtracker binaries.
package config

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gcfg.v1"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/historical"
	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

const DefaultCountry = "Philippines"

type Covid struct {
	BaseURL   string
	Country   string
	LastDays  int
	Timeout   string
	UserAgent string
	// SignedChanges adds signed day-over-day changes next to the per-day series.
	SignedChanges bool
}

// TimeoutDuration parses Timeout, falling back to the data source default.
func (c Covid) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return historical.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("covid.timeout: %w", err)
	}
	return d, nil
}

type Web struct {
	Listen string
}

type Webdav struct {
	URL  string
	User string
	Pass string
	Root string
}

type Config struct {
	TGBot        tgbotbase.TGBotConfig
	Proxy_SOCKS5 tgbotbase.ProxyConfig
	Redis        tgbotbase.RedisConfig
	Covid        Covid
	Web          Web
	Webdav       Webdav
}

// Bot extracts the part of the configuration the bot core needs.
func (c Config) Bot() tgbotbase.Config {
	return tgbotbase.Config{TGBot: c.TGBot, Proxy_SOCKS5: c.Proxy_SOCKS5}
}

func defaults() Config {
	var cfg Config
	cfg.Covid.BaseURL = historical.DefaultBaseURL
	cfg.Covid.Country = DefaultCountry
	cfg.Web.Listen = ":8080"
	cfg.Webdav.Root = "/covidtracker"
	return cfg
}

func NewConfig(filename string) (Config, error) {
	log.WithField("file", filename).Info("reading configuration")

	cfg := defaults()
	if err := gcfg.ReadFileInto(&cfg, filename); err != nil {
		return cfg, fmt.Errorf("cannot parse configuration file %s: %w", filename, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	log.WithField("file", filename).Debug("configuration has been read")
	return cfg, nil
}

// ParseConfig reads configuration from INI text.
func ParseConfig(text string) (Config, error) {
	cfg := defaults()
	if err := gcfg.ReadStringInto(&cfg, text); err != nil {
		return cfg, fmt.Errorf("cannot parse configuration: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Covid.LastDays < 0 {
		return fmt.Errorf("covid.lastdays must not be negative, got %d", c.Covid.LastDays)
	}
	if _, err := c.Covid.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// HistoricalClient builds the data source client described by the covid section.
func (c Config) HistoricalClient() (*historical.Client, error) {
	timeout, err := c.Covid.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	opts := []historical.Option{historical.WithTimeout(timeout)}
	if c.Covid.LastDays > 0 {
		opts = append(opts, historical.WithLastDays(c.Covid.LastDays))
	}
	if c.Covid.UserAgent != "" {
		opts = append(opts, historical.WithUserAgent(c.Covid.UserAgent))
	}
	return historical.NewClient(c.Covid.BaseURL, opts...), nil
}

func (c Config) StatsOptions() []covidstats.Option {
	var opts []covidstats.Option
	if c.Covid.SignedChanges {
		opts = append(opts, covidstats.WithSignedChanges())
	}
	return opts
}

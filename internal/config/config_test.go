package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyalavrinov/covidtracker/pkg/historical"
)

const sampleConfig = `
[tgbot]
token = 123:abc
verbose = true

[proxy-socks5]
server = 127.0.0.1:1080
user = me
pass = secret

[redis]
server = localhost:6379

[covid]
country = Italy
lastdays = 30
timeout = 5s
signedchanges = true

[web]
listen = :9090

[webdav]
url = https://dav.example.com
user = dav
pass = pw
`

func TestNewConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "covidtracker.cfg")
	require.NoError(t, os.WriteFile(fname, []byte(sampleConfig), 0o600))

	cfg, err := NewConfig(fname)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TGBot.Token)
	assert.True(t, cfg.TGBot.Verbose)
	assert.Equal(t, "127.0.0.1:1080", cfg.Proxy_SOCKS5.Server)
	assert.Equal(t, "secret", cfg.Proxy_SOCKS5.Pass)
	assert.Equal(t, "localhost:6379", cfg.Redis.Server)
	assert.Equal(t, "Italy", cfg.Covid.Country)
	assert.Equal(t, 30, cfg.Covid.LastDays)
	assert.True(t, cfg.Covid.SignedChanges)
	assert.Len(t, cfg.StatsOptions(), 1)
	assert.Equal(t, ":9090", cfg.Web.Listen)
	assert.Equal(t, "https://dav.example.com", cfg.Webdav.URL)

	timeout, err := cfg.Covid.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)

	bot := cfg.Bot()
	assert.Equal(t, cfg.TGBot, bot.TGBot)
	assert.Equal(t, cfg.Proxy_SOCKS5, bot.Proxy_SOCKS5)
}

func TestDefaults(t *testing.T) {
	cfg, err := ParseConfig("[tgbot]\ntoken = t\n")
	require.NoError(t, err)

	assert.Equal(t, DefaultCountry, cfg.Covid.Country)
	assert.Equal(t, historical.DefaultBaseURL, cfg.Covid.BaseURL)
	assert.Equal(t, ":8080", cfg.Web.Listen)
	assert.Equal(t, "/covidtracker", cfg.Webdav.Root)
	assert.Empty(t, cfg.StatsOptions())

	timeout, err := cfg.Covid.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, historical.DefaultTimeout, timeout)

	_, err = cfg.HistoricalClient()
	assert.NoError(t, err)
}

func TestInvalidConfig(t *testing.T) {
	_, err := ParseConfig("[covid]\ntimeout = soon\n")
	assert.Error(t, err)

	_, err = ParseConfig("[covid]\nlastdays = -1\n")
	assert.Error(t, err)

	_, err = ParseConfig("[unknown]\nkey = value\n")
	assert.Error(t, err)

	_, err = NewConfig(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}

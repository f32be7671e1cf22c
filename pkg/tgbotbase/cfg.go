package tgbotbase

type TGBotConfig struct {
	Token string
	// APIEndpoint overrides the Bot API URL template, e.g. for a local server.
	APIEndpoint string
	SkipConnect bool
	Verbose     bool
}

type ProxyConfig struct {
	Server string
	User   string
	Pass   string
}

type Config struct {
	TGBot        TGBotConfig
	Proxy_SOCKS5 ProxyConfig
}

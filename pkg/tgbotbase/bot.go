package tgbotbase

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

type Bot struct {
	dealers []MessageDealer
	cfg     Config

	api      *tgbotapi.BotAPI
	userName string
	outMsgCh chan tgbotapi.Chattable
}

func NewBot(cfg Config) (*Bot, error) {
	b := &Bot{
		dealers:  make([]MessageDealer, 0),
		cfg:      cfg,
		outMsgCh: make(chan tgbotapi.Chattable),
	}

	if cfg.TGBot.SkipConnect {
		log.Warn("Telegram connection is skipped, replies will only be logged")
		return b, nil
	}

	client, err := newHTTPClient(cfg.Proxy_SOCKS5)
	if err != nil {
		return nil, err
	}
	endpoint := cfg.TGBot.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	b.api, err = tgbotapi.NewBotAPIWithClient(cfg.TGBot.Token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to telegram: %w", err)
	}
	b.userName = b.api.Self.UserName
	log.WithField("username", b.userName).Info("authorized on telegram")

	return b, nil
}

func newHTTPClient(cfg ProxyConfig) (*http.Client, error) {
	if cfg.Server == "" {
		log.Info("no proxy is set, going without any proxy")
		return &http.Client{}, nil
	}

	log.WithFields(log.Fields{"server": cfg.Server, "user": cfg.User}).Info("connecting through SOCKS5 proxy")
	auth := &proxy.Auth{User: cfg.User, Password: cfg.Pass}
	if cfg.User == "" {
		auth = nil
	}
	dialer, err := proxy.SOCKS5("tcp", cfg.Server, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("cannot get proxy dialer: %w", err)
	}
	ctxDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("proxy dialer for %q does not support contexts", cfg.Server)
	}
	return &http.Client{Transport: &http.Transport{DialContext: ctxDialer.DialContext}}, nil
}

// UserName is the bot's own Telegram username; empty when not connected.
func (b *Bot) UserName() string {
	return b.userName
}

func (b *Bot) AddHandler(d MessageDealer) {
	log.WithField("handler", d.name()).Debug("preparing handler")
	d.init(b.outMsgCh, b.userName)
	b.dealers = append(b.dealers, d)
}

// Start runs handlers and dispatches updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	log.Info("starting bot")
	for _, d := range b.dealers {
		log.WithField("handler", d.name()).Debug("starting handler")
		d.run()
	}

	go b.serveReplies(ctx)

	if b.api == nil {
		<-ctx.Done()
		return nil
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			log.Info("main cycle has been aborted")
			return nil
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("telegram updates channel closed")
			}
			if b.cfg.TGBot.Verbose {
				dumpUpdate(update)
			}
			if update.Message == nil {
				log.WithField("update", update.UpdateID).Debug("no message in update, skipping")
				continue
			}
			for _, d := range b.dealers {
				d.accept(*update.Message)
			}
		}
	}
}

func (b *Bot) Send(msg tgbotapi.Chattable) {
	b.outMsgCh <- msg
}

func (b *Bot) serveReplies(ctx context.Context) {
	log.Debug("started serving replies")
	for {
		select {
		case <-ctx.Done():
			log.Debug("finished serving replies")
			return
		case msg := <-b.outMsgCh:
			if b.api == nil {
				log.WithField("msg", fmt.Sprintf("%+v", msg)).Info("not connected, reply dropped")
				continue
			}
			if _, err := b.api.Send(msg); err != nil {
				log.WithFields(log.Fields{"msg": fmt.Sprintf("%+v", msg), "err": err}).Error("could not send reply")
			}
		}
	}
}

func dumpUpdate(update tgbotapi.Update) {
	fields := log.Fields{"update": update.UpdateID}
	if m := update.Message; m != nil {
		fields["chat"] = m.Chat.ID
		fields["text"] = m.Text
		if m.From != nil {
			fields["from"] = m.From.UserName
		}
		fields["newMembers"] = len(m.NewChatMembers)
	}
	log.WithFields(fields).Debug("update received")
}

// Package tracker wires the Telegram bot: configuration, Redis-backed
// settings, the scheduler and the command handlers.
package tracker

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/internal/config"
	cmd "github.com/ilyalavrinov/covidtracker/internal/tracker/commandhandler"
	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

func Start(ctx context.Context, cfgFilename string) error {
	log.SetLevel(log.DebugLevel)
	log.Info("starting covid tracker bot")

	cfg, err := config.NewConfig(cfgFilename)
	if err != nil {
		log.WithField("err", err).Error("bot cannot be started")
		return err
	}

	bot, err := tgbotbase.NewBot(cfg.Bot())
	if err != nil {
		return err
	}

	pool, err := tgbotbase.NewRedisPool(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer pool.Close()
	props, err := tgbotbase.NewRedisPropertyStorage(pool)
	if err != nil {
		return err
	}

	client, err := cfg.HistoricalClient()
	if err != nil {
		return err
	}
	builder := dashboard.NewBuilder(client, cfg.StatsOptions()...)

	cron := tgbotbase.NewCron(ctx)
	morning := cmd.NewCovidMorningHandler(cron, props, builder, cfg.Covid.Country)
	hooks := map[string]cmd.PropertyHook{
		"covidTime": morning.Schedule,
	}

	bot.AddHandler(tgbotbase.NewIncomingMessageDealer(cmd.NewPropertyHandler(props, hooks)))
	bot.AddHandler(tgbotbase.NewIncomingMessageDealer(cmd.NewCovidHandler(builder, props, cfg.Covid.Country)))
	bot.AddHandler(tgbotbase.NewBackgroundMessageDealer(morning))
	bot.AddHandler(tgbotbase.NewEngagementMessageDealer(cmd.NewGreetingHandler()))

	err = bot.Start(ctx)
	log.WithField("err", err).Info("stopping covid tracker bot")
	return err
}

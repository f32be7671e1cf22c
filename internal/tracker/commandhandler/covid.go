package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
	"github.com/ilyalavrinov/covidtracker/pkg/historical"
	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

const requestTimeout = time.Minute

type covidHandler struct {
	tgbotbase.BaseHandler
	builder        ReportBuilder
	props          tgbotbase.PropertyStorage
	defaultCountry string
}

var _ tgbotbase.IncomingMessageHandler = &covidHandler{}

func NewCovidHandler(builder ReportBuilder, props tgbotbase.PropertyStorage, defaultCountry string) tgbotbase.IncomingMessageHandler {
	return &covidHandler{
		builder:        builder,
		props:          props,
		defaultCountry: defaultCountry,
	}
}

func (h *covidHandler) Init(outMsgCh chan<- tgbotapi.Chattable) tgbotbase.HandlerTrigger {
	h.OutMsgCh = outMsgCh
	return tgbotbase.NewHandlerTrigger(nil, []string{"covid", "corona"})
}

func (h *covidHandler) HandleOne(msg tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	chat := tgbotbase.ChatID(msg.Chat.ID)
	var user tgbotbase.UserID
	if msg.From != nil {
		user = tgbotbase.UserID(msg.From.ID)
	}

	country := strings.TrimSpace(msg.CommandArguments())
	if country == "" {
		country = preferredCountry(ctx, h.props, user, chat, h.defaultCountry)
	}

	var reply tgbotapi.MessageConfig
	report, err := h.builder.Build(ctx, country)
	if err != nil {
		log.WithFields(log.Fields{"country": country, "chat": chat, "err": err}).Error("covid report failed")
		reply = tgbotapi.NewMessage(msg.Chat.ID, failureText(country, err))
	} else {
		reply = reportMessage(msg.Chat.ID, report)
	}
	reply.ReplyToMessageID = msg.MessageID
	h.OutMsgCh <- reply
}

func (h *covidHandler) Name() string {
	return "covid report"
}

func preferredCountry(ctx context.Context, props tgbotbase.PropertyStorage, user tgbotbase.UserID, chat tgbotbase.ChatID, fallback string) string {
	country, err := props.GetProperty(ctx, propCountry, user, chat)
	if err != nil {
		log.WithFields(log.Fields{"user": user, "chat": chat, "err": err}).Warn("could not read country property")
	}
	if country == "" {
		return fallback
	}
	return country
}

func reportMessage(chatID int64, r *dashboard.Report) tgbotapi.MessageConfig {
	m := tgbotapi.NewMessage(chatID, dashboard.Markdown(r))
	m.ParseMode = tgbotapi.ModeMarkdownV2
	m.DisableWebPagePreview = true
	return m
}

func failureText(country string, err error) string {
	switch {
	case errors.Is(err, historical.ErrNotFound):
		return fmt.Sprintf("No COVID-19 data for %q. Try a country name like Philippines or \"all\".", country)
	case errors.Is(err, covidstats.ErrMalformedInput), errors.Is(err, covidstats.ErrEmptyInput), errors.Is(err, historical.ErrNoTimeline),
		errors.Is(err, historical.ErrBadResponse):
		return fmt.Sprintf("The COVID-19 data for %s looks broken right now, please try later.", country)
	case errors.Is(err, context.DeadlineExceeded):
		return "The COVID-19 data source is too slow right now, please try later."
	}
	return "Could not load COVID-19 data, please try later."
}

package cmd

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

const greetingText = `Hi! I track COVID-19 statistics.

/covid [country] - current numbers, e.g. /covid Philippines or /covid all
/propsetchat covidCountry <country> - default country for this chat
/propsetchat covidTime 9h30m - daily report at 09:30`

type greetingHandler struct {
	tgbotbase.BaseHandler
}

var _ tgbotbase.EngagementHandler = &greetingHandler{}

func NewGreetingHandler() tgbotbase.EngagementHandler {
	return &greetingHandler{}
}

func (h *greetingHandler) Init(outMsgCh chan<- tgbotapi.Chattable) {
	h.OutMsgCh = outMsgCh
}

func (h *greetingHandler) Engaged(chat *tgbotapi.Chat, by *tgbotapi.User) {
	log.WithField("chat", chat.ID).Info("bot added to chat")
	h.OutMsgCh <- tgbotapi.NewMessage(chat.ID, greetingText)
}

func (h *greetingHandler) Disengaged(chat *tgbotapi.Chat, by *tgbotapi.User) {
	log.WithField("chat", chat.ID).Info("bot removed from chat")
}

func (h *greetingHandler) Name() string {
	return "greeting"
}

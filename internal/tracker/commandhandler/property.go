package cmd

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

// PropertyHook is called after a property has been stored. A returned error
// is shown to the user next to the stored value.
type PropertyHook func(user tgbotbase.UserID, chat tgbotbase.ChatID, value string) error

type propertyHandler struct {
	tgbotbase.BaseHandler
	storage tgbotbase.PropertyStorage
	hooks   map[string]PropertyHook
}

var _ tgbotbase.IncomingMessageHandler = &propertyHandler{}

func NewPropertyHandler(storage tgbotbase.PropertyStorage, hooks map[string]PropertyHook) tgbotbase.IncomingMessageHandler {
	return &propertyHandler{storage: storage, hooks: hooks}
}

func (h *propertyHandler) HandleOne(msg tgbotapi.Message) {
	args := msg.CommandArguments()
	chat := tgbotbase.ChatID(msg.Chat.ID)
	var user tgbotbase.UserID
	if msg.From != nil {
		user = tgbotbase.UserID(msg.From.ID)
	}

	splits := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(splits) != 2 || strings.TrimSpace(splits[1]) == "" {
		log.WithField("args", args).Warn("could not split property arguments into name + value")
		h.reply(msg, fmt.Sprintf("Usage: /%s name value", msg.Command()))
		return
	}
	name := splits[0]
	value := strings.TrimSpace(splits[1])

	if msg.Command() == "propsetchat" {
		user = 0
	}

	err := h.storage.SetPropertyForUserInChat(context.Background(), name, user, chat, value)
	if err != nil {
		log.WithFields(log.Fields{"name": name, "user": user, "chat": chat, "err": err}).Error("could not set property")
		h.reply(msg, fmt.Sprintf("Could not set %s", name))
		return
	}
	text := fmt.Sprintf("%s = %s", name, value)
	if hook, found := h.hooks[name]; found {
		if err := hook(user, chat, value); err != nil {
			log.WithFields(log.Fields{"name": name, "value": value, "err": err}).Warn("property hook failed")
			text += "\nNot applied: " + err.Error()
		}
	}
	h.reply(msg, text)
}

func (h *propertyHandler) reply(msg tgbotapi.Message, text string) {
	r := tgbotapi.NewMessage(msg.Chat.ID, text)
	r.ReplyToMessageID = msg.MessageID
	h.OutMsgCh <- r
}

func (h *propertyHandler) Init(outMsgCh chan<- tgbotapi.Chattable) tgbotbase.HandlerTrigger {
	h.OutMsgCh = outMsgCh
	return tgbotbase.NewHandlerTrigger(nil, []string{"propset", "propsetchat"})
}

func (h *propertyHandler) Name() string {
	return "property"
}

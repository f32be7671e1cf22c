package tgbotbase

import (
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

type MessageDealer interface {
	init(outMsgCh chan<- tgbotapi.Chattable, botName string)
	accept(tgbotapi.Message)
	run()
	name() string
}

type HandlerTrigger struct {
	re   *regexp.Regexp
	cmds map[string]bool
}

func NewHandlerTrigger(re *regexp.Regexp, cmds []string) HandlerTrigger {
	cmdmap := make(map[string]bool, len(cmds))
	for _, c := range cmds {
		cmdmap[c] = true
	}
	return HandlerTrigger{re: re, cmds: cmdmap}
}

func (t *HandlerTrigger) canHandle(msg tgbotapi.Message) bool {
	if t.re != nil && t.re.MatchString(strings.ToLower(msg.Text)) {
		log.WithFields(log.Fields{"text": msg.Text, "re": t.re}).Debug("message matched regexp")
		return true
	}
	if msg.IsCommand() {
		if cmd := msg.Command(); t.cmds[cmd] {
			log.WithFields(log.Fields{"text": msg.Text, "cmd": cmd}).Debug("message matched command")
			return true
		}
	}
	return false
}

// BaseHandler carries the reply channel every handler writes to.
type BaseHandler struct {
	OutMsgCh chan<- tgbotapi.Chattable
}

type IncomingMessageHandler interface {
	Init(outMsgCh chan<- tgbotapi.Chattable) HandlerTrigger
	HandleOne(tgbotapi.Message)
	Name() string
}

type IncomingMessageDealer struct {
	handler IncomingMessageHandler
	trigger HandlerTrigger
	inMsgCh chan tgbotapi.Message
}

func NewIncomingMessageDealer(h IncomingMessageHandler) *IncomingMessageDealer {
	return &IncomingMessageDealer{handler: h}
}

func (d *IncomingMessageDealer) init(outMsgCh chan<- tgbotapi.Chattable, botName string) {
	d.trigger = d.handler.Init(outMsgCh)
	d.inMsgCh = make(chan tgbotapi.Message)
}

func (d *IncomingMessageDealer) accept(msg tgbotapi.Message) {
	if d.trigger.canHandle(msg) {
		d.inMsgCh <- msg
	}
}

func (d *IncomingMessageDealer) run() {
	go func() {
		for msg := range d.inMsgCh {
			d.handler.HandleOne(msg)
		}
	}()
}

func (d *IncomingMessageDealer) name() string {
	return d.handler.Name()
}

type BackgroundMessageHandler interface {
	Init(outMsgCh chan<- tgbotapi.Chattable)
	Run()
	Name() string
}

type BackgroundMessageDealer struct {
	h BackgroundMessageHandler
}

func NewBackgroundMessageDealer(h BackgroundMessageHandler) MessageDealer {
	return &BackgroundMessageDealer{h: h}
}

func (d *BackgroundMessageDealer) init(outMsgCh chan<- tgbotapi.Chattable, botName string) {
	d.h.Init(outMsgCh)
}

func (d *BackgroundMessageDealer) accept(tgbotapi.Message) {}

func (d *BackgroundMessageDealer) run() {
	d.h.Run()
}

func (d *BackgroundMessageDealer) name() string {
	return d.h.Name()
}

// EngagementHandler is told when the bot joins or leaves a chat.
type EngagementHandler interface {
	Init(outMsgCh chan<- tgbotapi.Chattable)
	Engaged(chat *tgbotapi.Chat, by *tgbotapi.User)
	Disengaged(chat *tgbotapi.Chat, by *tgbotapi.User)
	Name() string
}

type EngagementMessageDealer struct {
	h       EngagementHandler
	botName string
}

func NewEngagementMessageDealer(h EngagementHandler) MessageDealer {
	return &EngagementMessageDealer{h: h}
}

func (d *EngagementMessageDealer) init(outMsgCh chan<- tgbotapi.Chattable, botName string) {
	d.botName = botName
	d.h.Init(outMsgCh)
}

func (d *EngagementMessageDealer) accept(msg tgbotapi.Message) {
	for _, m := range msg.NewChatMembers {
		if m.IsBot && m.UserName == d.botName {
			d.h.Engaged(msg.Chat, msg.From)
		}
	}
	if m := msg.LeftChatMember; m != nil && m.UserName == d.botName {
		d.h.Disengaged(msg.Chat, msg.From)
	}
}

func (d *EngagementMessageDealer) run() {}

func (d *EngagementMessageDealer) name() string {
	return d.h.Name()
}

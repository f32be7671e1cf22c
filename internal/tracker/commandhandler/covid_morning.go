package cmd

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

// CovidMorningHandler sends the daily report to every chat having covidTime set.
type CovidMorningHandler struct {
	tgbotbase.BaseHandler
	props          tgbotbase.PropertyStorage
	cron           tgbotbase.Cron
	builder        ReportBuilder
	defaultCountry string
	now            func() time.Time

	mu          sync.Mutex
	generations map[tgbotbase.ChatID]uint64
}

var (
	ErrBadReportTime       = errors.New("report time must be a duration from midnight below 24h, e.g. 9h30m")
	ErrPersonalTimeInGroup = errors.New("a personal report time works only in a private chat, use /propsetchat")
)

var _ tgbotbase.BackgroundMessageHandler = &CovidMorningHandler{}

func NewCovidMorningHandler(cron tgbotbase.Cron,
	props tgbotbase.PropertyStorage,
	builder ReportBuilder,
	defaultCountry string) *CovidMorningHandler {
	return &CovidMorningHandler{
		props:          props,
		cron:           cron,
		builder:        builder,
		defaultCountry: defaultCountry,
		now:            time.Now,
		generations:    make(map[tgbotbase.ChatID]uint64),
	}
}

func (h *CovidMorningHandler) Init(outMsgCh chan<- tgbotapi.Chattable) {
	h.OutMsgCh = outMsgCh
}

func (h *CovidMorningHandler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	props, err := h.props.GetEveryHavingProperty(ctx, propTime)
	if err != nil {
		log.WithField("err", err).Error("could not load covid schedule")
		return
	}
	for _, prop := range props {
		h.Schedule(prop.User, prop.Chat, prop.Value)
	}
}

// Schedule plans the daily report for chat at the given duration from
// midnight, e.g. "9h30m". user is 0 for a chat-wide setting or the owner of a
// private chat. A successful call replaces any job planned earlier for chat.
func (h *CovidMorningHandler) Schedule(user tgbotbase.UserID, chat tgbotbase.ChatID, at string) error {
	if (user != 0) && (tgbotbase.ChatID(user) != chat) {
		log.WithFields(log.Fields{"user": user, "chat": chat}).Debug("skipping special setting for user in chat")
		return ErrPersonalTimeInGroup
	}
	dur, err := time.ParseDuration(at)
	if err != nil || dur < 0 || dur >= 24*time.Hour {
		log.WithFields(log.Fields{"chat": chat, "value": at, "err": err}).Warn("bad covid report time")
		return ErrBadReportTime
	}

	h.mu.Lock()
	h.generations[chat]++
	gen := h.generations[chat]
	h.mu.Unlock()

	when := tgbotbase.CalcNextTimeFromMidnight(h.now(), dur)
	log.WithFields(log.Fields{"chat": chat, "when": when, "generation": gen}).Info("covid report scheduled")
	h.cron.AddJob(when, &covidJob{h: h, user: user, chat: chat, at: at, gen: gen})
	return nil
}

func (h *CovidMorningHandler) isCurrent(job *covidJob) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.generations[job.chat] == job.gen
}

func (h *CovidMorningHandler) Name() string {
	return "covid report at morning"
}

type covidJob struct {
	h    *CovidMorningHandler
	user tgbotbase.UserID
	chat tgbotbase.ChatID
	at   string
	gen  uint64
}

var _ tgbotbase.CronJob = &covidJob{}

func (job *covidJob) Do(scheduledWhen time.Time, cron tgbotbase.Cron) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	h := job.h
	fields := log.Fields{"chat": job.chat, "scheduled": scheduledWhen}

	if !h.isCurrent(job) {
		log.WithFields(fields).WithField("generation", job.gen).Info("covid job superseded, retired")
		return
	}

	// a changed or removed covidTime retires this job; a new one was scheduled on change
	current, err := h.props.GetProperty(ctx, propTime, job.user, job.chat)
	if err != nil {
		log.WithFields(fields).WithField("err", err).Error("could not read covid schedule")
		cron.AddJob(scheduledWhen.Add(24*time.Hour), job)
		return
	}
	if current != job.at {
		log.WithFields(fields).WithField("now", current).Info("covid schedule changed, job retired")
		return
	}
	defer cron.AddJob(scheduledWhen.Add(24*time.Hour), job)

	country := preferredCountry(ctx, h.props, job.user, job.chat, h.defaultCountry)
	report, err := h.builder.Build(ctx, country)
	if err != nil {
		log.WithFields(fields).WithFields(log.Fields{"country": country, "err": err}).Error("daily covid report failed")
		return
	}

	latest := report.Dataset.Range.To.Format("2006-01-02")
	last, _ := h.props.GetProperty(ctx, propLastDate, 0, job.chat)
	if last == country+"@"+latest {
		log.WithFields(fields).WithField("latest", latest).Info("no new covid data since last report")
		return
	}

	h.OutMsgCh <- reportMessage(int64(job.chat), report)
	if err := h.props.SetPropertyForChat(ctx, propLastDate, job.chat, country+"@"+latest); err != nil {
		log.WithFields(fields).WithField("err", err).Warn("could not remember last report")
	}
}

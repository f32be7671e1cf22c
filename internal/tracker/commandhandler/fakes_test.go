package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

type memProps struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemProps() *memProps {
	return &memProps{values: make(map[string]string)}
}

func memKey(name string, user tgbotbase.UserID, chat tgbotbase.ChatID) string {
	return fmt.Sprintf("%s:%d:%d", name, user, chat)
}

func (p *memProps) GetProperty(ctx context.Context, name string, user tgbotbase.UserID, chat tgbotbase.ChatID) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, k := range []string{memKey(name, user, chat), memKey(name, user, tgbotbase.ChatID(user)), memKey(name, 0, chat)} {
		if v, found := p.values[k]; found {
			return v, nil
		}
	}
	return "", nil
}

func (p *memProps) SetPropertyForUser(ctx context.Context, name string, user tgbotbase.UserID, value interface{}) error {
	return p.SetPropertyForUserInChat(ctx, name, user, tgbotbase.ChatID(user), value)
}

func (p *memProps) SetPropertyForChat(ctx context.Context, name string, chat tgbotbase.ChatID, value interface{}) error {
	return p.SetPropertyForUserInChat(ctx, name, 0, chat, value)
}

func (p *memProps) SetPropertyForUserInChat(ctx context.Context, name string, user tgbotbase.UserID, chat tgbotbase.ChatID, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[memKey(name, user, chat)] = fmt.Sprint(value)
	return nil
}

func (p *memProps) GetEveryHavingProperty(ctx context.Context, name string) ([]tgbotbase.PropertyValue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var res []tgbotbase.PropertyValue
	for k, v := range p.values {
		parts := strings.Split(k, ":")
		if len(parts) != 3 || parts[0] != name {
			continue
		}
		user, _ := strconv.ParseInt(parts[1], 10, 64)
		chat, _ := strconv.ParseInt(parts[2], 10, 64)
		res = append(res, tgbotbase.PropertyValue{User: tgbotbase.UserID(user), Chat: tgbotbase.ChatID(chat), Value: v})
	}
	return res, nil
}

type fakeBuilder struct {
	mu        sync.Mutex
	countries []string
	report    *dashboard.Report
	err       error
}

func (b *fakeBuilder) Build(ctx context.Context, country string) (*dashboard.Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.countries = append(b.countries, country)
	if b.err != nil {
		return nil, b.err
	}
	return b.report, nil
}

func (b *fakeBuilder) requested() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.countries...)
}

type scheduledJob struct {
	when time.Time
	job  tgbotbase.CronJob
}

type fakeCron struct {
	mu   sync.Mutex
	jobs []scheduledJob
}

func (c *fakeCron) AddJob(when time.Time, job tgbotbase.CronJob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, scheduledJob{when: when, job: job})
}

func (c *fakeCron) scheduled() []scheduledJob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]scheduledJob(nil), c.jobs...)
}

func sampleReport(country string, to time.Time) *dashboard.Report {
	raw := func(values ...string) covidstats.RawSeries {
		s := make(covidstats.RawSeries, 0, len(values))
		for i, v := range values {
			s = append(s, covidstats.RawPoint{Key: to.AddDate(0, 0, i-len(values)+1).Format("2006-01-02"), Value: v})
		}
		return s
	}
	ds, err := covidstats.Aggregate(country, covidstats.Timeline{
		Cases:     raw("10", "15", "30"),
		Deaths:    raw("0", "1", "1"),
		Recovered: raw("1", "2", "9"),
	})
	if err != nil {
		panic(err)
	}
	return &dashboard.Report{Dataset: ds, Overview: dashboard.NewOverview(ds, 0), Generated: to}
}

func drain(ch chan tgbotapi.Chattable) []tgbotapi.MessageConfig {
	var res []tgbotapi.MessageConfig
	for {
		select {
		case m := <-ch:
			res = append(res, m.(tgbotapi.MessageConfig))
		default:
			return res
		}
	}
}

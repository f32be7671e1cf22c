package cmd

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyalavrinov/covidtracker/pkg/tgbotbase"
)

type hookCall struct {
	user  tgbotbase.UserID
	chat  tgbotbase.ChatID
	value string
}

func TestPropertyHandler(t *testing.T) {
	ctx := context.Background()
	props := newMemProps()
	var calls []hookCall
	h := NewPropertyHandler(props, map[string]PropertyHook{
		propTime: func(user tgbotbase.UserID, chat tgbotbase.ChatID, value string) error {
			calls = append(calls, hookCall{user, chat, value})
			return nil
		},
	})
	out := make(chan tgbotapi.Chattable, 10)
	h.Init(out)

	h.HandleOne(commandMessage(-100, 7, "/propset covidCountry South Korea"))
	v, err := props.GetProperty(ctx, propCountry, 7, -100)
	require.NoError(t, err)
	assert.Equal(t, "South Korea", v)
	v, err = props.GetProperty(ctx, propCountry, 8, -100)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	h.HandleOne(commandMessage(-100, 7, "/propsetchat covidTime 9h30m"))
	v, err = props.GetProperty(ctx, propTime, 8, -100)
	require.NoError(t, err)
	assert.Equal(t, "9h30m", v)
	assert.Equal(t, []hookCall{{0, -100, "9h30m"}}, calls)

	h.HandleOne(commandMessage(-100, 7, "/propset covidTime"))

	replies := drain(out)
	require.Len(t, replies, 3)
	assert.Equal(t, "covidCountry = South Korea", replies[0].Text)
	assert.Equal(t, "covidTime = 9h30m", replies[1].Text)
	assert.Equal(t, "Usage: /propset name value", replies[2].Text)
	assert.Len(t, calls, 1)
}

func TestPropertyHookSchedulesReport(t *testing.T) {
	props := newMemProps()
	morning, c, _ := newTestMorning(&fakeBuilder{}, props)
	h := NewPropertyHandler(props, map[string]PropertyHook{propTime: morning.Schedule})
	out := make(chan tgbotapi.Chattable, 10)
	h.Init(out)

	h.HandleOne(commandMessage(-100, 7, "/propsetchat covidTime 21h"))
	require.Len(t, c.scheduled(), 1)
	assert.Equal(t, 21, c.scheduled()[0].when.Hour())

	h.HandleOne(commandMessage(-100, 7, "/propsetchat covidTime tomorrow"))
	h.HandleOne(commandMessage(-100, 7, "/propset covidTime 8h"))
	assert.Len(t, c.scheduled(), 1)

	replies := drain(out)
	require.Len(t, replies, 3)
	assert.Equal(t, "covidTime = 21h", replies[0].Text)
	assert.Equal(t, "covidTime = tomorrow\nNot applied: "+ErrBadReportTime.Error(), replies[1].Text)
	assert.Equal(t, "covidTime = 8h\nNot applied: "+ErrPersonalTimeInGroup.Error(), replies[2].Text)
}

func TestGreetingHandler(t *testing.T) {
	h := NewGreetingHandler()
	out := make(chan tgbotapi.Chattable, 1)
	h.Init(out)

	h.Engaged(&tgbotapi.Chat{ID: -5}, &tgbotapi.User{ID: 7})
	h.Disengaged(&tgbotapi.Chat{ID: -5}, &tgbotapi.User{ID: 7})

	msgs := drain(out)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(-5), msgs[0].ChatID)
	assert.Contains(t, msgs[0].Text, "/covid")
	assert.Equal(t, "greeting", h.Name())
}

func TestScheduleIgnoresUserInGroup(t *testing.T) {
	morning, c, _ := newTestMorning(&fakeBuilder{}, newMemProps())
	assert.ErrorIs(t, morning.Schedule(7, -100, "9h"), ErrPersonalTimeInGroup)
	assert.NoError(t, morning.Schedule(7, 7, "9h"))
	assert.Len(t, c.scheduled(), 1)
}

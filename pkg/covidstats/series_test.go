package covidstats

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	raw := RawSeries{
		{Key: "1/22/20", Value: "0"},
		{Key: "1/23/20", Value: "3"},
		{Key: "2020-01-24", Value: "5.0"},
	}

	series, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, time.Date(2020, time.January, 22, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, int64(0), series[0].Value)
	assert.Equal(t, int64(3), series[1].Value)
	assert.Equal(t, day(24), series[2].Date)
	assert.Equal(t, int64(5), series[2].Value)
}

func TestNormalizeEmpty(t *testing.T) {
	series, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  RawSeries
	}{
		{"missing date", RawSeries{{Key: "", Value: "1"}}},
		{"unparsable date", RawSeries{{Key: "yesterday", Value: "1"}}},
		{"missing value", RawSeries{{Key: "1/22/20", Value: ""}}},
		{"non numeric", RawSeries{{Key: "1/22/20", Value: "abc"}}},
		{"negative", RawSeries{{Key: "1/22/20", Value: "-4"}}},
		{"fraction", RawSeries{{Key: "1/22/20", Value: "1.5"}}},
		{"nan", RawSeries{{Key: "1/22/20", Value: "NaN"}}},
		{"duplicate date", RawSeries{{Key: "1/22/20", Value: "1"}, {Key: "1/22/20", Value: "2"}}},
		{"out of order", RawSeries{{Key: "1/23/20", Value: "1"}, {Key: "1/22/20", Value: "2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := Normalize(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
			var me *MalformedInputError
			require.True(t, errors.As(err, &me))
			assert.Nil(t, series)
		})
	}
}

package covidstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...int64) TimeSeries {
	s := make(TimeSeries, 0, len(values))
	for i, v := range values {
		s = append(s, TimePoint{Date: day(i + 1), Value: v})
	}
	return s
}

func values(s TimeSeries) []int64 {
	out := make([]int64, 0, len(s))
	for _, p := range s {
		out = append(out, p.Value)
	}
	return out
}

func TestDaily(t *testing.T) {
	cumulative := series(3, 5, 5, 12)
	daily := Daily(cumulative)

	assert.Equal(t, []int64{3, 2, 0, 7}, values(daily))
	for i := range daily {
		assert.Equal(t, cumulative[i].Date, daily[i].Date)
	}
}

func TestDailyRevision(t *testing.T) {
	assert.Equal(t, []int64{10, 3}, values(Daily(series(10, 7))))
}

func TestDailyEmpty(t *testing.T) {
	assert.Empty(t, Daily(nil))
	assert.Empty(t, Daily(TimeSeries{}))
}

func TestDailyRunningSumRestoresCumulative(t *testing.T) {
	cumulative := series(0, 1, 1, 4, 9, 9, 20, 21, 35)
	daily := Daily(cumulative)
	require.Len(t, daily, len(cumulative))

	var sum int64
	for i, p := range daily {
		sum += p.Value
		assert.Equal(t, cumulative[i].Value, sum, "index %d", i)
	}
}

func TestChangesKeepSign(t *testing.T) {
	changes := Changes(series(10, 7, 9))
	require.Len(t, changes, 3)
	assert.Equal(t, int64(10), changes[0].Delta)
	assert.Equal(t, int64(-3), changes[1].Delta)
	assert.Equal(t, int64(2), changes[2].Delta)
}

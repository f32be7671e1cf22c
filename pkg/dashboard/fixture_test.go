package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/historical"
)

func raw(values ...int64) covidstats.RawSeries {
	s := make(covidstats.RawSeries, 0, len(values))
	for i, v := range values {
		s = append(s, covidstats.RawPoint{Key: fmt.Sprintf("1/%d/20", i+1), Value: fmt.Sprint(v)})
	}
	return s
}

func sampleTimeline() covidstats.Timeline {
	return covidstats.Timeline{
		Cases:     raw(10, 20, 40, 80, 100, 1000, 1500, 2000),
		Deaths:    raw(0, 0, 1, 1, 2, 3, 3, 5),
		Recovered: raw(0, 1, 2, 5, 10, 50, 100, 500),
	}
}

type fakeSource struct {
	timeline      covidstats.Timeline
	population    int64
	historicalErr error
	populationErr error

	historicalCalls int
}

func (f *fakeSource) Historical(ctx context.Context, country string) (*historical.Response, error) {
	f.historicalCalls++
	if f.historicalErr != nil {
		return nil, f.historicalErr
	}
	return &historical.Response{Country: country, Timeline: f.timeline}, nil
}

func (f *fakeSource) Population(ctx context.Context, country string) (int64, error) {
	if f.populationErr != nil {
		return 0, f.populationErr
	}
	return f.population, nil
}

func sampleReport(t *testing.T) *Report {
	t.Helper()
	b := NewBuilder(&fakeSource{timeline: sampleTimeline(), population: 1000000})
	b.now = func() time.Time { return time.Date(2020, 1, 9, 8, 0, 0, 0, time.UTC) }
	r, err := b.Build(context.Background(), "Philippines")
	require.NoError(t, err)
	return r
}

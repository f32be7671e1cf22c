package covidstats

import "time"

type Metric string

const (
	Cases     Metric = "cases"
	Deaths    Metric = "deaths"
	Recovered Metric = "recovered"
)

// SeriesSummary is derived from a bundle's series and never edited on its own.
type SeriesSummary struct {
	Latest        TimePoint // last per-day point
	Overall       TimePoint // last cumulative point
	Highest       TimePoint // largest per-day point
	AveragePerDay int64
	GrowthRate7d  Rate
}

type MetricBundle struct {
	Metric     Metric
	Cumulative TimeSeries
	Daily      TimeSeries
	Changes    []Change // only with WithSignedChanges
	Summary    SeriesSummary
}

type HistoricalRange struct {
	From time.Time
	To   time.Time
}

// Dataset is the complete aggregation of one snapshot for one location.
type Dataset struct {
	Country   string
	Cases     MetricBundle
	Deaths    MetricBundle
	Recovered MetricBundle
	Range     HistoricalRange
}

// ActiveCases is a display figure; it is only meaningful because all three
// overalls come from the same snapshot.
func (d *Dataset) ActiveCases() int64 {
	return d.Cases.Summary.Overall.Value - d.Deaths.Summary.Overall.Value - d.Recovered.Summary.Overall.Value
}

// Bundles returns the metrics in display order.
func (d *Dataset) Bundles() []MetricBundle {
	return []MetricBundle{d.Cases, d.Deaths, d.Recovered}
}

type options struct {
	growthWindow  int
	signedChanges bool
}

type Option func(*options)

// WithGrowthWindow overrides the 7 day lookback of GrowthRate7d.
func WithGrowthWindow(days int) Option {
	return func(o *options) {
		o.growthWindow = days
	}
}

// WithSignedChanges fills MetricBundle.Changes next to the absolute Daily series.
func WithSignedChanges() Option {
	return func(o *options) {
		o.signedChanges = true
	}
}

func buildOptions(opts []Option) options {
	o := options{growthWindow: GrowthWindow}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Summarize builds the bundle of one metric from its raw cumulative mapping.
func Summarize(metric Metric, raw RawSeries, opts ...Option) (MetricBundle, error) {
	return summarize(metric, raw, buildOptions(opts))
}

func summarize(metric Metric, raw RawSeries, o options) (MetricBundle, error) {
	cumulative, err := Normalize(raw)
	if err != nil {
		return MetricBundle{}, &MetricError{Metric: metric, Err: err}
	}
	daily := Daily(cumulative)
	highest, err := Highest(daily)
	if err != nil {
		return MetricBundle{}, &MetricError{Metric: metric, Err: err}
	}

	overall := cumulative[len(cumulative)-1]
	b := MetricBundle{
		Metric:     metric,
		Cumulative: cumulative,
		Daily:      daily,
		Summary: SeriesSummary{
			Latest:        daily[len(daily)-1],
			Overall:       overall,
			Highest:       highest,
			AveragePerDay: overall.Value / int64(len(cumulative)),
			GrowthRate7d:  growthRate(cumulative, o.growthWindow),
		},
	}
	if o.signedChanges {
		b.Changes = Changes(cumulative)
	}
	return b, nil
}

// Aggregate processes cases, deaths and recoveries of one snapshot. A failure
// of any metric fails the whole dataset.
func Aggregate(country string, tl Timeline, opts ...Option) (*Dataset, error) {
	o := buildOptions(opts)

	cases, err := summarize(Cases, tl.Cases, o)
	if err != nil {
		return nil, err
	}
	deaths, err := summarize(Deaths, tl.Deaths, o)
	if err != nil {
		return nil, err
	}
	recovered, err := summarize(Recovered, tl.Recovered, o)
	if err != nil {
		return nil, err
	}

	first := cases.Cumulative[0]
	last := cases.Cumulative[len(cases.Cumulative)-1]
	return &Dataset{
		Country:   country,
		Cases:     cases,
		Deaths:    deaths,
		Recovered: recovered,
		Range:     HistoricalRange{From: first.Date, To: last.Date},
	}, nil
}

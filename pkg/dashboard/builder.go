package dashboard

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/historical"
)

var aggregateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "covidtracker",
		Name:      "aggregate_total",
		Help:      "Dashboard builds by outcome",
	},
	[]string{"status"},
)

// Source supplies one historical snapshot and the population of a location.
type Source interface {
	Historical(ctx context.Context, country string) (*historical.Response, error)
	Population(ctx context.Context, country string) (int64, error)
}

// Report is everything the front ends render for one location.
type Report struct {
	Dataset   *covidstats.Dataset
	Overview  Overview
	Generated time.Time
}

type Builder struct {
	source Source
	opts   []covidstats.Option
	now    func() time.Time
}

func NewBuilder(source Source, opts ...covidstats.Option) *Builder {
	return &Builder{
		source: source,
		opts:   opts,
		now:    time.Now,
	}
}

// Build fetches a single snapshot and aggregates all metrics from it.
// A failed fetch or aggregation fails the build; a missing population only
// makes the per-million figure unavailable.
func (b *Builder) Build(ctx context.Context, country string) (*Report, error) {
	resp, err := b.source.Historical(ctx, country)
	if err != nil {
		aggregateTotal.WithLabelValues("fetch_error").Inc()
		return nil, err
	}

	ds, err := covidstats.Aggregate(resp.Country, resp.Timeline, b.opts...)
	if err != nil {
		aggregateTotal.WithLabelValues("data_error").Inc()
		log.WithFields(log.Fields{"country": country, "err": err}).Error("could not aggregate covid data")
		return nil, err
	}

	population, err := b.source.Population(ctx, country)
	if err != nil {
		log.WithFields(log.Fields{"country": country, "err": err}).Warn("population unavailable")
		population = 0
	}

	aggregateTotal.WithLabelValues("ok").Inc()
	log.WithFields(log.Fields{
		"country": ds.Country,
		"from":    ds.Range.From.Format("2006-01-02"),
		"to":      ds.Range.To.Format("2006-01-02"),
		"days":    len(ds.Cases.Cumulative),
	}).Debug("covid report built")

	return &Report{
		Dataset:   ds,
		Overview:  NewOverview(ds, population),
		Generated: b.now(),
	}, nil
}

package historical

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "covidtracker",
			Name:      "fetch_total",
			Help:      "Requests to the covid data source",
		},
		[]string{"endpoint", "status"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "covidtracker",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of requests to the covid data source",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func observeFetch(endpoint string, status int, err error, took time.Duration) {
	label := strconv.Itoa(status)
	if status == 0 && err != nil {
		label = "error"
	}
	fetchTotal.WithLabelValues(endpoint, label).Inc()
	fetchDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// Package covidstats turns cumulative, date-keyed COVID-19 counts into
// per-day series and the summary figures shown on the dashboard.
//
// Everything here is a pure function of its input: no I/O, no shared state,
// every call builds its result from scratch.
package covidstats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimePoint is one day's cumulative or per-day count.
type TimePoint struct {
	Date  time.Time
	Value int64
}

// TimeSeries is ordered by strictly increasing Date.
type TimeSeries []TimePoint

// Last returns the most recent point, false for an empty series.
func (s TimeSeries) Last() (TimePoint, bool) {
	if len(s) == 0 {
		return TimePoint{}, false
	}
	return s[len(s)-1], true
}

// RawPoint is a single entry of the source mapping, kept as text until normalized.
type RawPoint struct {
	Key   string
	Value string
}

// RawSeries keeps the source's key order, which is assumed chronological.
type RawSeries []RawPoint

// Timeline is one fetch snapshot for a location.
type Timeline struct {
	Cases     RawSeries
	Deaths    RawSeries
	Recovered RawSeries
}

var dateLayouts = []string{
	"1/2/06",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, s)
		if err == nil {
			return d, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing value")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("negative value %d", v)
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, errors.New("not an integer")
	}
	if f < 0 {
		return 0, fmt.Errorf("negative value %v", f)
	}
	return int64(f), nil
}

// Normalize converts the raw source mapping into a cumulative TimeSeries.
// Any point that cannot be read fails the whole series.
func Normalize(raw RawSeries) (TimeSeries, error) {
	series := make(TimeSeries, 0, len(raw))
	for i, p := range raw {
		if strings.TrimSpace(p.Key) == "" {
			return nil, &MalformedInputError{Index: i, Key: p.Key, Value: p.Value, Reason: "missing date"}
		}
		d, err := parseDate(p.Key)
		if err != nil {
			return nil, &MalformedInputError{Index: i, Key: p.Key, Value: p.Value, Reason: "unknown date format"}
		}
		if i > 0 && !d.After(series[i-1].Date) {
			return nil, &MalformedInputError{Index: i, Key: p.Key, Value: p.Value, Reason: "date is not after the previous one"}
		}
		v, err := parseCount(p.Value)
		if err != nil {
			return nil, &MalformedInputError{Index: i, Key: p.Key, Value: p.Value, Reason: err.Error()}
		}
		series = append(series, TimePoint{Date: d, Value: v})
	}
	return series, nil
}

package covidstats

import "time"

// Daily derives the per-day series from a cumulative one. The running
// baseline starts at 0 and each day reports |current - previous|, so a
// downward revision shows up as a positive change of the same size.
func Daily(cumulative TimeSeries) TimeSeries {
	daily := make(TimeSeries, 0, len(cumulative))
	var prev int64
	for _, p := range cumulative {
		daily = append(daily, TimePoint{Date: p.Date, Value: abs(p.Value - prev)})
		prev = p.Value
	}
	return daily
}

// Change is a signed day-over-day difference.
type Change struct {
	Date  time.Time
	Delta int64
}

// Changes is the signed counterpart of Daily: revisions stay negative.
func Changes(cumulative TimeSeries) []Change {
	changes := make([]Change, 0, len(cumulative))
	var prev int64
	for _, p := range cumulative {
		changes = append(changes, Change{Date: p.Date, Delta: p.Value - prev})
		prev = p.Value
	}
	return changes
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

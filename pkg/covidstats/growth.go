package covidstats

import "fmt"

// GrowthWindow is the lookback used for the dashboard's growth rate.
const GrowthWindow = 7

// GrowthRate is the percentage change between the latest cumulative value
// and the value days points earlier.
func GrowthRate(cumulative TimeSeries, days int) (float64, error) {
	if days <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(cumulative) <= days {
		return 0, fmt.Errorf("%w: %d points for a %d day window", ErrInsufficientHistory, len(cumulative), days)
	}
	last := len(cumulative) - 1
	present := cumulative[last].Value
	past := cumulative[last-days].Value
	if past == 0 {
		return 0, fmt.Errorf("%w: baseline on %s is 0", ErrDivisionByZero, cumulative[last-days].Date.Format("2006-01-02"))
	}
	return float64(present-past) / float64(past) * 100, nil
}

// Rate is a percentage which may be unavailable. Err says why.
type Rate struct {
	Percent float64
	Err     error
}

func (r Rate) Available() bool {
	return r.Err == nil
}

func growthRate(cumulative TimeSeries, days int) Rate {
	pct, err := GrowthRate(cumulative, days)
	return Rate{Percent: pct, Err: err}
}

package covidstats

// Highest returns the point with the largest value. On a tie the earliest
// point wins.
func Highest(series TimeSeries) (TimePoint, error) {
	if len(series) == 0 {
		return TimePoint{}, ErrEmptyInput
	}
	best := series[0]
	for _, p := range series[1:] {
		if p.Value > best.Value {
			best = p
		}
	}
	return best, nil
}

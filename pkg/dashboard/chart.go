package dashboard

import "github.com/ilyalavrinov/covidtracker/pkg/covidstats"

type ChartPoint struct {
	X string `json:"x"`
	Y int64  `json:"y"`
}

// ChartSeries converts a series into date/value pairs with long-form dates.
func ChartSeries(s covidstats.TimeSeries) []ChartPoint {
	points := make([]ChartPoint, 0, len(s))
	for _, p := range s {
		points = append(points, ChartPoint{X: FormatDate(p.Date), Y: p.Value})
	}
	return points
}

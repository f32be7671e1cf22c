package webdash

import (
	"errors"
	"time"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
)

const dateLayout = "2006-01-02"

type PointResponse struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

type ChangeResponse struct {
	Date  string `json:"date"`
	Delta int64  `json:"delta"`
}

// RateResponse carries a percentage or the reason it is missing.
type RateResponse struct {
	Percent     *float64 `json:"percent"`
	Display     string   `json:"display"`
	Unavailable string   `json:"unavailable,omitempty"`
}

type SummaryResponse struct {
	Latest        PointResponse `json:"latest"`
	Overall       PointResponse `json:"overall"`
	Highest       PointResponse `json:"highest"`
	AveragePerDay int64         `json:"average_per_day"`
	GrowthRate7d  RateResponse  `json:"growth_rate_7d"`
}

type MetricResponse struct {
	Metric     string                 `json:"metric"`
	Title      string                 `json:"title"`
	Summary    SummaryResponse        `json:"summary"`
	Cumulative []dashboard.ChartPoint `json:"cumulative"`
	Daily      []dashboard.ChartPoint `json:"daily"`
	Changes    []ChangeResponse       `json:"changes,omitempty"`
}

type RangeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type OverviewResponse struct {
	Active          int64        `json:"active"`
	Population      int64        `json:"population,omitempty"`
	CasesPerMillion *float64     `json:"cases_per_million"`
	RecoveryRate    RateResponse `json:"recovery_rate"`
	FatalityRate    RateResponse `json:"fatality_rate"`
}

type DashboardResponse struct {
	Country   string           `json:"country"`
	Range     RangeResponse    `json:"range"`
	Generated time.Time        `json:"generated"`
	Metrics   []MetricResponse `json:"metrics"`
	Overview  OverviewResponse `json:"overview"`
	Cards     []dashboard.Card `json:"cards"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func point(p covidstats.TimePoint) PointResponse {
	return PointResponse{Date: p.Date.Format(dateLayout), Value: p.Value}
}

func rate(r covidstats.Rate) RateResponse {
	resp := RateResponse{Display: dashboard.FormatPercent(r)}
	if r.Available() {
		pct := r.Percent
		resp.Percent = &pct
		return resp
	}
	switch {
	case errors.Is(r.Err, covidstats.ErrInsufficientHistory):
		resp.Unavailable = "insufficient_history"
	case errors.Is(r.Err, covidstats.ErrDivisionByZero):
		resp.Unavailable = "division_by_zero"
	default:
		resp.Unavailable = "invalid_window"
	}
	return resp
}

func newDashboardResponse(r *dashboard.Report) DashboardResponse {
	ds := r.Dataset
	resp := DashboardResponse{
		Country:   ds.Country,
		Range:     RangeResponse{From: ds.Range.From.Format(dateLayout), To: ds.Range.To.Format(dateLayout)},
		Generated: r.Generated,
		Metrics:   make([]MetricResponse, 0, 3),
		Overview: OverviewResponse{
			Active:       r.Overview.Active,
			Population:   r.Overview.Population,
			RecoveryRate: rate(r.Overview.RecoveryRate),
			FatalityRate: rate(r.Overview.FatalityRate),
		},
		Cards: dashboard.Cards(r),
	}
	if f := r.Overview.CasesPerMillion; f.Available() {
		v := f.Value
		resp.Overview.CasesPerMillion = &v
	}

	for _, b := range ds.Bundles() {
		s := b.Summary
		m := MetricResponse{
			Metric: string(b.Metric),
			Title:  dashboard.MetricTitle(b.Metric),
			Summary: SummaryResponse{
				Latest:        point(s.Latest),
				Overall:       point(s.Overall),
				Highest:       point(s.Highest),
				AveragePerDay: s.AveragePerDay,
				GrowthRate7d:  rate(s.GrowthRate7d),
			},
			Cumulative: dashboard.ChartSeries(b.Cumulative),
			Daily:      dashboard.ChartSeries(b.Daily),
		}
		for _, ch := range b.Changes {
			m.Changes = append(m.Changes, ChangeResponse{Date: ch.Date.Format(dateLayout), Delta: ch.Delta})
		}
		resp.Metrics = append(resp.Metrics, m)
	}
	return resp
}

package dashboard

import (
	"fmt"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
)

// Card is one statistic segment of the dashboard.
type Card struct {
	Header  string `json:"header"`
	Content string `json:"content"`
	Footer  string `json:"footer,omitempty"`
}

func Cards(r *Report) []Card {
	ds := r.Dataset
	o := r.Overview

	perMillion := Unavailable
	if o.CasesPerMillion.Available() {
		perMillion = FormatDecimal(o.CasesPerMillion.Value)
	}

	return []Card{
		{Header: "Total Cases", Content: FormatCount(ds.Cases.Summary.Overall.Value), Footer: increase(ds.Cases, "cases")},
		{Header: "Active Cases", Content: FormatCount(o.Active)},
		{Header: "Died", Content: FormatCount(ds.Deaths.Summary.Overall.Value), Footer: increase(ds.Deaths, "deaths")},
		{Header: "Recovered", Content: FormatCount(ds.Recovered.Summary.Overall.Value), Footer: increase(ds.Recovered, "recoveries")},
		{Header: "Case Growth Rate", Content: FormatPercent(ds.Cases.Summary.GrowthRate7d), Footer: fmt.Sprintf("in the last %d days", covidstats.GrowthWindow)},
		{Header: "Cases", Content: perMillion, Footer: "Per Million Population"},
		{Header: "Case Recovery Rate", Content: FormatPercent(o.RecoveryRate)},
		{Header: "Fatality Rate", Content: FormatPercent(o.FatalityRate)},
	}
}

func increase(b covidstats.MetricBundle, noun string) string {
	return fmt.Sprintf("+%s %s", FormatCount(b.Summary.Latest.Value), noun)
}

// MetricTitle is the display name of a metric.
func MetricTitle(m covidstats.Metric) string {
	switch m {
	case covidstats.Cases:
		return "Cases"
	case covidstats.Deaths:
		return "Deaths"
	case covidstats.Recovered:
		return "Recoveries"
	}
	return string(m)
}

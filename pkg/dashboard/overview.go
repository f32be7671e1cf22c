package dashboard

import (
	"errors"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
)

var ErrNoPopulation = errors.New("population is unknown")

// Figure is a derived value which may be unavailable.
type Figure struct {
	Value float64
	Err   error
}

func (f Figure) Available() bool {
	return f.Err == nil
}

// Overview holds the cross-metric figures of one snapshot.
type Overview struct {
	Active          int64
	Population      int64
	CasesPerMillion Figure
	RecoveryRate    covidstats.Rate
	FatalityRate    covidstats.Rate
}

// NewOverview derives the cross-metric figures. population <= 0 means unknown.
func NewOverview(ds *covidstats.Dataset, population int64) Overview {
	cases := ds.Cases.Summary.Overall.Value
	o := Overview{
		Active:       ds.ActiveCases(),
		Population:   population,
		RecoveryRate: share(ds.Recovered.Summary.Overall.Value, cases),
		FatalityRate: share(ds.Deaths.Summary.Overall.Value, cases),
	}
	if population > 0 {
		o.CasesPerMillion = Figure{Value: float64(cases) / float64(population) * 1e6}
	} else {
		o.CasesPerMillion = Figure{Err: ErrNoPopulation}
	}
	return o
}

func share(part, whole int64) covidstats.Rate {
	if whole == 0 {
		return covidstats.Rate{Err: covidstats.ErrDivisionByZero}
	}
	return covidstats.Rate{Percent: float64(part) / float64(whole) * 100}
}

package cmd

import (
	"context"

	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
)

const (
	propCountry  = "covidCountry"
	propTime     = "covidTime"
	propLastDate = "covidLastDate"
)

// ReportBuilder produces the dashboard report of one location.
type ReportBuilder interface {
	Build(ctx context.Context, country string) (*dashboard.Report, error)
}

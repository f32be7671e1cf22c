// Package webdash serves the dashboard data as JSON over HTTP.
package webdash

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
	"github.com/ilyalavrinov/covidtracker/pkg/historical"
)

type ReportBuilder interface {
	Build(ctx context.Context, country string) (*dashboard.Report, error)
}

type DashboardHandler struct {
	builder ReportBuilder
}

func NewDashboardHandler(builder ReportBuilder) *DashboardHandler {
	return &DashboardHandler{builder: builder}
}

// GetDashboard returns the aggregated figures of one location.
// GET /api/v1/dashboard/:country
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	country, err := url.PathUnescape(c.Params("country"))
	if err != nil || strings.TrimSpace(country) == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_country",
			Message: "country is required",
		})
	}

	report, err := h.builder.Build(c.UserContext(), country)
	if err != nil {
		log.WithFields(log.Fields{"country": country, "err": err}).Error("dashboard request failed")
		switch {
		case errors.Is(err, historical.ErrNotFound):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "no data for " + country,
			})
		case errors.Is(err, covidstats.ErrMalformedInput),
			errors.Is(err, covidstats.ErrEmptyInput),
			errors.Is(err, historical.ErrNoTimeline),
			errors.Is(err, historical.ErrBadResponse):
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Error:   "upstream_data",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(newDashboardResponse(report))
}

func healthz(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// NewApp registers every route of the web dashboard.
func NewApp(builder ReportBuilder) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	h := NewDashboardHandler(builder)
	app.Get("/api/v1/dashboard/:country", h.GetDashboard)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", healthz)

	return app
}

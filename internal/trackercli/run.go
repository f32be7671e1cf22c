// Package trackercli renders the dashboard in a terminal and exports it.
package trackercli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ilyalavrinov/covidtracker/internal/config"
	"github.com/ilyalavrinov/covidtracker/pkg/covidstats"
	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
	"github.com/ilyalavrinov/covidtracker/pkg/historical"
)

var ErrNoWebdav = errors.New("webdav url is not configured")

type Options struct {
	Country       string
	BaseURL       string
	LastDays      int
	Timeout       time.Duration
	UserAgent     string
	SignedChanges bool

	// Markdown prints the Telegram message instead of the tables.
	Markdown bool
	XlsxPath string
	Upload   bool
	Webdav   config.Webdav
}

// OptionsFromConfig seeds options from the shared configuration file.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	timeout, err := cfg.Covid.TimeoutDuration()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Country:       cfg.Covid.Country,
		BaseURL:       cfg.Covid.BaseURL,
		LastDays:      cfg.Covid.LastDays,
		Timeout:       timeout,
		UserAgent:     cfg.Covid.UserAgent,
		SignedChanges: cfg.Covid.SignedChanges,
		Webdav:        cfg.Webdav,
	}, nil
}

func Run(ctx context.Context, opts Options, out io.Writer) error {
	if opts.Upload && opts.Webdav.URL == "" {
		return ErrNoWebdav
	}

	client := historical.NewClient(opts.BaseURL,
		historical.WithLastDays(opts.LastDays),
		historical.WithTimeout(opts.Timeout),
		historical.WithUserAgent(opts.UserAgent))
	var statsOpts []covidstats.Option
	if opts.SignedChanges {
		statsOpts = append(statsOpts, covidstats.WithSignedChanges())
	}

	Debugw("building report", "country", opts.Country, "baseURL", opts.BaseURL)
	report, err := dashboard.NewBuilder(client, statsOpts...).Build(ctx, opts.Country)
	if err != nil {
		Errorw("could not build report", "country", opts.Country, "err", err)
		return err
	}

	if opts.Markdown {
		if _, err := fmt.Fprintln(out, dashboard.Markdown(report)); err != nil {
			return err
		}
	} else if err := dashboard.WriteTable(out, report); err != nil {
		return err
	}

	if opts.XlsxPath != "" {
		if err := writeXlsxFile(opts.XlsxPath, report); err != nil {
			Errorw("could not write xlsx file", "path", opts.XlsxPath, "err", err)
			return err
		}
		Infow("xlsx written", "path", opts.XlsxPath)
	}

	if opts.Upload {
		p := dashboard.NewPublisher(opts.Webdav.URL, opts.Webdav.User, opts.Webdav.Pass, opts.Webdav.Root)
		remote, err := p.PublishXlsx(report)
		if err != nil {
			Errorw("could not upload report", "url", opts.Webdav.URL, "err", err)
			return err
		}
		Infow("report uploaded", "path", remote)
	}
	return nil
}

func writeXlsxFile(path string, r *dashboard.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dashboard.WriteXlsx(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

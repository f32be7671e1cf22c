package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ilyalavrinov/covidtracker/internal/config"
	"github.com/ilyalavrinov/covidtracker/internal/trackercli"
	"github.com/ilyalavrinov/covidtracker/pkg/historical"
)

var (
	cfgFilename = flag.String("config", "", "optional configuration file; flags override it")
	country     = flag.String("country", "", "country name, or \"all\" for worldwide figures (default "+config.DefaultCountry+")")
	baseURL     = flag.String("baseurl", "", "data source base URL (default "+historical.DefaultBaseURL+")")
	lastDays    = flag.Int("lastdays", 0, "limit history to this many days, 0 for everything")
	signed      = flag.Bool("signed", false, "also compute signed day-over-day changes")
	markdown    = flag.Bool("markdown", false, "print the Telegram message instead of tables")
	xlsxPath    = flag.String("xlsx", "", "write the report workbook to this file")
	upload      = flag.Bool("upload", false, "upload the workbook to the configured WebDAV share")
)

func main() {
	flag.Parse()
	if err := run(os.Stdout); err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
}

// run keeps every deferred cleanup ahead of os.Exit in main.
func run(out io.Writer) error {
	defer trackercli.Sync()

	opts, err := options()
	if err != nil {
		return fmt.Errorf("could not read configuration; error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := trackercli.Run(ctx, opts, out); err != nil {
		return fmt.Errorf("could not build the dashboard; error: %w", err)
	}
	return nil
}

func options() (trackercli.Options, error) {
	cfg, err := config.ParseConfig("")
	if err != nil {
		return trackercli.Options{}, err
	}
	if *cfgFilename != "" {
		if cfg, err = config.NewConfig(*cfgFilename); err != nil {
			return trackercli.Options{}, err
		}
	}
	opts, err := trackercli.OptionsFromConfig(cfg)
	if err != nil {
		return opts, err
	}

	if *country != "" {
		opts.Country = *country
	}
	if *baseURL != "" {
		opts.BaseURL = *baseURL
	}
	if *lastDays > 0 {
		opts.LastDays = *lastDays
	}
	opts.SignedChanges = opts.SignedChanges || *signed
	opts.Markdown = *markdown
	opts.XlsxPath = *xlsxPath
	opts.Upload = *upload
	return opts, nil
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/internal/config"
	"github.com/ilyalavrinov/covidtracker/internal/webdash"
	"github.com/ilyalavrinov/covidtracker/pkg/dashboard"
)

func main() {
	cfgFilename := flag.String("config", "covidtracker.cfg", "path to the configuration file")
	listen := flag.String("listen", "", "address to listen on, overrides web.listen")
	flag.Parse()

	if err := run(*cfgFilename, *listen); err != nil {
		log.WithField("err", err).Error("web dashboard stopped with error")
		os.Exit(1)
	}
}

func run(cfgFilename, listen string) error {
	cfg, err := config.NewConfig(cfgFilename)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Web.Listen = listen
	}

	client, err := cfg.HistoricalClient()
	if err != nil {
		return err
	}
	builder := dashboard.NewBuilder(client, cfg.StatsOptions()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return webdash.Serve(ctx, cfg.Web.Listen, builder)
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/ilyalavrinov/covidtracker/internal/tracker"
)

func main() {
	cfgFilename := flag.String("config", "covidtracker.cfg", "path to the configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tracker.Start(ctx, *cfgFilename); err != nil {
		log.WithField("err", err).Error("bot could not be started")
		os.Exit(1)
	}
	log.Info("bot has stopped working")
}

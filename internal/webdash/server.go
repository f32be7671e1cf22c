package webdash

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, builder ReportBuilder) error {
	app := NewApp(builder)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("web dashboard listening")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down web dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"japjap-server/internal/config"
	"japjap-server/internal/events"
	"japjap-server/internal/jwt"
	"japjap-server/internal/mux"
	"japjap-server/pkg/db"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 15 * time.Second
)

// Version is set at build time
var Version = "v0.0.0-dev"

func main() {
	addr := flag.String("addr", ":5000", "the listen address")
	flag.Parse()

	cfg := config.Instance()
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("invalid log configuration")
	}

	if err := run(cfg, *addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.Config, addr string) error {
	if err := jwt.LoadKeys(); err != nil {
		return err
	}

	if err := db.Migrate(); err != nil {
		return err
	}

	publisher, err := events.Connect(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	if err != nil {
		return err
	}
	defer publisher.Close()

	srv := &http.Server{
		Addr:         addr,
		Handler:      withMiddleware(cfg, mux.NewMux(Version, publisher)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{"addr": addr, "version": Version}).Info("listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// withMiddleware adds CORS and, unless disabled, combined access logs
func withMiddleware(cfg config.Config, next http.Handler) http.Handler {
	h := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"JapJap-UserID"},
	}).Handler(next)

	if cfg.Log.DisableAccessLogs {
		return h
	}

	return handlers.CombinedLoggingHandler(os.Stdout, h)
}

func configureLogging(cfg config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	switch cfg.Log.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
	default:
		return errors.New("log format must be text or json")
	}

	return nil
}

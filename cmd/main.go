package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/calluna/booking"
	"github.com/ray-remotestate/calluna/config"
	"github.com/ray-remotestate/calluna/database"
	"github.com/ray-remotestate/calluna/database/dbhelper"
	"github.com/ray-remotestate/calluna/handlers"
	"github.com/ray-remotestate/calluna/middlewares"
	"github.com/ray-remotestate/calluna/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	configureLogger(cfg)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	db, err := database.Connect(cfg.DatabaseURL, cfg.MaxOpenConns)
	if err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Panicf("failed to migrate database, error: %v", err)
	}
	logrus.Println("migration is successful")

	store := dbhelper.NewStore(db, cfg.QueryTimeout)
	bookings := booking.NewService(store, cfg.BookingPolicy)
	h := handlers.New(store, bookings, handlers.SessionOptions{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})
	srv := server.SetupRoutes(h, middlewares.NewAuthenticator(store, cfg.SessionSecret))

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":   cfg.Addr(),
			"policy": bookings.Policy(),
		}).Info("server is running")
		if err := srv.Run(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Panicf("failed to run server, error: %v", err)
		}
	}()

	<-done

	logrus.Info("shutting down...")
	if err := srv.Shutdown(cfg.ShutdownTimeout); err != nil {
		logrus.WithError(err).Error("failed to gracefully shutdown server")
	}
	if err := db.Close(); err != nil {
		logrus.WithError(err).Error("failed to close database connection!")
	}
	logrus.Info("system is shut ..zzz")
}

func configureLogger(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

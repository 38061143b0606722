package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/tableside/config"
	"github.com/ray-remotestate/tableside/database"
	"github.com/ray-remotestate/tableside/handlers"
	"github.com/ray-remotestate/tableside/notify"
	"github.com/ray-remotestate/tableside/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Panicf("failed to load configuration, error: %v", err)
	}

	db, err := database.ConnectAndMigrate(cfg.DatabaseURL)
	if err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	hub := notify.NewHub(cfg.AllowedOrigins)
	h := handlers.New(cfg, db, hub)
	svr := server.SetupRoutes(cfg, h, hub)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.WithField("addr", cfg.Addr).Info("starting server")
		if err := svr.Run(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Panic("server stopped unexpectedly")
		}
	}()

	<-done

	logrus.Info("shutting down...")
	var result *multierror.Error
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		result = multierror.Append(result, err)
	}
	if err := hub.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := db.Shutdown(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		logrus.WithError(err).Error("failed to shut down cleanly!")
		os.Exit(1)
	}

	logrus.Info("system is shut ..zzz")
}

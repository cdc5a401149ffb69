package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"cort_fleet/internal/config"
	"cort_fleet/internal/identity"
	"cort_fleet/internal/logger"
	"cort_fleet/internal/middleware"
	"cort_fleet/internal/routes"
)

func main() {
	logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	// One identity client for the process lifetime, injected everywhere.
	idClient := identity.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.JWTSecret)

	r := routes.SetupRouter(db, idClient)
	handler := middleware.EnableCORS(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
	}

	go func() {
		logrus.Infof("🚀 Server running at :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

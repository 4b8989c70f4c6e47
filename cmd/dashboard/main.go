package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	v1 "domain_expiry/api/v1"
	"domain_expiry/internal/config"
	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/logger"
	"domain_expiry/internal/prefs"
	"domain_expiry/internal/status"
	"domain_expiry/internal/web"
	"domain_expiry/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.LoadAuto()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	entry := logrus.NewEntry(log)
	entry.Info("✓ Configuration loaded")

	loc, err := cfg.Location()
	if err != nil {
		entry.Fatalf("Failed to load display time zone: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Open the preference store
	provider, err := prefs.Open(ctx, cfg, entry)
	if err != nil {
		entry.Fatalf("Failed to open preference store: %v", err)
	}
	defer provider.Close()
	entry.WithField("backend", cfg.Preferences.Backend).Info("✓ Preference store ready")

	// 3. Initialize the status client and Socket.IO sessions
	client := status.NewClient(&status.Config{
		BaseURL: cfg.API.URL,
		Timeout: cfg.APITimeout(),
		Logger:  entry,
	})

	socket := ws.NewServer(ws.Options{
		APIURL:   cfg.API.URL,
		Interval: cfg.Interval(),
		Thresholds: dashboard.Thresholds{
			Red:    cfg.Thresholds.Red,
			Yellow: cfg.Thresholds.Yellow,
		},
		Fetcher:  client,
		Prefs:    provider,
		Location: loc,
		Logger:   entry,
	})
	socket.Start()

	renderer, err := web.NewRenderer()
	if err != nil {
		entry.Fatalf("Failed to parse page templates: %v", err)
	}

	// 4. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1.SetupRouter(r, v1.Deps{
		Config:   cfg,
		Prefs:    provider,
		Renderer: renderer,
		Socket:   socket.Handler(),
		Logger:   entry,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		entry.WithFields(logrus.Fields{
			"addr":     cfg.HTTPAddr,
			"api":      cfg.API.URL,
			"interval": cfg.Interval(),
		}).Info("✓ Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			entry.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	entry.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := socket.Close(shutdownCtx); err != nil {
		entry.WithError(err).Warn("Failed to close Socket.IO server")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		entry.WithError(err).Error("Server forced to shutdown")
	}
	entry.Info("✓ Server stopped")
}

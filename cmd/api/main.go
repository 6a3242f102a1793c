package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fantasy-draft/internal/api"
	"fantasy-draft/internal/cache"
	"fantasy-draft/internal/config"
	"fantasy-draft/internal/logger"
	"fantasy-draft/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())
	log.WithFields(logrus.Fields{
		"env":        cfg.Env,
		"league_dir": cfg.LeagueDir,
		"cache_ttl":  cfg.CacheTTL.String(),
	}).Info("Starting fantasy draft API")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	store, err := cache.New(pingCtx, cfg.RedisURL, cfg.CacheTTL)
	cancel()
	if err != nil {
		// Results still work without redis; they just don't survive restarts.
		log.WithError(err).Warn("Redis unavailable, using in-memory roster cache")
		store = cache.NewMemoryStore(cfg.CacheTTL)
	}
	defer store.Close()

	router := api.NewRouter(api.Options{
		LeagueDir:    cfg.LeagueDir,
		CorsOrigins:  cfg.CorsOrigins,
		Store:        store,
		Metrics:      metrics.NewRecorder(),
		SolveTimeout: cfg.SolveTimeout,
		MaxPlayers:   cfg.MaxPlayers,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SolveTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

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

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/memodb-io/rentspot/internal/bootstrap"
	"github.com/memodb-io/rentspot/internal/config"
	"github.com/memodb-io/rentspot/internal/modules/handler"
	"github.com/memodb-io/rentspot/internal/router"
	"github.com/memodb-io/rentspot/internal/telemetry"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// tracing must be installed before the db and redis plugins are registered
	shutdownTracing, err := telemetry.SetupTracing(cfg, cfg.App.Name)
	if err != nil {
		log.Fatal("setup tracing", zap.Error(err))
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		SpotHandler:    do.MustInvoke[*handler.SpotHandler](inj),
		ReviewHandler:  do.MustInvoke[*handler.ReviewHandler](inj),
		BookingHandler: do.MustInvoke[*handler.BookingHandler](inj),
		CSRFHandler:    do.MustInvoke[*handler.CSRFHandler](inj),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("rentspot api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
	if err := inj.Shutdown(); err != nil {
		log.Warn("container shutdown", zap.Error(err))
	}
}

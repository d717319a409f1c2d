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
	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/auth"
	"github.com/minaorangina/tupelo/internal/config"
	"github.com/minaorangina/tupelo/internal/logging"
	"github.com/minaorangina/tupelo/players"
	"github.com/minaorangina/tupelo/server"
	"github.com/minaorangina/tupelo/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.Dev)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := cfg.TokenSecret
	if secret == "" {
		secret = players.NewID()
		logger.Warn("no token secret set, akeys will not survive a restart")
	}

	str := store.NewInMemoryGameStore(store.Opts{
		Logger:      logger,
		Issuer:      auth.NewIssuer(secret, cfg.TokenTTL),
		TargetScore: cfg.TargetScore,
		JoinTimeout: cfg.JoinTimeout,
		EventBuffer: cfg.EventBuffer,
	})
	if err := str.StartReaper(cfg.ReapSchedule); err != nil {
		logger.Fatal("invalid reap schedule", zap.String("schedule", cfg.ReapSchedule), zap.Error(err))
	}

	s := server.NewServer(str, server.Opts{
		Addr:           cfg.Addr,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	go func() {
		logger.Info("tupelo server listening", zap.String("addr", cfg.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	str.Shutdown()
}

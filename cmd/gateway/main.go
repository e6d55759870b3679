package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoelCodes/w6d4-lecture-auth/internal/config"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/gateway"
	"github.com/JoelCodes/w6d4-lecture-auth/internal/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", map[string]any{
			"error": err.Error(),
		})
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := gateway.NewApp(cfg)
	if err != nil {
		logger.Fatal("failed to initialize gateway", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Error("gateway server stopped", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("gateway started", map[string]any{
		"port": cfg.GatewayPort,
	})

	<-ctx.Done()

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("gateway stopped cleanly", nil)
}

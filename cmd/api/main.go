package main

import (
	"context"
	"log"

	"menugen/internal/app"
	"menugen/internal/config"
	"menugen/internal/logging"
	"menugen/internal/menu"
	"menugen/internal/router"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	logger, err := logging.New(cfg.Production(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ logger init failed: %v", err)
	}
	defer logger.Sync()

	// ───────────────────────── PIPELINE ─────────────────────────
	a, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}
	defer a.Close()

	// ───────────────────────── GIN ─────────────────────────
	handler := menu.NewHandler(a.Service, logger)

	r, err := router.NewRouter(handler, router.Options{
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	}, logger)
	if err != nil {
		logger.Fatal("router init failed", zap.Error(err))
	}

	// ───────────────────────── START ─────────────────────────
	logger.Info("🚀 API running", zap.String("addr", "http://localhost:"+cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

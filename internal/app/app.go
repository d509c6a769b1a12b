package app

import (
	"context"
	"fmt"

	"menugen/internal/cache"
	"menugen/internal/config"
	"menugen/internal/db"
	"menugen/internal/imagegen"
	"menugen/internal/llm"
	"menugen/internal/menu"
	"menugen/internal/storage"

	"go.uber.org/zap"
)

// App holds the wired pipeline shared by the api server and menuctl.
type App struct {
	Config  config.Config
	Store   menu.Store
	Service *menu.Service

	closers []func()
}

// OpenStore builds only the cache store. It needs no generation credentials.
// The returned func releases the store's resources.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (menu.Store, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheBackendPostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewPostgresStore(pool, cache.DefaultDocumentID, logger), pool.Close, nil
	default:
		return cache.NewFileStore(cfg.CachePath, logger), func() {}, nil
	}
}

// Build wires every component from the resolved configuration.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.ValidateGeneration(); err != nil {
		return nil, err
	}

	a := &App{Config: cfg}

	// ───────────────────────── CACHE ─────────────────────────
	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.closers = append(a.closers, closeStore)

	// ───────────────────────── TEXT ─────────────────────────
	var client llm.Client
	switch cfg.TextBackend {
	case config.TextBackendGemini:
		client = llm.NewGeminiClient(cfg.GeminiKey, cfg.GeminiModel, logger)
	default:
		client = llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, logger)
	}

	generator := llm.NewGenerator(client, llm.PromptOptions{
		Theme:              cfg.MenuTheme,
		DishesPerCategory:  cfg.DishesPerCategory,
		IngredientsPerDish: cfg.IngredientsPerDish,
	}, logger)

	// ───────────────────────── IMAGES ─────────────────────────
	var images storage.ImageStore = storage.NewLocalStore(cfg.StaticDir)
	if cfg.MirrorEnabled() {
		r2, err := storage.NewR2Client(ctx, cfg.R2Endpoint, cfg.R2AccessKey, cfg.R2SecretKey, cfg.R2Bucket)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("r2 init failed: %w", err)
		}
		images = storage.NewMirrorStore(images, r2, logger)
	}

	stability := imagegen.NewStabilityClient(
		cfg.StabilityKey,
		cfg.StabilityEndpoint,
		imagegen.DefaultProfile(cfg.StabilityEngine),
	)
	synth := imagegen.NewSynthesizer(stability, images, cfg.ImageOutputDir, logger)

	// ───────────────────────── PIPELINE ─────────────────────────
	a.Service = menu.NewService(a.Store, generator, synth, logger)

	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

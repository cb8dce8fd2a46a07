package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"studio/internal/adapter/repo"
	"studio/internal/http/handlers"
	httpapi "studio/internal/http/httpapi"
	"studio/internal/infra"
	"studio/internal/providers/genai"
	"studio/internal/providers/image"
	"studio/internal/providers/text"
	"studio/internal/shoot"
	"studio/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	refs := storage.NewCachedReader(store, cfg.ReferenceCacheTTL)

	gemini, err := genai.NewClient(genai.Options{
		APIKey:            cfg.GeminiAPIKey,
		BaseURL:           cfg.GeminiBaseURL,
		TextModel:         cfg.GeminiTextModel,
		ImageModel:        cfg.GeminiImageModel,
		Timeout:           cfg.GenerationTimeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Logger:            &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gemini client")
	}

	images := image.NewGeminiGenerator(gemini)
	planner := shoot.NewPlanner(text.NewGeminiPlannerClient(gemini), logger)
	orchestrator := shoot.NewOrchestrator(images, cfg.ShootConcurrency, logger)

	app := &handlers.App{
		Models:       repo.NewModelRepository(dbpool),
		Assets:       repo.NewAssetRepository(dbpool),
		Gallery:      repo.NewGalleryRepository(dbpool),
		Store:        store,
		Refs:         refs,
		Planner:      planner,
		Orchestrator: orchestrator,
		PlanMinShots: cfg.PlanMinShots,
		Logger:       logger,
	}

	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

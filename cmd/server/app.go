package main

import (
	"context"
	"fmt"

	"agribot/internal/config"
	"agribot/internal/conversation"
	"agribot/internal/logging"
	"agribot/internal/repository"
	"agribot/internal/service"
	"agribot/internal/vocab"

	"go.uber.org/zap"
)

// app holds what every command needs: configuration, logger and store
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	repo   *repository.KnowledgeRepository
}

func newApp(ctx context.Context) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	repo, err := repository.NewKnowledgeRepository(ctx, cfg.Store, cfg.GetStoreDSN(), logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to connect to knowledge store: %w", err)
	}
	logger.Info("connected to knowledge store", zap.String("driver", cfg.Store.Driver))

	if cfg.Store.SeedOnStart {
		seeded, err := repo.Seed(ctx)
		if err != nil {
			logger.Warn("seeding knowledge store failed", zap.Error(err))
		} else if seeded {
			logger.Info("knowledge store seeded with sample data")
		}
	}

	return &app{cfg: cfg, logger: logger, repo: repo}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("failed to close knowledge store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) vocabulary() (*vocab.Vocabulary, error) {
	if a.cfg.Chat.VocabularyFile == "" {
		return vocab.Default(), nil
	}
	v, err := vocab.Load(a.cfg.Chat.VocabularyFile)
	if err != nil {
		return nil, err
	}
	a.logger.Info("vocabulary loaded", zap.String("file", a.cfg.Chat.VocabularyFile))
	return v, nil
}

// chatService wires the message pipeline over the knowledge store
func (a *app) chatService() (*service.ChatService, *service.WeatherService, error) {
	v, err := a.vocabulary()
	if err != nil {
		return nil, nil, err
	}

	lookup := service.NewKnowledgeLookup(a.repo, a.cfg.Chat.StoreTimeout, a.logger)

	var weather *service.WeatherService
	if a.cfg.Weather.Enabled {
		weather = service.NewWeatherService(service.NewWeatherClient(&a.cfg.Weather, a.logger), a.logger)
		a.logger.Info("weather client initialized", zap.String("base_url", a.cfg.Weather.BaseURL))
	} else {
		a.logger.Warn("weather is disabled, set OPENWEATHER_API_KEY to enable it")
	}

	enrich := weather
	if !a.cfg.Chat.EnrichWeather {
		enrich = nil
	}

	chat := service.NewChatService(
		conversation.NewRegistry(a.cfg.Server.SessionTTL),
		service.NewEntityExtractor(v, lookup, a.cfg.Chat.FuzzyCutoff, a.logger),
		service.NewResponseComposer(v, lookup, a.cfg.Chat.MaxSuggestions, a.logger),
		enrich,
		a.logger,
	)
	return chat, weather, nil
}

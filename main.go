package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"backend/internal/config"
	"backend/internal/repository"
	"backend/internal/server"
	"backend/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		// Missing signing secrets land here. Refusing to start beats
		// running with a guessable default.
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.MigrateDB(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	questions := service.NewQuestionService(repository.NewQuestionRepository(db, logger), logger)
	if err := questions.SeedIfEmpty(context.Background()); err != nil {
		logger.Warn("Failed to seed question catalog", zap.Error(err))
	}

	srv := server.NewServer(db, cfg, logger)
	if err := srv.Run(cfg.Server.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

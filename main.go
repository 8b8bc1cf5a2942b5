// main.go
package main

import (
	"log"

	"retail-leasing/cmd"
	"retail-leasing/internal/data/repository"
	"retail-leasing/internal/wire"
	"retail-leasing/pkg/database"
	"retail-leasing/pkg/ocr"
	"retail-leasing/pkg/storage"
	"retail-leasing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Apply pending migrations
	if err := database.Migrate("file://migrations", config.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Document storage and certificate extraction clients
	store, err := storage.NewCloudinary(config.Storage)
	if err != nil {
		logger.Fatal("Failed to init document storage", zap.Error(err))
	}

	extractor, err := ocr.NewGeminiExtractor(config.OCR)
	if err != nil {
		logger.Fatal("Failed to init certificate extractor", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(db, repos, store, extractor, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

package main

import (
	"context"
	"log"

	"playtube/config"
	"playtube/internal/handler"
	"playtube/internal/repository"
	"playtube/internal/server"
	"playtube/internal/services"
	"playtube/internal/staging"
	"playtube/internal/storage"
	"playtube/pkg/database"
	"playtube/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	var mediaClient *storage.Client
	if cfg.S3Bucket != "" {
		mediaClient, err = storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
		if err != nil {
			log.Fatalf("Failed to create s3 client: %v", err)
		}
	} else {
		l.Infof("S3 bucket not configured, media uploads will fail")
	}

	userRepo := repository.NewUserRepository(db)
	issuer := services.NewTokenIssuer(cfg)
	authService := services.NewAuthService(userRepo, mediaClient, issuer)
	stager := staging.NewDiskStager(cfg.StagingDir)

	handlers := &server.Handlers{
		Auth: handler.NewAuthHandler(authService, stager),
	}

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(handlers, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

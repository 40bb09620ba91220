package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/QueasyListening/uptime-api/config"
	"github.com/QueasyListening/uptime-api/db"
	"github.com/QueasyListening/uptime-api/internal/logging"
	"github.com/QueasyListening/uptime-api/internal/storage"
	"github.com/QueasyListening/uptime-api/internal/uptime/handler"
	"github.com/QueasyListening/uptime-api/internal/uptime/service"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)
	ctx := context.Background()

	if err := storage.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer pool.Close()

	store := storage.NewPostgresStore(pool)
	keys := service.NewKeyedMutex()
	tokenService := service.NewTokenService(store, cfg.HashingSecret, cfg.TokenExpiryMinutes)
	accountService := service.NewAccountService(store, tokenService, cfg.HashingSecret, keys)
	checkService := service.NewCheckService(store, tokenService, cfg.MaxChecks, keys)

	app := fiber.New()
	app.Use(handler.RequestLogger(logger))
	handler.RegisterRoutes(app,
		handler.NewAccountHandler(accountService),
		handler.NewTokenHandler(tokenService),
		handler.NewCheckHandler(checkService),
	)

	logger.Info("listening", "env", cfg.Env, "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

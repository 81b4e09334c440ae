package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"

	"github.com/insightdelivered/statement-analyzer/internal/api"
	"github.com/insightdelivered/statement-analyzer/internal/config"
	"github.com/insightdelivered/statement-analyzer/internal/logger"
	"github.com/insightdelivered/statement-analyzer/internal/statement"
	"github.com/insightdelivered/statement-analyzer/internal/storage"
)

func main() {
	// .env is optional; real deployments configure the environment.
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	store, err := storage.New(cfg.UploadDir, cfg.ExportDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare storage directories")
	}

	processor := statement.NewProcessor(statement.DefaultConfig(), log)
	handler := api.NewHandler(store, processor, log)

	app := fiber.New(fiber.Config{
		AppName:      "statement-analyzer",
		BodyLimit:    cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler: api.ErrorHandler(log),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigin,
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(api.RequestLogger(log))

	handler.Register(app, limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	log.Info().Str("addr", cfg.Addr()).Msg("statement analyzer listening")
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tasknity/tasknity-api/internal/config"
	"github.com/tasknity/tasknity-api/internal/database"
	"github.com/tasknity/tasknity-api/internal/logging"
	"github.com/tasknity/tasknity-api/internal/server"
	"github.com/tasknity/tasknity-api/internal/services"
	"github.com/tasknity/tasknity-api/internal/token"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// bootstrap loads configuration, installs the process logger and opens the
// database.
func bootstrap() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func serve(ctx context.Context) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	if err := database.Migrate(db, log); err != nil {
		return err
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if cfg.UsingFallbackSecret {
		log.Warn("JWT_SECRET is not set, signing tokens with the built-in fallback secret")
	}
	log.Info("token service ready", "ttl", tokens.TTL().String())

	var narrator services.Narrator
	if cfg.OpenAIAPIKey != "" {
		narrator = services.NewAIService(cfg.OpenAIAPIKey)
	}

	router, err := server.NewRouter(server.Deps{
		Config:   cfg,
		DB:       db,
		Logger:   log,
		Tokens:   tokens,
		Narrator: narrator,
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

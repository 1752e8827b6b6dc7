package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/jinhmyung/GuildQuest-Group3/internal/config"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/handlers/cli"
	"github.com/jinhmyung/GuildQuest-Group3/internal/logging"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services"
	"github.com/jinhmyung/GuildQuest-Group3/internal/snapshot"
	"github.com/jinhmyung/GuildQuest-Group3/internal/store"
)

func main() {
	// Load .env file
	envLoaded := godotenv.Load() == nil

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.Setup("info", "console")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if envLoaded {
		logger.Info().Msg("loaded .env file")
	} else {
		logger.Debug().Msg("no .env file found")
	}

	ctx := context.Background()
	st := store.New(nil)

	// Pick up the previous session's snapshot when one exists
	if err := snapshot.Load(ctx, st, cfg.Data.File); err != nil {
		if gqerr.IsNotFound(err) {
			logger.Info().Str("path", cfg.Data.File).Msg("no snapshot found, starting fresh")
		} else {
			logger.Fatal().Err(err).Str("path", cfg.Data.File).Msg("failed to load snapshot")
		}
	} else {
		logger.Info().Str("path", cfg.Data.File).Msg("snapshot loaded")
	}

	serviceProvider := services.NewProvider(&services.ProviderConfig{
		Store: st,
	})

	handler := cli.NewHandler(&cli.HandlerConfig{
		ServiceProvider: serviceProvider,
		DataFile:        cfg.Data.File,
		Logger:          logger,
	})
	handler.Run(ctx)
}

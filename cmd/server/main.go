package main

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/playtube/playtube-go/internal/config"
	"github.com/playtube/playtube-go/internal/db"
	"github.com/playtube/playtube-go/internal/handler"
	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/repository"
	"github.com/playtube/playtube-go/internal/router"
	"github.com/playtube/playtube-go/internal/service"
	"github.com/playtube/playtube-go/internal/storage"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "playtube-api")

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	media, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure media storage")
	}

	handler.InitMetrics(pool)
	cache.SetCounters(
		func() { handler.Metrics.CacheHits.Inc() },
		func() { handler.Metrics.CacheMisses.Inc() },
	)

	userRepo := repository.NewUserRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	commentRepo := repository.NewCommentRepo(pool)
	reactionRepo := repository.NewReactionRepo(pool)
	subRepo := repository.NewSubscriptionRepo(pool)
	playlistRepo := repository.NewPlaylistRepo(pool)
	tweetRepo := repository.NewTweetRepo(pool)
	dashboardRepo := repository.NewDashboardRepo(pool)

	tokens := service.NewTokenService(cfg)
	userSvc := service.NewUserService(userRepo, media, tokens, cache)
	videoSvc := service.NewVideoService(videoRepo, userRepo, media, cache)
	commentSvc := service.NewCommentService(commentRepo, videoRepo)
	reactionSvc := service.NewReactionService(reactionRepo, videoRepo, commentRepo, tweetRepo, cache)
	subSvc := service.NewSubscriptionService(subRepo, userRepo, cache)
	playlistSvc := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	tweetSvc := service.NewTweetService(tweetRepo, userRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo)

	secureCookies := cfg.Environment == "production"
	h := &router.Handlers{
		User:         handler.NewUserHandler(userSvc, secureCookies, cfg.RefreshTokenTTL),
		Video:        handler.NewVideoHandler(videoSvc),
		Comment:      handler.NewCommentHandler(commentSvc),
		Reaction:     handler.NewReactionHandler(reactionSvc),
		Subscription: handler.NewSubscriptionHandler(subSvc),
		Playlist:     handler.NewPlaylistHandler(playlistSvc),
		Tweet:        handler.NewTweetHandler(tweetSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		Health:       handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "PlayTube API",
		ServerHeader: "PlayTube",
		BodyLimit:    512 * 1024 * 1024, // video uploads
	})

	router.Setup(app, h, tokens, cfg.CORSOrigins)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("playtube backend starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

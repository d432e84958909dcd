package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/playtube/playtube-go/internal/handler"
	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/service"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Reaction     *handler.ReactionHandler
	Subscription *handler.SubscriptionHandler
	Playlist     *handler.PlaylistHandler
	Tweet        *handler.TweetHandler
	Dashboard    *handler.DashboardHandler
	Health       *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, tokens *service.TokenService, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics sit outside the API group
	app.Get("/healthz", h.Health.Live)
	app.Get("/readyz", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	readLimit := middleware.NewReadRateLimiter().Handler()
	authLimit := middleware.NewAuthRateLimiter().Handler()
	writeLimit := middleware.NewMutationRateLimiter().Handler()
	uploadLimit := middleware.NewUploadRateLimiter().Handler()

	api := app.Group("/api/v1")

	// User and auth routes
	users := api.Group("/users")
	users.Post("/register", h.User.Register, authLimit)
	users.Post("/login", h.User.Login, authLimit)
	users.Post("/refresh-token", h.User.Refresh, authLimit)
	users.Post("/logout", h.User.Logout, requireAuth)
	users.Post("/change-password", h.User.ChangePassword, authLimit, requireAuth)
	users.Get("/current", h.User.Current, requireAuth)
	users.Patch("/update-details", h.User.UpdateDetails, requireAuth, writeLimit)
	users.Patch("/avatar", h.User.UpdateAvatar, requireAuth, uploadLimit)
	users.Patch("/cover", h.User.UpdateCover, requireAuth, uploadLimit)
	users.Get("/channel/:userName", h.User.Channel, optionalAuth, readLimit)
	users.Get("/watch-history", h.User.WatchHistory, requireAuth)

	// Video routes
	videos := api.Group("/videos")
	videos.Get("/", h.Video.Feed, optionalAuth, readLimit)
	videos.Post("/", h.Video.Publish, requireAuth, uploadLimit)
	videos.Get("/:videoId", h.Video.Detail, optionalAuth, readLimit)
	videos.Patch("/:videoId", h.Video.Update, requireAuth, writeLimit)
	videos.Delete("/:videoId", h.Video.Delete, requireAuth, writeLimit)
	videos.Patch("/:videoId/toggle-publish", h.Video.TogglePublish, requireAuth, writeLimit)

	// Comment routes
	comments := api.Group("/comments")
	comments.Get("/video/:videoId", h.Comment.List, optionalAuth, readLimit)
	comments.Post("/video/:videoId", h.Comment.Add, requireAuth, writeLimit)
	comments.Patch("/:commentId", h.Comment.Update, requireAuth, writeLimit)
	comments.Delete("/:commentId", h.Comment.Delete, requireAuth, writeLimit)

	// Like/dislike toggle routes
	likes := api.Group("/likes", requireAuth)
	likes.Post("/video/:videoId", h.Reaction.ToggleVideoLike, writeLimit)
	likes.Post("/comment/:commentId", h.Reaction.ToggleCommentLike, writeLimit)
	likes.Post("/tweet/:tweetId", h.Reaction.ToggleTweetLike, writeLimit)
	likes.Get("/videos", h.Reaction.LikedVideos)

	dislikes := api.Group("/dislikes", requireAuth)
	dislikes.Post("/video/:videoId", h.Reaction.ToggleVideoDislike, writeLimit)
	dislikes.Post("/comment/:commentId", h.Reaction.ToggleCommentDislike, writeLimit)
	dislikes.Post("/tweet/:tweetId", h.Reaction.ToggleTweetDislike, writeLimit)

	// Subscription routes
	subs := api.Group("/subscriptions")
	subs.Post("/channel/:channelId", h.Subscription.Toggle, requireAuth, writeLimit)
	subs.Get("/channel/:channelId/subscribers", h.Subscription.Subscribers, optionalAuth, readLimit)
	subs.Get("/user/:subscriberId/channels", h.Subscription.SubscribedChannels, optionalAuth, readLimit)

	// Playlist routes
	playlists := api.Group("/playlists")
	playlists.Post("/", h.Playlist.Create, requireAuth, writeLimit)
	playlists.Get("/user/:userId", h.Playlist.ByOwner, readLimit)
	playlists.Get("/:playlistId", h.Playlist.Detail, readLimit)
	playlists.Patch("/:playlistId/videos/:videoId", h.Playlist.AddVideo, requireAuth, writeLimit)
	playlists.Delete("/:playlistId/videos/:videoId", h.Playlist.RemoveVideo, requireAuth, writeLimit)
	playlists.Patch("/:playlistId", h.Playlist.Update, requireAuth, writeLimit)
	playlists.Delete("/:playlistId", h.Playlist.Delete, requireAuth, writeLimit)

	// Tweet routes
	tweets := api.Group("/tweets")
	tweets.Post("/", h.Tweet.Create, requireAuth, writeLimit)
	tweets.Get("/user/:userId", h.Tweet.ByOwner, optionalAuth, readLimit)
	tweets.Patch("/:tweetId", h.Tweet.Update, requireAuth, writeLimit)
	tweets.Delete("/:tweetId", h.Tweet.Delete, requireAuth, writeLimit)

	// Dashboard routes
	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.Get("/stats", h.Dashboard.Stats)
	dashboard.Get("/videos", h.Dashboard.Videos)
}

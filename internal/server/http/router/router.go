package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/akulagin/clubhouse/internal/server/http/handlers"
	"github.com/akulagin/clubhouse/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ClubFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.Identify(facade))

	authHandler := handlers.NewAuthHandler(facade)
	membershipHandler := handlers.NewMembershipHandler(facade)
	messageHandler := handlers.NewMessageHandler(facade)

	api := engine.Group("/api")
	api.GET("/messages", messageHandler.List)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/logout", authHandler.Logout)

	authed := user.Group("")
	authed.Use(middleware.RequireAuth())
	authed.GET("", authHandler.Profile)
	authed.POST("/membership", membershipHandler.Upgrade)

	apiAuthed := api.Group("")
	apiAuthed.Use(middleware.RequireAuth())
	apiAuthed.POST("/messages", messageHandler.Post)

	return engine
}

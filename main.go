package main

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danyip/imperfectionary-be/auth"
	"github.com/danyip/imperfectionary-be/config"
	"github.com/danyip/imperfectionary-be/crypto"
	"github.com/danyip/imperfectionary-be/game"
	"github.com/danyip/imperfectionary-be/logger"
	"github.com/danyip/imperfectionary-be/migrations"
	"github.com/danyip/imperfectionary-be/storage"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Setup(cfg.Debug)

	if err := migrations.Migrate(cfg.PostgresURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	pgRepo, err := storage.NewPostgresRepo(context.Background(), cfg.PostgresURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pgRepo.Close()

	tokenAge := time.Hour * 72
	passwordHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
	tokenManager := crypto.NewJWTManager(cfg.JWTKey, tokenAge)

	authService := auth.NewService(pgRepo, passwordHasher, tokenManager)
	authHandler := auth.NewAuthHandler(authService)

	r := CreateServer(cfg.AllowedOrigins)

	r.POST("/login", authHandler.LoginHandler)
	{
		users := r.Group("/users")
		users.POST("/create", authHandler.SignupHandler)
		users.POST("/update", authHandler.RequireAuthMiddleware(), authHandler.UpdateHandler)
	}

	words := game.NewWords(pgRepo, 500)
	hub := game.NewHub(words)

	hubStarted := make(chan struct{})
	go hub.Run(hubStarted)
	<-hubStarted

	gameHandler := game.NewHandler(hub, tokenManager, pgRepo)
	r.GET("/socket", gameHandler.ServeWS)

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

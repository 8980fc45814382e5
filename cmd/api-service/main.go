package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialhub/internal/api/handlers"
	apimiddleware "socialhub/internal/api/middleware"
	"socialhub/internal/auth"
	"socialhub/internal/config"
	"socialhub/internal/infrastructure/mysql"
	"socialhub/internal/infrastructure/redis"
	"socialhub/internal/services"
	"socialhub/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (overrides the search path)")
	flag.Parse()

	log := logger.New()
	log.Info("Starting API Service")

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize Redis
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to Redis", "address", cfg.Redis.Address)

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		log.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Error("Failed to close MySQL connection", "error", err)
		}
	}(db)

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	// Test MySQL connection
	if err := db.PingContext(ctx); err != nil {
		log.Error("Failed to ping MySQL", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to MySQL")

	// Initialize repositories
	userRepo := mysql.NewMySQLUserRepository(db)
	credentialRepo := mysql.NewMySQLCredentialRepository(db)
	friendshipRepo := mysql.NewMySQLFriendshipRepository(db)
	groupRepo := mysql.NewMySQLGroupRepository(db)
	chatRepo := mysql.NewMySQLChatRepository(db)
	storyRepo := mysql.NewMySQLStoryRepository(db)
	pollRepo := mysql.NewMySQLPollRepository(db)
	auctionRepo := mysql.NewMySQLAuctionRepository(db)
	screenShareRepo := mysql.NewMySQLScreenShareRepository(db)

	// Initialize Redis based components
	eventPublisher := redis.NewRedisBidEventPublisher(rdb)

	// Initialize services
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auctionService := services.NewAuctionService(auctionRepo, eventPublisher, log)
	sweeper := services.NewSweeper(auctionRepo, storyRepo, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, credentialRepo, tokens, log)
	socialHandler := handlers.NewSocialHandler(friendshipRepo, groupRepo, log)
	chatHandler := handlers.NewChatHandler(chatRepo, log)
	feedHandler := handlers.NewFeedHandler(storyRepo, pollRepo, log)
	auctionHandler := handlers.NewAuctionHandler(auctionService, log)
	screenShareHandler := handlers.NewScreenShareHandler(screenShareRepo, log)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `{"time":"${time_rfc3339}","id":"${id}","remote_ip":"${remote_ip}","host":"${host}","method":"${method}","uri":"${uri}","user_agent":"${user_agent}","status":${status},"error":"${error}","latency":${latency},"latency_human":"${latency_human}","bytes_in":${bytes_in},"bytes_out":${bytes_out}}` + "\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET, echo.HEAD, echo.PUT, echo.PATCH,
			echo.POST, echo.DELETE, echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			echo.HeaderXRequestedWith,
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Public routes
	api := e.Group("/api/v1")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	authed := api.Group("", apimiddleware.RequireAuth(tokens))
	authed.GET("/auth/me", authHandler.CurrentUser)

	authed.POST("/friends/requests", socialHandler.SendFriendRequest)
	authed.GET("/friends/requests", socialHandler.PendingFriendRequests)
	authed.PUT("/friends/requests/:friendshipId", socialHandler.RespondToFriendRequest)
	authed.GET("/friends", socialHandler.Friends)

	authed.POST("/groups", socialHandler.CreateGroup)
	authed.GET("/groups", socialHandler.MyGroups)
	authed.POST("/groups/:groupId/join", socialHandler.JoinGroup)

	authed.GET("/chats", chatHandler.MyChats)
	authed.POST("/chats/private", chatHandler.CreatePrivateChat)
	authed.GET("/chats/:chatRoomId/messages", chatHandler.Messages)

	authed.POST("/stories", feedHandler.CreateStory)
	authed.GET("/stories", feedHandler.ActiveStories)
	authed.POST("/polls", feedHandler.CreatePoll)
	authed.GET("/polls", feedHandler.ListPolls)
	authed.POST("/polls/:pollId/votes", feedHandler.Vote)

	authed.POST("/auctions", auctionHandler.CreateAuction)
	authed.GET("/auctions", auctionHandler.ActiveAuctions)
	authed.POST("/auctions/:auctionId/bids", auctionHandler.PlaceBid)
	authed.GET("/auctions/:auctionId/bids", auctionHandler.BidHistory)

	authed.POST("/screen-share/sessions", screenShareHandler.CreateSession)
	authed.POST("/screen-share/sessions/:sessionId/join", screenShareHandler.JoinSession)
	authed.GET("/screen-share/sessions", screenShareHandler.ActiveSessions)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "api-service",
			"timestamp": time.Now().Format(time.RFC3339),
			"port":      cfg.Server.Port,
			"version":   "1.0.0",
		})
	})

	// Start lifecycle sweeper
	if err := sweeper.Start(context.Background()); err != nil {
		log.Error("Failed to start sweeper", "error", err)
		os.Exit(1)
	}
	defer sweeper.Stop()

	// Start server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting API server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down API server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("API server stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialhub/internal/api/middleware"
	"socialhub/internal/auth"
	"socialhub/internal/config"
	"socialhub/internal/infrastructure/mysql"
	"socialhub/internal/infrastructure/redis"
	"socialhub/internal/infrastructure/websocket"
	"socialhub/internal/realtime"
	"socialhub/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (overrides the search path)")
	flag.Parse()

	log := logger.New()
	log.Info("Starting Realtime Service")

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
	defer db.Close()

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
	friendshipRepo := mysql.NewMySQLFriendshipRepository(db)
	chatRepo := mysql.NewMySQLChatRepository(db)

	// Initialize Redis based components
	presenceCache := redis.NewRedisPresenceCache(rdb)
	eventSubscriber := redis.NewRedisBidEventSubscriber(rdb, log)

	// Initialize coordinator components
	registry := realtime.NewRegistry(log)
	rooms := realtime.NewRooms()
	presence := realtime.NewPresence(registry, rooms, userRepo, friendshipRepo, presenceCache, log)
	chatRelay := realtime.NewChatRelay(registry, rooms, chatRepo, log)
	signaling := realtime.NewSignaling(registry, rooms, log)
	auctionFeed := realtime.NewAuctionFeed(rooms, log)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	dispatcher := realtime.NewDispatcher(presence, chatRelay, signaling, auctionFeed, rooms, tokens, log)

	gateway := websocket.NewGateway(dispatcher, cfg.Realtime.WriteTimeout, cfg.Realtime.PongTimeout, log)

	// Setup routes
	router := mux.NewRouter()
	router.Use(middleware.CORS)

	router.HandleFunc("/ws", gateway.HandleConnection)

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Feed committed bids to the auction watchers
	go func() {
		if err := eventSubscriber.SubscribeToBidEvents(context.Background(), auctionFeed.HandleBidEvent); err != nil {
			log.Error("Bid event subscription stopped", "error", err)
		}
	}()

	// Start HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Realtime.Host, cfg.Realtime.Port),
		Handler: router,
	}

	go func() {
		log.Info("Starting realtime gateway", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down realtime gateway")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Realtime gateway stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

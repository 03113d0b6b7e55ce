package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/delivery/consumer"
	delivery "golang-stock-advisor/internal/advisor/delivery/http"
	_ "golang-stock-advisor/internal/advisor/docs"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/postgres"
	"golang-stock-advisor/pkg/redis"
	"golang-stock-advisor/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the advisor service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Advisor Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist
	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamAlertTriggered, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	alertRepo := repository.NewAlertRepository(db.DB)
	alertHistoryRepo := repository.NewAlertHistoryRepository(db.DB)
	portfolioRepo := repository.NewPortfolioRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	stockAnalysisRepo := repository.NewStockAnalysisRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	newsFeedRepo := repository.NewNewsFeedRepository(cfg, appLogger)
	eventRepo := repository.NewEventRepository(redisClient.Client)
	marketDataRepo, err := repository.NewMarketDataRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize market data repository", logger.ErrorField(err))
	}

	// Initialize sentiment provider
	var sentimentRepo repository.SentimentRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		sentimentRepo = repository.NewGeminiSentimentRepository(cfg, appLogger, genAiClient)
	default:
		sentimentRepo = repository.NewKeywordSentimentRepository()
	}

	var telegramNotifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	alertSvc := service.NewAlertService(alertRepo, appLogger)
	if err := alertSvc.LoadIndex(ctx); err != nil {
		appLogger.Fatal("Failed to load alert index", logger.ErrorField(err))
	}
	newsSvc := service.NewNewsService(cfg, appLogger, newsRepo, newsFeedRepo, sentimentRepo)
	analyzerSvc := service.NewAnalyzerService(cfg, appLogger, marketDataRepo, stockAnalysisRepo, watchlistRepo, newsSvc, redisClient.Client, telegramNotifier)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, appLogger)
	watcher := service.NewAlertWatcher(cfg, appLogger, alertSvc, marketDataRepo, eventRepo)

	// Start the alert evaluation loop
	go watcher.Start(ctx)

	// Start the notification consumer
	if telegramNotifier != nil {
		notificationConsumer := consumer.NewNotificationConsumer(redisClient.Client, userRepo, telegramNotifier, appLogger)
		notificationConsumer.Start(ctx)
		defer notificationConsumer.Stop()
	}

	// Schedule the watchlist analysis
	cronRunner := cron.New()
	if cfg.Analyzer.Schedule != "" {
		if _, err := cronRunner.AddFunc(cfg.Analyzer.Schedule, func() {
			analyzerSvc.AnalyzeWatchlist(ctx)
		}); err != nil {
			appLogger.Fatal("Invalid analyzer schedule", logger.ErrorField(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	alertHandler := delivery.NewAlertHandler(alertSvc, alertHistoryRepo, appLogger)
	alertHandler.RegisterRoutes(apiV1.Group("/alerts"))

	analysisHandler := delivery.NewAnalysisHandler(analyzerSvc, appLogger)
	analysisHandler.RegisterRoutes(apiV1.Group("/analysis"))

	portfolioHandler := delivery.NewPortfolioHandler(portfolioSvc, appLogger)
	portfolioHandler.RegisterRoutes(apiV1.Group("/portfolios"))

	watchlistHandler := delivery.NewWatchlistHandler(watchlistRepo, appLogger)
	watchlistHandler.RegisterRoutes(apiV1.Group("/watchlist"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Advisor API
// @version 1.0
// @description Technical analysis, price alerts and portfolio risk for stocks.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "advisor-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing advisor-service CLI: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tindahan/pricing-service/config"
	"github.com/tindahan/pricing-service/internal/broker"
	"github.com/tindahan/pricing-service/internal/cache"
	"github.com/tindahan/pricing-service/internal/database"
	"github.com/tindahan/pricing-service/internal/logger"
	"github.com/tindahan/pricing-service/internal/pricing"
	"github.com/tindahan/pricing-service/internal/search"

	invHandlerPkg "github.com/tindahan/pricing-service/internal/inventory/handler"
	invListenerPkg "github.com/tindahan/pricing-service/internal/inventory/listener"
	invRepoPkg "github.com/tindahan/pricing-service/internal/inventory/repository"
	invUCPkg "github.com/tindahan/pricing-service/internal/inventory/usecase"

	prodHandlerPkg "github.com/tindahan/pricing-service/internal/product/handler"
	prodRepoPkg "github.com/tindahan/pricing-service/internal/product/repository"
	prodUCPkg "github.com/tindahan/pricing-service/internal/product/usecase"

	recipeHandlerPkg "github.com/tindahan/pricing-service/internal/recipe/handler"
	recipeRepoPkg "github.com/tindahan/pricing-service/internal/recipe/repository"
	recipeUCPkg "github.com/tindahan/pricing-service/internal/recipe/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.New(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

	if err := goose.SetDialect("postgres"); err != nil {
		appLogger.Fatal("goose dialect", zap.Error(err))
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		appLogger.Fatal("could not run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		// The service stays up without search; listing falls back to SQL.
		appLogger.Warn("could not connect to Elasticsearch, search disabled", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	policy := pricing.StatusPolicy{
		LowStockThreshold:   cfg.Stock.LowStockThreshold,
		ExpiryLookaheadDays: cfg.Stock.ExpiryLookaheadDays,
	}

	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	recipeRepo := recipeRepoPkg.NewPGRepository(db)

	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, policy, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, prodRepo, redisClient, policy, appLogger)
	recipeUC := recipeUCPkg.NewRecipeUseCase(recipeRepo, prodRepo, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orderListener := invListenerPkg.NewOrderListener(kafkaConsumer, invUC, appLogger)
	go func() {
		if err := orderListener.Run(ctx); err != nil {
			appLogger.Error("order listener stopped", zap.Error(err))
		}
	}()

	if cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Store-ID", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	prodHandlerPkg.NewProductHandler(prodUC, appLogger).RegisterRoutes(api)
	invHandlerPkg.NewInventoryHandler(invUC, appLogger).RegisterRoutes(api)
	recipeHandlerPkg.NewRecipeHandler(recipeUC, appLogger).RegisterRoutes(api)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}

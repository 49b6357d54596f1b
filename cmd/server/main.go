package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/immofind/ads-service/internal/adapter/httpserver"
	mongoAdapter "github.com/immofind/ads-service/internal/adapter/mongo"
	natsAdapter "github.com/immofind/ads-service/internal/adapter/nats"
	redisAdapter "github.com/immofind/ads-service/internal/adapter/redis"
	"github.com/immofind/ads-service/internal/config"
	"github.com/immofind/ads-service/internal/platform/metrics"
	"github.com/immofind/ads-service/internal/platform/tracer"
	"github.com/immofind/ads-service/internal/usecase"
)

func main() {
	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapConfig := zap.NewProductionConfig()
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully!",
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("mongo_uri", cfg.Mongo.URI),
		zap.String("mongo_database", cfg.Mongo.Database),
	)

	tp, err := tracer.InitTracer("ads-service")
	if err != nil {
		logger.Warn("Tracing disabled", zap.Error(err))
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("Failed to shut down tracer provider", zap.Error(err))
			}
		}()
	}

	mongoClient, err := mongoAdapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err = mongoClient.Disconnect(context.TODO()); err != nil {
			logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		} else {
			logger.Info("MongoDB connection closed.")
		}
	}()
	logger.Info("Successfully connected to MongoDB!")

	adRepo := mongoAdapter.NewAdMongoRepository(mongoClient, cfg.Mongo.Database)
	userRepo := mongoAdapter.NewUserMongoRepository(mongoClient, cfg.Mongo.Database)
	eventRepo := mongoAdapter.NewViewEventMongoRepository(mongoClient, cfg.Mongo.Database)

	redisClient, err := redisAdapter.NewRedisClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	trendingRepo := redisAdapter.NewTrendingRedisRepository(redisClient, logger)

	publisher, err := natsAdapter.NewNATSPublisher(&cfg.NATS, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	catalogUC := usecase.NewCatalogUseCase(adRepo)
	viewsUC := usecase.NewViewsUseCase(adRepo, userRepo, eventRepo, trendingRepo, publisher, logger)

	mm := metrics.NewMetricsManager("ads_service")
	go func() {
		if err := metrics.StartMetricsServer(cfg.Metrics.Port, logger, mm.Registry); err != nil {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	handler := httpserver.NewAdHandler(catalogUC, viewsUC, mm, logger)
	router := httpserver.NewRouter(handler, cfg.JWT.Secret, logger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logger.Info("Starting HTTP server", zap.String("address", server.Addr))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}

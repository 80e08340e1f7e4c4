package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/imnotmomo/dokku/pkg/logger"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/config"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/handler"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/repository"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/repository/memory"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/service"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("restroom-service", logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "restroom-service", logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	location, err := time.LoadLocation(cfg.Search.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Search.Timezone).Msg("Invalid search timezone")
	}

	var (
		restroomRepo  repository.RestroomRepository
		reviewRepo    repository.ReviewRepository
		proposalRepo  repository.ProposalRepository
		cache         util.RedisCache
		kafkaProducer util.MessagePublisher
	)

	if cfg.Storage.Mode == "memory" {
		// In-memory режим: локальная разработка и демо без внешней инфраструктуры
		store := memory.NewStore()
		restroomRepo = store.Restrooms()
		reviewRepo = store.Reviews()
		proposalRepo = store.Proposals()
		cache = util.NoopCache{}
		kafkaProducer = util.NoopPublisher{}
		logger.Info().Msg("Using in-memory storage")
	} else {
		db, err := connectDB(cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		logger.Info().
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.DBName).
			Msg("Connected to PostgreSQL")

		if err := db.AutoMigrate(&entity.Restroom{}, &entity.EditProposal{}); err != nil {
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}

		mongoClient, err := connectMongoDB(cfg.MongoDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
			}
		}()
		logger.Info().
			Str("database", cfg.MongoDB.Database).
			Msg("Connected to MongoDB")

		redisClient, err := util.NewRedisClient(
			cfg.Redis.Address(),
			cfg.Redis.Password,
			cfg.Redis.DB,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

		producer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		logger.Info().
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")

		restroomRepo = repository.NewRestroomRepository(db)
		reviewRepo = repository.NewReviewRepository(mongoClient.Database(cfg.MongoDB.Database))
		proposalRepo = repository.NewProposalRepository(db)
		cache = redisClient
		kafkaProducer = producer
	}

	restroomService := service.NewRestroomService(
		restroomRepo,
		reviewRepo,
		proposalRepo,
		cache,
		kafkaProducer,
		location,
	)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	restroomHandler := handler.NewRestroomHandler(restroomService)
	reviewHandler := handler.NewReviewHandler(restroomService)
	router := handler.SetupRoutes(restroomHandler, reviewHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Restroom Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Restroom Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Restroom Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err = mongo.Connect(ctx, clientOptions)
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pingCancel()

			if err = client.Ping(pingCtx, nil); err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

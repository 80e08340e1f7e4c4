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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/config"
	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/handler"
	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/processor"
	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/repository"
	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/service"
)

func main() {
	log.Println("Starting Background Worker Service...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// PostgreSQL Restroom Service - сюда пишутся пересчитанные рейтинги
	db, err := connectDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to PostgreSQL (restroom_service)")

	// MongoDB Restroom Service - отсюда агрегируются отзывы
	mongoClient, err := connectMongoDB(ctx, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(disconnectCtx)
	}()
	log.Println("Successfully connected to MongoDB")

	restroomRepo := repository.NewRestroomRepository(db)
	statsRepo := repository.NewReviewStatsRepository(mongoClient.Database(cfg.MongoDB.Database))
	log.Println("Repositories initialized")

	reconcileSvc := service.NewReconcileService(restroomRepo, statsRepo)
	log.Println("Services initialized")

	kafkaConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		reconcileSvc,
	)

	kafkaConsumer.Start(ctx)
	defer kafkaConsumer.Stop()
	log.Printf("Kafka consumer started (topic: %s, group: %s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)

	cronScheduler := processor.NewCronScheduler(reconcileSvc)

	if err := cronScheduler.Start(ctx, cfg.CronSchedule.Reconcile); err != nil {
		log.Fatalf("Failed to start cron scheduler: %v", err)
	}
	defer cronScheduler.Stop()
	log.Printf("Cron scheduler started (schedule: %s)", cfg.CronSchedule.Reconcile)

	healthHandler := handler.NewHealthCheckHandler(db, mongoClient)

	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:    ":8080",
		Handler: mux,
	}

	go func() {
		log.Println("Starting healthcheck HTTP server on :8080...")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Println("Background Worker Service is running")
	log.Println("Waiting for REVIEW_CREATED events from Kafka...")
	log.Printf("Avg ratings will be reconciled according to schedule: %s", cfg.CronSchedule.Reconcile)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Background Worker Service...")
	log.Println("Background Worker Service stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL используя GORM
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
				if pingErr := sqlDB.Ping(); pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(10)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		log.Printf("Failed to connect to database (attempt %d/10): %v", i+1, err)
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectMongoDB устанавливает соединение с MongoDB
func connectMongoDB(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = mongo.Connect(connectCtx, clientOptions)
		cancel()

		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			pingCancel()

			if err == nil {
				return client, nil
			}
		}

		log.Printf("Failed to connect to MongoDB (attempt %d/10): %v", i+1, err)
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

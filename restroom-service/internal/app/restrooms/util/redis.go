package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imnotmomo/dokku/pkg/metrics"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName       = "restroom-service"
	restroomsCacheKey = "restrooms:all"
)

// RedisClient кеширует снимок всех туалетов для nearby-поиска.
// Снимок инвалидируется при любой мутации и живет недолго: рейтинг и
// счётчик посещений участвуют в ранжировании.
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetRestrooms(ctx context.Context, restrooms []entity.Restroom, ttl time.Duration) error {
	data, err := json.Marshal(restrooms)
	if err != nil {
		return fmt.Errorf("failed to marshal restrooms: %w", err)
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, restroomsCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set restrooms in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetRestrooms(ctx context.Context) ([]entity.Restroom, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, restroomsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, "restrooms")
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get restrooms from cache: %w", err)
	}

	var restrooms []entity.Restroom
	if err := json.Unmarshal(data, &restrooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal restrooms: %w", err)
	}

	metrics.RecordCacheHit(serviceName, "restrooms")
	return restrooms, nil
}

func (r *RedisClient) DeleteRestrooms(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, restroomsCacheKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete restrooms from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

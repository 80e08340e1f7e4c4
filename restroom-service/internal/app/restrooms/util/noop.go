package util

import (
	"context"
	"time"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
)

// NoopCache - заглушка кеша для режима STORAGE_MODE=memory.
// Чтение всегда промахивается, запись и инвалидация - no-op.
type NoopCache struct{}

func (NoopCache) SetRestrooms(ctx context.Context, restrooms []entity.Restroom, ttl time.Duration) error {
	return nil
}

func (NoopCache) GetRestrooms(ctx context.Context) ([]entity.Restroom, error) {
	return nil, nil
}

func (NoopCache) DeleteRestrooms(ctx context.Context) error {
	return nil
}

func (NoopCache) Close() error {
	return nil
}

// NoopPublisher - заглушка producer'а событий для режима без брокера
type NoopPublisher struct{}

func (NoopPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

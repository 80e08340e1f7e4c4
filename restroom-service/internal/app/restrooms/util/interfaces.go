package util

import (
	"context"
	"time"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
)

// RedisCache интерфейс для работы с Redis кешем
// Используется для dependency injection и упрощения тестирования
type RedisCache interface {
	SetRestrooms(ctx context.Context, restrooms []entity.Restroom, ttl time.Duration) error
	GetRestrooms(ctx context.Context) ([]entity.Restroom, error)
	DeleteRestrooms(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

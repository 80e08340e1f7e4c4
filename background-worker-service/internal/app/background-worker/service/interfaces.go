package service

import (
	"context"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/entity"
)

// ReconcileServiceInterface определяет интерфейс для сверки средних рейтингов
type ReconcileServiceInterface interface {
	// ProcessRestroomEvent обрабатывает событие из Kafka
	ProcessRestroomEvent(ctx context.Context, event *entity.RestroomEvent) error
	// ReconcileRestroom пересчитывает средний рейтинг одного туалета
	ReconcileRestroom(ctx context.Context, restroomID int64) error
	// ReconcileAll пересчитывает средние рейтинги всего каталога
	ReconcileAll(ctx context.Context) error
}

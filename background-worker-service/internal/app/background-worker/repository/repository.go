package repository

import (
	"context"
	"errors"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/entity"
)

// ErrRestroomNotFound возвращается при обновлении несуществующего туалета
var ErrRestroomNotFound = errors.New("restroom not found")

// RestroomRepository интерфейс для работы с каталогом туалетов в PostgreSQL
type RestroomRepository interface {
	// ListIDs возвращает ID всех туалетов каталога
	ListIDs(ctx context.Context) ([]int64, error)

	// UpdateAvgRating записывает пересчитанный средний рейтинг
	UpdateAvgRating(ctx context.Context, restroomID int64, avgRating float64) error
}

// ReviewStatsRepository интерфейс для агрегации отзывов в MongoDB
type ReviewStatsRepository interface {
	// StatsByRestroomID возвращает агрегат отзывов одного туалета
	// Для туалета без отзывов возвращает нулевой агрегат, не ошибку
	StatsByRestroomID(ctx context.Context, restroomID int64) (*entity.RatingStats, error)

	// StatsAll возвращает агрегаты всех туалетов, у которых есть отзывы
	StatsAll(ctx context.Context) (map[int64]*entity.RatingStats, error)
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/imnotmomo/dokku/pkg/metrics"
)

const serviceName = "background-worker"

// restroomRepository реализует RestroomRepository для работы с PostgreSQL через GORM
// Работает с БД Restroom Service напрямую, без HTTP
type restroomRepository struct {
	db *gorm.DB
}

// NewRestroomRepository создает новый репозиторий каталога
func NewRestroomRepository(db *gorm.DB) RestroomRepository {
	return &restroomRepository{db: db}
}

// ListIDs возвращает ID всех туалетов каталога
func (r *restroomRepository) ListIDs(ctx context.Context) ([]int64, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "restrooms")
	defer timer.ObserveDuration()

	var ids []int64
	result := r.db.WithContext(ctx).
		Table("restrooms").
		Order("id").
		Pluck("id", &ids)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to list restroom ids: %w", result.Error)
	}

	return ids, nil
}

// UpdateAvgRating записывает пересчитанный средний рейтинг
func (r *restroomRepository) UpdateAvgRating(ctx context.Context, restroomID int64, avgRating float64) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "restrooms")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).
		Table("restrooms").
		Where("id = ?", restroomID).
		Update("avg_rating", avgRating)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update avg rating: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrRestroomNotFound
	}

	return nil
}

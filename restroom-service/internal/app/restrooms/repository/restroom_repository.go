package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/imnotmomo/dokku/pkg/metrics"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"

	"gorm.io/gorm"
)

const serviceName = "restroom-service"

type restroomRepository struct {
	db *gorm.DB
}

// NewRestroomRepository создает новый репозиторий туалетов
func NewRestroomRepository(db *gorm.DB) RestroomRepository {
	return &restroomRepository{db: db}
}

// Create создает новый туалет
func (r *restroomRepository) Create(ctx context.Context, restroom *entity.Restroom) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "restrooms")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(restroom)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create restroom: %w", result.Error)
	}
	return nil
}

// GetByID получает туалет по ID
func (r *restroomRepository) GetByID(ctx context.Context, id int64) (*entity.Restroom, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "restrooms")
	defer timer.ObserveDuration()

	var restroom entity.Restroom
	result := r.db.WithContext(ctx).First(&restroom, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRestroomNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get restroom: %w", result.Error)
	}

	return &restroom, nil
}

// GetAll получает все туалеты (кандидаты для nearby-поиска)
func (r *restroomRepository) GetAll(ctx context.Context) ([]entity.Restroom, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "restrooms")
	defer timer.ObserveDuration()

	var restrooms []entity.Restroom
	result := r.db.WithContext(ctx).Order("id").Find(&restrooms)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get restrooms: %w", result.Error)
	}

	return restrooms, nil
}

// UpdateAvgRating записывает пересчитанный средний рейтинг
func (r *restroomRepository) UpdateAvgRating(ctx context.Context, id int64, avgRating float64) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "restrooms")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Model(&entity.Restroom{}).
		Where("id = ?", id).
		UpdateColumn("avg_rating", avgRating)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update avg rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRestroomNotFound
	}
	return nil
}

// IncrementVisit атомарно увеличивает счётчик посещений на стороне БД
// и возвращает новое значение
func (r *restroomRepository) IncrementVisit(ctx context.Context, id int64) (int64, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "restrooms")
	defer timer.ObserveDuration()

	var visitCount int64
	result := r.db.WithContext(ctx).Raw(
		"UPDATE restrooms SET visit_count = visit_count + 1 WHERE id = ? RETURNING visit_count",
		id,
	).Scan(&visitCount)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return 0, fmt.Errorf("failed to increment visit count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrRestroomNotFound
	}

	return visitCount, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrRestroomNotFound = errors.New("restroom not found")
)

// Варианты сортировки отзывов
const (
	SortRecent  = "recent"
	SortHelpful = "helpful"
)

// RestroomRepository определяет методы для работы с туалетами в PostgreSQL
type RestroomRepository interface {
	Create(ctx context.Context, restroom *entity.Restroom) error
	GetByID(ctx context.Context, id int64) (*entity.Restroom, error)
	GetAll(ctx context.Context) ([]entity.Restroom, error)
	UpdateAvgRating(ctx context.Context, id int64, avgRating float64) error
	// IncrementVisit атомарно увеличивает счётчик посещений на 1
	// и возвращает новое значение
	IncrementVisit(ctx context.Context, id int64) (int64, error)
}

// ReviewRepository определяет методы для работы с отзывами в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByRestroomID(ctx context.Context, restroomID int64, sort string) ([]entity.Review, error)
}

// ProposalRepository определяет методы для работы с предложениями правок
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.EditProposal) error
	GetByRestroomID(ctx context.Context, restroomID int64) ([]entity.EditProposal, error)
}

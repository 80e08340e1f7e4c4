package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/entity"
)

// MockRestroomRepository мок для RestroomRepository
type MockRestroomRepository struct {
	mock.Mock
}

func (m *MockRestroomRepository) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockRestroomRepository) UpdateAvgRating(ctx context.Context, restroomID int64, avgRating float64) error {
	args := m.Called(ctx, restroomID, avgRating)
	return args.Error(0)
}

// MockReviewStatsRepository мок для ReviewStatsRepository
type MockReviewStatsRepository struct {
	mock.Mock
}

func (m *MockReviewStatsRepository) StatsByRestroomID(ctx context.Context, restroomID int64) (*entity.RatingStats, error) {
	args := m.Called(ctx, restroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RatingStats), args.Error(1)
}

func (m *MockReviewStatsRepository) StatsAll(ctx context.Context) (map[int64]*entity.RatingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*entity.RatingStats), args.Error(1)
}

// MockReconcileService мок для ReconcileServiceInterface
type MockReconcileService struct {
	mock.Mock
}

func (m *MockReconcileService) ProcessRestroomEvent(ctx context.Context, event *entity.RestroomEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockReconcileService) ReconcileRestroom(ctx context.Context, restroomID int64) error {
	args := m.Called(ctx, restroomID)
	return args.Error(0)
}

func (m *MockReconcileService) ReconcileAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

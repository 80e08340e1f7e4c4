package mocks

import (
	"context"
	"time"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"

	"github.com/stretchr/testify/mock"
)

// MockRestroomRepository мок для RestroomRepository
type MockRestroomRepository struct {
	mock.Mock
}

func (m *MockRestroomRepository) Create(ctx context.Context, restroom *entity.Restroom) error {
	args := m.Called(ctx, restroom)
	return args.Error(0)
}

func (m *MockRestroomRepository) GetByID(ctx context.Context, id int64) (*entity.Restroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Restroom), args.Error(1)
}

func (m *MockRestroomRepository) GetAll(ctx context.Context) ([]entity.Restroom, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Restroom), args.Error(1)
}

func (m *MockRestroomRepository) UpdateAvgRating(ctx context.Context, id int64, avgRating float64) error {
	args := m.Called(ctx, id, avgRating)
	return args.Error(0)
}

func (m *MockRestroomRepository) IncrementVisit(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByRestroomID(ctx context.Context, restroomID int64, sort string) ([]entity.Review, error) {
	args := m.Called(ctx, restroomID, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

// MockProposalRepository мок для ProposalRepository
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, proposal *entity.EditProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepository) GetByRestroomID(ctx context.Context, restroomID int64) ([]entity.EditProposal, error) {
	args := m.Called(ctx, restroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EditProposal), args.Error(1)
}

// MockRedisCache мок для util.RedisCache
type MockRedisCache struct {
	mock.Mock
}

func (m *MockRedisCache) SetRestrooms(ctx context.Context, restrooms []entity.Restroom, ttl time.Duration) error {
	args := m.Called(ctx, restrooms, ttl)
	return args.Error(0)
}

func (m *MockRedisCache) GetRestrooms(ctx context.Context) ([]entity.Restroom, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Restroom), args.Error(1)
}

func (m *MockRedisCache) DeleteRestrooms(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRedisCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

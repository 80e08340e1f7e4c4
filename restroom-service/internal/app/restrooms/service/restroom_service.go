package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/imnotmomo/dokku/pkg/logger"
	"github.com/imnotmomo/dokku/pkg/metrics"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/repository"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/util"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrRestroomNotFound = errors.New("restroom not found")
)

// Сколько самых полезных отзывов отдаем в деталях туалета
const topReviewsLimit = 3

// Время жизни кеша кандидатов nearby-поиска. Рейтинг и посещения участвуют
// в ранжировании, поэтому снимок должен жить недолго.
const restroomsCacheTTL = time.Minute

// NearbyParams - параметры nearby-поиска. OpenNow и Limit опциональны;
// Amenities - обязательные удобства (пустой список не фильтрует).
type NearbyParams struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
	OpenNow      *bool
	Amenities    []string
	Limit        *int
}

// RestroomService обрабатывает бизнес-логику каталога туалетов:
// nearby-поиск с ранжированием, отзывы с пересчётом среднего рейтинга,
// посещения и предложения правок.
// Координирует работу репозиториев, Redis кеша и Kafka producer.
type RestroomService struct {
	restroomRepo  repository.RestroomRepository
	reviewRepo    repository.ReviewRepository
	proposalRepo  repository.ProposalRepository
	cache         util.RedisCache
	kafkaProducer util.MessagePublisher
	locks         *restroomLocks
	location      *time.Location
}

// NewRestroomService создает новый сервис с внедрением зависимостей.
// location - часовой пояс, в котором оценивается "открыто сейчас".
func NewRestroomService(
	restroomRepo repository.RestroomRepository,
	reviewRepo repository.ReviewRepository,
	proposalRepo repository.ProposalRepository,
	cache util.RedisCache,
	kafkaProducer util.MessagePublisher,
	location *time.Location,
) *RestroomService {
	return &RestroomService{
		restroomRepo:  restroomRepo,
		reviewRepo:    reviewRepo,
		proposalRepo:  proposalRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
		locks:         newRestroomLocks(),
		location:      location,
	}
}

// SubmitRestroom добавляет новый туалет в каталог
func (s *RestroomService) SubmitRestroom(ctx context.Context, req *entity.CreateRestroomRequest) (*entity.Restroom, error) {
	restroom := &entity.Restroom{
		Name:       req.Name,
		Address:    req.Address,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Hours:      req.Hours,
		Amenities:  normalizeAmenities(req.Amenities),
		AvgRating:  0.0,
		VisitCount: 0,
	}

	if err := s.restroomRepo.Create(ctx, restroom); err != nil {
		return nil, fmt.Errorf("failed to create restroom: %w", err)
	}

	s.invalidateCache(ctx)
	s.publishEvent(ctx, entity.RestroomEvent{
		EventType:  entity.EventRestroomCreated,
		RestroomID: restroom.ID,
		Timestamp:  time.Now(),
	})

	metrics.RestroomsSubmitted.Inc()
	return restroom, nil
}

// GetRestroom получает туалет с превью самых полезных отзывов
func (s *RestroomService) GetRestroom(ctx context.Context, id int64) (*entity.RestroomDetails, error) {
	restroom, err := s.restroomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestroomNotFound) {
			return nil, ErrRestroomNotFound
		}
		return nil, fmt.Errorf("failed to get restroom: %w", err)
	}

	reviews, err := s.reviewRepo.GetByRestroomID(ctx, id, repository.SortHelpful)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	if len(reviews) > topReviewsLimit {
		reviews = reviews[:topReviewsLimit]
	}

	return &entity.RestroomDetails{
		Restroom:   *restroom,
		TopReviews: reviews,
	}, nil
}

// GetNearby выполняет nearby-поиск: фильтрация по радиусу, открытости и
// удобствам, ранжирование rating desc / visits desc / distance asc.
// Пустая выдача - валидный успешный ответ.
func (s *RestroomService) GetNearby(ctx context.Context, params NearbyParams) ([]entity.Restroom, error) {
	candidates, err := s.candidates(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.location)
	results := rankNearby(
		candidates,
		params.Lat, params.Lng, params.RadiusMeters,
		params.OpenNow,
		amenitySet(params.Amenities),
		params.Limit,
		now,
	)

	metrics.NearbySearches.Inc()
	metrics.NearbySearchResults.Observe(float64(len(results)))
	return results, nil
}

// candidates получает снимок всех туалетов, при возможности из Redis
func (s *RestroomService) candidates(ctx context.Context) ([]entity.Restroom, error) {
	cached, err := s.cache.GetRestrooms(ctx)
	if err == nil && len(cached) > 0 {
		return cached, nil
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read restrooms cache")
	}

	restrooms, err := s.restroomRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get restrooms: %w", err)
	}

	if err := s.cache.SetRestrooms(ctx, restrooms, restroomsCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to cache restrooms")
	}

	return restrooms, nil
}

// AddReview добавляет отзыв и пересчитывает средний рейтинг туалета.
// Пересчёт и запись атомарны относительно других отзывов того же туалета:
// итоговое значение - среднее всех отзывов независимо от чередования.
func (s *RestroomService) AddReview(ctx context.Context, restroomID int64, userID string, req *entity.CreateReviewRequest) (*entity.Review, error) {
	mu := s.locks.lock(restroomID)
	defer mu.Unlock()

	if _, err := s.restroomRepo.GetByID(ctx, restroomID); err != nil {
		if errors.Is(err, repository.ErrRestroomNotFound) {
			return nil, ErrRestroomNotFound
		}
		return nil, fmt.Errorf("failed to get restroom: %w", err)
	}

	review := &entity.Review{
		RestroomID:   restroomID,
		UserID:       userID,
		Rating:       *req.Rating,
		Cleanliness:  *req.Cleanliness,
		Comment:      req.Comment,
		HelpfulVotes: 0,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Пересчитываем среднее по всем отзывам заново, а не инкрементально:
	// так итог не накапливает дрейф с плавающей точкой
	reviews, err := s.reviewRepo.GetByRestroomID(ctx, restroomID, repository.SortRecent)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	if err := s.restroomRepo.UpdateAvgRating(ctx, restroomID, averageRating(reviews)); err != nil {
		return nil, fmt.Errorf("failed to update avg rating: %w", err)
	}

	s.invalidateCache(ctx)
	s.publishEvent(ctx, entity.RestroomEvent{
		EventType:  entity.EventReviewCreated,
		RestroomID: restroomID,
		UserID:     userID,
		Rating:     review.Rating,
		Timestamp:  time.Now(),
	})

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))
	return review, nil
}

// GetReviews получает отзывы туалета; sort - recent|helpful
func (s *RestroomService) GetReviews(ctx context.Context, restroomID int64, sort string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByRestroomID(ctx, restroomID, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	return reviews, nil
}

// RecordVisit атомарно увеличивает счётчик посещений на 1
func (s *RestroomService) RecordVisit(ctx context.Context, restroomID int64) (*entity.VisitReceipt, error) {
	visitCount, err := s.restroomRepo.IncrementVisit(ctx, restroomID)
	if err != nil {
		if errors.Is(err, repository.ErrRestroomNotFound) {
			return nil, ErrRestroomNotFound
		}
		return nil, fmt.Errorf("failed to increment visit count: %w", err)
	}

	s.invalidateCache(ctx)
	s.publishEvent(ctx, entity.RestroomEvent{
		EventType:  entity.EventVisitRecorded,
		RestroomID: restroomID,
		VisitCount: visitCount,
		Timestamp:  time.Now(),
	})

	metrics.VisitsRecorded.Inc()
	return &entity.VisitReceipt{
		RestroomID: restroomID,
		VisitCount: visitCount,
		VisitedAt:  time.Now(),
	}, nil
}

// ProposeEdit регистрирует предложение правки со статусом PENDING.
// Туалет при этом не изменяется: применение правки - задача модерации.
// Предложение без единого заполненного поля тоже принимается.
func (s *RestroomService) ProposeEdit(ctx context.Context, restroomID int64, userID string, req *entity.EditProposalRequest) (*entity.EditProposal, error) {
	if _, err := s.restroomRepo.GetByID(ctx, restroomID); err != nil {
		if errors.Is(err, repository.ErrRestroomNotFound) {
			return nil, ErrRestroomNotFound
		}
		return nil, fmt.Errorf("failed to get restroom: %w", err)
	}

	proposal := &entity.EditProposal{
		RestroomID:        restroomID,
		ProposedName:      req.ProposedName,
		ProposedAddress:   req.ProposedAddress,
		ProposedHours:     req.ProposedHours,
		ProposedAmenities: req.ProposedAmenities,
		ProposerUserID:    userID,
		Status:            entity.ProposalStatusPending,
	}

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create edit proposal: %w", err)
	}

	s.publishEvent(ctx, entity.RestroomEvent{
		EventType:  entity.EventEditProposed,
		RestroomID: restroomID,
		UserID:     userID,
		ProposalID: proposal.ID,
		Timestamp:  time.Now(),
	})

	metrics.EditProposalsCreated.Inc()
	return proposal, nil
}

// averageRating считает среднее по оценкам, округленное до одного знака
// (половина вверх); без отзывов возвращает 0.0
func averageRating(reviews []entity.Review) float64 {
	if len(reviews) == 0 {
		return 0.0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

// invalidateCache сбрасывает снимок кандидатов; ошибки не критичны
func (s *RestroomService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeleteRestrooms(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate restrooms cache")
	}
}

// publishEvent отправляет событие в Kafka; отказ брокера не прерывает
// операцию - запись уже выполнена
func (s *RestroomService) publishEvent(ctx context.Context, event entity.RestroomEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal restroom event")
		return
	}

	key := strconv.FormatInt(event.RestroomID, 10)
	if err := s.kafkaProducer.PublishMessage(ctx, key, data); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Int64("restroom_id", event.RestroomID).
			Msg("Failed to publish restroom event")
	}
}

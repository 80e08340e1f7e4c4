package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/entity"
	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/repository"
	"github.com/imnotmomo/dokku/pkg/metrics"
)

// ReconcileService сверяет средние рейтинги в PostgreSQL с отзывами в MongoDB.
// Основной пересчет выполняет Restroom Service синхронно при создании отзыва;
// worker устраняет расхождения после сбоев и пропущенных записей
type ReconcileService struct {
	restroomRepo repository.RestroomRepository
	statsRepo    repository.ReviewStatsRepository
}

// NewReconcileService создает новый сервис сверки рейтингов
func NewReconcileService(
	restroomRepo repository.RestroomRepository,
	statsRepo repository.ReviewStatsRepository,
) *ReconcileService {
	return &ReconcileService{
		restroomRepo: restroomRepo,
		statsRepo:    statsRepo,
	}
}

// ProcessRestroomEvent обрабатывает событие из топика restroom_events
// Пересчет нужен только для REVIEW_CREATED, остальные события игнорируются
func (s *ReconcileService) ProcessRestroomEvent(ctx context.Context, event *entity.RestroomEvent) error {
	if event.EventType != entity.EventReviewCreated {
		return nil
	}

	log.Printf("Processing REVIEW_CREATED for restroom %d (rating: %d)", event.RestroomID, event.Rating)
	return s.ReconcileRestroom(ctx, event.RestroomID)
}

// ReconcileRestroom пересчитывает средний рейтинг одного туалета
func (s *ReconcileService) ReconcileRestroom(ctx context.Context, restroomID int64) error {
	stats, err := s.statsRepo.StatsByRestroomID(ctx, restroomID)
	if err != nil {
		metrics.WorkerReconciles.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to get review stats: %w", err)
	}

	avgRating := roundRating(stats)

	if err := s.restroomRepo.UpdateAvgRating(ctx, restroomID, avgRating); err != nil {
		// Туалет мог быть удален между событием и пересчетом
		if errors.Is(err, repository.ErrRestroomNotFound) {
			log.Printf("Restroom %d not found, skipping reconcile", restroomID)
			metrics.WorkerReconciles.WithLabelValues("skipped").Inc()
			return nil
		}
		metrics.WorkerReconciles.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to update avg rating: %w", err)
	}

	metrics.WorkerReconciles.WithLabelValues("success").Inc()
	log.Printf("Reconciled restroom %d: avg rating %.1f over %d reviews",
		restroomID, avgRating, stats.ReviewCount)
	return nil
}

// ReconcileAll пересчитывает средние рейтинги всего каталога
// Туалеты без отзывов получают рейтинг 0.0
func (s *ReconcileService) ReconcileAll(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.WorkerReconcileDuration.Observe(time.Since(start).Seconds())
	}()

	ids, err := s.restroomRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list restrooms: %w", err)
	}

	stats, err := s.statsRepo.StatsAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get review stats: %w", err)
	}

	var failed int
	for _, id := range ids {
		avgRating := roundRating(stats[id])

		if err := s.restroomRepo.UpdateAvgRating(ctx, id, avgRating); err != nil {
			if errors.Is(err, repository.ErrRestroomNotFound) {
				continue
			}
			log.Printf("ERROR: Failed to reconcile restroom %d: %v", id, err)
			metrics.WorkerReconciles.WithLabelValues("error").Inc()
			failed++
			continue
		}
		metrics.WorkerReconciles.WithLabelValues("success").Inc()
	}

	if failed > 0 {
		return fmt.Errorf("failed to reconcile %d of %d restrooms", failed, len(ids))
	}

	log.Printf("Full reconcile completed: %d restrooms in %v", len(ids), time.Since(start))
	return nil
}

// roundRating округляет средний рейтинг до одного знака (половина вверх)
// Нулевой или отсутствующий агрегат дает 0.0
func roundRating(stats *entity.RatingStats) float64 {
	if stats == nil || stats.ReviewCount == 0 {
		return 0.0
	}
	return math.Round(stats.AvgRating*10) / 10
}

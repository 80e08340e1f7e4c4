// Package memory реализует все репозитории сервиса поверх карт в памяти.
// Это аналог mock-режима хранилища: полезно для локального запуска без
// PostgreSQL/MongoDB и для тестов конкурентных мутаций.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store хранит туалеты, отзывы и предложения правок в памяти.
// Карты защищены RWMutex; мутации одного туалета сериализуются короткими
// критическими секциями, чтения работают с копиями и не видят "рваных"
// записей.
type Store struct {
	mu        sync.RWMutex
	restrooms map[int64]*entity.Restroom
	reviews   map[int64][]entity.Review
	proposals map[int64][]entity.EditProposal

	restroomSeq atomic.Int64
	proposalSeq atomic.Int64
}

// NewStore создает пустое in-memory хранилище
func NewStore() *Store {
	return &Store{
		restrooms: make(map[int64]*entity.Restroom),
		reviews:   make(map[int64][]entity.Review),
		proposals: make(map[int64][]entity.EditProposal),
	}
}

// ===== RestroomRepository =====

func (s *Store) Create(ctx context.Context, restroom *entity.Restroom) error {
	if restroom.ID == 0 {
		restroom.ID = s.restroomSeq.Add(1)
	}
	if restroom.CreatedAt.IsZero() {
		restroom.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *restroom
	s.restrooms[restroom.ID] = &stored
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*entity.Restroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	restroom, ok := s.restrooms[id]
	if !ok {
		return nil, repository.ErrRestroomNotFound
	}
	copied := *restroom
	return &copied, nil
}

func (s *Store) GetAll(ctx context.Context) ([]entity.Restroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	restrooms := make([]entity.Restroom, 0, len(s.restrooms))
	for _, r := range s.restrooms {
		restrooms = append(restrooms, *r)
	}
	sort.Slice(restrooms, func(i, j int) bool {
		return restrooms[i].ID < restrooms[j].ID
	})
	return restrooms, nil
}

func (s *Store) UpdateAvgRating(ctx context.Context, id int64, avgRating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	restroom, ok := s.restrooms[id]
	if !ok {
		return repository.ErrRestroomNotFound
	}
	restroom.AvgRating = avgRating
	return nil
}

func (s *Store) IncrementVisit(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restroom, ok := s.restrooms[id]
	if !ok {
		return 0, repository.ErrRestroomNotFound
	}
	restroom.VisitCount++
	return restroom.VisitCount, nil
}

// ===== ReviewRepository =====

func (s *Store) CreateReview(ctx context.Context, review *entity.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.RestroomID] = append(s.reviews[review.RestroomID], *review)
	return nil
}

func (s *Store) GetByRestroomID(ctx context.Context, restroomID int64, sortOrder string) ([]entity.Review, error) {
	s.mu.RLock()
	reviews := make([]entity.Review, len(s.reviews[restroomID]))
	copy(reviews, s.reviews[restroomID])
	s.mu.RUnlock()

	if strings.EqualFold(sortOrder, repository.SortHelpful) {
		sort.SliceStable(reviews, func(i, j int) bool {
			if reviews[i].HelpfulVotes != reviews[j].HelpfulVotes {
				return reviews[i].HelpfulVotes > reviews[j].HelpfulVotes
			}
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		})
	} else {
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		})
	}
	return reviews, nil
}

// ===== ProposalRepository =====

func (s *Store) CreateProposal(ctx context.Context, proposal *entity.EditProposal) error {
	if proposal.ID == 0 {
		proposal.ID = s.proposalSeq.Add(1)
	}
	if proposal.CreatedAt.IsZero() {
		proposal.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposal.RestroomID] = append(s.proposals[proposal.RestroomID], *proposal)
	return nil
}

func (s *Store) GetProposalsByRestroomID(ctx context.Context, restroomID int64) ([]entity.EditProposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	proposals := make([]entity.EditProposal, len(s.proposals[restroomID]))
	copy(proposals, s.proposals[restroomID])
	return proposals, nil
}

// Restrooms возвращает RestroomRepository поверх хранилища
func (s *Store) Restrooms() repository.RestroomRepository {
	return s
}

// Reviews возвращает ReviewRepository поверх хранилища
func (s *Store) Reviews() repository.ReviewRepository {
	return reviewView{s}
}

// Proposals возвращает ProposalRepository поверх хранилища
func (s *Store) Proposals() repository.ProposalRepository {
	return proposalView{s}
}

// Виды-адаптеры: у ReviewRepository и ProposalRepository совпадают имена
// методов, поэтому один Store не может реализовать оба напрямую.
type reviewView struct{ s *Store }

func (v reviewView) Create(ctx context.Context, review *entity.Review) error {
	return v.s.CreateReview(ctx, review)
}

func (v reviewView) GetByRestroomID(ctx context.Context, restroomID int64, sortOrder string) ([]entity.Review, error) {
	return v.s.GetByRestroomID(ctx, restroomID, sortOrder)
}

type proposalView struct{ s *Store }

func (v proposalView) Create(ctx context.Context, proposal *entity.EditProposal) error {
	return v.s.CreateProposal(ctx, proposal)
}

func (v proposalView) GetByRestroomID(ctx context.Context, restroomID int64) ([]entity.EditProposal, error) {
	return v.s.GetProposalsByRestroomID(ctx, restroomID)
}

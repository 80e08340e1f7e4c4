package repository

import (
	"context"
	"fmt"

	"github.com/imnotmomo/dokku/pkg/metrics"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"

	"gorm.io/gorm"
)

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository создает новый репозиторий предложений правок
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

// Create создает новое предложение правки
func (r *proposalRepository) Create(ctx context.Context, proposal *entity.EditProposal) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "edit_proposals")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(proposal)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create edit proposal: %w", result.Error)
	}
	return nil
}

// GetByRestroomID получает все предложения правок туалета
func (r *proposalRepository) GetByRestroomID(ctx context.Context, restroomID int64) ([]entity.EditProposal, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "edit_proposals")
	defer timer.ObserveDuration()

	var proposals []entity.EditProposal
	result := r.db.WithContext(ctx).
		Where("restroom_id = ?", restroomID).
		Order("created_at DESC").
		Find(&proposals)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get edit proposals: %w", result.Error)
	}

	return proposals, nil
}

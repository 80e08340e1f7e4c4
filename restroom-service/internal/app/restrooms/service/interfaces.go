package service

import (
	"context"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
)

type RestroomServiceInterface interface {
	SubmitRestroom(ctx context.Context, req *entity.CreateRestroomRequest) (*entity.Restroom, error)
	GetRestroom(ctx context.Context, id int64) (*entity.RestroomDetails, error)
	GetNearby(ctx context.Context, params NearbyParams) ([]entity.Restroom, error)
	AddReview(ctx context.Context, restroomID int64, userID string, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReviews(ctx context.Context, restroomID int64, sort string) ([]entity.Review, error)
	RecordVisit(ctx context.Context, restroomID int64) (*entity.VisitReceipt, error)
	ProposeEdit(ctx context.Context, restroomID int64, userID string, req *entity.EditProposalRequest) (*entity.EditProposal, error)
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imnotmomo/dokku/pkg/logger"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов
// Автоматически создает индекс по restroom_id для быстрой выборки
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "restroom_id", Value: 1},
		},
		Options: options.Index().SetName("restroom_id_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create index on restroom_id")
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create создает новый отзыв в MongoDB
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByRestroomID получает все отзывы туалета.
// sort: "helpful" - по убыванию полезных голосов, затем по дате;
// всё остальное - просто по дате (recent).
func (r *reviewRepository) GetByRestroomID(ctx context.Context, restroomID int64, sort string) ([]entity.Review, error) {
	filter := bson.M{"restroom_id": restroomID}

	var sortSpec bson.D
	if strings.EqualFold(sort, SortHelpful) {
		sortSpec = bson.D{
			{Key: "helpful_votes", Value: -1},
			{Key: "created_at", Value: -1},
		}
	} else {
		sortSpec = bson.D{{Key: "created_at", Value: -1}}
	}
	opts := options.Find().SetSort(sortSpec)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

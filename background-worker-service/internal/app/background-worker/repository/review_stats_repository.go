package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/imnotmomo/dokku/background-worker-service/internal/app/background-worker/entity"
)

// reviewStatsRepository реализует ReviewStatsRepository поверх коллекции
// reviews в MongoDB Restroom Service. Агрегаты считаются на стороне Mongo
// через aggregation pipeline
type reviewStatsRepository struct {
	collection *mongo.Collection
}

// NewReviewStatsRepository создает новый репозиторий агрегатов отзывов
func NewReviewStatsRepository(db *mongo.Database) ReviewStatsRepository {
	return &reviewStatsRepository{
		collection: db.Collection("reviews"),
	}
}

// statsDoc - результат $group по restroom_id
type statsDoc struct {
	RestroomID  int64   `bson:"_id"`
	ReviewCount int64   `bson:"review_count"`
	AvgRating   float64 `bson:"avg_rating"`
}

// StatsByRestroomID возвращает агрегат отзывов одного туалета
func (r *reviewStatsRepository) StatsByRestroomID(ctx context.Context, restroomID int64) (*entity.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "restroom_id", Value: restroomID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$restroom_id"},
			{Key: "review_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []statsDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode review stats: %w", err)
	}

	// Нет отзывов - нулевой агрегат
	if len(docs) == 0 {
		return &entity.RatingStats{RestroomID: restroomID}, nil
	}

	return &entity.RatingStats{
		RestroomID:  docs[0].RestroomID,
		ReviewCount: docs[0].ReviewCount,
		AvgRating:   docs[0].AvgRating,
	}, nil
}

// StatsAll возвращает агрегаты всех туалетов, у которых есть отзывы
func (r *reviewStatsRepository) StatsAll(ctx context.Context) (map[int64]*entity.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$restroom_id"},
			{Key: "review_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []statsDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode review stats: %w", err)
	}

	stats := make(map[int64]*entity.RatingStats, len(docs))
	for _, doc := range docs {
		stats[doc.RestroomID] = &entity.RatingStats{
			RestroomID:  doc.RestroomID,
			ReviewCount: doc.ReviewCount,
			AvgRating:   doc.AvgRating,
		}
	}

	return stats, nil
}

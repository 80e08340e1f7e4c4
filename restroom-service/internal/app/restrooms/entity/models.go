package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restroom представляет общественный туалет в каталоге
type Restroom struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string  `json:"name" gorm:"not null"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude" gorm:"not null"`
	Longitude float64 `json:"longitude" gorm:"not null"`
	// Часы работы в формате "HH:MM-HH:MM"; nil означает "всегда открыто"
	Hours      *string   `json:"hours"`
	Amenities  []string  `json:"amenities" gorm:"type:jsonb;serializer:json"`
	AvgRating  float64   `json:"avg_rating"`
	VisitCount int64     `json:"visit_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Review представляет отзыв пользователя о туалете
type Review struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RestroomID   int64              `json:"restroom_id" bson:"restroom_id"`
	UserID       string             `json:"user_id" bson:"user_id"` // Внешняя идентичность, непрозрачная строка
	Rating       int                `json:"rating" bson:"rating"`   // Оценка от 1 до 5
	Cleanliness  int                `json:"cleanliness" bson:"cleanliness"`
	Comment      string             `json:"comment" bson:"comment"`
	HelpfulVotes int                `json:"helpful_votes" bson:"helpful_votes"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// EditProposal представляет предложение правки полей туалета.
// Не изменяет туалет напрямую: применение правки - задача модерации.
type EditProposal struct {
	ID                int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RestroomID        int64     `json:"restroom_id" gorm:"not null;index"`
	ProposedName      *string   `json:"proposed_name"`
	ProposedAddress   *string   `json:"proposed_address"`
	ProposedHours     *string   `json:"proposed_hours"`
	ProposedAmenities []string  `json:"proposed_amenities" gorm:"type:jsonb;serializer:json"`
	ProposerUserID    string    `json:"proposer_user_id"`
	Status            string    `json:"status"` // PENDING, APPROVED, REJECTED
	CreatedAt         time.Time `json:"created_at"`
}

// Статусы предложений правок
const (
	ProposalStatusPending  = "PENDING"
	ProposalStatusApproved = "APPROVED"
	ProposalStatusRejected = "REJECTED"
)

// VisitReceipt - результат регистрации посещения
type VisitReceipt struct {
	RestroomID int64     `json:"restroomId"`
	VisitCount int64     `json:"visitCount"`
	VisitedAt  time.Time `json:"visitedAt"`
}

// RestroomEvent представляет событие для Kafka (топик restroom_events)
type RestroomEvent struct {
	EventType  string    `json:"event_type"` // RESTROOM_CREATED, REVIEW_CREATED, VISIT_RECORDED, EDIT_PROPOSED
	RestroomID int64     `json:"restroom_id"`
	UserID     string    `json:"user_id,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	VisitCount int64     `json:"visit_count,omitempty"`
	ProposalID int64     `json:"proposal_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Типы событий
const (
	EventRestroomCreated = "RESTROOM_CREATED"
	EventReviewCreated   = "REVIEW_CREATED"
	EventVisitRecorded   = "VISIT_RECORDED"
	EventEditProposed    = "EDIT_PROPOSED"
)

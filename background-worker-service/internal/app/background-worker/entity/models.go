package entity

import "time"

// RestroomEvent - событие из топика restroom_events
// Формат должен совпадать с producer'ом в Restroom Service
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

// RatingStats - агрегат отзывов одного туалета из MongoDB
type RatingStats struct {
	RestroomID  int64   // ID туалета
	ReviewCount int64   // Количество отзывов
	AvgRating   float64 // Среднее арифметическое без округления
}

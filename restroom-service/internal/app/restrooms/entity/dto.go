package entity

// CreateRestroomRequest - запрос на добавление туалета
type CreateRestroomRequest struct {
	Name      string   `json:"name" validate:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Hours     *string  `json:"hours"`
	Amenities []string `json:"amenities"`
}

// CreateReviewRequest - запрос на создание отзыва.
// Диапазоны оценок проверяются здесь, на границе: сервис их не перепроверяет.
type CreateReviewRequest struct {
	Rating      *int   `json:"rating" validate:"required,min=1,max=5"`
	Cleanliness *int   `json:"cleanliness" validate:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

// EditProposalRequest - запрос на предложение правки.
// Любое подмножество полей может быть nil; полностью пустое предложение
// тоже принимается.
type EditProposalRequest struct {
	ProposedName      *string  `json:"proposed_name"`
	ProposedAddress   *string  `json:"proposed_address"`
	ProposedHours     *string  `json:"proposed_hours"`
	ProposedAmenities []string `json:"proposed_amenities"`
}

// RestroomDetails - туалет с превью самых полезных отзывов
type RestroomDetails struct {
	Restroom
	TopReviews []Review `json:"topReviews"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

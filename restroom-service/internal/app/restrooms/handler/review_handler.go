package handler

import (
	"errors"
	"net/http"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	restroomService service.RestroomServiceInterface
	validator       *validator.Validate
}

func NewReviewHandler(restroomService service.RestroomServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		restroomService: restroomService,
		validator:       validator.New(),
	}
}

// AddReview обрабатывает POST /v1/bathrooms/:id/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	id, ok := restroomID(c)
	if !ok {
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Диапазоны оценок проверяются здесь: сервис принимает их как данность
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.restroomService.AddReview(c.Request.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrRestroomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restroom not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListReviews обрабатывает GET /v1/bathrooms/:id/reviews?sort=recent|helpful
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	id, ok := restroomID(c)
	if !ok {
		return
	}

	sort := c.DefaultQuery("sort", "recent")

	reviews, err := h.restroomService.GetReviews(c.Request.Context(), id, sort)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}

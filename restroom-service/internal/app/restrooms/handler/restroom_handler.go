package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Радиус nearby-поиска по умолчанию, метры
const defaultRadiusMeters = 1500.0

type RestroomHandler struct {
	restroomService service.RestroomServiceInterface
	validator       *validator.Validate
}

func NewRestroomHandler(restroomService service.RestroomServiceInterface) *RestroomHandler {
	return &RestroomHandler{
		restroomService: restroomService,
		validator:       validator.New(),
	}
}

// Submit обрабатывает POST /v1/bathrooms
func (h *RestroomHandler) Submit(c *gin.Context) {
	var req entity.CreateRestroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	restroom, err := h.restroomService.SubmitRestroom(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restroom"})
		return
	}

	c.JSON(http.StatusCreated, restroom)
}

// Nearby обрабатывает GET /v1/bathrooms/nearby
// Параметры: lat, lng (обязательные), radius (по умолчанию 1500 м),
// openNow, amenities (CSV), limit
func (h *RestroomHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat is required and must be a number"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng is required and must be a number"})
		return
	}

	params := service.NearbyParams{
		Lat:          lat,
		Lng:          lng,
		RadiusMeters: defaultRadiusMeters,
	}

	if raw := c.Query("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a number"})
			return
		}
		params.RadiusMeters = radius
	}

	if raw := c.Query("openNow"); raw != "" {
		openNow, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "openNow must be a boolean"})
			return
		}
		params.OpenNow = &openNow
	}

	if raw := c.Query("amenities"); raw != "" {
		params.Amenities = splitAmenities(raw)
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		params.Limit = &limit
	}

	restrooms, err := h.restroomService.GetNearby(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search restrooms"})
		return
	}

	c.JSON(http.StatusOK, restrooms)
}

// Details обрабатывает GET /v1/bathrooms/:id
func (h *RestroomHandler) Details(c *gin.Context) {
	id, ok := restroomID(c)
	if !ok {
		return
	}

	details, err := h.restroomService.GetRestroom(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRestroomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restroom not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get restroom"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// Propose обрабатывает PATCH /v1/bathrooms/:id
// Создает предложение правки, сам туалет не меняется
func (h *RestroomHandler) Propose(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	id, ok := restroomID(c)
	if !ok {
		return
	}

	var req entity.EditProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	proposal, err := h.restroomService.ProposeEdit(c.Request.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrRestroomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restroom not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create edit proposal"})
		return
	}

	c.JSON(http.StatusAccepted, proposal)
}

// Visit обрабатывает POST /v1/bathrooms/:id/visit
func (h *RestroomHandler) Visit(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	id, ok := restroomID(c)
	if !ok {
		return
	}

	receipt, err := h.restroomService.RecordVisit(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRestroomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restroom not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record visit"})
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// restroomID извлекает числовой id из пути; при ошибке отвечает 400
func restroomID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restroom ID"})
		return 0, false
	}
	return id, true
}

// authenticatedUserID извлекает user_id, добавленный auth middleware
func authenticatedUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userIDStr, ok := userID.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return "", false
	}
	return userIDStr, true
}

// splitAmenities разбирает CSV-параметр amenities
func splitAmenities(raw string) []string {
	parts := strings.Split(raw, ",")
	amenities := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			amenities = append(amenities, p)
		}
	}
	return amenities
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

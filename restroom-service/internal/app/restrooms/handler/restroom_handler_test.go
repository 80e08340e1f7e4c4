package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/service"
)

type MockRestroomService struct {
	mock.Mock
}

func (m *MockRestroomService) SubmitRestroom(ctx context.Context, req *entity.CreateRestroomRequest) (*entity.Restroom, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Restroom), args.Error(1)
}

func (m *MockRestroomService) GetRestroom(ctx context.Context, id int64) (*entity.RestroomDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RestroomDetails), args.Error(1)
}

func (m *MockRestroomService) GetNearby(ctx context.Context, params service.NearbyParams) ([]entity.Restroom, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Restroom), args.Error(1)
}

func (m *MockRestroomService) AddReview(ctx context.Context, restroomID int64, userID string, req *entity.CreateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, restroomID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockRestroomService) GetReviews(ctx context.Context, restroomID int64, sort string) ([]entity.Review, error) {
	args := m.Called(ctx, restroomID, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockRestroomService) RecordVisit(ctx context.Context, restroomID int64) (*entity.VisitReceipt, error) {
	args := m.Called(ctx, restroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VisitReceipt), args.Error(1)
}

func (m *MockRestroomService) ProposeEdit(ctx context.Context, restroomID int64, userID string, req *entity.EditProposalRequest) (*entity.EditProposal, error) {
	args := m.Called(ctx, restroomID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EditProposal), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// setUser имитирует auth middleware
func setUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

// ===================== Submit Tests =====================

func TestSubmit_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.POST("/v1/bathrooms", setUser("user-1"), h.Submit)

	created := &entity.Restroom{ID: 1, Name: "Bryant Park Restroom", Latitude: 40.7536, Longitude: -73.9832}
	mockService.On("SubmitRestroom", mock.Anything, mock.AnythingOfType("*entity.CreateRestroomRequest")).Return(created, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"name":      "Bryant Park Restroom",
		"latitude":  40.7536,
		"longitude": -73.9832,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bathrooms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got entity.Restroom
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	mockService.AssertExpectations(t)
}

func TestSubmit_MissingCoordinates(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.POST("/v1/bathrooms", setUser("user-1"), h.Submit)

	body, _ := json.Marshal(map[string]interface{}{"name": "No Coords"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bathrooms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SubmitRestroom", mock.Anything, mock.Anything)
}

func TestSubmit_LatitudeOutOfRange(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.POST("/v1/bathrooms", setUser("user-1"), h.Submit)

	body, _ := json.Marshal(map[string]interface{}{
		"name":      "Bad Latitude",
		"latitude":  95.0,
		"longitude": 0.0,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bathrooms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== Nearby Tests =====================

func TestNearby_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.GET("/v1/bathrooms/nearby", setUser("user-1"), h.Nearby)

	results := []entity.Restroom{{ID: 1, Name: "Found"}}
	mockService.On("GetNearby", mock.Anything, mock.MatchedBy(func(p service.NearbyParams) bool {
		return p.Lat == 40.7536 && p.Lng == -73.9832 && p.RadiusMeters == 1500
	})).Return(results, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bathrooms/nearby?lat=40.7536&lng=-73.9832", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []entity.Restroom
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	mockService.AssertExpectations(t)
}

func TestNearby_AllFiltersParsed(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.GET("/v1/bathrooms/nearby", setUser("user-1"), h.Nearby)

	mockService.On("GetNearby", mock.Anything, mock.MatchedBy(func(p service.NearbyParams) bool {
		return p.RadiusMeters == 500 &&
			p.OpenNow != nil && *p.OpenNow &&
			len(p.Amenities) == 2 &&
			p.Limit != nil && *p.Limit == 5
	})).Return([]entity.Restroom{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/v1/bathrooms/nearby?lat=40.75&lng=-73.98&radius=500&openNow=true&amenities=ada_accessible,changing_table&limit=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestNearby_MissingLat(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.GET("/v1/bathrooms/nearby", setUser("user-1"), h.Nearby)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bathrooms/nearby?lng=-73.98", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetNearby", mock.Anything, mock.Anything)
}

func TestNearby_MalformedOpenNow(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.GET("/v1/bathrooms/nearby", setUser("user-1"), h.Nearby)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bathrooms/nearby?lat=40.75&lng=-73.98&openNow=banana", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== Details Tests =====================

func TestDetails_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.GET("/v1/bathrooms/:id", setUser("user-1"), h.Details)

	details := &entity.RestroomDetails{
		Restroom:   entity.Restroom{ID: 7, Name: "With Reviews"},
		TopReviews: []entity.Review{{Rating: 5}},
	}
	mockService.On("GetRestroom", mock.Anything, int64(7)).Return(details, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bathrooms/7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "topReviews")
	mockService.AssertExpectations(t)
}

func TestDetails_NotFound(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.GET("/v1/bathrooms/:id", setUser("user-1"), h.Details)

	mockService.On("GetRestroom", mock.Anything, int64(999)).Return(nil, service.ErrRestroomNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bathrooms/999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetails_InvalidID(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.GET("/v1/bathrooms/:id", setUser("user-1"), h.Details)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bathrooms/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== Propose Tests =====================

func TestPropose_Accepted(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.PATCH("/v1/bathrooms/:id", setUser("user-1"), h.Propose)

	proposal := &entity.EditProposal{ID: 1, RestroomID: 7, Status: entity.ProposalStatusPending}
	mockService.On("ProposeEdit", mock.Anything, int64(7), "user-1", mock.AnythingOfType("*entity.EditProposalRequest")).
		Return(proposal, nil)

	body, _ := json.Marshal(map[string]interface{}{"proposed_name": "New Name"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/bathrooms/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), entity.ProposalStatusPending)
	mockService.AssertExpectations(t)
}

func TestPropose_EmptyBodyAccepted(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.PATCH("/v1/bathrooms/:id", setUser("user-1"), h.Propose)

	proposal := &entity.EditProposal{ID: 2, RestroomID: 7, Status: entity.ProposalStatusPending}
	mockService.On("ProposeEdit", mock.Anything, int64(7), "user-1", mock.AnythingOfType("*entity.EditProposalRequest")).
		Return(proposal, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/bathrooms/7", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestPropose_Unauthorized(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.PATCH("/v1/bathrooms/:id", h.Propose)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/bathrooms/7", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "ProposeEdit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// ===================== Visit Tests =====================

func TestVisit_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.POST("/v1/bathrooms/:id/visit", setUser("user-1"), h.Visit)

	receipt := &entity.VisitReceipt{RestroomID: 7, VisitCount: 42, VisitedAt: time.Now()}
	mockService.On("RecordVisit", mock.Anything, int64(7)).Return(receipt, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bathrooms/7/visit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got entity.VisitReceipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(42), got.VisitCount)
	mockService.AssertExpectations(t)
}

func TestVisit_NotFound(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRestroomService)
	h := NewRestroomHandler(mockService)
	router.POST("/v1/bathrooms/:id/visit", setUser("user-1"), h.Visit)

	mockService.On("RecordVisit", mock.Anything, int64(999)).Return(nil, service.ErrRestroomNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/bathrooms/999/visit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

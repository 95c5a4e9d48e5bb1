package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/models"
	"github.com/UlyssesVaz/SoundCreditUnion/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Goal{},
		&models.Product{},
		&models.Recommendation{},
		&models.AnalyticsEvent{},
	))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func testMember(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Email:     "sarah@example.com",
		Password:  "irrelevant",
		FirstName: "Sarah",
		LastName:  "Chen",
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// recommendationRouter wires the controller behind a stub auth layer that
// injects the member id the middleware would have set.
func recommendationRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rc := NewRecommendationController(services.NewRecommendationService(db, nil, nil))
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	r.POST("/recommendations/get", rc.GetRecommendations)
	r.POST("/recommendations/track", rc.Track)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetRecommendationsReturnsRankedList(t *testing.T) {
	db := useTestDB(t)
	user := testMember(t, db)
	r := recommendationRouter(db, user.ID)

	w := postJSON(t, r, "/recommendations/get",
		`{"purchase_context": {"amount": 100, "merchant": "IKEA"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Recommendations []services.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, models.RecommendationTypeCashback, resp.Recommendations[0].Type)
}

func TestGetRecommendationsMalformedGoalIsBadRequest(t *testing.T) {
	db := useTestDB(t)
	user := testMember(t, db)

	// a zero-target goal can't be analyzed; that is the caller's data problem
	bad := models.Goal{
		UserID: user.ID,
		Type:   models.GoalTypeSavings,
		Name:   "Broken",
		Status: models.GoalStatusActive,
	}
	require.NoError(t, db.Create(&bad).Error)

	r := recommendationRouter(db, user.ID)
	w := postJSON(t, r, "/recommendations/get",
		`{"purchase_context": {"amount": 100, "merchant": "IKEA"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestTrackUnknownRecommendationIsNotFound(t *testing.T) {
	db := useTestDB(t)
	user := testMember(t, db)
	r := recommendationRouter(db, user.ID)

	w := postJSON(t, r, "/recommendations/track",
		`{"recommendation_id": "`+uuid.NewString()+`", "event_type": "clicked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

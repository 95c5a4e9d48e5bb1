package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIService(srv *httptest.Server) *AIService {
	return &AIService{
		client:  srv.Client(),
		apiKey:  "test-key",
		model:   "test-model",
		baseURL: srv.URL,
	}
}

func testMember() *models.User {
	return &models.User{
		ID:        uuid.New(),
		FirstName: "Sarah",
		LastName:  "Chen",
		Segment:   "growth",
	}
}

func completionBody(content any) string {
	inner, _ := json.Marshal(content)
	outer, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": string(inner)}},
		},
	})
	return string(outer)
}

func TestAIServiceDisabledWithoutKey(t *testing.T) {
	svc := &AIService{client: http.DefaultClient}
	assert.False(t, svc.Enabled())

	var nilSvc *AIService
	assert.False(t, nilSvc.Enabled())
}

func TestAugmentSurfacesAPIError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	_, err := testAIService(srv).Augment(context.Background(), testMember(), purchase("1200", "BestBuy"), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "a failed call is retried exactly once")
}

func TestAugmentStopsRetryingOnceDeadlinePassed(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := testAIService(srv).Augment(ctx, testMember(), purchase("100", "Target"), nil, nil)
	require.Error(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestAugmentRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"not json at all"}}]}`))
	}))
	defer srv.Close()

	_, err := testAIService(srv).Augment(context.Background(), testMember(), purchase("100", "Target"), nil, nil)
	assert.Error(t, err)
}

func TestAugmentParsesRecommendations(t *testing.T) {
	card := models.Product{ID: uuid.New(), Type: models.ProductTypeCreditCard, Name: "Cashback Rewards Card", Description: "2% back"}

	payload := map[string]any{
		"recommendations": []map[string]any{
			{"type": "alert", "priority": 1, "title": "Watch your budget", "description": "This dents your dining goal."},
			{"type": "credit_card", "priority": 2, "title": "Better card for this", "description": "More rewards here.", "product_name": "the Cashback Rewards Card"},
			{"type": "teleportation", "priority": 1, "title": "Nonsense", "description": "Dropped."},
			{"type": "cashback", "title": "", "description": "missing title, dropped"},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(completionBody(payload)))
	}))
	defer srv.Close()

	recs, err := testAIService(srv).Augment(context.Background(), testMember(), purchase("300", "DoorDash"), nil, []models.Product{card})
	require.NoError(t, err)
	require.Len(t, recs, 2, "unknown types and empty titles are dropped")

	assert.Equal(t, models.RecommendationTypeAlert, recs[0].Type)
	assert.Equal(t, models.RecommendationTypeCreditCard, recs[1].Type)
	require.NotNil(t, recs[1].Product)
	assert.Equal(t, card.ID, recs[1].Product.ID)
}

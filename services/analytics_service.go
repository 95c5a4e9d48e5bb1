package services

import (
	"context"
	"math"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

type TypeBreakdown struct {
	Type   string `json:"type"`
	Shown  int64  `json:"shown"`
	Clicks int64  `json:"clicks"`
}

type RecommendationSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Shown            int64           `json:"shown"`
	Clicked          int64           `json:"clicked"`
	Dismissed        int64           `json:"dismissed"`
	ClickThroughRate float64         `json:"click_through_rate"`
	ByType           []TypeBreakdown `json:"by_type"`
}

// RecommendationSummary aggregates the tracking events for one member over a
// date range. Totals come from the analytics event stream, the per-type
// breakdown from the persisted recommendation counters.
func (s *AnalyticsService) RecommendationSummary(
	ctx context.Context, userID uuid.UUID, from, to time.Time,
) (*RecommendationSummary, error) {

	out := &RecommendationSummary{}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")

	counts := map[string]*int64{
		"recommendation_shown":     &out.Shown,
		"recommendation_clicked":   &out.Clicked,
		"recommendation_dismissed": &out.Dismissed,
	}
	for eventType, dest := range counts {
		err := s.db.WithContext(ctx).
			Model(&models.AnalyticsEvent{}).
			Where("user_id = ? AND event_type = ? AND created_at BETWEEN ? AND ?",
				userID, eventType, dayStart(from), dayEnd(to)).
			Count(dest).Error
		if err != nil {
			return nil, err
		}
	}

	if out.Shown > 0 {
		out.ClickThroughRate = round2(float64(out.Clicked) / float64(out.Shown) * 100.0)
	}

	rows := []TypeBreakdown{}
	err := s.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Select("type, SUM(shown_count) AS shown, SUM(click_count) AS clicks").
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, dayStart(from), dayEnd(to)).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out.ByType = rows

	return out, nil
}

// RecordEvent stores a raw analytics event (page views etc. from the
// extension).
func (s *AnalyticsService) RecordEvent(ctx context.Context, userID *uuid.UUID, eventType string, data models.JSONMap, sessionID, pageURL string) error {
	ev := models.AnalyticsEvent{
		UserID:    userID,
		EventType: eventType,
		EventData: data,
		SessionID: sessionID,
		PageURL:   pageURL,
	}
	return s.db.WithContext(ctx).Create(&ev).Error
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

package services

import (
	"log"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventBus records analytics events and fans them out to the member's open
// realtime sessions. Emission is fire-and-forget: a failed write is logged
// and never reaches the request path.
type EventBus struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewEventBus(db *gorm.DB, hub *RealtimeHub) *EventBus {
	return &EventBus{db: db, hub: hub}
}

func (b *EventBus) Emit(userID uuid.UUID, eventType string, data models.JSONMap) {
	if b == nil || b.db == nil {
		return
	}
	go func() {
		ev := models.AnalyticsEvent{
			UserID:    &userID,
			EventType: eventType,
			EventData: data,
		}
		if err := b.db.Create(&ev).Error; err != nil {
			log.Printf("record event %s: %v", eventType, err)
			return
		}
		if b.hub != nil {
			b.hub.Broadcast(userID, map[string]any{
				"kind":  "event." + eventType,
				"event": ev,
			})
		}
	}()
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsEvent struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	EventType string  `gorm:"size:100;index;not null" json:"event_type"`
	EventData JSONMap `json:"event_data,omitempty"`

	SessionID string `gorm:"size:100" json:"session_id,omitempty"`
	PageURL   string `gorm:"size:500" json:"page_url,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (e *AnalyticsEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

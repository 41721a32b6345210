package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizscout/bizscout/utils/types"
)

// Extraction is one /extract call, found or not.
type Extraction struct {
	ID            uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	Query         string                `json:"query" gorm:"type:text;not null"`
	SearchString  string                `json:"search_string" gorm:"type:text;index"`
	Source        string                `json:"source" gorm:"type:varchar(64);default:''"`
	Found         bool                  `json:"found"`
	Cached        bool                  `json:"cached"`
	BusinessName  string                `json:"business_name" gorm:"type:varchar(512);default:''"`
	Record        *types.BusinessRecord `json:"record,omitempty" gorm:"type:jsonb;serializer:json"`
	WebhookStatus string                `json:"webhook_status" gorm:"type:varchar(16);default:''"`
	DurationMs    int64                 `json:"duration_ms"`
	CreatedAt     time.Time             `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Extraction) TableName() string {
	return "extractions"
}

func (e *Extraction) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

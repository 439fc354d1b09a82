package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const ActionGenerateMotion = "generate_motion"

// UsageLog is an append-only audit entry. One row per generation
// request, written as soon as a brand is resolved, independent of
// whether downstream generation succeeds.
type UsageLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	BrandID     uuid.UUID      `gorm:"type:uuid;column:brand_id;not null;index" json:"brand_id"`
	Action      string         `gorm:"column:action;not null" json:"action"`
	CreditsUsed int            `gorm:"column:credits_used;not null;default:1" json:"credits_used"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (UsageLog) TableName() string { return "usage_logs" }

package types

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tracks credit consumption per brand; one-to-one with
// Brand.
type Subscription struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID            uuid.UUID  `gorm:"type:uuid;column:brand_id;not null;uniqueIndex" json:"brand_id"`
	Plan               string     `gorm:"column:plan;not null;default:free" json:"plan"`
	Status             string     `gorm:"column:status;not null;default:active" json:"status"`
	CreditsTotal       int        `gorm:"column:credits_total;not null;default:100" json:"credits_total"`
	CreditsUsed        int        `gorm:"column:credits_used;not null;default:0" json:"credits_used"`
	CurrentPeriodStart *time.Time `gorm:"column:current_period_start" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `gorm:"column:current_period_end" json:"current_period_end,omitempty"`
	CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

package types

import (
	"time"

	"github.com/google/uuid"
)

// Brand is the tenant-level workspace owning projects, assets and a
// subscription. Created lazily on a user's first generation request.
type Brand struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID `gorm:"type:uuid;column:owner_id;not null;uniqueIndex" json:"owner_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	LogoURL        string    `gorm:"column:logo_url" json:"logo_url,omitempty"`
	PrimaryColor   string    `gorm:"column:primary_color" json:"primary_color,omitempty"`
	SecondaryColor string    `gorm:"column:secondary_color" json:"secondary_color,omitempty"`
	MoodPreset     string    `gorm:"column:mood_preset" json:"mood_preset,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Brand) TableName() string { return "brands" }

package types

import (
	"time"

	"github.com/google/uuid"
)

// TeamMember links a user to a brand with a role. Migrated for schema
// parity; no flow in this service touches it yet.
type TeamMember struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID      uuid.UUID  `gorm:"type:uuid;column:brand_id;not null;index" json:"brand_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	Role         string     `gorm:"column:role;not null;default:viewer" json:"role"`
	InvitedEmail string     `gorm:"column:invited_email" json:"invited_email,omitempty"`
	AcceptedAt   *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
}

func (TeamMember) TableName() string { return "team_members" }

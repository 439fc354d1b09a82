package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is a container for generated work under a brand. The pipeline
// lazily creates one "Default Project" per brand.
type Project struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID     uuid.UUID      `gorm:"type:uuid;column:brand_id;not null;uniqueIndex:idx_projects_brand_name,priority:1" json:"brand_id"`
	Name        string         `gorm:"column:name;not null;uniqueIndex:idx_projects_brand_name,priority:2" json:"name"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	Status      string         `gorm:"column:status;not null;default:active" json:"status"`
	Settings    datatypes.JSON `gorm:"column:settings;type:jsonb" json:"settings,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

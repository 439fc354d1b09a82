package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AssetTypeGenerated    = "generated"
	AssetStatusCompleted  = "completed"
	AssetStatusProcessing = "processing"
)

// Asset is a persisted generated artifact: stored image URLs plus the
// computed physics and motion settings. Version and ParentAssetID are
// kept for future lineage tracking; the generation flow writes version 1
// with no parent.
type Asset struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID         uuid.UUID      `gorm:"type:uuid;column:brand_id;not null;index" json:"brand_id"`
	ProjectID       uuid.UUID      `gorm:"type:uuid;column:project_id;not null;index" json:"project_id"`
	Name            string         `gorm:"column:name;not null" json:"name"`
	Type            string         `gorm:"column:type;not null;index" json:"type"`
	Status          string         `gorm:"column:status;not null" json:"status"`
	Version         int            `gorm:"column:version;not null;default:1" json:"version"`
	ParentAssetID   *uuid.UUID     `gorm:"type:uuid;column:parent_asset_id" json:"parent_asset_id,omitempty"`
	FileURL         string         `gorm:"column:file_url" json:"file_url,omitempty"`
	ThumbnailURL    string         `gorm:"column:thumbnail_url" json:"thumbnail_url,omitempty"`
	FitScore        *float64       `gorm:"column:fit_score" json:"fit_score,omitempty"`
	PhysicsSettings datatypes.JSON `gorm:"column:physics_settings;type:jsonb" json:"physics_settings,omitempty"`
	MotionSettings  datatypes.JSON `gorm:"column:motion_settings;type:jsonb" json:"motion_settings,omitempty"`
	Metadata        datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "assets" }

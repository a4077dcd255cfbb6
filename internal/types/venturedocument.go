package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VentureDocument struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture     *Venture       `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	BucketKey   string         `gorm:"column:bucket_key;not null" json:"bucket_key"`
	FileURL     string         `gorm:"column:file_url" json:"file_url"`
	ContentType string         `gorm:"column:content_type" json:"content_type"`
	SizeBytes   int64          `gorm:"column:size_bytes;default:0" json:"size_bytes"`
	UploadedBy  string         `gorm:"column:uploaded_by" json:"uploaded_by"`
	Extracted   datatypes.JSON `gorm:"column:extracted;type:jsonb" json:"extracted,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (VentureDocument) TableName() string { return "venture_document" }

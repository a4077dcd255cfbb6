package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResourceListing is an offer of a shareable resource (desk space, equipment,
// specialist hours) published by one venture for the rest of the studio.
type ResourceListing struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture      *Venture       `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	ResourceType string         `gorm:"column:resource_type" json:"resource_type"`
	Availability string         `gorm:"column:availability" json:"availability"`
	Tags         datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Status       string         `gorm:"column:status;not null;default:'open'" json:"status"`
	CreatedBy    string         `gorm:"column:created_by" json:"created_by"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ResourceListing) TableName() string { return "resource_listing" }

type ResourceRequest struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ListingID   *uuid.UUID       `gorm:"type:uuid;index" json:"listing_id,omitempty"`
	Listing     *ResourceListing `gorm:"constraint:OnDelete:SET NULL;foreignKey:ListingID;references:ID" json:"listing,omitempty"`
	VentureID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture     *Venture         `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	Description string           `gorm:"column:description;not null" json:"description"`
	Status      string           `gorm:"column:status;not null;default:'pending'" json:"status"`
	RequestedBy string           `gorm:"column:requested_by" json:"requested_by"`
	CreatedAt   time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (ResourceRequest) TableName() string { return "resource_request" }

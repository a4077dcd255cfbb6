package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VentureScore struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture    *Venture       `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	Composite  float64        `gorm:"column:composite;default:0" json:"composite"`
	Dimensions datatypes.JSON `gorm:"column:dimensions;type:jsonb" json:"dimensions"`
	ComputedAt time.Time      `gorm:"column:computed_at;not null;default:now()" json:"computed_at"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (VentureScore) TableName() string { return "venture_score" }

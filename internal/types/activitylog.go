package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ActorEmail string         `gorm:"column:actor_email;index" json:"actor_email"`
	Action     string         `gorm:"column:action;not null" json:"action"`
	EntityType string         `gorm:"column:entity_type;index" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"type:uuid" json:"entity_id,omitempty"`
	VentureID  *uuid.UUID     `gorm:"type:uuid;index" json:"venture_id,omitempty"`
	Detail     datatypes.JSON `gorm:"column:detail;type:jsonb" json:"detail,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_log" }

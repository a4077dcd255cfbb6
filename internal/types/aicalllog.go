package types

import (
	"time"

	"github.com/google/uuid"
)

type AICallLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	VentureID  *uuid.UUID `gorm:"type:uuid;index" json:"venture_id,omitempty"`
	Feature    string     `gorm:"column:feature;not null" json:"feature"`
	Model      string     `gorm:"column:model;not null" json:"model"`
	Success    bool       `gorm:"column:success;not null" json:"success"`
	Error      string     `gorm:"column:error" json:"error"`
	DurationMS int64      `gorm:"column:duration_ms;default:0" json:"duration_ms"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_log" }

package types

import (
	"time"

	"github.com/google/uuid"
)

type VentureTask struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture       *Venture   `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	Title         string     `gorm:"column:title;not null" json:"title"`
	Description   string     `gorm:"column:description" json:"description"`
	Status        string     `gorm:"column:status;not null;default:'todo';index" json:"status"`
	Priority      string     `gorm:"column:priority;default:'medium'" json:"priority"`
	AssigneeEmail string     `gorm:"column:assignee_email;index" json:"assignee_email"`
	DueDate       *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	CreatedBy     string     `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (VentureTask) TableName() string { return "venture_task" }

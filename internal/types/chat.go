package types

import (
	"time"

	"github.com/google/uuid"
)

type ChatThread struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID uuid.UUID `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture   *Venture  `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	CreatedBy string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ChatThread) TableName() string { return "chat_thread" }

type ChatMessage struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ThreadID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"thread_id"`
	Thread      *ChatThread `gorm:"constraint:OnDelete:CASCADE;foreignKey:ThreadID;references:ID" json:"thread,omitempty"`
	AuthorEmail string      `gorm:"column:author_email;not null" json:"author_email"`
	Body        string      `gorm:"column:body;not null" json:"body"`
	CreatedAt   time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }

type VentureComment struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture     *Venture   `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	AuthorEmail string     `gorm:"column:author_email;not null" json:"author_email"`
	Body        string     `gorm:"column:body;not null" json:"body"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (VentureComment) TableName() string { return "venture_comment" }

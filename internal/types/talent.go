package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Talent pipeline stages.
const (
	TalentStatusSourced     = "sourced"
	TalentStatusScreening   = "screening"
	TalentStatusInterviewed = "interviewed"
	TalentStatusOffered     = "offered"
	TalentStatusPlaced      = "placed"
	TalentStatusRejected    = "rejected"
)

// Skills is a JSON list whose entries are either plain strings or
// {"name": ..., "proficiency": ...} objects, exactly as the intake forms
// produce them.
type Talent struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FullName       string         `gorm:"column:full_name;not null" json:"full_name"`
	Email          string         `gorm:"column:email;index" json:"email"`
	Skills         datatypes.JSON `gorm:"column:skills;type:jsonb" json:"skills"`
	SeniorityLevel string         `gorm:"column:seniority_level" json:"seniority_level"`
	Status         string         `gorm:"column:status;not null;default:'sourced';index" json:"status"`
	Rating         float64        `gorm:"column:rating;default:0" json:"rating"`
	Source         string         `gorm:"column:source" json:"source"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Talent) TableName() string { return "talent" }

type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Category  string    `gorm:"column:category" json:"category"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Skill) TableName() string { return "skill" }

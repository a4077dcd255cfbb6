package types

import (
	"time"

	"github.com/google/uuid"
)

// Access levels form a hierarchy: view < edit < admin.
const (
	AccessView  = "view"
	AccessEdit  = "edit"
	AccessAdmin = "admin"
)

// PermissionTypeAll is the sentinel type matching every feature gate.
const PermissionTypeAll = "all"

type VenturePermission struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_permission_venture_email" json:"venture_id"`
	Venture        *Venture   `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	UserEmail      string     `gorm:"column:user_email;not null;index:idx_permission_venture_email" json:"user_email"`
	PermissionType string     `gorm:"column:permission_type;not null" json:"permission_type"`
	AccessLevel    string     `gorm:"column:access_level;not null;default:'view'" json:"access_level"`
	ExpiresAt      *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	GrantedBy      string     `gorm:"column:granted_by" json:"granted_by"`
	CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (VenturePermission) TableName() string { return "venture_permission" }

// Active reports whether the grant counts at evaluation time. Expiry is a
// pure filter: expired rows stay in the table and are simply ignored.
func (p *VenturePermission) Active(now time.Time) bool {
	return p.ExpiresAt == nil || p.ExpiresAt.After(now)
}

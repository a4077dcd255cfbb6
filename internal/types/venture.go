package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Venture layers mirror the studio's portfolio taxonomy.
const (
	LayerStartup  = "startup"
	LayerScaleup  = "scaleup"
	LayerDeeptech = "deeptech"
	LayerPlatform = "platform"
	LayerCultural = "cultural"
	LayerWinwin   = "winwin"
)

func ValidLayer(layer string) bool {
	switch layer {
	case LayerStartup, LayerScaleup, LayerDeeptech, LayerPlatform, LayerCultural, LayerWinwin:
		return true
	}
	return false
}

type Venture struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	Description   string         `gorm:"column:description" json:"description"`
	Layer         string         `gorm:"column:layer;not null;index" json:"layer"`
	Status        string         `gorm:"column:status;not null;default:'active';index" json:"status"`
	Category      string         `gorm:"column:category" json:"category"`
	Tags          datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	TeamSize      int            `gorm:"column:team_size;default:0" json:"team_size"`
	Website       string         `gorm:"column:website" json:"website"`
	LogoBucketKey string         `gorm:"column:logo_bucket_key" json:"logo_bucket_key"`
	LogoURL       string         `gorm:"column:logo_url" json:"logo_url"`
	CreatedBy     string         `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Venture) TableName() string { return "venture" }

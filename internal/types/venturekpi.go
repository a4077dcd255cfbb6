package types

import (
	"time"

	"github.com/google/uuid"
)

type VentureKPI struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture         *Venture   `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	KPIName         string     `gorm:"column:kpi_name;not null" json:"kpi_name"`
	KPIType         string     `gorm:"column:kpi_type" json:"kpi_type"`
	CurrentValue    float64    `gorm:"column:current_value;default:0" json:"current_value"`
	TargetValue     float64    `gorm:"column:target_value;default:0" json:"target_value"`
	Unit            string     `gorm:"column:unit" json:"unit"`
	Period          string     `gorm:"column:period" json:"period"`
	MeasurementDate *time.Time `gorm:"column:measurement_date;index" json:"measurement_date,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (VentureKPI) TableName() string { return "venture_kpi" }

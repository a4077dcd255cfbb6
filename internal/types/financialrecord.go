package types

import (
	"time"

	"github.com/google/uuid"
)

type FinancialRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VentureID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"venture_id"`
	Venture     *Venture   `gorm:"constraint:OnDelete:CASCADE;foreignKey:VentureID;references:ID" json:"venture,omitempty"`
	RecordDate  *time.Time `gorm:"column:record_date;index" json:"record_date,omitempty"`
	Revenue     float64    `gorm:"column:revenue;default:0" json:"revenue"`
	Expenses    float64    `gorm:"column:expenses;default:0" json:"expenses"`
	Investment  float64    `gorm:"column:investment;default:0" json:"investment"`
	CashBalance float64    `gorm:"column:cash_balance;default:0" json:"cash_balance"`
	PeriodType  string     `gorm:"column:period_type" json:"period_type"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (FinancialRecord) TableName() string { return "financial_record" }

package schema

import (
	"time"

	"github.com/keystone-cre/leaseledger/internal/domain"
)

// RentPeriod represents the rent_periods table - a span of a version during
// which a fixed rent amount applies. Periods under one version never overlap;
// the store enforces the check inside the insert transaction.
type RentPeriod struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// VersionID references the lease version this period belongs to
	VersionID uint64 `gorm:"column:version_id;not null;index"`
	// PeriodStart is the inclusive start of the period interval
	PeriodStart time.Time `gorm:"column:period_start;not null;type:date"`
	// PeriodEnd is the exclusive end of the period interval
	PeriodEnd time.Time `gorm:"column:period_end;not null;type:date"`
	// Amount is the rent amount in the lease currency
	Amount float64 `gorm:"column:amount;not null"`
	// Basis is the unit the amount is quoted in: month or year
	Basis domain.RentBasis `gorm:"column:basis;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Version LeaseVersion `gorm:"foreignKey:VersionID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the RentPeriod model
func (RentPeriod) TableName() string {
	return "rent_periods"
}

// PeriodRange returns the period's half-open interval
func (p *RentPeriod) PeriodRange() domain.DateRange {
	return domain.DateRange{Start: p.PeriodStart, End: p.PeriodEnd}
}

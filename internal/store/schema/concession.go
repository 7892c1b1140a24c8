package schema

import (
	"time"

	"github.com/keystone-cre/leaseledger/internal/domain"
)

// Concession represents the concessions table - a tenant inducement granted on
// a version: TI allowance, free rent, or other. AppliesStart/AppliesEnd form an
// optional half-open interval; it is required for free_rent.
type Concession struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// VersionID references the lease version this concession belongs to
	VersionID uint64 `gorm:"column:version_id;not null;index"`
	// Kind is the concession kind: ti_allowance, free_rent, or other
	Kind domain.ConcessionKind `gorm:"column:kind;not null;type:text"`
	// ValueAmount is the concession value in the lease currency
	ValueAmount float64 `gorm:"column:value_amount;not null"`
	// ValueBasis is the unit system of the value: total or per_sf
	ValueBasis domain.ConcessionBasis `gorm:"column:value_basis;not null;type:text"`
	// AppliesStart is the inclusive start of the interval the concession applies over
	AppliesStart *time.Time `gorm:"column:applies_start;type:date"`
	// AppliesEnd is the exclusive end of the interval the concession applies over
	AppliesEnd *time.Time `gorm:"column:applies_end;type:date"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Version LeaseVersion `gorm:"foreignKey:VersionID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Concession model
func (Concession) TableName() string {
	return "concessions"
}

// AppliesRange returns the applies interval, or nil if the concession has none
func (c *Concession) AppliesRange() *domain.DateRange {
	if c.AppliesStart == nil || c.AppliesEnd == nil {
		return nil
	}
	return &domain.DateRange{Start: *c.AppliesStart, End: *c.AppliesEnd}
}

package schema

import (
	"time"

	"github.com/keystone-cre/leaseledger/internal/domain"
)

// MilestoneDate represents the milestone_dates table - a dated fact scoped to
// the lease rather than a version, since milestones like the original
// commencement outlive amendments.
type MilestoneDate struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// LeaseID references the lease this milestone belongs to
	LeaseID uint64 `gorm:"column:lease_id;not null;index"`
	// Kind is the milestone kind: commencement, rent_start, expiration, notice, or other
	Kind domain.MilestoneKind `gorm:"column:kind;not null;type:text"`
	// DateValue is the milestone date
	DateValue time.Time `gorm:"column:date_value;not null;type:date"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Lease Lease `gorm:"foreignKey:LeaseID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the MilestoneDate model
func (MilestoneDate) TableName() string {
	return "milestone_dates"
}

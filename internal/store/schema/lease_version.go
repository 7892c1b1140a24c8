package schema

import (
	"time"

	"github.com/keystone-cre/leaseledger/internal/domain"
)

// LeaseVersion represents the lease_versions table - one temporally scoped
// statement of a lease's terms (the original agreement or an amendment).
// Versions are append-only: they are never mutated in place or deleted; a
// mis-entered amendment is corrected by a superseding version.
// (lease_id, sequence_num) is unique; sequence numbers are gap-free from 0.
type LeaseVersion struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// LeaseID references the lease this version belongs to
	LeaseID uint64 `gorm:"column:lease_id;not null;uniqueIndex:idx_versions_lease_seq"`
	// SequenceNum is the position in the amendment sequence, 0 for the original
	SequenceNum int `gorm:"column:sequence_num;not null;uniqueIndex:idx_versions_lease_seq"`
	// EffectiveStart is the inclusive start of the effective interval
	EffectiveStart time.Time `gorm:"column:effective_start;not null;type:date"`
	// EffectiveEnd is the exclusive end of the effective interval
	EffectiveEnd time.Time `gorm:"column:effective_end;not null;type:date"`
	// SuiteID references the suite demised under this version
	SuiteID uint64 `gorm:"column:suite_id;not null"`
	// Area is the demised area in square feet as stated in this version
	Area float64 `gorm:"column:area;not null"`
	// TermMonths is the stated term length in months
	TermMonths int `gorm:"column:term_months;not null"`
	// EscalationMethod is how rent escalates across the term
	EscalationMethod domain.EscalationMethod `gorm:"column:escalation_method;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Lease Lease `gorm:"foreignKey:LeaseID;constraint:OnDelete:RESTRICT"`
	Suite Suite `gorm:"foreignKey:SuiteID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the LeaseVersion model
func (LeaseVersion) TableName() string {
	return "lease_versions"
}

// EffectiveRange returns the version's half-open effective interval
func (v *LeaseVersion) EffectiveRange() domain.DateRange {
	return domain.DateRange{Start: v.EffectiveStart, End: v.EffectiveEnd}
}

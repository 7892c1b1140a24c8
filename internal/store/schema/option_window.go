package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/keystone-cre/leaseledger/internal/domain"
)

// OptionWindow represents the option_windows table - the interval during which
// a lease option (renewal, termination, expansion, ROFR) may be exercised.
type OptionWindow struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// VersionID references the lease version this option belongs to
	VersionID uint64 `gorm:"column:version_id;not null;index"`
	// Kind is the option kind: renewal, termination, expansion, rofr, or other
	Kind domain.OptionKind `gorm:"column:kind;not null;type:text"`
	// WindowStart is the inclusive start of the exercise window
	WindowStart time.Time `gorm:"column:window_start;not null;type:date"`
	// WindowEnd is the exclusive end of the exercise window
	WindowEnd time.Time `gorm:"column:window_end;not null;type:date"`
	// Terms holds free-form negotiated terms as JSON
	Terms datatypes.JSON `gorm:"column:terms;type:jsonb"`
	// Exercised indicates whether the option has been exercised
	Exercised bool `gorm:"column:exercised;not null;default:false"`
	// ExercisedDate is the date of exercise; requires Exercised = true
	ExercisedDate *time.Time `gorm:"column:exercised_date;type:date"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Version LeaseVersion `gorm:"foreignKey:VersionID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the OptionWindow model
func (OptionWindow) TableName() string {
	return "option_windows"
}

// WindowRange returns the option's half-open exercise window
func (w *OptionWindow) WindowRange() domain.DateRange {
	return domain.DateRange{Start: w.WindowStart, End: w.WindowEnd}
}

package schema

import "time"

// Suite represents the suites table - a rentable unit within a property.
// (property_id, code) is unique.
type Suite struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PropertyID references the property this suite belongs to
	PropertyID uint64 `gorm:"column:property_id;not null;uniqueIndex:idx_suites_property_code"`
	// Code is the suite identifier within the property (e.g. "400A")
	Code string `gorm:"column:code;not null;type:text;uniqueIndex:idx_suites_property_code"`
	// Area is the rentable area of the suite in square feet
	Area float64 `gorm:"column:area;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Suite model
func (Suite) TableName() string {
	return "suites"
}

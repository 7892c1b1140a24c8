package schema

import "time"

// Property represents the properties table - reference entity for buildings under management
type Property struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the display name of the property
	Name string `gorm:"column:name;not null;type:text"`
	// TotalArea is the total rentable area in square feet
	TotalArea float64 `gorm:"column:total_area;not null"`
	// Active indicates whether the property is administratively active
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}

package schema

import "time"

// DocumentLink represents the document_links table - an opaque reference to an
// externally stored lease document. Storage and retrieval live elsewhere.
type DocumentLink struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// LeaseID references the lease this document belongs to
	LeaseID uint64 `gorm:"column:lease_id;not null;index"`
	// Label is the human-readable document label
	Label string `gorm:"column:label;not null;type:text"`
	// ExternalRef is the opaque reference into the document system
	ExternalRef string `gorm:"column:external_ref;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Lease Lease `gorm:"foreignKey:LeaseID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the DocumentLink model
func (DocumentLink) TableName() string {
	return "document_links"
}

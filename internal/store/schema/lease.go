package schema

import "time"

// Lease represents the leases table - the immutable contract shell binding one
// property, one landlord, and one tenant. (property_id, external_number) is unique.
//
// CurrentVersionID is the single-valued "current version" association: it is
// repointed only inside the amendment transaction, so a lease can never have
// two current versions or lose its current version once one exists.
type Lease struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PropertyID references the property the lease is on
	PropertyID uint64 `gorm:"column:property_id;not null;uniqueIndex:idx_leases_property_external"`
	// LandlordID references the landlord party
	LandlordID uint64 `gorm:"column:landlord_id;not null"`
	// TenantID references the tenant party
	TenantID uint64 `gorm:"column:tenant_id;not null"`
	// ExternalNumber is the lease number from the source document set
	ExternalNumber string `gorm:"column:external_number;not null;type:text;uniqueIndex:idx_leases_property_external"`
	// ExecutionDate is the date the contract was signed
	ExecutionDate time.Time `gorm:"column:execution_date;not null;type:date"`
	// CurrentVersionID points at the version currently in force.
	// NULL only between shell creation and first-version insertion.
	CurrentVersionID *uint64 `gorm:"column:current_version_id"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:RESTRICT"`
	Landlord Party    `gorm:"foreignKey:LandlordID;constraint:OnDelete:RESTRICT"`
	Tenant   Party    `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Lease model
func (Lease) TableName() string {
	return "leases"
}

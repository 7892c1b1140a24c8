package schema

import (
	"time"

	"github.com/keystone-cre/leaseledger/internal/domain"
)

// Party represents the parties table - a legal entity appearing on leases
type Party struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// LegalName is the registered legal name of the party
	LegalName string `gorm:"column:legal_name;not null;type:text"`
	// Role is the party's role: tenant, landlord, sublandlord, or guarantor
	Role domain.PartyRole `gorm:"column:role;not null;type:text"`
	// Active indicates whether the party is administratively active
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Party model
func (Party) TableName() string {
	return "parties"
}

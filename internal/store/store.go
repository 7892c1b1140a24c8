package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

// CreateLeaseInput holds the fields for creating a lease shell
type CreateLeaseInput struct {
	PropertyID     uint64
	LandlordID     uint64
	TenantID       uint64
	ExternalNumber string
	ExecutionDate  time.Time
}

// CreateRentPeriodInput holds the fields for creating a rent period
type CreateRentPeriodInput struct {
	Period domain.DateRange
	Amount float64
	Basis  domain.RentBasis
}

// CreateOptionWindowInput holds the fields for creating an option window
type CreateOptionWindowInput struct {
	Kind          domain.OptionKind
	Window        domain.DateRange
	Terms         datatypes.JSON
	Exercised     bool
	ExercisedDate *time.Time
}

// CreateConcessionInput holds the fields for creating a concession
type CreateConcessionInput struct {
	Kind        domain.ConcessionKind
	ValueAmount float64
	ValueBasis  domain.ConcessionBasis
	Applies     *domain.DateRange
}

// CreateVersionInput holds the fields for the amendment protocol.
//
// PriorVersionID is the current version the caller observed before amending
// (nil when the caller observed no version yet). The amendment transaction
// fails with domain.ErrCurrentVersionConflict if the lease's current version
// has moved in the meantime, so two concurrent amendments can never both
// succeed against the same observed state.
type CreateVersionInput struct {
	PriorVersionID   *uint64
	Effective        domain.DateRange
	SuiteID          uint64
	Area             float64
	TermMonths       int
	EscalationMethod domain.EscalationMethod

	// Optional facts created in the same transaction as the version
	RentPeriods   []CreateRentPeriodInput
	OptionWindows []CreateOptionWindowInput
	Concessions   []CreateConcessionInput
}

// UpdateConcessionInput holds the mutable fields of a concession.
// Applies replaces the whole interval when set; the kind is immutable.
type UpdateConcessionInput struct {
	ValueAmount *float64
	ValueBasis  *domain.ConcessionBasis
	Applies     *domain.DateRange
}

// UpdateOptionWindowInput holds the mutable fields of an option window.
// Setting Exercised to false clears any stored exercise date, keeping the
// rule that exercised_date exists only on an exercised window.
type UpdateOptionWindowInput struct {
	Terms         *datatypes.JSON
	Exercised     *bool
	ExercisedDate *time.Time
}

// LeaseQueryFilter narrows lease listings for derived-metric queries
type LeaseQueryFilter struct {
	PropertyID *uint64
	PartyID    *uint64 // matches landlord or tenant
	Limit      int
	Offset     int
}

// LeaseSnapshot is the state the derived-metrics functions are computed from:
// the lease shell, its current version, and the facts attached to both.
type LeaseSnapshot struct {
	Lease          schema.Lease
	CurrentVersion *schema.LeaseVersion
	RentPeriods    []schema.RentPeriod
	OptionWindows  []schema.OptionWindow
	Concessions    []schema.Concession
	Milestones     []schema.MilestoneDate
}

// Store defines the interface for database operations
type Store interface {
	// Reference store: Property
	CreateProperty(ctx context.Context, p *schema.Property) error
	GetProperty(ctx context.Context, id uint64) (*schema.Property, error)
	UpdateProperty(ctx context.Context, p *schema.Property) error
	DeleteProperty(ctx context.Context, id uint64) error

	// Reference store: Suite
	CreateSuite(ctx context.Context, s *schema.Suite) error
	GetSuite(ctx context.Context, id uint64) (*schema.Suite, error)
	ListSuitesByProperty(ctx context.Context, propertyID uint64) ([]schema.Suite, error)
	UpdateSuite(ctx context.Context, s *schema.Suite) error
	DeleteSuite(ctx context.Context, id uint64) error

	// Reference store: Party
	CreateParty(ctx context.Context, p *schema.Party) error
	GetParty(ctx context.Context, id uint64) (*schema.Party, error)
	UpdateParty(ctx context.Context, p *schema.Party) error
	DeleteParty(ctx context.Context, id uint64) error

	// Lease shell
	CreateLease(ctx context.Context, input CreateLeaseInput) (*schema.Lease, error)
	// CreateLeaseWithVersion creates the shell and its sequence-0 version
	// atomically; a rejected initial version rolls the shell back too.
	CreateLeaseWithVersion(ctx context.Context, input CreateLeaseInput, versionInput CreateVersionInput) (*schema.Lease, *schema.LeaseVersion, error)
	GetLease(ctx context.Context, id uint64) (*schema.Lease, error)
	ListLeases(ctx context.Context, filter LeaseQueryFilter) ([]schema.Lease, uint64, error)
	// UpdateLease changes administrative fields only (external number,
	// execution date). Parties, property, and versions are immutable.
	UpdateLease(ctx context.Context, l *schema.Lease) error
	DeleteLease(ctx context.Context, id uint64) error

	// Version ledger
	CreateVersion(ctx context.Context, leaseID uint64, input CreateVersionInput) (*schema.LeaseVersion, error)
	GetVersion(ctx context.Context, id uint64) (*schema.LeaseVersion, error)
	GetCurrentVersion(ctx context.Context, leaseID uint64) (*schema.LeaseVersion, error)
	ListVersions(ctx context.Context, leaseID uint64) ([]schema.LeaseVersion, error)

	// Fact attachments: rent periods
	CreateRentPeriod(ctx context.Context, versionID uint64, input CreateRentPeriodInput) (*schema.RentPeriod, error)
	ListRentPeriods(ctx context.Context, versionID uint64) ([]schema.RentPeriod, error)
	DeleteRentPeriod(ctx context.Context, id uint64) error

	// Fact attachments: option windows
	CreateOptionWindow(ctx context.Context, versionID uint64, input CreateOptionWindowInput) (*schema.OptionWindow, error)
	GetOptionWindow(ctx context.Context, id uint64) (*schema.OptionWindow, error)
	ListOptionWindows(ctx context.Context, versionID uint64) ([]schema.OptionWindow, error)
	UpdateOptionWindow(ctx context.Context, id uint64, input UpdateOptionWindowInput) (*schema.OptionWindow, error)
	DeleteOptionWindow(ctx context.Context, id uint64) error

	// Fact attachments: concessions
	CreateConcession(ctx context.Context, versionID uint64, input CreateConcessionInput) (*schema.Concession, error)
	GetConcession(ctx context.Context, id uint64) (*schema.Concession, error)
	ListConcessions(ctx context.Context, versionID uint64) ([]schema.Concession, error)
	UpdateConcession(ctx context.Context, id uint64, input UpdateConcessionInput) (*schema.Concession, error)
	DeleteConcession(ctx context.Context, id uint64) error

	// Fact attachments: milestones
	CreateMilestone(ctx context.Context, m *schema.MilestoneDate) error
	GetMilestone(ctx context.Context, id uint64) (*schema.MilestoneDate, error)
	ListMilestones(ctx context.Context, leaseID uint64) ([]schema.MilestoneDate, error)
	UpdateMilestone(ctx context.Context, m *schema.MilestoneDate) error
	DeleteMilestone(ctx context.Context, id uint64) error

	// Fact attachments: document links
	CreateDocumentLink(ctx context.Context, d *schema.DocumentLink) error
	GetDocumentLink(ctx context.Context, id uint64) (*schema.DocumentLink, error)
	ListDocumentLinks(ctx context.Context, leaseID uint64) ([]schema.DocumentLink, error)
	UpdateDocumentLink(ctx context.Context, d *schema.DocumentLink) error
	DeleteDocumentLink(ctx context.Context, id uint64) error

	// Derived-metric reads
	GetLeaseSnapshot(ctx context.Context, leaseID uint64) (*LeaseSnapshot, error)
	// ListOptionWindowsTouching returns unexercised option windows whose interval
	// overlaps [from, to), with their versions preloaded. Used by the notice sweeper.
	ListOptionWindowsTouching(ctx context.Context, from, to time.Time) ([]schema.OptionWindow, error)
}

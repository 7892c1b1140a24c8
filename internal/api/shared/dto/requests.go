package dto

import "encoding/json"

// CreatePropertyRequest is the payload for creating a property
type CreatePropertyRequest struct {
	Name      string  `json:"name" binding:"required"`
	TotalArea float64 `json:"total_area" binding:"required"`
}

// UpdatePropertyRequest is the payload for administrative property edits
type UpdatePropertyRequest struct {
	Name      *string  `json:"name,omitempty"`
	TotalArea *float64 `json:"total_area,omitempty"`
	Active    *bool    `json:"active,omitempty"`
}

// CreateSuiteRequest is the payload for creating a suite
type CreateSuiteRequest struct {
	PropertyID uint64  `json:"property_id" binding:"required"`
	Code       string  `json:"code" binding:"required"`
	Area       float64 `json:"area" binding:"required"`
}

// UpdateSuiteRequest is the payload for administrative suite edits
type UpdateSuiteRequest struct {
	Code *string  `json:"code,omitempty"`
	Area *float64 `json:"area,omitempty"`
}

// CreatePartyRequest is the payload for creating a party
type CreatePartyRequest struct {
	LegalName string `json:"legal_name" binding:"required"`
	Role      string `json:"role" binding:"required"`
}

// UpdatePartyRequest is the payload for administrative party edits
type UpdatePartyRequest struct {
	LegalName *string `json:"legal_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// CreateRentPeriodRequest is the payload for attaching a rent period to a version
type CreateRentPeriodRequest struct {
	PeriodStart string  `json:"period_start" binding:"required"`
	PeriodEnd   string  `json:"period_end" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Basis       string  `json:"basis" binding:"required"`
}

// CreateOptionWindowRequest is the payload for attaching an option window to a version
type CreateOptionWindowRequest struct {
	Kind          string          `json:"kind" binding:"required"`
	WindowStart   string          `json:"window_start" binding:"required"`
	WindowEnd     string          `json:"window_end" binding:"required"`
	Terms         json.RawMessage `json:"terms,omitempty"`
	Exercised     bool            `json:"exercised"`
	ExercisedDate *string         `json:"exercised_date,omitempty"`
}

// UpdateOptionWindowRequest is the payload for updating an option window
type UpdateOptionWindowRequest struct {
	Terms         *json.RawMessage `json:"terms,omitempty"`
	Exercised     *bool            `json:"exercised,omitempty"`
	ExercisedDate *string          `json:"exercised_date,omitempty"`
}

// CreateConcessionRequest is the payload for attaching a concession to a version
type CreateConcessionRequest struct {
	Kind         string  `json:"kind" binding:"required"`
	ValueAmount  float64 `json:"value_amount" binding:"required"`
	ValueBasis   string  `json:"value_basis" binding:"required"`
	AppliesStart *string `json:"applies_start,omitempty"`
	AppliesEnd   *string `json:"applies_end,omitempty"`
}

// UpdateConcessionRequest is the payload for updating a concession. AppliesStart
// and AppliesEnd must be set together; the kind is immutable after creation.
type UpdateConcessionRequest struct {
	ValueAmount  *float64 `json:"value_amount,omitempty"`
	ValueBasis   *string  `json:"value_basis,omitempty"`
	AppliesStart *string  `json:"applies_start,omitempty"`
	AppliesEnd   *string  `json:"applies_end,omitempty"`
}

// CreateVersionRequest is the payload for the amendment protocol. The optional
// fact slices are created in the same transaction as the version itself.
type CreateVersionRequest struct {
	EffectiveStart   string                      `json:"effective_start" binding:"required"`
	EffectiveEnd     string                      `json:"effective_end" binding:"required"`
	SuiteID          uint64                      `json:"suite_id" binding:"required"`
	Area             float64                     `json:"area" binding:"required"`
	TermMonths       int                         `json:"term_months" binding:"required"`
	EscalationMethod string                      `json:"escalation_method" binding:"required"`
	RentPeriods      []CreateRentPeriodRequest   `json:"rent_periods,omitempty"`
	OptionWindows    []CreateOptionWindowRequest `json:"option_windows,omitempty"`
	Concessions      []CreateConcessionRequest   `json:"concessions,omitempty"`
}

// CreateLeaseRequest is the payload for creating a lease shell. InitialVersion,
// when present, creates sequence 0 immediately after the shell so the lease is
// never observed without a version by callers that need one.
type CreateLeaseRequest struct {
	PropertyID     uint64                `json:"property_id" binding:"required"`
	LandlordID     uint64                `json:"landlord_id" binding:"required"`
	TenantID       uint64                `json:"tenant_id" binding:"required"`
	ExternalNumber string                `json:"external_number" binding:"required"`
	ExecutionDate  string                `json:"execution_date" binding:"required"`
	InitialVersion *CreateVersionRequest `json:"initial_version,omitempty"`
}

// UpdateLeaseRequest is the payload for administrative lease-shell edits.
// Parties, property, and the version ledger are not editable here.
type UpdateLeaseRequest struct {
	ExternalNumber *string `json:"external_number,omitempty"`
	ExecutionDate  *string `json:"execution_date,omitempty"`
}

// CreateMilestoneRequest is the payload for attaching a milestone to a lease
type CreateMilestoneRequest struct {
	Kind      string `json:"kind" binding:"required"`
	DateValue string `json:"date_value" binding:"required"`
}

// UpdateMilestoneRequest is the payload for updating a milestone
type UpdateMilestoneRequest struct {
	Kind      *string `json:"kind,omitempty"`
	DateValue *string `json:"date_value,omitempty"`
}

// CreateDocumentLinkRequest is the payload for attaching a document link to a lease
type CreateDocumentLinkRequest struct {
	Label       string `json:"label" binding:"required"`
	ExternalRef string `json:"external_ref" binding:"required"`
}

// UpdateDocumentLinkRequest is the payload for updating a document link
type UpdateDocumentLinkRequest struct {
	Label       *string `json:"label,omitempty"`
	ExternalRef *string `json:"external_ref,omitempty"`
}

package dto

import (
	"encoding/json"
	"time"
)

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	TotalArea float64   `json:"total_area"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SuiteResponse represents a suite in API responses
type SuiteResponse struct {
	ID         uint64    `json:"id"`
	PropertyID uint64    `json:"property_id"`
	Code       string    `json:"code"`
	Area       float64   `json:"area"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PartyResponse represents a party in API responses
type PartyResponse struct {
	ID        uint64    `json:"id"`
	LegalName string    `json:"legal_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeaseResponse represents a lease shell in API responses
type LeaseResponse struct {
	ID               uint64    `json:"id"`
	PropertyID       uint64    `json:"property_id"`
	LandlordID       uint64    `json:"landlord_id"`
	TenantID         uint64    `json:"tenant_id"`
	ExternalNumber   string    `json:"external_number"`
	ExecutionDate    string    `json:"execution_date"`
	CurrentVersionID *uint64   `json:"current_version_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// VersionResponse represents a lease version in API responses
type VersionResponse struct {
	ID               uint64    `json:"id"`
	LeaseID          uint64    `json:"lease_id"`
	SequenceNum      int       `json:"sequence_num"`
	EffectiveStart   string    `json:"effective_start"`
	EffectiveEnd     string    `json:"effective_end"`
	SuiteID          uint64    `json:"suite_id"`
	Area             float64   `json:"area"`
	TermMonths       int       `json:"term_months"`
	EscalationMethod string    `json:"escalation_method"`
	Current          bool      `json:"current"`
	CreatedAt        time.Time `json:"created_at"`
}

// RentPeriodResponse represents a rent period in API responses
type RentPeriodResponse struct {
	ID          uint64  `json:"id"`
	VersionID   uint64  `json:"version_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Amount      float64 `json:"amount"`
	Basis       string  `json:"basis"`
}

// OptionWindowResponse represents an option window in API responses
type OptionWindowResponse struct {
	ID            uint64          `json:"id"`
	VersionID     uint64          `json:"version_id"`
	Kind          string          `json:"kind"`
	WindowStart   string          `json:"window_start"`
	WindowEnd     string          `json:"window_end"`
	Terms         json.RawMessage `json:"terms,omitempty"`
	Exercised     bool            `json:"exercised"`
	ExercisedDate *string         `json:"exercised_date,omitempty"`
}

// ConcessionResponse represents a concession in API responses
type ConcessionResponse struct {
	ID           uint64  `json:"id"`
	VersionID    uint64  `json:"version_id"`
	Kind         string  `json:"kind"`
	ValueAmount  float64 `json:"value_amount"`
	ValueBasis   string  `json:"value_basis"`
	AppliesStart *string `json:"applies_start,omitempty"`
	AppliesEnd   *string `json:"applies_end,omitempty"`
}

// MilestoneResponse represents a milestone date in API responses
type MilestoneResponse struct {
	ID        uint64 `json:"id"`
	LeaseID   uint64 `json:"lease_id"`
	Kind      string `json:"kind"`
	DateValue string `json:"date_value"`
}

// DocumentLinkResponse represents a document link in API responses
type DocumentLinkResponse struct {
	ID          uint64    `json:"id"`
	LeaseID     uint64    `json:"lease_id"`
	Label       string    `json:"label"`
	ExternalRef string    `json:"external_ref"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeaseListResponse is a paginated list of lease shells
type LeaseListResponse struct {
	Leases []LeaseResponse `json:"leases"`
	Total  int             `json:"total"`
}

// VersionListResponse is the full amendment history of a lease, oldest first
type VersionListResponse struct {
	Versions []VersionResponse `json:"versions"`
	Total    int               `json:"total"`
}

// RentRollEntry is one line of the portfolio rent roll as of a given date
type RentRollEntry struct {
	LeaseID        uint64  `json:"lease_id"`
	ExternalNumber string  `json:"external_number"`
	PropertyID     uint64  `json:"property_id"`
	VersionID      uint64  `json:"version_id"`
	RentPeriodID   uint64  `json:"rent_period_id"`
	Amount         float64 `json:"amount"`
	Basis          string  `json:"basis"`
	Monthly        float64 `json:"monthly"`
	Annual         float64 `json:"annual"`
}

// RentRollResponse is the portfolio rent roll as of a given date
type RentRollResponse struct {
	AsOf    string          `json:"as_of"`
	Entries []RentRollEntry `json:"entries"`
	Total   int             `json:"total"`
}

// ExpirationEntry is one lease expiring within the queried horizon
type ExpirationEntry struct {
	LeaseID        uint64 `json:"lease_id"`
	ExternalNumber string `json:"external_number"`
	VersionID      uint64 `json:"version_id"`
	ExpirationDate string `json:"expiration_date"`
	Source         string `json:"source"`
}

// ExpirationsResponse lists leases expiring within the queried horizon
type ExpirationsResponse struct {
	AsOf    string            `json:"as_of"`
	Until   string            `json:"until"`
	Entries []ExpirationEntry `json:"entries"`
	Total   int               `json:"total"`
}

// NoticeWindowEntry is one option window open as of the queried date
type NoticeWindowEntry struct {
	LeaseID        uint64 `json:"lease_id"`
	ExternalNumber string `json:"external_number"`
	VersionID      uint64 `json:"version_id"`
	OptionWindowID uint64 `json:"option_window_id"`
	Kind           string `json:"kind"`
	WindowStart    string `json:"window_start"`
	WindowEnd      string `json:"window_end"`
}

// NoticeWindowsResponse lists option windows open as of the queried date
type NoticeWindowsResponse struct {
	AsOf    string              `json:"as_of"`
	Entries []NoticeWindowEntry `json:"entries"`
	Total   int                 `json:"total"`
}

// FreeRentEntry is one free rent concession with months remaining
type FreeRentEntry struct {
	LeaseID         uint64  `json:"lease_id"`
	ExternalNumber  string  `json:"external_number"`
	VersionID       uint64  `json:"version_id"`
	ConcessionID    uint64  `json:"concession_id"`
	RemainingMonths float64 `json:"remaining_months"`
}

// FreeRentResponse lists unexpired free rent concessions as of the queried date
type FreeRentResponse struct {
	AsOf    string          `json:"as_of"`
	Entries []FreeRentEntry `json:"entries"`
	Total   int             `json:"total"`
}

// AllowanceEntry is the allowance rollup for one lease's current version
type AllowanceEntry struct {
	LeaseID        uint64  `json:"lease_id"`
	ExternalNumber string  `json:"external_number"`
	VersionID      uint64  `json:"version_id"`
	Total          float64 `json:"total"`
	Flat           float64 `json:"flat"`
	PerSFApplied   float64 `json:"per_sf_applied"`
}

// AllowancesResponse lists allowance rollups across the portfolio
type AllowancesResponse struct {
	Entries []AllowanceEntry `json:"entries"`
	Total   int              `json:"total"`
}

// LeaseMetricsResponse is the derived-metric summary for a single lease
type LeaseMetricsResponse struct {
	LeaseID        uint64              `json:"lease_id"`
	AsOf           string              `json:"as_of"`
	VersionID      *uint64             `json:"version_id,omitempty"`
	ExpirationDate *string             `json:"expiration_date,omitempty"`
	CurrentRent    *RentRollEntry      `json:"current_rent,omitempty"`
	FreeRent       []FreeRentEntry     `json:"free_rent"`
	Allowances     *AllowanceEntry     `json:"allowances,omitempty"`
	OpenWindows    []NoticeWindowEntry `json:"open_windows"`
}
